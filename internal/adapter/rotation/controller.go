// Package rotation drives the modem rotation cycle:
// disconnect, settle, reconnect, verify.
package rotation

import (
	"context"
	"sync"
	"time"

	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/port"
	"modem-rotatord/internal/types"

	"github.com/sirupsen/logrus"
)

// Controller is an adapter that implements the Rotator port. It owns the
// rotation state and guarantees at most one rotation cycle executes at a
// time; concurrent callers queue on the cycle mutex. Status reads use a
// separate short-held lock so they stay responsive during a rotation.
type Controller struct {
	cfg      *config.Config
	selector port.ActuationSelector
	reader   port.StatusReader

	// mu serializes full rotation cycles.
	mu sync.Mutex
	// stateMu guards the rotation history independently of mu.
	stateMu sync.RWMutex
	state   types.RotationState

	settleDelay   time.Duration
	verifyTimeout time.Duration
	pollInterval  time.Duration
}

// Ensure Controller implements the Rotator port
var _ port.Rotator = (*Controller)(nil)

// NewController creates a new rotation controller.
func NewController(cfg *config.Config, selector port.ActuationSelector, reader port.StatusReader) *Controller {
	return &Controller{
		cfg:           cfg,
		selector:      selector,
		reader:        reader,
		settleDelay:   cfg.Rotation.SettleDelay(),
		verifyTimeout: cfg.Rotation.ReconnectTimeout(),
		pollInterval:  cfg.Rotation.PollInterval(),
	}
}

// Rotate performs one full rotation cycle. Once started, the cycle runs to
// completion; it is bounded by the sum of the per-step timeouts, the settle
// delay and the verification timeout.
func (c *Controller) Rotate(ctx context.Context) types.RotationResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := logging.WithComponentAndInterface("rotation", c.cfg.Modem.Interface)
	logger.Info("Starting connection rotation")

	initial := c.Status(ctx)

	ok, attempts := c.selector.Disconnect(ctx)
	c.logAttempts(logger, "disconnect", attempts)
	if !ok {
		logger.Error("Failed to disconnect modem")
		return types.RotationResult{
			Success: false,
			Error:   "Failed to disconnect modem",
			Status:  &initial,
		}
	}

	logger.WithField("delay", c.settleDelay.String()).Info("Waiting for session teardown")
	sleepCtx(ctx, c.settleDelay)

	ok, attempts = c.selector.Connect(ctx)
	c.logAttempts(logger, "connect", attempts)
	if !ok {
		logger.Error("Failed to reconnect modem")
		current := c.Status(ctx)
		return types.RotationResult{
			Success: false,
			Error:   "Failed to reconnect modem",
			Status:  &current,
		}
	}

	// Verification: poll until reachable or the timeout elapses. A timeout
	// does not fail the cycle; the connection may still be establishing.
	logger.Info("Waiting for connection to establish")
	link := c.verify(ctx)

	now := time.Now()
	c.stateMu.Lock()
	c.state.LastRotation = &now
	c.state.RotationCount++
	count := c.state.RotationCount
	c.stateMu.Unlock()

	final := c.withState(link)
	logger.WithField("total_rotations", count).Info("Connection rotation completed")

	return types.RotationResult{
		Success:        true,
		Message:        "Connection rotated successfully",
		InitialStatus:  &initial,
		FinalStatus:    &final,
		RotationTime:   now.Format(time.RFC3339),
		TotalRotations: count,
	}
}

// Status returns the current connectivity snapshot combined with the
// rotation history. It never takes the rotation lock.
func (c *Controller) Status(ctx context.Context) types.ConnectivityStatus {
	return c.withState(c.reader.Snapshot(ctx))
}

// verify polls connectivity at the configured interval until internet
// reachability is confirmed or the verification timeout elapses. The last
// snapshot taken is returned either way.
func (c *Controller) verify(ctx context.Context) types.LinkStatus {
	deadline := time.Now().Add(c.verifyTimeout)
	var link types.LinkStatus
	for {
		sleepCtx(ctx, c.pollInterval)
		link = c.reader.Snapshot(ctx)
		if link.InternetConnected {
			return link
		}
		if !time.Now().Before(deadline) || ctx.Err() != nil {
			return link
		}
	}
}

// withState merges a link snapshot with the rotation history.
func (c *Controller) withState(link types.LinkStatus) types.ConnectivityStatus {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	status := types.ConnectivityStatus{
		Interface:         link.Interface,
		ControlDevice:     link.ControlDevice,
		InterfaceUp:       link.InterfaceUp,
		IPAddress:         link.IPAddress,
		InternetConnected: link.InternetConnected,
		RotationCount:     c.state.RotationCount,
	}
	if c.state.LastRotation != nil {
		t := c.state.LastRotation.Format(time.RFC3339)
		status.LastRotation = &t
	}
	return status
}

// logAttempts narrates every actuation attempt of one phase.
func (c *Controller) logAttempts(logger *logrus.Entry, phase string, attempts []types.ActuationOutcome) {
	for _, attempt := range attempts {
		logger.WithFields(logrus.Fields{
			"phase":   phase,
			"method":  attempt.Method,
			"outcome": attempt.Outcome.String(),
		}).Debug("Actuation attempt")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
