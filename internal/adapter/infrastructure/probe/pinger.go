// Package probe provides an ICMP reachability prober adapter implementation.
package probe

import (
	"context"
	"fmt"
	"time"

	"modem-rotatord/internal/port"

	probing "github.com/prometheus-community/pro-bing"
)

// Pinger is an adapter that implements the Prober port using pro-bing.
// It runs unprivileged (UDP ping) so the daemon does not need raw sockets.
type Pinger struct{}

// Ensure Pinger implements the Prober port
var _ port.Prober = (*Pinger)(nil)

// NewPinger creates a new ICMP prober adapter.
func NewPinger() *Pinger {
	return &Pinger{}
}

// Probe sends a single echo request to the target. It returns an error
// when the pinger cannot be created, the probe times out, or no reply
// arrives.
func (p *Pinger) Probe(ctx context.Context, target string, timeout time.Duration) error {
	pinger, err := probing.NewPinger(target)
	if err != nil {
		return fmt.Errorf("failed to create pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)

	if err := pinger.RunWithContext(ctx); err != nil {
		return fmt.Errorf("probe of %s failed: %w", target, err)
	}

	if pinger.Statistics().PacketsRecv == 0 {
		return fmt.Errorf("probe of %s failed: packet loss", target)
	}
	return nil
}
