// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"

	"modem-rotatord/internal/types"
)

//go:generate mockgen -source=rotation.go -destination=../mock/rotation.go -package=mock

// Rotator is the primary port for modem connection rotation.
// The HTTP layer drives the core exclusively through this interface.
type Rotator interface {
	// Rotate performs one full rotation cycle: disconnect, settle,
	// reconnect, verify. Concurrent callers are serialized; a second
	// caller blocks until the first cycle completes.
	Rotate(ctx context.Context) types.RotationResult

	// Status returns the current connectivity snapshot. It is safe to
	// call while a rotation is in progress and does not block on the
	// rotation lock.
	Status(ctx context.Context) types.ConnectivityStatus
}

// ActuationSelector is a port for disconnecting and connecting the modem.
// Implementations try an ordered list of OS-level mechanisms and report
// the outcome of every attempt; they never return an error.
type ActuationSelector interface {
	// Disconnect drops the modem connection using the first mechanism
	// that succeeds.
	Disconnect(ctx context.Context) (bool, []types.ActuationOutcome)

	// Connect re-establishes the modem connection, mirroring the
	// disconnect mechanisms.
	Connect(ctx context.Context) (bool, []types.ActuationOutcome)
}

// StatusReader is a port for observing the modem's current link state.
type StatusReader interface {
	// Snapshot recomputes the link state. Partial information degrades
	// to zero values rather than an error.
	Snapshot(ctx context.Context) types.LinkStatus
}
