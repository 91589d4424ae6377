// Package types defines common types used across the application.
package types

import "time"

// Outcome classifies the result of a single actuation attempt.
type Outcome int

const (
	// OutcomeSuccess means the mechanism actuated the modem.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the mechanism ran but did not succeed.
	OutcomeFailure
	// OutcomeUnavailable means the mechanism is not present on this host.
	OutcomeUnavailable
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ActuationOutcome records one disconnect/connect attempt. It is used to
// decide fallback and for logging; it is never persisted.
type ActuationOutcome struct {
	Method  string  `json:"method"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"`
}

// RotationState tracks rotation history for the lifetime of the process.
// It is owned by the rotation controller and reset on restart.
type RotationState struct {
	LastRotation  *time.Time
	RotationCount uint64
}

// LinkStatus is a transient snapshot of the modem's network state,
// recomputed on every request.
type LinkStatus struct {
	Interface         string
	ControlDevice     string
	InterfaceUp       bool
	IPAddress         string
	InternetConnected bool
}

// ConnectivityStatus combines a link snapshot with the rotation history.
// The JSON field names match the wire format of the original service.
type ConnectivityStatus struct {
	Interface         string  `json:"interface"`
	ControlDevice     string  `json:"nm_device"`
	InterfaceUp       bool    `json:"interface_up"`
	IPAddress         string  `json:"ip_address,omitempty"`
	InternetConnected bool    `json:"internet_connected"`
	LastRotation      *string `json:"last_rotation"`
	RotationCount     uint64  `json:"rotation_count"`
}

// RotationResult is the outcome of one full rotation cycle.
type RotationResult struct {
	Success        bool                `json:"success"`
	Message        string              `json:"message,omitempty"`
	Error          string              `json:"error,omitempty"`
	Status         *ConnectivityStatus `json:"status,omitempty"`
	InitialStatus  *ConnectivityStatus `json:"initial_status,omitempty"`
	FinalStatus    *ConnectivityStatus `json:"final_status,omitempty"`
	RotationTime   string              `json:"rotation_time,omitempty"`
	TotalRotations uint64              `json:"total_rotations,omitempty"`
}
