package operator

import "strings"

// Status is the verification status of an operator account.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// ParseStatus normalizes and validates a status string, defaulting to pending.
func ParseStatus(in string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status
	}
	return StatusPending
}

// Valid reports whether status is one of the allowed operator statuses.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}
