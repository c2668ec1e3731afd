package driver

import "strings"

// Status is the employment/availability status of a driver.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnTrip   Status = "on_trip"
)

// ParseStatus normalizes a status string, defaulting to active.
func ParseStatus(in string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status
	}
	return StatusActive
}

// Valid reports whether status is one of the allowed driver statuses.
func (status Status) Valid() bool {
	switch status {
	case StatusActive, StatusInactive, StatusOnTrip:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}
