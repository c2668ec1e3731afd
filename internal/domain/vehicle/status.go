package vehicle

import "strings"

// Status is the operational status of a vehicle.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

// ParseStatus normalizes a status string, defaulting to available.
func ParseStatus(in string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status
	}
	return StatusAvailable
}

// Valid reports whether status is one of the allowed vehicle statuses.
func (status Status) Valid() bool {
	switch status {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusInactive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}
