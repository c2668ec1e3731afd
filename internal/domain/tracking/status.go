package tracking

import (
	"errors"
	"strings"
)

// PickupStatus is the per-stop status of a pickup queue entry.
type PickupStatus string

const (
	PickupPending    PickupStatus = "pending"
	PickupInProgress PickupStatus = "in_progress"
	PickupPickedUp   PickupStatus = "picked_up"
	PickupSkipped    PickupStatus = "skipped"
)

// ParsePickupStatus normalizes (lowercases+trims) and validates a status string.
func ParsePickupStatus(in string) (PickupStatus, error) {
	status := PickupStatus(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidPickupStatus
}

// Valid reports whether status is one of the allowed pickup status constants.
func (status PickupStatus) Valid() bool {
	switch status {
	case PickupPending, PickupInProgress, PickupPickedUp, PickupSkipped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the PickupStatus.
func (status PickupStatus) String() string {
	return string(status)
}

// TravelStatus is the status of a travel tracking record.
type TravelStatus string

const (
	TravelWaiting   TravelStatus = "waiting"
	TravelPickingUp TravelStatus = "picking_up"
	TravelOnRoute   TravelStatus = "on_route"
	TravelCompleted TravelStatus = "completed"
	TravelCancelled TravelStatus = "cancelled"
)

var ErrInvalidTravelStatus = errors.New("invalid tracking status")

// ParseTravelStatus normalizes and validates a tracking status string.
func ParseTravelStatus(in string) (TravelStatus, error) {
	status := TravelStatus(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidTravelStatus
}

// Valid reports whether status is one of the allowed tracking status constants.
func (status TravelStatus) Valid() bool {
	switch status {
	case TravelWaiting, TravelPickingUp, TravelOnRoute, TravelCompleted, TravelCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the TravelStatus.
func (status TravelStatus) String() string {
	return string(status)
}

// Terminal indicates if the tracking status is in a terminal state.
func (status TravelStatus) Terminal() bool {
	return status == TravelCompleted || status == TravelCancelled
}
