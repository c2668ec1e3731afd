package tracking

import "errors"

var (
	// ErrDriverLocationUnavailable means the driver has never reported a
	// position, or the last report was cleared. The caller must prompt the
	// driver to enable location reporting; retrying without that is useless.
	ErrDriverLocationUnavailable = errors.New("driver location unavailable")

	// ErrInvalidPickupStatus is returned for a status outside the enum.
	ErrInvalidPickupStatus = errors.New("invalid pickup status")

	// ErrEntryNotFound is returned when a queue entry id resolves to nothing.
	ErrEntryNotFound = errors.New("pickup queue entry not found")

	// ErrLocationNotFound is returned when no active location row exists.
	ErrLocationNotFound = errors.New("driver location not found")

	// ErrTrackingNotFound is returned when no tracking row exists for a travel.
	ErrTrackingNotFound = errors.New("travel tracking not found")
)
