package tracking

import "time"

// DriverPosition is the latest reported GPS fix for a driver. Exactly one
// live position exists per driver; every ping overwrites the previous one.
type DriverPosition struct {
	DriverID       string
	TravelID       *string
	Latitude       float64
	Longitude      float64
	SpeedKMH       float64
	HeadingDegrees *float64
	AccuracyMeters *float64
	UpdatedAt      time.Time
}

// TravelTracking mirrors the travel_tracking table: coarse trip progress
// reported by the driver app. Distances and ETAs are caller-supplied
// pass-through values, never computed here.
type TravelTracking struct {
	ID                  string
	TravelID            string
	DriverID            string
	BookingID           *string
	Status              TravelStatus
	PickupETAMinutes    *int
	JourneyETAMinutes   *int
	TotalDistanceKM     *float64
	RemainingDistanceKM *float64
	CurrentLocationName *string
	Notes               *string
	PickupStartedAt     *time.Time
	PickupCompletedAt   *time.Time
	JourneyStartedAt    *time.Time
	JourneyCompletedAt  *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
