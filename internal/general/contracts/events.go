// Package contracts defines the broker topology and event payloads shared
// with downstream consumers (notification workers, analytics).
package contracts

import "time"

// ExchangeTravelTopic is the single topic exchange all domain events flow
// through. Consumers bind their own queues with the routing keys below.
const ExchangeTravelTopic = "travel.events"

// Routing keys.
const (
	RouteBookingCreated       = "booking.created"
	RouteBookingCancelled     = "booking.cancelled"
	RouteBookingStatusChanged = "booking.status_changed"
	RouteLocationUpdated      = "tracking.location_updated"
	RouteQueueBuilt           = "tracking.queue_built"
	RoutePickupStatusUpdated  = "tracking.pickup_status_updated"
	RouteWeatherAlert         = "weather.alert"
)

// Event is the envelope wrapping every published payload.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// BookingEvent is published on booking create/cancel/status change.
type BookingEvent struct {
	BookingID string `json:"booking_id"`
	TravelID  string `json:"travel_id"`
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
}

// LocationUpdatedEvent is published on every stored driver GPS fix.
type LocationUpdatedEvent struct {
	DriverID  string  `json:"driver_id"`
	TravelID  *string `json:"travel_id,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SpeedKMH  float64 `json:"speed_kmh"`
}

// QueueBuiltEvent is published after a pickup queue replace commits.
type QueueBuiltEvent struct {
	TravelID   string `json:"travel_id"`
	DriverID   string `json:"driver_id"`
	EntryCount int    `json:"entry_count"`
}

// PickupStatusUpdatedEvent is published after a queue entry status change.
type PickupStatusUpdatedEvent struct {
	EntryID      string `json:"entry_id"`
	TravelID     string `json:"travel_id"`
	BookingID    string `json:"booking_id"`
	PickupStatus string `json:"pickup_status"`
}

// WeatherAlertEvent is published when a travel's route evaluation raises
// an alert.
type WeatherAlertEvent struct {
	TravelID  string   `json:"travel_id"`
	Condition string   `json:"condition"`
	Alerts    []string `json:"alerts"`
}
