package ports

import (
	"context"
	"time"

	"travel-po/internal/domain/booking"
	"travel-po/internal/domain/driver"
	"travel-po/internal/domain/location"
	"travel-po/internal/domain/operator"
	"travel-po/internal/domain/student"
	"travel-po/internal/domain/tracking"
	"travel-po/internal/domain/travel"
	"travel-po/internal/domain/vehicle"
	"travel-po/internal/domain/weather"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OperatorRepository defines the methods for managing operator accounts.
type OperatorRepository interface {
	Create(ctx context.Context, op *operator.Operator) error
	GetByID(ctx context.Context, id string) (*operator.Operator, error)
	GetByEmail(ctx context.Context, email string) (*operator.Operator, error)
}

// StudentRepository defines the methods for managing student accounts.
type StudentRepository interface {
	Create(ctx context.Context, st *student.Student) error
	GetByID(ctx context.Context, id string) (*student.Student, error)
	GetByEmail(ctx context.Context, email string) (*student.Student, error)
}

// VehicleRepository defines the methods for managing operator vehicles.
// All lookups are scoped by operator so one PO can never touch another's fleet.
type VehicleRepository interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	GetByID(ctx context.Context, operatorID, id string) (*vehicle.Vehicle, error)
	ListByOperator(ctx context.Context, operatorID string) ([]vehicle.Vehicle, error)
	Update(ctx context.Context, v *vehicle.Vehicle) error
	Delete(ctx context.Context, operatorID, id string) error
}

// DriverRepository defines the methods for managing operator drivers.
type DriverRepository interface {
	Create(ctx context.Context, d *driver.Driver) error
	GetByID(ctx context.Context, operatorID, id string) (*driver.Driver, error)
	ListByOperator(ctx context.Context, operatorID string) ([]driver.Driver, error)
	Update(ctx context.Context, d *driver.Driver) error
	Delete(ctx context.Context, operatorID, id string) error
	UpdateCurrentPosition(ctx context.Context, driverID string, lat, lon float64, at time.Time) error
}

// TravelRow is a travel joined with its vehicle/driver summary and live
// booking count, as listed on the PO dashboard.
type TravelRow struct {
	travel.Travel
	VehicleNumber string
	PlateNumber   string
	VehicleType   string
	DriverName    *string
	BookingCount  int
}

// TravelRepository defines the methods for managing scheduled travels.
type TravelRepository interface {
	Create(ctx context.Context, t *travel.Travel) error
	GetByID(ctx context.Context, id string) (*travel.Travel, error)
	GetByIDForOperator(ctx context.Context, operatorID, id string) (*travel.Travel, error)
	ListByOperator(ctx context.Context, operatorID string) ([]TravelRow, error)
	Update(ctx context.Context, t *travel.Travel) error
	Delete(ctx context.Context, operatorID, id string) error

	// AdjustSeats changes available_seats by delta (negative on booking,
	// positive on cancellation) and fails with travel.ErrNoSeats when the
	// decrement would go below zero. Must run inside a UnitOfWork together
	// with the booking write.
	AdjustSeats(ctx context.Context, travelID string, delta int) error

	// UpdateWeather persists the latest route alert evaluation on the travel.
	UpdateWeather(ctx context.Context, travelID string, hasAlert bool, condition string) error
}

// BookingRow is a booking joined with its student and travel summary.
type BookingRow struct {
	booking.Booking
	StudentName   string
	StudentPhone  string
	RouteName     string
	Origin        string
	Destination   string
	DepartureTime time.Time
	Price         float64
}

// BookingRepository defines the methods for managing bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	GetByID(ctx context.Context, id string) (*booking.Booking, error)
	GetRowForOperator(ctx context.Context, operatorID, id string) (*BookingRow, error)
	GetRowForStudent(ctx context.Context, studentID, id string) (*BookingRow, error)
	ListByOperator(ctx context.Context, operatorID string) ([]BookingRow, error)
	ListByStudent(ctx context.Context, studentID string) ([]BookingRow, error)
	UpdateStatus(ctx context.Context, id string, status booking.Status) error

	// ListConfirmedPickupCandidates returns the travel's confirmed bookings
	// that carry a pickup coordinate, in booking-fetch order. Bookings with
	// NULL coordinates are filtered out here, not downstream.
	ListConfirmedPickupCandidates(ctx context.Context, travelID string) ([]tracking.PickupCandidate, error)
}

// LocationFilter narrows the autocomplete listing. Zero values mean no filter.
type LocationFilter struct {
	Search      string
	Type        location.Type
	PopularOnly bool
	Limit       int
}

// LocationRepository defines read methods over location references.
type LocationRepository interface {
	List(ctx context.Context, f LocationFilter) ([]location.Reference, error)
	GetByID(ctx context.Context, id string) (*location.Reference, error)
	FindByName(ctx context.Context, name string) (*location.Reference, error)
}

// DriverLocationRepository manages the single live GPS row per driver.
type DriverLocationRepository interface {
	// Upsert stores pos as the driver's current position, replacing any
	// previous row for the driver.
	Upsert(ctx context.Context, pos *tracking.DriverPosition) error

	// Current returns the driver's latest active position, or (nil, nil)
	// when the driver has never reported one.
	Current(ctx context.Context, driverID string) (*tracking.DriverPosition, error)
}

// TrackingRow is a travel_tracking record joined with its travel summary.
type TrackingRow struct {
	tracking.TravelTracking
	RouteName   string
	Origin      string
	Destination string
	DriverName  *string
}

// TravelTrackingRepository manages coarse per-travel trip progress.
type TravelTrackingRepository interface {
	Create(ctx context.Context, t *tracking.TravelTracking) error
	Update(ctx context.Context, t *tracking.TravelTracking) error

	// GetByTravelID returns (nil, nil) when the travel has no tracking row yet.
	GetByTravelID(ctx context.Context, travelID string) (*tracking.TravelTracking, error)

	GetRowByTravelID(ctx context.Context, travelID string) (*TrackingRow, error)
	ListActiveByOperator(ctx context.Context, operatorID string) ([]TrackingRow, error)
}

// PickupQueueRepository manages the ordered pickup queue per (travel, driver).
type PickupQueueRepository interface {
	// Replace atomically swaps the stored queue for the (travel, driver)
	// pair: delete all existing rows, then insert entries in order. An empty
	// entries slice still deletes. Must run inside a UnitOfWork. Returns the
	// inserted entries with their generated IDs.
	Replace(ctx context.Context, travelID, driverID string, entries []tracking.QueueEntry) ([]tracking.QueueEntry, error)

	// ListByTravel returns the stored queue ordered by pickup_order.
	ListByTravel(ctx context.Context, travelID string) ([]tracking.QueueEntry, error)

	// UpdateEntryStatus sets the entry's pickup status. pickedUpAt is written
	// to actual_pickup_time only when status is picked_up; other statuses
	// leave any previously recorded time untouched. Returns
	// tracking.ErrEntryNotFound when id matches nothing.
	UpdateEntryStatus(ctx context.Context, entryID string, status tracking.PickupStatus, pickedUpAt time.Time) (*tracking.QueueEntry, error)
}

// WeatherCache is the read-through cache in front of the weather provider.
type WeatherCache interface {
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
	Set(ctx context.Context, snap *weather.Snapshot) error
}

// WeatherProvider fetches current conditions for a coordinate.
type WeatherProvider interface {
	Fetch(ctx context.Context, lat, lon float64, locationName string) (*weather.Snapshot, error)
}

// EventPublisher publishes domain events to the message broker. Publishing
// is best effort; callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}
