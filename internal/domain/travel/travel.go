package travel

import (
	"errors"
	"strings"
	"time"
)

// Travel is one scheduled trip instance with an origin, destination,
// assigned vehicle/driver, and bookable seats. Corresponds to the
// `travels` table; always scoped by operator_id.
type Travel struct {
	ID               string
	OperatorID       string
	VehicleID        string
	DriverID         *string
	RouteName        string
	Origin           string
	Destination      string
	DepartureTime    time.Time
	ArrivalTime      *time.Time
	Price            float64
	TotalSeats       int
	AvailableSeats   int
	Status           Status
	WeatherAlert     bool
	WeatherCondition *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var (
	ErrEmptyVehicleID   = errors.New("vehicle_id cannot be empty")
	ErrEmptyRouteName   = errors.New("route name cannot be empty")
	ErrEmptyOrigin      = errors.New("origin cannot be empty")
	ErrEmptyDestination = errors.New("destination cannot be empty")
	ErrZeroDeparture    = errors.New("departure time cannot be empty")
	ErrNonPositivePrice = errors.New("price must be positive")
	ErrNonPositiveSeats = errors.New("total seats must be positive")
	ErrNotFound         = errors.New("travel not found")
	ErrNoSeats          = errors.New("no seats available")
	ErrCancelled        = errors.New("travel has been cancelled")
)

// New constructs a scheduled Travel with all seats available.
func New(operatorID, vehicleID string, driverID *string, routeName, origin, destination string,
	departure time.Time, arrival *time.Time, price float64, totalSeats int) (*Travel, error) {
	now := time.Now().UTC()
	t := &Travel{
		OperatorID:     operatorID,
		VehicleID:      vehicleID,
		DriverID:       driverID,
		RouteName:      strings.TrimSpace(routeName),
		Origin:         strings.TrimSpace(origin),
		Destination:    strings.TrimSpace(destination),
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		Price:          price,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
		Status:         StatusScheduled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks invariants of the Travel entity.
func (t *Travel) Validate() error {
	if strings.TrimSpace(t.VehicleID) == "" {
		return ErrEmptyVehicleID
	}
	if t.RouteName == "" {
		return ErrEmptyRouteName
	}
	if t.Origin == "" {
		return ErrEmptyOrigin
	}
	if t.Destination == "" {
		return ErrEmptyDestination
	}
	if t.DepartureTime.IsZero() {
		return ErrZeroDeparture
	}
	if t.Price <= 0 {
		return ErrNonPositivePrice
	}
	if t.TotalSeats <= 0 {
		return ErrNonPositiveSeats
	}
	return nil
}
