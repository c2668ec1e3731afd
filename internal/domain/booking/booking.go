package booking

import (
	"errors"
	"strings"
	"time"
)

// Booking is a student's reservation of a seat on a travel, carrying an
// optional pickup coordinate. Corresponds to the `bookings` table.
type Booking struct {
	ID              string
	TravelID        string
	StudentID       string
	Status          Status
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	SeatNumber      *int
	PickupAddress   string
	PickupLatitude  *float64
	PickupLongitude *float64
	BookedAt        time.Time
}

var (
	ErrEmptyTravelID      = errors.New("travel_id cannot be empty")
	ErrEmptyPickupAddress = errors.New("pickup address cannot be empty")
	ErrInvalidLatitude    = errors.New("pickup latitude must be between -90 and 90")
	ErrInvalidLongitude   = errors.New("pickup longitude must be between -180 and 180")
	ErrNotFound           = errors.New("booking not found")
	ErrAlreadyCancelled   = errors.New("booking already cancelled")
	ErrAlreadyCompleted   = errors.New("booking already completed")
)

// DefaultPaymentMethod is applied when the student does not pick one.
const DefaultPaymentMethod = "cash"

// New constructs a confirmed Booking with pending payment. Coordinate range
// checks happen here, at the ingestion boundary, so downstream distance
// computation can stay total.
func New(travelID, studentID, pickupAddress, paymentMethod string, pickupLat, pickupLon *float64) (*Booking, error) {
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = DefaultPaymentMethod
	}
	b := &Booking{
		TravelID:        strings.TrimSpace(travelID),
		StudentID:       studentID,
		Status:          StatusConfirmed,
		PaymentStatus:   PaymentPending,
		PaymentMethod:   strings.ToLower(strings.TrimSpace(paymentMethod)),
		PickupAddress:   strings.TrimSpace(pickupAddress),
		PickupLatitude:  pickupLat,
		PickupLongitude: pickupLon,
		BookedAt:        time.Now().UTC(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks invariants of the Booking entity.
func (b *Booking) Validate() error {
	if b.TravelID == "" {
		return ErrEmptyTravelID
	}
	if b.PickupAddress == "" {
		return ErrEmptyPickupAddress
	}
	if b.PickupLatitude != nil && (*b.PickupLatitude < -90 || *b.PickupLatitude > 90) {
		return ErrInvalidLatitude
	}
	if b.PickupLongitude != nil && (*b.PickupLongitude < -180 || *b.PickupLongitude > 180) {
		return ErrInvalidLongitude
	}
	return nil
}

// HasPickupCoordinate reports whether both pickup coordinates are present.
func (b *Booking) HasPickupCoordinate() bool {
	return b.PickupLatitude != nil && b.PickupLongitude != nil
}
