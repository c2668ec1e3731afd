package vehicle

import (
	"errors"
	"strings"
	"time"
)

// Vehicle is an operator-owned bus or minivan. Corresponds to the
// `vehicles` table; always scoped by operator_id.
type Vehicle struct {
	ID            string
	OperatorID    string
	VehicleNumber string
	PlateNumber   string
	VehicleType   string
	Brand         *string
	Model         *string
	Year          *int
	Capacity      *int
	Status        Status
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var (
	ErrEmptyVehicleNumber = errors.New("vehicle number cannot be empty")
	ErrEmptyPlateNumber   = errors.New("plate number cannot be empty")
	ErrEmptyVehicleType   = errors.New("vehicle type cannot be empty")
	ErrNotFound           = errors.New("vehicle not found")
)

// New constructs an available Vehicle for the given operator.
func New(operatorID, vehicleNumber, plateNumber, vehicleType string) (*Vehicle, error) {
	now := time.Now().UTC()
	v := &Vehicle{
		OperatorID:    operatorID,
		VehicleNumber: strings.TrimSpace(vehicleNumber),
		PlateNumber:   strings.TrimSpace(plateNumber),
		VehicleType:   strings.TrimSpace(vehicleType),
		Status:        StatusAvailable,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks invariants of the Vehicle entity.
func (v *Vehicle) Validate() error {
	if v.VehicleNumber == "" {
		return ErrEmptyVehicleNumber
	}
	if v.PlateNumber == "" {
		return ErrEmptyPlateNumber
	}
	if v.VehicleType == "" {
		return ErrEmptyVehicleType
	}
	return nil
}
