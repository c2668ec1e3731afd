package driver

import (
	"errors"
	"strings"
	"time"
)

// Driver is an operator-employed driver. Corresponds to the `drivers` table;
// always scoped by operator_id. CurrentLatitude/CurrentLongitude hold the
// latest GPS fix and are nil until the driver first reports a position.
type Driver struct {
	ID                 string
	OperatorID         string
	FullName           string
	LicenseNumber      string
	LicenseType        string
	Phone              string
	Address            *string
	DateOfBirth        *time.Time
	Status             Status
	CurrentLatitude    *float64
	CurrentLongitude   *float64
	LastLocationUpdate *time.Time
	CreatedAt          time.Time
}

var (
	ErrEmptyFullName      = errors.New("full name cannot be empty")
	ErrEmptyLicenseNumber = errors.New("license number cannot be empty")
	ErrEmptyPhone         = errors.New("phone cannot be empty")
	ErrNotFound           = errors.New("driver not found")
)

// DefaultLicenseType matches the most common private-vehicle license class.
const DefaultLicenseType = "A"

// New constructs an active Driver for the given operator.
func New(operatorID, fullName, licenseNumber, licenseType, phone string) (*Driver, error) {
	if strings.TrimSpace(licenseType) == "" {
		licenseType = DefaultLicenseType
	}
	d := &Driver{
		OperatorID:    operatorID,
		FullName:      strings.TrimSpace(fullName),
		LicenseNumber: strings.TrimSpace(licenseNumber),
		LicenseType:   strings.TrimSpace(licenseType),
		Phone:         strings.TrimSpace(phone),
		Status:        StatusActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks invariants of the Driver entity.
func (d *Driver) Validate() error {
	if d.FullName == "" {
		return ErrEmptyFullName
	}
	if d.LicenseNumber == "" {
		return ErrEmptyLicenseNumber
	}
	if d.Phone == "" {
		return ErrEmptyPhone
	}
	return nil
}
