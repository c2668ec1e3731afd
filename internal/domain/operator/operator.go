package operator

import (
	"errors"
	"strings"
	"time"
)

// Operator is a travel operator (PO) managing vehicles, drivers, and travels.
// Corresponds to the `operators` table.
type Operator struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	Address         string
	CompanyCode     string
	PasswordHash    string
	LogoURL         *string
	NPWP            *string
	BusinessLicense *string
	AccountNumber   *string
	BankName        *string
	AccountHolder   *string
	CommissionRate  float64
	Status          Status
	VerifiedAt      *time.Time
	RejectedReason  *string
	IsActive        bool
	CreatedAt       time.Time
}

var (
	ErrEmptyName     = errors.New("operator name cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPhone    = errors.New("phone cannot be empty")
	ErrEmptyPassword = errors.New("password hash cannot be empty")
	ErrNotFound      = errors.New("operator not found")
	ErrEmailTaken    = errors.New("email already registered")
)

// DefaultCommissionRate is applied when an operator has no negotiated rate.
const DefaultCommissionRate = 10.0

// New constructs a registered Operator in pending status.
func New(name, email, phone, address, companyCode, passwordHash string) (*Operator, error) {
	op := &Operator{
		Name:           strings.TrimSpace(name),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Phone:          strings.TrimSpace(phone),
		Address:        strings.TrimSpace(address),
		CompanyCode:    companyCode,
		PasswordHash:   passwordHash,
		CommissionRate: DefaultCommissionRate,
		Status:         StatusPending,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

// Validate checks invariants of the Operator entity.
func (op *Operator) Validate() error {
	if op.Name == "" {
		return ErrEmptyName
	}
	if op.Email == "" {
		return ErrEmptyEmail
	}
	if op.Phone == "" {
		return ErrEmptyPhone
	}
	if op.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}
