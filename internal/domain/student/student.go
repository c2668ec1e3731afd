package student

import (
	"errors"
	"strings"
	"time"
)

// Student is a booking customer. Corresponds to the `students` table
// (account fields and profile folded into one row).
type Student struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	NIM          *string
	University   *string
	IsActive     bool
	CreatedAt    time.Time
}

var (
	ErrEmptyName     = errors.New("full name cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrEmptyPassword = errors.New("password hash cannot be empty")
	ErrNotFound      = errors.New("student not found")
	ErrEmailTaken    = errors.New("email already registered")
)

// New constructs an active Student account.
func New(fullName, email, phone, passwordHash string, nim, university *string) (*Student, error) {
	st := &Student{
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		NIM:          nim,
		University:   university,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return st, nil
}

// Validate checks invariants of the Student entity.
func (st *Student) Validate() error {
	if st.FullName == "" {
		return ErrEmptyName
	}
	if st.Email == "" {
		return ErrEmptyEmail
	}
	if st.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}
