package user

import (
	"errors"
	"strings"
)

// Role identifies the kind of authenticated caller.
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleStudent  Role = "STUDENT"
	RoleDriver   Role = "DRIVER"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole normalizes (uppercases+trims) and validates a role string.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if role.Valid() {
		return role, nil
	}
	return "", ErrInvalidRole
}

// Valid reports whether role is one of the allowed role constants.
func (role Role) Valid() bool {
	switch role {
	case RoleOperator, RoleStudent, RoleDriver:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Role.
func (role Role) String() string {
	return string(role)
}

// Convenience helpers.
func (role Role) IsOperator() bool { return role == RoleOperator }
func (role Role) IsStudent() bool  { return role == RoleStudent }
func (role Role) IsDriver() bool   { return role == RoleDriver }
