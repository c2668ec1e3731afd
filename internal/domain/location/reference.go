package location

import (
	"errors"
	"strings"
)

// Reference is an autocomplete entry for origins, destinations, and pickup
// areas. Corresponds to the `location_references` table. Coordinates are
// optional; when present they feed the weather travel lookup.
type Reference struct {
	ID         string
	Name       string
	Type       Type
	ParentName *string
	Latitude   *float64
	Longitude  *float64
	IsPopular  bool
	IsActive   bool
}

var ErrNotFound = errors.New("location not found")

// Type classifies a location reference.
type Type string

const (
	TypeCity     Type = "city"
	TypeRegency  Type = "regency"
	TypeDistrict Type = "district"
)

// ParseType normalizes and validates a location type string. An empty or
// unknown value returns ok=false, which list filters treat as "no filter".
func ParseType(in string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(in)))
	switch t {
	case TypeCity, TypeRegency, TypeDistrict:
		return t, true
	default:
		return "", false
	}
}

// String returns the string representation of the Type.
func (t Type) String() string {
	return string(t)
}
