package ports

import (
	"context"
	"time"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/domain/weather"
)

// ----- DTOs for Auth Service -----

// RegisterOperatorInput is the validated input for POST /api/auth/register.
type RegisterOperatorInput struct {
	PoName   string
	Email    string
	Password string
	Phone    string
	Address  string
}

// OperatorProfile is the operator as exposed to API clients.
type OperatorProfile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	CompanyCode    string  `json:"company_code"`
	CommissionRate float64 `json:"commission_rate"`
	Status         string  `json:"status"`
}

// OperatorAuthResult is returned by operator register/login.
type OperatorAuthResult struct {
	Token    string          `json:"token"`
	Operator OperatorProfile `json:"operator"`
}

// RegisterStudentInput is the validated input for POST /api/auth/student/register.
type RegisterStudentInput struct {
	FullName   string
	Email      string
	Password   string
	Phone      string
	NIM        *string
	University *string
}

// StudentProfile is the student as exposed to API clients.
type StudentProfile struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	NIM        *string `json:"nim,omitempty"`
	University *string `json:"university,omitempty"`
}

// StudentAuthResult is returned by student register/login.
type StudentAuthResult struct {
	Token   string         `json:"token"`
	Student StudentProfile `json:"student"`
}

// AuthService exposes registration and login for both account kinds.
type AuthService interface {
	RegisterOperator(ctx context.Context, in RegisterOperatorInput) (OperatorAuthResult, error)
	LoginOperator(ctx context.Context, email, password string) (OperatorAuthResult, error)
	RegisterStudent(ctx context.Context, in RegisterStudentInput) (StudentAuthResult, error)
	LoginStudent(ctx context.Context, email, password string) (StudentAuthResult, error)
}

// ---------------------------------------------------------------------------

// ----- DTOs for Fleet Service -----

// VehicleView is a vehicle as exposed to API clients.
type VehicleView struct {
	ID            string  `json:"id"`
	VehicleNumber string  `json:"vehicle_number"`
	PlateNumber   string  `json:"plate_number"`
	VehicleType   string  `json:"vehicle_type"`
	Brand         *string `json:"brand,omitempty"`
	Model         *string `json:"model,omitempty"`
	Year          *int    `json:"year,omitempty"`
	Capacity      *int    `json:"capacity,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}

// CreateVehicleInput is the validated input to register a vehicle.
type CreateVehicleInput struct {
	OperatorID    string
	VehicleNumber string
	PlateNumber   string
	VehicleType   string
	Brand         *string
	Model         *string
	Year          *int
	Capacity      *int
}

// UpdateVehicleInput carries the mutable vehicle fields. Nil means unchanged.
type UpdateVehicleInput struct {
	OperatorID    string
	VehicleID     string
	VehicleNumber *string
	PlateNumber   *string
	VehicleType   *string
	Brand         *string
	Model         *string
	Year          *int
	Capacity      *int
	Status        *string
}

// DriverView is a driver as exposed to API clients, including the latest
// GPS fix maintained by the tracking module.
type DriverView struct {
	ID                 string   `json:"id"`
	FullName           string   `json:"full_name"`
	LicenseNumber      string   `json:"license_number"`
	LicenseType        string   `json:"license_type"`
	Phone              string   `json:"phone"`
	Address            *string  `json:"address,omitempty"`
	Status             string   `json:"status"`
	CurrentLatitude    *float64 `json:"current_latitude,omitempty"`
	CurrentLongitude   *float64 `json:"current_longitude,omitempty"`
	LastLocationUpdate *string  `json:"last_location_update,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

// CreateDriverInput is the validated input to register a driver.
type CreateDriverInput struct {
	OperatorID    string
	FullName      string
	LicenseNumber string
	LicenseType   string
	Phone         string
	Address       *string
	DateOfBirth   *time.Time
}

// UpdateDriverInput carries the mutable driver fields. Nil means unchanged.
type UpdateDriverInput struct {
	OperatorID    string
	DriverID      string
	FullName      *string
	LicenseNumber *string
	LicenseType   *string
	Phone         *string
	Address       *string
	Status        *string
}

// FleetService exposes operator-scoped vehicle and driver management.
type FleetService interface {
	CreateVehicle(ctx context.Context, in CreateVehicleInput) (VehicleView, error)
	ListVehicles(ctx context.Context, operatorID string) ([]VehicleView, error)
	GetVehicle(ctx context.Context, operatorID, vehicleID string) (VehicleView, error)
	UpdateVehicle(ctx context.Context, in UpdateVehicleInput) (VehicleView, error)
	DeleteVehicle(ctx context.Context, operatorID, vehicleID string) error

	CreateDriver(ctx context.Context, in CreateDriverInput) (DriverView, error)
	ListDrivers(ctx context.Context, operatorID string) ([]DriverView, error)
	UpdateDriver(ctx context.Context, in UpdateDriverInput) (DriverView, error)
	DeleteDriver(ctx context.Context, operatorID, driverID string) error
}

// ---------------------------------------------------------------------------

// ----- DTOs for Travel Service -----

// TravelView is a travel as exposed to API clients.
type TravelView struct {
	ID               string  `json:"id"`
	RouteName        string  `json:"route_name"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      *string `json:"arrival_time,omitempty"`
	Price            float64 `json:"price"`
	TotalSeats       int     `json:"total_seats"`
	AvailableSeats   int     `json:"available_seats"`
	Status           string  `json:"status"`
	WeatherAlert     bool    `json:"weather_alert"`
	WeatherCondition *string `json:"weather_condition,omitempty"`
	VehicleNumber    string  `json:"vehicle_number,omitempty"`
	PlateNumber      string  `json:"plate_number,omitempty"`
	VehicleType      string  `json:"vehicle_type,omitempty"`
	DriverName       *string `json:"driver_name,omitempty"`
	BookingCount     int     `json:"booking_count"`
}

// CreateTravelInput is the validated input to schedule a travel.
type CreateTravelInput struct {
	OperatorID    string
	VehicleID     string
	DriverID      *string
	RouteName     string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   *time.Time
	Price         float64
	TotalSeats    int
}

// UpdateTravelInput carries the mutable travel fields. Nil means unchanged.
type UpdateTravelInput struct {
	OperatorID    string
	TravelID      string
	VehicleID     *string
	DriverID      *string
	RouteName     *string
	Origin        *string
	Destination   *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Price         *float64
	Status        *string
}

// TravelService exposes operator-scoped travel management.
type TravelService interface {
	CreateTravel(ctx context.Context, in CreateTravelInput) (TravelView, error)
	ListTravels(ctx context.Context, operatorID string) ([]TravelView, error)
	GetTravel(ctx context.Context, operatorID, travelID string) (TravelView, error)
	UpdateTravel(ctx context.Context, in UpdateTravelInput) (TravelView, error)
	DeleteTravel(ctx context.Context, operatorID, travelID string) error
}

// ---------------------------------------------------------------------------

// ----- DTOs for Booking Service -----

// BookingView is a booking joined with its student and travel summary.
type BookingView struct {
	ID              string   `json:"id"`
	TravelID        string   `json:"travel_id"`
	Status          string   `json:"status"`
	PaymentStatus   string   `json:"payment_status"`
	PaymentMethod   string   `json:"payment_method"`
	SeatNumber      *int     `json:"seat_number,omitempty"`
	PickupAddress   string   `json:"pickup_address"`
	PickupLatitude  *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude *float64 `json:"pickup_longitude,omitempty"`
	BookedAt        string   `json:"booked_at"`
	StudentName     string   `json:"student_name"`
	StudentPhone    string   `json:"student_phone"`
	RouteName       string   `json:"route_name"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DepartureTime   string   `json:"departure_time"`
	Price           float64  `json:"price"`
}

// CreateBookingInput is the validated input for a student booking a seat.
type CreateBookingInput struct {
	StudentID       string
	TravelID        string
	PickupAddress   string
	PaymentMethod   string
	PickupLatitude  *float64
	PickupLongitude *float64
}

// BookingService exposes booking flows for students and operators.
type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (BookingView, error)
	CancelBooking(ctx context.Context, studentID, bookingID string) (BookingView, error)
	ListForStudent(ctx context.Context, studentID string) ([]BookingView, error)
	GetForStudent(ctx context.Context, studentID, bookingID string) (BookingView, error)
	ListForOperator(ctx context.Context, operatorID string) ([]BookingView, error)
	GetForOperator(ctx context.Context, operatorID, bookingID string) (BookingView, error)
	UpdateStatus(ctx context.Context, operatorID, bookingID, status string) (BookingView, error)
}

// ---------------------------------------------------------------------------

// ----- DTOs for Location Service -----

// LocationView is a location reference as exposed to API clients.
type LocationView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	ParentName *string  `json:"parent_name,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	IsPopular  bool     `json:"is_popular"`
}

// LocationService exposes the public autocomplete endpoints.
type LocationService interface {
	List(ctx context.Context, f LocationFilter) ([]LocationView, error)
	Popular(ctx context.Context, limit int) ([]LocationView, error)
	Get(ctx context.Context, id string) (LocationView, error)
}

// ---------------------------------------------------------------------------

// ----- DTOs for Tracking Service -----

// UpdateDriverLocationInput is the validated input for a driver GPS ping
// (HTTP POST or WebSocket location_update frame).
type UpdateDriverLocationInput struct {
	DriverID       string
	TravelID       *string
	Latitude       float64
	Longitude      float64
	SpeedKMH       float64
	HeadingDegrees *float64
	AccuracyMeters *float64
}

// DriverLocationView is a stored GPS fix as exposed to API clients.
type DriverLocationView struct {
	DriverID       string   `json:"driver_id"`
	TravelID       *string  `json:"travel_id,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	SpeedKMH       float64  `json:"speed_kmh"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	UpdatedAt      string   `json:"updated_at"`
}

// UpsertTravelTrackingInput is the validated input for POST /api/tracking/travel.
type UpsertTravelTrackingInput struct {
	TravelID            string
	DriverID            string
	BookingID           *string
	Status              tracking.TravelStatus
	PickupETAMinutes    *int
	JourneyETAMinutes   *int
	TotalDistanceKM     *float64
	RemainingDistanceKM *float64
	CurrentLocationName *string
	Notes               *string
}

// TravelTrackingView is a tracking record joined with its travel summary.
type TravelTrackingView struct {
	ID                  string   `json:"id"`
	TravelID            string   `json:"travel_id"`
	DriverID            string   `json:"driver_id"`
	Status              string   `json:"status"`
	PickupETAMinutes    *int     `json:"pickup_eta_minutes,omitempty"`
	JourneyETAMinutes   *int     `json:"journey_eta_minutes,omitempty"`
	TotalDistanceKM     *float64 `json:"total_distance_km,omitempty"`
	RemainingDistanceKM *float64 `json:"remaining_distance_km,omitempty"`
	CurrentLocationName *string  `json:"current_location_name,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
	PickupStartedAt     *string  `json:"pickup_started_at,omitempty"`
	PickupCompletedAt   *string  `json:"pickup_completed_at,omitempty"`
	JourneyStartedAt    *string  `json:"journey_started_at,omitempty"`
	JourneyCompletedAt  *string  `json:"journey_completed_at,omitempty"`
	RouteName           string   `json:"route_name,omitempty"`
	Origin              string   `json:"origin,omitempty"`
	Destination         string   `json:"destination,omitempty"`
	DriverName          *string  `json:"driver_name,omitempty"`
	UpdatedAt           string   `json:"updated_at"`
}

// QueueEntryView is one ordered pickup stop as exposed to API clients.
type QueueEntryView struct {
	ID                string  `json:"id"`
	TravelID          string  `json:"travel_id"`
	DriverID          string  `json:"driver_id"`
	BookingID         string  `json:"booking_id"`
	CustomerName      string  `json:"customer_name"`
	CustomerAddress   string  `json:"customer_address"`
	CustomerLatitude  float64 `json:"customer_latitude"`
	CustomerLongitude float64 `json:"customer_longitude"`
	DistanceKM        float64 `json:"distance_km"`
	PickupOrder       int     `json:"pickup_order"`
	PickupStatus      string  `json:"pickup_status"`
	ActualPickupTime  *string `json:"actual_pickup_time,omitempty"`
}

// TrackingService exposes driver GPS, trip progress, and the pickup queue.
type TrackingService interface {
	UpdateDriverLocation(ctx context.Context, in UpdateDriverLocationInput) (DriverLocationView, error)
	GetDriverLocation(ctx context.Context, driverID string) (DriverLocationView, error)
	UpsertTravelTracking(ctx context.Context, in UpsertTravelTrackingInput) (TravelTrackingView, error)
	GetTravelTracking(ctx context.Context, travelID string) (TravelTrackingView, error)
	ListActiveTravels(ctx context.Context, operatorID string) ([]TravelTrackingView, error)
	BuildPickupQueue(ctx context.Context, travelID, driverID string) ([]QueueEntryView, error)
	GetPickupQueue(ctx context.Context, travelID string) ([]QueueEntryView, error)
	UpdatePickupStatus(ctx context.Context, entryID, status string) (QueueEntryView, error)
}

// ---------------------------------------------------------------------------

// ----- DTOs for Weather Service -----

// RouteWeatherInput identifies both endpoints of a route weather check.
type RouteWeatherInput struct {
	OriginLat  float64
	OriginLon  float64
	DestLat    float64
	DestLon    float64
	OriginName string
	DestName   string
}

// RouteWeatherResult bundles both endpoint conditions with the alert verdict.
type RouteWeatherResult struct {
	Origin      *weather.Snapshot `json:"origin"`
	Destination *weather.Snapshot `json:"destination"`
	Alert       weather.Alert     `json:"alert"`
}

// TravelWeatherResult is a route weather check resolved from a travel's
// origin/destination location references.
type TravelWeatherResult struct {
	TravelID    string            `json:"travel_id"`
	RouteName   string            `json:"route_name"`
	Origin      *weather.Snapshot `json:"origin"`
	Destination *weather.Snapshot `json:"destination"`
	Alert       weather.Alert     `json:"alert"`
}

// CoordinateWeatherResult is a single-point weather lookup; Cached reports
// whether the snapshot came from the cache.
type CoordinateWeatherResult struct {
	Snapshot *weather.Snapshot
	Cached   bool
}

// WeatherService exposes cached weather lookups and route alerts.
type WeatherService interface {
	ByCoordinate(ctx context.Context, lat, lon float64, locationName string) (CoordinateWeatherResult, error)
	Route(ctx context.Context, in RouteWeatherInput) (RouteWeatherResult, error)
	ForTravel(ctx context.Context, travelID string) (TravelWeatherResult, error)
}
