package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"travel-po/internal/domain/travel"
	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

const reqTimeout = 10 * time.Second

// TravelHTTPHandler adapts HTTP requests to the TravelService.
type TravelHTTPHandler struct {
	svc    ports.TravelService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewTravelHTTPHandler wires an HTTP handler around the TravelService.
func NewTravelHTTPHandler(svc ports.TravelService, logger *logger.Logger, auth *jwt.Manager) *TravelHTTPHandler {
	return &TravelHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts travel endpoints on the provided mux.
func (handler *TravelHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	operatorOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator)

	mux.HandleFunc("GET /api/travels", operatorOnly(handler.handleListTravels))
	mux.HandleFunc("POST /api/travels", operatorOnly(handler.handleCreateTravel))
	mux.HandleFunc("GET /api/travels/{id}", operatorOnly(handler.handleGetTravel))
	mux.HandleFunc("PUT /api/travels/{id}", operatorOnly(handler.handleUpdateTravel))
	mux.HandleFunc("DELETE /api/travels/{id}", operatorOnly(handler.handleDeleteTravel))
}

func (handler *TravelHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *TravelHTTPHandler) travelError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, travel.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, travel.ErrEmptyVehicleID),
		errors.Is(err, travel.ErrEmptyRouteName),
		errors.Is(err, travel.ErrEmptyOrigin),
		errors.Is(err, travel.ErrEmptyDestination),
		errors.Is(err, travel.ErrZeroDeparture),
		errors.Is(err, travel.ErrNonPositivePrice),
		errors.Is(err, travel.ErrNonPositiveSeats),
		errors.Is(err, travel.ErrInvalidStatus):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func operatorID(r *http.Request) string {
	if claims := jwt.RequireClaims(r); claims != nil {
		return claims.Subject
	}
	return ""
}

type createTravelRequest struct {
	VehicleID     string   `json:"vehicle_id"`
	DriverID      *string  `json:"driver_id,omitempty"`
	RouteName     string   `json:"route_name"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureTime string   `json:"departure_time"` // RFC 3339
	ArrivalTime   *string  `json:"arrival_time,omitempty"`
	Price         float64  `json:"price"`
	TotalSeats    int      `json:"total_seats"`
}

func (handler *TravelHTTPHandler) handleCreateTravel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req createTravelRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "departure_time must be RFC 3339", err)
		return
	}
	var arrival *time.Time
	if req.ArrivalTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ArrivalTime)
		if err != nil {
			web.Error(ctx, handler.logger, w, http.StatusBadRequest, "arrival_time must be RFC 3339", err)
			return
		}
		arrival = &parsed
	}

	view, err := handler.svc.CreateTravel(ctx, ports.CreateTravelInput{
		OperatorID:    operatorID(r),
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		RouteName:     req.RouteName,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         req.Price,
		TotalSeats:    req.TotalSeats,
	})
	if err != nil {
		handler.travelError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Travel created", view)
}

func (handler *TravelHTTPHandler) handleListTravels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	views, err := handler.svc.ListTravels(ctx, operatorID(r))
	if err != nil {
		handler.travelError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *TravelHTTPHandler) handleGetTravel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.GetTravel(ctx, operatorID(r), r.PathValue("id"))
	if err != nil {
		handler.travelError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}

type updateTravelRequest struct {
	VehicleID     *string  `json:"vehicle_id,omitempty"`
	DriverID      *string  `json:"driver_id,omitempty"`
	RouteName     *string  `json:"route_name,omitempty"`
	Origin        *string  `json:"origin,omitempty"`
	Destination   *string  `json:"destination,omitempty"`
	DepartureTime *string  `json:"departure_time,omitempty"`
	ArrivalTime   *string  `json:"arrival_time,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

func (handler *TravelHTTPHandler) handleUpdateTravel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req updateTravelRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	in := ports.UpdateTravelInput{
		OperatorID:  operatorID(r),
		TravelID:    r.PathValue("id"),
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		RouteName:   req.RouteName,
		Origin:      req.Origin,
		Destination: req.Destination,
		Price:       req.Price,
		Status:      req.Status,
	}
	if req.DepartureTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DepartureTime)
		if err != nil {
			web.Error(ctx, handler.logger, w, http.StatusBadRequest, "departure_time must be RFC 3339", err)
			return
		}
		in.DepartureTime = &parsed
	}
	if req.ArrivalTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.ArrivalTime)
		if err != nil {
			web.Error(ctx, handler.logger, w, http.StatusBadRequest, "arrival_time must be RFC 3339", err)
			return
		}
		in.ArrivalTime = &parsed
	}

	view, err := handler.svc.UpdateTravel(ctx, in)
	if err != nil {
		handler.travelError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Travel updated", view)
}

func (handler *TravelHTTPHandler) handleDeleteTravel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	if err := handler.svc.DeleteTravel(ctx, operatorID(r), r.PathValue("id")); err != nil {
		handler.travelError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Travel deleted", nil)
}
