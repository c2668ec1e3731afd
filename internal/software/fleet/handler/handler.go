package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"travel-po/internal/domain/driver"
	"travel-po/internal/domain/user"
	"travel-po/internal/domain/vehicle"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

const reqTimeout = 10 * time.Second

// FleetHTTPHandler adapts HTTP requests to the FleetService.
type FleetHTTPHandler struct {
	svc    ports.FleetService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewFleetHTTPHandler wires an HTTP handler around the FleetService.
func NewFleetHTTPHandler(svc ports.FleetService, logger *logger.Logger, auth *jwt.Manager) *FleetHTTPHandler {
	return &FleetHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts fleet endpoints on the provided mux. Everything is
// operator-only.
func (handler *FleetHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	operatorOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator)

	mux.HandleFunc("GET /api/vehicles", operatorOnly(handler.handleListVehicles))
	mux.HandleFunc("POST /api/vehicles", operatorOnly(handler.handleCreateVehicle))
	mux.HandleFunc("GET /api/vehicles/{id}", operatorOnly(handler.handleGetVehicle))
	mux.HandleFunc("PUT /api/vehicles/{id}", operatorOnly(handler.handleUpdateVehicle))
	mux.HandleFunc("DELETE /api/vehicles/{id}", operatorOnly(handler.handleDeleteVehicle))

	mux.HandleFunc("GET /api/drivers", operatorOnly(handler.handleListDrivers))
	mux.HandleFunc("POST /api/drivers", operatorOnly(handler.handleCreateDriver))
	mux.HandleFunc("PUT /api/drivers/{id}", operatorOnly(handler.handleUpdateDriver))
	mux.HandleFunc("DELETE /api/drivers/{id}", operatorOnly(handler.handleDeleteDriver))
}

func (handler *FleetHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *FleetHTTPHandler) fleetError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vehicle.ErrNotFound), errors.Is(err, driver.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, vehicle.ErrEmptyVehicleNumber),
		errors.Is(err, vehicle.ErrEmptyPlateNumber),
		errors.Is(err, vehicle.ErrEmptyVehicleType),
		errors.Is(err, driver.ErrEmptyFullName),
		errors.Is(err, driver.ErrEmptyLicenseNumber),
		errors.Is(err, driver.ErrEmptyPhone):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}

// operatorID extracts the caller's operator id from the JWT claims.
func operatorID(r *http.Request) string {
	if claims := jwt.RequireClaims(r); claims != nil {
		return claims.Subject
	}
	return ""
}
