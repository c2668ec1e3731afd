package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"travel-po/internal/domain/driver"
	"travel-po/internal/domain/tracking"
	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/general/websocket"
	"travel-po/internal/ports"
)

// reqTimeout bounds each tracking request.
const reqTimeout = 10 * time.Second

// TrackingHTTPHandler adapts HTTP requests to the TrackingService.
type TrackingHTTPHandler struct {
	svc    ports.TrackingService
	logger *logger.Logger
	auth   *jwt.Manager
	feed   *websocket.DriverFeed
}

// NewTrackingHTTPHandler wires an HTTP handler around the TrackingService.
func NewTrackingHTTPHandler(svc ports.TrackingService, logger *logger.Logger, auth *jwt.Manager, feed *websocket.DriverFeed) *TrackingHTTPHandler {
	return &TrackingHTTPHandler{svc: svc, logger: logger, auth: auth, feed: feed}
}

// RegisterRoutes mounts tracking endpoints on the provided mux.
func (handler *TrackingHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	operatorOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator)
	operatorOrDriver := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator, user.RoleDriver)

	mux.HandleFunc("POST /api/tracking/driver-location", operatorOrDriver(handler.handleUpdateDriverLocation))
	mux.HandleFunc("GET /api/tracking/driver-location/{driver_id}", operatorOrDriver(handler.handleGetDriverLocation))
	mux.HandleFunc("POST /api/tracking/travel", operatorOrDriver(handler.handleUpsertTravelTracking))
	mux.HandleFunc("GET /api/tracking/travel/{travel_id}", operatorOrDriver(handler.handleGetTravelTracking))
	mux.HandleFunc("GET /api/tracking/active-travels", operatorOnly(handler.handleListActiveTravels))
	mux.HandleFunc("POST /api/tracking/pickup-queue", operatorOrDriver(handler.handleBuildPickupQueue))
	mux.HandleFunc("GET /api/tracking/pickup-queue/{travel_id}", operatorOrDriver(handler.handleGetPickupQueue))
	mux.HandleFunc("PUT /api/tracking/pickup-queue/{id}/status", operatorOrDriver(handler.handleUpdatePickupStatus))

	// the WebSocket feed authenticates its own first frame
	mux.HandleFunc("GET /ws/driver/{driver_id}", handler.feed.ConnectDriver)
}

func (handler *TrackingHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

// trackingError maps tracking domain errors to HTTP statuses.
func (handler *TrackingHTTPHandler) trackingError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracking.ErrDriverLocationUnavailable):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest,
			"Driver location unavailable. Ask the driver to enable location reporting.", err)
	case errors.Is(err, tracking.ErrInvalidPickupStatus):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest,
			"pickup_status must be one of: pending, in_progress, picked_up, skipped", err)
	case errors.Is(err, tracking.ErrInvalidTravelStatus):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest,
			"status must be one of: waiting, picking_up, on_route, completed, cancelled", err)
	case errors.Is(err, tracking.ErrEntryNotFound),
		errors.Is(err, tracking.ErrLocationNotFound),
		errors.Is(err, tracking.ErrTrackingNotFound),
		errors.Is(err, driver.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		web.Error(ctx, handler.logger, w, http.StatusGatewayTimeout, "operation timed out", err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}
