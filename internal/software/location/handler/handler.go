package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"travel-po/internal/domain/location"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

const reqTimeout = 10 * time.Second

// LocationHTTPHandler serves the public location autocomplete endpoints.
// No auth: the booking form queries these before login.
type LocationHTTPHandler struct {
	svc    ports.LocationService
	logger *logger.Logger
}

// NewLocationHTTPHandler wires an HTTP handler around the LocationService.
func NewLocationHTTPHandler(svc ports.LocationService, logger *logger.Logger) *LocationHTTPHandler {
	return &LocationHTTPHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts location endpoints on the provided mux.
func (handler *LocationHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/locations", handler.handleListLocations)
	mux.HandleFunc("GET /api/locations/popular", handler.handlePopularLocations)
	mux.HandleFunc("GET /api/locations/{id}", handler.handleGetLocation)
}

func (handler *LocationHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *LocationHTTPHandler) locationError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, location.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func (handler *LocationHTTPHandler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	q := r.URL.Query()
	filter := ports.LocationFilter{Search: q.Get("search")}
	if t, ok := location.ParseType(q.Get("type")); ok {
		filter.Type = t
	}
	if q.Get("popular") == "true" {
		filter.PopularOnly = true
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	views, err := handler.svc.List(ctx, filter)
	if err != nil {
		handler.locationError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *LocationHTTPHandler) handlePopularLocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	views, err := handler.svc.Popular(ctx, limit)
	if err != nil {
		handler.locationError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *LocationHTTPHandler) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.Get(ctx, r.PathValue("id"))
	if err != nil {
		handler.locationError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}
