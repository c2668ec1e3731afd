package handler

import (
	"net/http"
	"strings"

	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

type updateDriverLocationRequest struct {
	DriverID       string   `json:"driver_id"`
	TravelID       *string  `json:"travel_id,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	SpeedKMH       float64  `json:"speed_kmh"`
	HeadingDegrees *float64 `json:"heading_degrees,omitempty"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
}

// handleUpdateDriverLocation serves POST /api/tracking/driver-location.
func (handler *TrackingHTTPHandler) handleUpdateDriverLocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req updateDriverLocationRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if strings.TrimSpace(req.DriverID) == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "driver_id is required", nil)
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "latitude must be between -90 and 90", nil)
		return
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "longitude must be between -180 and 180", nil)
		return
	}

	view, err := handler.svc.UpdateDriverLocation(ctx, ports.UpdateDriverLocationInput{
		DriverID:       strings.TrimSpace(req.DriverID),
		TravelID:       req.TravelID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SpeedKMH:       req.SpeedKMH,
		HeadingDegrees: req.HeadingDegrees,
		AccuracyMeters: req.AccuracyMeters,
	})
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Location updated", view)
}

// handleGetDriverLocation serves GET /api/tracking/driver-location/{driver_id}.
func (handler *TrackingHTTPHandler) handleGetDriverLocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	driverID := r.PathValue("driver_id")
	if driverID == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "driver_id is required", nil)
		return
	}

	view, err := handler.svc.GetDriverLocation(ctx, driverID)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}
