package handler

import (
	"errors"
	"net/http"
	"strings"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

type upsertTravelTrackingRequest struct {
	TravelID            string   `json:"travel_id"`
	DriverID            string   `json:"driver_id"`
	BookingID           *string  `json:"booking_id,omitempty"`
	Status              string   `json:"status"`
	PickupETAMinutes    *int     `json:"pickup_eta_minutes,omitempty"`
	JourneyETAMinutes   *int     `json:"journey_eta_minutes,omitempty"`
	TotalDistanceKM     *float64 `json:"total_distance_km,omitempty"`
	RemainingDistanceKM *float64 `json:"remaining_distance_km,omitempty"`
	CurrentLocationName *string  `json:"current_location_name,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

// handleUpsertTravelTracking serves POST /api/tracking/travel.
func (handler *TrackingHTTPHandler) handleUpsertTravelTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req upsertTravelTrackingRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	req.TravelID = strings.TrimSpace(req.TravelID)
	req.DriverID = strings.TrimSpace(req.DriverID)
	if req.TravelID == "" || req.DriverID == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "travel_id and driver_id are required", nil)
		return
	}

	status, err := tracking.ParseTravelStatus(req.Status)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	view, err := handler.svc.UpsertTravelTracking(ctx, ports.UpsertTravelTrackingInput{
		TravelID:            req.TravelID,
		DriverID:            req.DriverID,
		BookingID:           req.BookingID,
		Status:              status,
		PickupETAMinutes:    req.PickupETAMinutes,
		JourneyETAMinutes:   req.JourneyETAMinutes,
		TotalDistanceKM:     req.TotalDistanceKM,
		RemainingDistanceKM: req.RemainingDistanceKM,
		CurrentLocationName: req.CurrentLocationName,
		Notes:               req.Notes,
	})
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Travel tracking updated", view)
}

// handleGetTravelTracking serves GET /api/tracking/travel/{travel_id}.
func (handler *TrackingHTTPHandler) handleGetTravelTracking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	travelID := r.PathValue("travel_id")
	if travelID == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "travel_id is required", nil)
		return
	}

	view, err := handler.svc.GetTravelTracking(ctx, travelID)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}

// handleListActiveTravels serves GET /api/tracking/active-travels.
func (handler *TrackingHTTPHandler) handleListActiveTravels(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	claims := jwt.RequireClaims(r)
	if claims == nil {
		web.Error(ctx, handler.logger, w, http.StatusUnauthorized, "missing auth claims", errors.New("no claims"))
		return
	}

	views, err := handler.svc.ListActiveTravels(ctx, claims.Subject)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}
