package handler

import (
	"net/http"
	"strings"

	"travel-po/internal/general/web"
)

type buildPickupQueueRequest struct {
	TravelID string `json:"travel_id"`
	DriverID string `json:"driver_id"`
}

// handleBuildPickupQueue serves POST /api/tracking/pickup-queue. It rebuilds
// the nearest-first pickup order from the driver's current position and
// atomically replaces the stored queue.
func (handler *TrackingHTTPHandler) handleBuildPickupQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req buildPickupQueueRequest
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

	entries, err := handler.svc.BuildPickupQueue(ctx, req.TravelID, req.DriverID)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusCreated, web.Envelope{
		Success: true,
		Message: "Pickup queue built",
		Data:    entries,
		Count:   web.IntPtr(len(entries)),
	})
}

// handleGetPickupQueue serves GET /api/tracking/pickup-queue/{travel_id}.
func (handler *TrackingHTTPHandler) handleGetPickupQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	travelID := r.PathValue("travel_id")
	if travelID == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "travel_id is required", nil)
		return
	}

	entries, err := handler.svc.GetPickupQueue(ctx, travelID)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    entries,
		Count:   web.IntPtr(len(entries)),
	})
}

type updatePickupStatusRequest struct {
	PickupStatus string `json:"pickup_status"`
}

// handleUpdatePickupStatus serves PUT /api/tracking/pickup-queue/{id}/status.
func (handler *TrackingHTTPHandler) handleUpdatePickupStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	entryID := r.PathValue("id")
	if entryID == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "queue entry id is required", nil)
		return
	}

	var req updatePickupStatusRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.UpdatePickupStatus(ctx, entryID, req.PickupStatus)
	if err != nil {
		handler.trackingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Pickup status updated", view)
}
