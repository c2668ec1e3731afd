package handler

import (
	"net/http"

	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

type createVehicleRequest struct {
	VehicleNumber string  `json:"vehicle_number"`
	PlateNumber   string  `json:"plate_number"`
	VehicleType   string  `json:"vehicle_type"`
	Brand         *string `json:"brand,omitempty"`
	Model         *string `json:"model,omitempty"`
	Year          *int    `json:"year,omitempty"`
	Capacity      *int    `json:"capacity,omitempty"`
}

func (handler *FleetHTTPHandler) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req createVehicleRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.CreateVehicle(ctx, ports.CreateVehicleInput{
		OperatorID:    operatorID(r),
		VehicleNumber: req.VehicleNumber,
		PlateNumber:   req.PlateNumber,
		VehicleType:   req.VehicleType,
		Brand:         req.Brand,
		Model:         req.Model,
		Year:          req.Year,
		Capacity:      req.Capacity,
	})
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Vehicle created", view)
}

func (handler *FleetHTTPHandler) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	views, err := handler.svc.ListVehicles(ctx, operatorID(r))
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *FleetHTTPHandler) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.GetVehicle(ctx, operatorID(r), r.PathValue("id"))
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}

type updateVehicleRequest struct {
	VehicleNumber *string `json:"vehicle_number,omitempty"`
	PlateNumber   *string `json:"plate_number,omitempty"`
	VehicleType   *string `json:"vehicle_type,omitempty"`
	Brand         *string `json:"brand,omitempty"`
	Model         *string `json:"model,omitempty"`
	Year          *int    `json:"year,omitempty"`
	Capacity      *int    `json:"capacity,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (handler *FleetHTTPHandler) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req updateVehicleRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.UpdateVehicle(ctx, ports.UpdateVehicleInput{
		OperatorID:    operatorID(r),
		VehicleID:     r.PathValue("id"),
		VehicleNumber: req.VehicleNumber,
		PlateNumber:   req.PlateNumber,
		VehicleType:   req.VehicleType,
		Brand:         req.Brand,
		Model:         req.Model,
		Year:          req.Year,
		Capacity:      req.Capacity,
		Status:        req.Status,
	})
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Vehicle updated", view)
}

func (handler *FleetHTTPHandler) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	if err := handler.svc.DeleteVehicle(ctx, operatorID(r), r.PathValue("id")); err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Vehicle deleted", nil)
}
