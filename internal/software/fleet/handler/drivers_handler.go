package handler

import (
	"net/http"
	"time"

	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

type createDriverRequest struct {
	FullName      string  `json:"full_name"`
	LicenseNumber string  `json:"license_number"`
	LicenseType   string  `json:"license_type"`
	Phone         string  `json:"phone"`
	Address       *string `json:"address,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
}

func (handler *FleetHTTPHandler) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req createDriverRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	var dob *time.Time
	if req.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			web.Error(ctx, handler.logger, w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD", err)
			return
		}
		dob = &parsed
	}

	view, err := handler.svc.CreateDriver(ctx, ports.CreateDriverInput{
		OperatorID:    operatorID(r),
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		LicenseType:   req.LicenseType,
		Phone:         req.Phone,
		Address:       req.Address,
		DateOfBirth:   dob,
	})
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Driver created", view)
}

func (handler *FleetHTTPHandler) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	views, err := handler.svc.ListDrivers(ctx, operatorID(r))
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

type updateDriverRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	LicenseType   *string `json:"license_type,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	Status        *string `json:"status,omitempty"`
}

func (handler *FleetHTTPHandler) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req updateDriverRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.UpdateDriver(ctx, ports.UpdateDriverInput{
		OperatorID:    operatorID(r),
		DriverID:      r.PathValue("id"),
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		LicenseType:   req.LicenseType,
		Phone:         req.Phone,
		Address:       req.Address,
		Status:        req.Status,
	})
	if err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Driver updated", view)
}

func (handler *FleetHTTPHandler) handleDeleteDriver(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	if err := handler.svc.DeleteDriver(ctx, operatorID(r), r.PathValue("id")); err != nil {
		handler.fleetError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Driver deleted", nil)
}
