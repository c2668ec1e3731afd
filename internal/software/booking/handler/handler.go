package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"travel-po/internal/domain/booking"
	"travel-po/internal/domain/travel"
	"travel-po/internal/domain/user"
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
)

const reqTimeout = 10 * time.Second

// BookingHTTPHandler adapts HTTP requests to the BookingService. Student
// routes live under /api/student/bookings, operator routes under
// /api/bookings.
type BookingHTTPHandler struct {
	svc    ports.BookingService
	logger *logger.Logger
	auth   *jwt.Manager
}

// NewBookingHTTPHandler wires an HTTP handler around the BookingService.
func NewBookingHTTPHandler(svc ports.BookingService, logger *logger.Logger, auth *jwt.Manager) *BookingHTTPHandler {
	return &BookingHTTPHandler{svc: svc, logger: logger, auth: auth}
}

// RegisterRoutes mounts booking endpoints on the provided mux.
func (handler *BookingHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	studentOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleStudent)
	operatorOnly := jwt.AuthMiddlewareFunc(handler.auth, user.RoleOperator)

	mux.HandleFunc("POST /api/student/bookings", studentOnly(handler.handleCreateBooking))
	mux.HandleFunc("GET /api/student/bookings", studentOnly(handler.handleListStudentBookings))
	mux.HandleFunc("GET /api/student/bookings/{id}", studentOnly(handler.handleGetStudentBooking))
	mux.HandleFunc("PUT /api/student/bookings/{id}/cancel", studentOnly(handler.handleCancelBooking))

	mux.HandleFunc("GET /api/bookings", operatorOnly(handler.handleListOperatorBookings))
	mux.HandleFunc("GET /api/bookings/{id}", operatorOnly(handler.handleGetOperatorBooking))
	mux.HandleFunc("PUT /api/bookings/{id}/status", operatorOnly(handler.handleUpdateBookingStatus))
}

func (handler *BookingHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *BookingHTTPHandler) bookingError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, travel.ErrNotFound):
		web.Error(ctx, handler.logger, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, travel.ErrNoSeats),
		errors.Is(err, travel.ErrCancelled),
		errors.Is(err, booking.ErrAlreadyCancelled),
		errors.Is(err, booking.ErrAlreadyCompleted),
		errors.Is(err, booking.ErrEmptyTravelID),
		errors.Is(err, booking.ErrEmptyPickupAddress),
		errors.Is(err, booking.ErrInvalidLatitude),
		errors.Is(err, booking.ErrInvalidLongitude):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, booking.ErrInvalidStatus):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest,
			"status must be one of: confirmed, cancelled, completed", err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}

// subjectID extracts the caller's id (student or operator) from the JWT
// claims.
func subjectID(r *http.Request) string {
	if claims := jwt.RequireClaims(r); claims != nil {
		return claims.Subject
	}
	return ""
}

type createBookingRequest struct {
	TravelID        string   `json:"travel_id"`
	PickupAddress   string   `json:"pickup_address"`
	PaymentMethod   string   `json:"payment_method,omitempty"`
	PickupLatitude  *float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude *float64 `json:"pickup_longitude,omitempty"`
}

func (handler *BookingHTTPHandler) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req createBookingRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.CreateBooking(ctx, ports.CreateBookingInput{
		StudentID:       subjectID(r),
		TravelID:        req.TravelID,
		PickupAddress:   req.PickupAddress,
		PaymentMethod:   req.PaymentMethod,
		PickupLatitude:  req.PickupLatitude,
		PickupLongitude: req.PickupLongitude,
	})
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Booking created", view)
}

func (handler *BookingHTTPHandler) handleListStudentBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	views, err := handler.svc.ListForStudent(ctx, subjectID(r))
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *BookingHTTPHandler) handleGetStudentBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.GetForStudent(ctx, subjectID(r), r.PathValue("id"))
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}

func (handler *BookingHTTPHandler) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.CancelBooking(ctx, subjectID(r), r.PathValue("id"))
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Booking cancelled", view)
}

func (handler *BookingHTTPHandler) handleListOperatorBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	views, err := handler.svc.ListForOperator(ctx, subjectID(r))
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.JSON(ctx, handler.logger, w, http.StatusOK, web.Envelope{
		Success: true,
		Data:    views,
		Count:   web.IntPtr(len(views)),
	})
}

func (handler *BookingHTTPHandler) handleGetOperatorBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	view, err := handler.svc.GetForOperator(ctx, subjectID(r), r.PathValue("id"))
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.Data(ctx, handler.logger, w, http.StatusOK, view)
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (handler *BookingHTTPHandler) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req updateBookingStatusRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	view, err := handler.svc.UpdateStatus(ctx, subjectID(r), r.PathValue("id"), req.Status)
	if err != nil {
		handler.bookingError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Booking status updated", view)
}
