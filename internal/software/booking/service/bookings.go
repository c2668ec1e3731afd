package service

import (
	"context"
	"time"

	"travel-po/internal/domain/booking"
	"travel-po/internal/domain/travel"
	"travel-po/internal/general/contracts"
	"travel-po/internal/ports"
)

// CreateBooking reserves one seat on the travel for the student. The seat
// decrement and the booking insert commit together; an oversubscribed
// travel fails with travel.ErrNoSeats before anything is written.
func (service *bookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (ports.BookingView, error) {
	b, err := booking.New(in.TravelID, in.StudentID, in.PickupAddress, in.PaymentMethod,
		in.PickupLatitude, in.PickupLongitude)
	if err != nil {
		return ports.BookingView{}, err
	}

	var row *ports.BookingRow

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		t, err := service.travelRepo.GetByID(txCtx, in.TravelID)
		if err != nil {
			return err
		}
		if t.Status == travel.StatusCancelled {
			return travel.ErrCancelled
		}

		if err := service.travelRepo.AdjustSeats(txCtx, in.TravelID, -1); err != nil {
			return err
		}
		if err := service.bookingRepo.Create(txCtx, b); err != nil {
			return err
		}

		row, err = service.bookingRepo.GetRowForStudent(txCtx, in.StudentID, b.ID)
		return err
	})
	if err != nil {
		return ports.BookingView{}, err
	}

	service.logger.Info(service.logger.WithTravelID(ctx, b.TravelID), "booking_created", "Booking created",
		map[string]any{"booking_id": b.ID, "student_id": in.StudentID})

	service.publishEvent(ctx, contracts.RouteBookingCreated, contracts.BookingEvent{
		BookingID: b.ID,
		TravelID:  b.TravelID,
		StudentID: b.StudentID,
		Status:    b.Status.String(),
	})

	return bookingView(row), nil
}

// CancelBooking cancels the student's booking and releases its seat in the
// same transaction. Terminal bookings are rejected before any write.
func (service *bookingService) CancelBooking(ctx context.Context, studentID, bookingID string) (ports.BookingView, error) {
	var row *ports.BookingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = service.bookingRepo.GetRowForStudent(txCtx, studentID, bookingID)
		if err != nil {
			return err
		}

		switch row.Status {
		case booking.StatusCancelled:
			return booking.ErrAlreadyCancelled
		case booking.StatusCompleted:
			return booking.ErrAlreadyCompleted
		}

		if err := service.bookingRepo.UpdateStatus(txCtx, bookingID, booking.StatusCancelled); err != nil {
			return err
		}
		return service.travelRepo.AdjustSeats(txCtx, row.TravelID, +1)
	})
	if err != nil {
		return ports.BookingView{}, err
	}
	row.Status = booking.StatusCancelled

	service.logger.Info(service.logger.WithTravelID(ctx, row.TravelID), "booking_cancelled", "Booking cancelled",
		map[string]any{"booking_id": bookingID, "student_id": studentID})

	service.publishEvent(ctx, contracts.RouteBookingCancelled, contracts.BookingEvent{
		BookingID: bookingID,
		TravelID:  row.TravelID,
		StudentID: studentID,
		Status:    booking.StatusCancelled.String(),
	})

	return bookingView(row), nil
}

// ListForStudent returns the student's bookings, newest first.
func (service *bookingService) ListForStudent(ctx context.Context, studentID string) ([]ports.BookingView, error) {
	var rows []ports.BookingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = service.bookingRepo.ListByStudent(txCtx, studentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return bookingViews(rows), nil
}

// GetForStudent returns one of the student's bookings.
func (service *bookingService) GetForStudent(ctx context.Context, studentID, bookingID string) (ports.BookingView, error) {
	var row *ports.BookingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = service.bookingRepo.GetRowForStudent(txCtx, studentID, bookingID)
		return err
	})
	if err != nil {
		return ports.BookingView{}, err
	}

	return bookingView(row), nil
}

// ListForOperator returns the bookings on the operator's travels.
func (service *bookingService) ListForOperator(ctx context.Context, operatorID string) ([]ports.BookingView, error) {
	var rows []ports.BookingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = service.bookingRepo.ListByOperator(txCtx, operatorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return bookingViews(rows), nil
}

// GetForOperator returns one booking on the operator's travels.
func (service *bookingService) GetForOperator(ctx context.Context, operatorID, bookingID string) (ports.BookingView, error) {
	var row *ports.BookingRow

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = service.bookingRepo.GetRowForOperator(txCtx, operatorID, bookingID)
		return err
	})
	if err != nil {
		return ports.BookingView{}, err
	}

	return bookingView(row), nil
}

// UpdateStatus applies an operator status change, enforcing the booking
// lifecycle. A cancellation releases the seat; completion does not touch
// seat counts.
func (service *bookingService) UpdateStatus(ctx context.Context, operatorID, bookingID, status string) (ports.BookingView, error) {
	next, err := booking.ParseStatus(status)
	if err != nil {
		return ports.BookingView{}, err
	}

	var row *ports.BookingRow

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		row, err = service.bookingRepo.GetRowForOperator(txCtx, operatorID, bookingID)
		if err != nil {
			return err
		}

		if !row.Status.CanTransitionTo(next) {
			if row.Status == booking.StatusCancelled {
				return booking.ErrAlreadyCancelled
			}
			return booking.ErrAlreadyCompleted
		}

		if err := service.bookingRepo.UpdateStatus(txCtx, bookingID, next); err != nil {
			return err
		}
		if next == booking.StatusCancelled {
			return service.travelRepo.AdjustSeats(txCtx, row.TravelID, +1)
		}
		return nil
	})
	if err != nil {
		return ports.BookingView{}, err
	}
	row.Status = next

	service.publishEvent(ctx, contracts.RouteBookingStatusChanged, contracts.BookingEvent{
		BookingID: bookingID,
		TravelID:  row.TravelID,
		StudentID: row.StudentID,
		Status:    next.String(),
	})

	return bookingView(row), nil
}

func bookingViews(rows []ports.BookingRow) []ports.BookingView {
	out := make([]ports.BookingView, 0, len(rows))
	for i := range rows {
		out = append(out, bookingView(&rows[i]))
	}
	return out
}

func bookingView(row *ports.BookingRow) ports.BookingView {
	return ports.BookingView{
		ID:              row.ID,
		TravelID:        row.TravelID,
		Status:          row.Status.String(),
		PaymentStatus:   row.PaymentStatus.String(),
		PaymentMethod:   row.PaymentMethod,
		SeatNumber:      row.SeatNumber,
		PickupAddress:   row.PickupAddress,
		PickupLatitude:  row.PickupLatitude,
		PickupLongitude: row.PickupLongitude,
		BookedAt:        row.BookedAt.UTC().Format(time.RFC3339),
		StudentName:     row.StudentName,
		StudentPhone:    row.StudentPhone,
		RouteName:       row.RouteName,
		Origin:          row.Origin,
		Destination:     row.Destination,
		DepartureTime:   row.DepartureTime.UTC().Format(time.RFC3339),
		Price:           row.Price,
	}
}
