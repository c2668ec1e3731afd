package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/booking"
	"travel-po/internal/domain/tracking"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// BookingRepo persists bookings using pgx and plain SQL.
type BookingRepo struct{}

// NewBookingRepo constructs a new BookingRepo.
func NewBookingRepo() ports.BookingRepository {
	return &BookingRepo{}
}

// Create inserts a new booking row. Callers run this inside the same
// transaction as the seat decrement.
func (repo *BookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (
			travel_id, student_id, status, payment_status, payment_method,
			seat_number, pickup_address, pickup_latitude, pickup_longitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, booked_at
	`,
		b.TravelID, b.StudentID, b.Status.String(), b.PaymentStatus.String(), b.PaymentMethod,
		b.SeatNumber, b.PickupAddress, b.PickupLatitude, b.PickupLongitude,
	).Scan(&b.ID, &b.BookedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByID returns the bare booking with the given id.
func (repo *BookingRepo) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var b booking.Booking
	var status, payStatus string
	err = tx.QueryRow(ctx, `
		SELECT id, travel_id, student_id, status, payment_status, payment_method,
		       seat_number, pickup_address, pickup_latitude, pickup_longitude, booked_at
		FROM bookings
		WHERE id = $1
	`, id).Scan(
		&b.ID, &b.TravelID, &b.StudentID, &status, &payStatus, &b.PaymentMethod,
		&b.SeatNumber, &b.PickupAddress, &b.PickupLatitude, &b.PickupLongitude, &b.BookedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, fmt.Errorf("query booking: %w", err)
	}
	b.Status = booking.Status(status)
	b.PaymentStatus = booking.PaymentStatus(payStatus)
	return &b, nil
}

const bookingRowQuery = `
	SELECT b.id, b.travel_id, b.student_id, b.status, b.payment_status, b.payment_method,
	       b.seat_number, b.pickup_address, b.pickup_latitude, b.pickup_longitude, b.booked_at,
	       s.full_name, s.phone,
	       t.route_name, t.origin, t.destination, t.departure_time, t.price
	FROM bookings b
	JOIN students s ON s.id = b.student_id
	JOIN travels t ON t.id = b.travel_id`

// GetRowForOperator returns the joined booking when it belongs to one of the
// operator's travels.
func (repo *BookingRepo) GetRowForOperator(ctx context.Context, operatorID, id string) (*ports.BookingRow, error) {
	return repo.getRow(ctx, ` WHERE b.id = $1 AND t.operator_id = $2`, id, operatorID)
}

// GetRowForStudent returns the joined booking when the student owns it.
func (repo *BookingRepo) GetRowForStudent(ctx context.Context, studentID, id string) (*ports.BookingRow, error) {
	return repo.getRow(ctx, ` WHERE b.id = $1 AND b.student_id = $2`, id, studentID)
}

func (repo *BookingRepo) getRow(ctx context.Context, where string, args ...any) (*ports.BookingRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row, err := scanBookingRow(tx.QueryRow(ctx, bookingRowQuery+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, fmt.Errorf("query booking row: %w", err)
	}
	return row, nil
}

// ListByOperator returns joined bookings across the operator's travels,
// newest first.
func (repo *BookingRepo) ListByOperator(ctx context.Context, operatorID string) ([]ports.BookingRow, error) {
	return repo.listRows(ctx, ` WHERE t.operator_id = $1 ORDER BY b.booked_at DESC`, operatorID)
}

// ListByStudent returns the student's joined bookings, newest first.
func (repo *BookingRepo) ListByStudent(ctx context.Context, studentID string) ([]ports.BookingRow, error) {
	return repo.listRows(ctx, ` WHERE b.student_id = $1 ORDER BY b.booked_at DESC`, studentID)
}

func (repo *BookingRepo) listRows(ctx context.Context, tail string, args ...any) ([]ports.BookingRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, bookingRowQuery+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query booking rows: %w", err)
	}
	defer rows.Close()

	var out []ports.BookingRow
	for rows.Next() {
		row, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		out = append(out, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// UpdateStatus sets the booking status.
func (repo *BookingRepo) UpdateStatus(ctx context.Context, id string, status booking.Status) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE bookings SET status = $1 WHERE id = $2
	`, status.String(), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// ListConfirmedPickupCandidates returns the travel's confirmed bookings that
// carry a pickup coordinate, in booking order. Rows with NULL coordinates
// never reach the queue builder.
func (repo *BookingRepo) ListConfirmedPickupCandidates(ctx context.Context, travelID string) ([]tracking.PickupCandidate, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT b.id, b.pickup_latitude, b.pickup_longitude, b.pickup_address, s.full_name
		FROM bookings b
		JOIN students s ON s.id = b.student_id
		WHERE b.travel_id = $1
		  AND b.status = 'confirmed'
		  AND b.pickup_latitude IS NOT NULL
		  AND b.pickup_longitude IS NOT NULL
		ORDER BY b.booked_at ASC
	`, travelID)
	if err != nil {
		return nil, fmt.Errorf("query pickup candidates: %w", err)
	}
	defer rows.Close()

	var out []tracking.PickupCandidate
	for rows.Next() {
		var c tracking.PickupCandidate
		if err := rows.Scan(&c.BookingID, &c.Latitude, &c.Longitude, &c.Address, &c.CustomerName); err != nil {
			return nil, fmt.Errorf("scan pickup candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func scanBookingRow(row pgx.Row) (*ports.BookingRow, error) {
	var br ports.BookingRow
	var status, payStatus string
	err := row.Scan(
		&br.ID, &br.TravelID, &br.StudentID, &status, &payStatus, &br.PaymentMethod,
		&br.SeatNumber, &br.PickupAddress, &br.PickupLatitude, &br.PickupLongitude, &br.BookedAt,
		&br.StudentName, &br.StudentPhone,
		&br.RouteName, &br.Origin, &br.Destination, &br.DepartureTime, &br.Price,
	)
	if err != nil {
		return nil, err
	}
	br.Status = booking.Status(status)
	br.PaymentStatus = booking.PaymentStatus(payStatus)
	return &br, nil
}
