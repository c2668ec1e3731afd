package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/travel"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// TravelRepo persists scheduled travels using pgx and plain SQL.
type TravelRepo struct{}

// NewTravelRepo constructs a new TravelRepo.
func NewTravelRepo() ports.TravelRepository {
	return &TravelRepo{}
}

const travelColumns = `
	id, operator_id, vehicle_id, driver_id, route_name, origin, destination,
	departure_time, arrival_time, price, total_seats, available_seats,
	status, weather_alert, weather_condition, created_at, updated_at`

// Create inserts a new travel row.
func (repo *TravelRepo) Create(ctx context.Context, t *travel.Travel) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO travels (
			operator_id, vehicle_id, driver_id, route_name, origin, destination,
			departure_time, arrival_time, price, total_seats, available_seats, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`,
		t.OperatorID, t.VehicleID, t.DriverID, t.RouteName, t.Origin, t.Destination,
		t.DepartureTime, t.ArrivalTime, t.Price, t.TotalSeats, t.AvailableSeats, t.Status.String(),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert travel: %w", err)
	}
	return nil
}

// GetByID returns the travel with the given id regardless of owner.
// Booking and tracking flows use this; operator CRUD uses GetByIDForOperator.
func (repo *TravelRepo) GetByID(ctx context.Context, id string) (*travel.Travel, error) {
	return repo.getOne(ctx, `WHERE id = $1`, id)
}

// GetByIDForOperator returns the travel only when the operator owns it.
func (repo *TravelRepo) GetByIDForOperator(ctx context.Context, operatorID, id string) (*travel.Travel, error) {
	return repo.getOne(ctx, `WHERE id = $1 AND operator_id = $2`, id, operatorID)
}

func (repo *TravelRepo) getOne(ctx context.Context, where string, args ...any) (*travel.Travel, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	t, err := scanTravel(tx.QueryRow(ctx, `SELECT `+travelColumns+` FROM travels `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, travel.ErrNotFound
		}
		return nil, fmt.Errorf("query travel: %w", err)
	}
	return t, nil
}

// ListByOperator returns the operator's travels joined with vehicle and
// driver summaries plus the confirmed booking count, soonest departure first.
func (repo *TravelRepo) ListByOperator(ctx context.Context, operatorID string) ([]ports.TravelRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT t.id, t.operator_id, t.vehicle_id, t.driver_id, t.route_name, t.origin, t.destination,
		       t.departure_time, t.arrival_time, t.price, t.total_seats, t.available_seats,
		       t.status, t.weather_alert, t.weather_condition, t.created_at, t.updated_at,
		       v.vehicle_number, v.plate_number, v.vehicle_type,
		       d.full_name,
		       COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS booking_count
		FROM travels t
		JOIN vehicles v ON v.id = t.vehicle_id
		LEFT JOIN drivers d ON d.id = t.driver_id
		LEFT JOIN bookings b ON b.travel_id = t.id
		WHERE t.operator_id = $1
		GROUP BY t.id, v.vehicle_number, v.plate_number, v.vehicle_type, d.full_name
		ORDER BY t.departure_time ASC
	`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("query travels: %w", err)
	}
	defer rows.Close()

	var out []ports.TravelRow
	for rows.Next() {
		var tr ports.TravelRow
		var status string
		err := rows.Scan(
			&tr.ID, &tr.OperatorID, &tr.VehicleID, &tr.DriverID, &tr.RouteName, &tr.Origin, &tr.Destination,
			&tr.DepartureTime, &tr.ArrivalTime, &tr.Price, &tr.TotalSeats, &tr.AvailableSeats,
			&status, &tr.WeatherAlert, &tr.WeatherCondition, &tr.CreatedAt, &tr.UpdatedAt,
			&tr.VehicleNumber, &tr.PlateNumber, &tr.VehicleType,
			&tr.DriverName,
			&tr.BookingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan travel row: %w", err)
		}
		tr.Status = travel.Status(status)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable travel columns.
func (repo *TravelRepo) Update(ctx context.Context, t *travel.Travel) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	tag, err := tx.Exec(ctx, `
		UPDATE travels
		SET vehicle_id = $1, driver_id = $2, route_name = $3, origin = $4, destination = $5,
		    departure_time = $6, arrival_time = $7, price = $8, status = $9, updated_at = $10
		WHERE id = $11 AND operator_id = $12
	`,
		t.VehicleID, t.DriverID, t.RouteName, t.Origin, t.Destination,
		t.DepartureTime, t.ArrivalTime, t.Price, t.Status.String(), t.UpdatedAt,
		t.ID, t.OperatorID,
	)
	if err != nil {
		return fmt.Errorf("update travel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return travel.ErrNotFound
	}
	return nil
}

// Delete removes the travel row.
func (repo *TravelRepo) Delete(ctx context.Context, operatorID, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM travels WHERE id = $1 AND operator_id = $2
	`, id, operatorID)
	if err != nil {
		return fmt.Errorf("delete travel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return travel.ErrNotFound
	}
	return nil
}

// AdjustSeats changes available_seats by delta. The WHERE guard makes a
// concurrent over-book impossible: the row only updates when the resulting
// count stays within [0, total_seats].
func (repo *TravelRepo) AdjustSeats(ctx context.Context, travelID string, delta int) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE travels
		SET available_seats = available_seats + $1, updated_at = NOW()
		WHERE id = $2
		  AND available_seats + $1 >= 0
		  AND available_seats + $1 <= total_seats
	`, delta, travelID)
	if err != nil {
		return fmt.Errorf("adjust seats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if delta < 0 {
			return travel.ErrNoSeats
		}
		return travel.ErrNotFound
	}
	return nil
}

// UpdateWeather persists the latest route alert evaluation on the travel.
func (repo *TravelRepo) UpdateWeather(ctx context.Context, travelID string, hasAlert bool, condition string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE travels
		SET weather_alert = $1, weather_condition = $2, updated_at = NOW()
		WHERE id = $3
	`, hasAlert, condition, travelID)
	if err != nil {
		return fmt.Errorf("update travel weather: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return travel.ErrNotFound
	}
	return nil
}

func scanTravel(row pgx.Row) (*travel.Travel, error) {
	var t travel.Travel
	var status string
	err := row.Scan(
		&t.ID, &t.OperatorID, &t.VehicleID, &t.DriverID, &t.RouteName, &t.Origin, &t.Destination,
		&t.DepartureTime, &t.ArrivalTime, &t.Price, &t.TotalSeats, &t.AvailableSeats,
		&status, &t.WeatherAlert, &t.WeatherCondition, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = travel.Status(status)
	return &t, nil
}
