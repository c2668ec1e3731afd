package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// TravelTrackingRepo persists coarse per-travel trip progress.
type TravelTrackingRepo struct{}

// NewTravelTrackingRepo constructs a new TravelTrackingRepo.
func NewTravelTrackingRepo() ports.TravelTrackingRepository {
	return &TravelTrackingRepo{}
}

const trackingColumns = `
	id, travel_id, driver_id, booking_id, status,
	pickup_eta_minutes, journey_eta_minutes, total_distance_km, remaining_distance_km,
	current_location_name, notes,
	pickup_started_at, pickup_completed_at, journey_started_at, journey_completed_at,
	created_at, updated_at`

// Create inserts a new tracking row for a travel.
func (repo *TravelTrackingRepo) Create(ctx context.Context, t *tracking.TravelTracking) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO travel_tracking (
			travel_id, driver_id, booking_id, status,
			pickup_eta_minutes, journey_eta_minutes, total_distance_km, remaining_distance_km,
			current_location_name, notes,
			pickup_started_at, pickup_completed_at, journey_started_at, journey_completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`,
		t.TravelID, t.DriverID, t.BookingID, t.Status.String(),
		t.PickupETAMinutes, t.JourneyETAMinutes, t.TotalDistanceKM, t.RemainingDistanceKM,
		t.CurrentLocationName, t.Notes,
		t.PickupStartedAt, t.PickupCompletedAt, t.JourneyStartedAt, t.JourneyCompletedAt,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert travel tracking: %w", err)
	}
	return nil
}

// Update rewrites the tracking row, including the status timestamps the
// service derived from the status transition.
func (repo *TravelTrackingRepo) Update(ctx context.Context, t *tracking.TravelTracking) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		UPDATE travel_tracking
		SET driver_id = $1, booking_id = $2, status = $3,
		    pickup_eta_minutes = $4, journey_eta_minutes = $5,
		    total_distance_km = $6, remaining_distance_km = $7,
		    current_location_name = $8, notes = $9,
		    pickup_started_at = $10, pickup_completed_at = $11,
		    journey_started_at = $12, journey_completed_at = $13,
		    updated_at = NOW()
		WHERE id = $14
		RETURNING updated_at
	`,
		t.DriverID, t.BookingID, t.Status.String(),
		t.PickupETAMinutes, t.JourneyETAMinutes,
		t.TotalDistanceKM, t.RemainingDistanceKM,
		t.CurrentLocationName, t.Notes,
		t.PickupStartedAt, t.PickupCompletedAt,
		t.JourneyStartedAt, t.JourneyCompletedAt,
		t.ID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracking.ErrTrackingNotFound
		}
		return fmt.Errorf("update travel tracking: %w", err)
	}
	return nil
}

// GetByTravelID returns the tracking row for a travel, or (nil, nil) when
// the travel has no tracking yet. The upsert flow branches on that.
func (repo *TravelTrackingRepo) GetByTravelID(ctx context.Context, travelID string) (*tracking.TravelTracking, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	t, err := scanTracking(tx.QueryRow(ctx, `
		SELECT `+trackingColumns+` FROM travel_tracking WHERE travel_id = $1
	`, travelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query travel tracking: %w", err)
	}
	return t, nil
}

const trackingRowQuery = `
	SELECT tt.id, tt.travel_id, tt.driver_id, tt.booking_id, tt.status,
	       tt.pickup_eta_minutes, tt.journey_eta_minutes, tt.total_distance_km, tt.remaining_distance_km,
	       tt.current_location_name, tt.notes,
	       tt.pickup_started_at, tt.pickup_completed_at, tt.journey_started_at, tt.journey_completed_at,
	       tt.created_at, tt.updated_at,
	       t.route_name, t.origin, t.destination,
	       d.full_name
	FROM travel_tracking tt
	JOIN travels t ON t.id = tt.travel_id
	LEFT JOIN drivers d ON d.id = tt.driver_id`

// GetRowByTravelID returns the tracking row joined with its travel summary.
func (repo *TravelTrackingRepo) GetRowByTravelID(ctx context.Context, travelID string) (*ports.TrackingRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	row, err := scanTrackingRow(tx.QueryRow(ctx, trackingRowQuery+` WHERE tt.travel_id = $1`, travelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracking.ErrTrackingNotFound
		}
		return nil, fmt.Errorf("query tracking row: %w", err)
	}
	return row, nil
}

// ListActiveByOperator returns the operator's non-terminal tracked travels,
// most recently updated first.
func (repo *TravelTrackingRepo) ListActiveByOperator(ctx context.Context, operatorID string) ([]ports.TrackingRow, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, trackingRowQuery+`
		WHERE t.operator_id = $1 AND tt.status NOT IN ('completed', 'cancelled')
		ORDER BY tt.updated_at DESC
	`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("query active tracking rows: %w", err)
	}
	defer rows.Close()

	var out []ports.TrackingRow
	for rows.Next() {
		row, err := scanTrackingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tracking row: %w", err)
		}
		out = append(out, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func scanTracking(row pgx.Row) (*tracking.TravelTracking, error) {
	var t tracking.TravelTracking
	var status string
	err := row.Scan(
		&t.ID, &t.TravelID, &t.DriverID, &t.BookingID, &status,
		&t.PickupETAMinutes, &t.JourneyETAMinutes, &t.TotalDistanceKM, &t.RemainingDistanceKM,
		&t.CurrentLocationName, &t.Notes,
		&t.PickupStartedAt, &t.PickupCompletedAt, &t.JourneyStartedAt, &t.JourneyCompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = tracking.TravelStatus(status)
	return &t, nil
}

func scanTrackingRow(row pgx.Row) (*ports.TrackingRow, error) {
	var tr ports.TrackingRow
	var status string
	err := row.Scan(
		&tr.ID, &tr.TravelID, &tr.DriverID, &tr.BookingID, &status,
		&tr.PickupETAMinutes, &tr.JourneyETAMinutes, &tr.TotalDistanceKM, &tr.RemainingDistanceKM,
		&tr.CurrentLocationName, &tr.Notes,
		&tr.PickupStartedAt, &tr.PickupCompletedAt, &tr.JourneyStartedAt, &tr.JourneyCompletedAt,
		&tr.CreatedAt, &tr.UpdatedAt,
		&tr.RouteName, &tr.Origin, &tr.Destination,
		&tr.DriverName,
	)
	if err != nil {
		return nil, err
	}
	tr.Status = tracking.TravelStatus(status)
	return &tr, nil
}
