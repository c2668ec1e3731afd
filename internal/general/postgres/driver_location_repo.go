package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// DriverLocationRepo persists the single live GPS row per driver.
type DriverLocationRepo struct{}

// NewDriverLocationRepo constructs a new DriverLocationRepo.
func NewDriverLocationRepo() ports.DriverLocationRepository {
	return &DriverLocationRepo{}
}

// Upsert stores pos as the driver's current position. One row per driver;
// every ping overwrites the previous fix.
func (repo *DriverLocationRepo) Upsert(ctx context.Context, pos *tracking.DriverPosition) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO driver_locations (
			driver_id, travel_id, latitude, longitude, speed_kmh, heading_degrees, accuracy_meters, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (driver_id) DO UPDATE
		SET travel_id = EXCLUDED.travel_id,
		    latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    speed_kmh = EXCLUDED.speed_kmh,
		    heading_degrees = EXCLUDED.heading_degrees,
		    accuracy_meters = EXCLUDED.accuracy_meters,
		    is_active = TRUE,
		    updated_at = NOW()
		RETURNING updated_at
	`,
		pos.DriverID, pos.TravelID, pos.Latitude, pos.Longitude,
		pos.SpeedKMH, pos.HeadingDegrees, pos.AccuracyMeters,
	).Scan(&pos.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert driver location: %w", err)
	}
	return nil
}

// Current returns the driver's latest active position, or (nil, nil) when
// the driver has never reported one. Callers decide whether absence is an
// error; the queue builder turns it into ErrDriverLocationUnavailable.
func (repo *DriverLocationRepo) Current(ctx context.Context, driverID string) (*tracking.DriverPosition, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var pos tracking.DriverPosition
	err = tx.QueryRow(ctx, `
		SELECT driver_id, travel_id, latitude, longitude, speed_kmh, heading_degrees, accuracy_meters, updated_at
		FROM driver_locations
		WHERE driver_id = $1 AND is_active = TRUE
	`, driverID).Scan(
		&pos.DriverID, &pos.TravelID, &pos.Latitude, &pos.Longitude,
		&pos.SpeedKMH, &pos.HeadingDegrees, &pos.AccuracyMeters, &pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query driver location: %w", err)
	}
	return &pos, nil
}
