package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/tracking"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// PickupQueueRepo persists the ordered pickup queue per (travel, driver).
type PickupQueueRepo struct{}

// NewPickupQueueRepo constructs a new PickupQueueRepo.
func NewPickupQueueRepo() ports.PickupQueueRepository {
	return &PickupQueueRepo{}
}

const queueColumns = `
	id, travel_id, driver_id, booking_id, customer_latitude, customer_longitude,
	customer_address, customer_name, distance_km, pickup_order, pickup_status, actual_pickup_time`

// Replace swaps the stored queue for the (travel, driver) pair: delete every
// existing row, then insert entries in order. Runs inside the caller's
// transaction, so a failed insert rolls the delete back and readers never
// observe a half-written queue. An empty entries slice still deletes.
func (repo *PickupQueueRepo) Replace(ctx context.Context, travelID, driverID string, entries []tracking.QueueEntry) ([]tracking.QueueEntry, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM pickup_queue WHERE travel_id = $1 AND driver_id = $2
	`, travelID, driverID); err != nil {
		return nil, fmt.Errorf("clear pickup queue: %w", err)
	}

	out := make([]tracking.QueueEntry, 0, len(entries))
	for _, e := range entries {
		err := tx.QueryRow(ctx, `
			INSERT INTO pickup_queue (
				travel_id, driver_id, booking_id, customer_latitude, customer_longitude,
				customer_address, customer_name, distance_km, pickup_order, pickup_status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`,
			e.TravelID, e.DriverID, e.BookingID, e.CustomerLatitude, e.CustomerLongitude,
			e.CustomerAddress, e.CustomerName, e.DistanceKM, e.PickupOrder, e.PickupStatus.String(),
		).Scan(&e.ID)
		if err != nil {
			return nil, fmt.Errorf("insert pickup queue entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ListByTravel returns the stored queue ordered by pickup_order.
func (repo *PickupQueueRepo) ListByTravel(ctx context.Context, travelID string) ([]tracking.QueueEntry, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+queueColumns+`
		FROM pickup_queue
		WHERE travel_id = $1
		ORDER BY pickup_order ASC
	`, travelID)
	if err != nil {
		return nil, fmt.Errorf("query pickup queue: %w", err)
	}
	defer rows.Close()

	var out []tracking.QueueEntry
	for rows.Next() {
		e, err := scanQueueEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pickup queue entry: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// UpdateEntryStatus sets the entry's pickup status. actual_pickup_time is
// written only on picked_up and never cleared by a later status change.
func (repo *PickupQueueRepo) UpdateEntryStatus(ctx context.Context, entryID string, status tracking.PickupStatus, pickedUpAt time.Time) (*tracking.QueueEntry, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	e, err := scanQueueEntry(tx.QueryRow(ctx, `
		UPDATE pickup_queue
		SET pickup_status = $1,
		    actual_pickup_time = CASE WHEN $1 = 'picked_up' THEN $2 ELSE actual_pickup_time END
		WHERE id = $3
		RETURNING `+queueColumns+`
	`, status.String(), pickedUpAt, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracking.ErrEntryNotFound
		}
		return nil, fmt.Errorf("update pickup queue entry: %w", err)
	}
	return e, nil
}

func scanQueueEntry(row pgx.Row) (*tracking.QueueEntry, error) {
	var e tracking.QueueEntry
	var status string
	err := row.Scan(
		&e.ID, &e.TravelID, &e.DriverID, &e.BookingID, &e.CustomerLatitude, &e.CustomerLongitude,
		&e.CustomerAddress, &e.CustomerName, &e.DistanceKM, &e.PickupOrder, &status, &e.ActualPickupTime,
	)
	if err != nil {
		return nil, err
	}
	e.PickupStatus = tracking.PickupStatus(status)
	return &e, nil
}
