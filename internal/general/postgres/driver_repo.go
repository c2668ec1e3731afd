package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/driver"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// DriverRepo persists operator drivers using pgx and plain SQL.
type DriverRepo struct{}

// NewDriverRepo constructs a new DriverRepo.
func NewDriverRepo() ports.DriverRepository {
	return &DriverRepo{}
}

const driverColumns = `
	id, operator_id, full_name, license_number, license_type, phone, address,
	date_of_birth, status, current_latitude, current_longitude, last_location_update, created_at`

// Create inserts a new driver row for the operator.
func (repo *DriverRepo) Create(ctx context.Context, d *driver.Driver) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO drivers (
			operator_id, full_name, license_number, license_type, phone, address, date_of_birth, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		d.OperatorID, d.FullName, d.LicenseNumber, d.LicenseType,
		d.Phone, d.Address, d.DateOfBirth, d.Status.String(),
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID returns the operator's driver with the given id.
func (repo *DriverRepo) GetByID(ctx context.Context, operatorID, id string) (*driver.Driver, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	d, err := scanDriver(tx.QueryRow(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE id = $1 AND operator_id = $2
	`, id, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, driver.ErrNotFound
		}
		return nil, fmt.Errorf("query driver: %w", err)
	}
	return d, nil
}

// ListByOperator returns all drivers of the operator, newest first.
func (repo *DriverRepo) ListByOperator(ctx context.Context, operatorID string) ([]driver.Driver, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+driverColumns+`
		FROM drivers
		WHERE operator_id = $1
		ORDER BY created_at DESC
	`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	var out []driver.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable driver columns.
func (repo *DriverRepo) Update(ctx context.Context, d *driver.Driver) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE drivers
		SET full_name = $1, license_number = $2, license_type = $3,
		    phone = $4, address = $5, status = $6
		WHERE id = $7 AND operator_id = $8
	`,
		d.FullName, d.LicenseNumber, d.LicenseType,
		d.Phone, d.Address, d.Status.String(),
		d.ID, d.OperatorID,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrNotFound
	}
	return nil
}

// Delete removes the driver row.
func (repo *DriverRepo) Delete(ctx context.Context, operatorID, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM drivers WHERE id = $1 AND operator_id = $2
	`, id, operatorID)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrNotFound
	}
	return nil
}

// UpdateCurrentPosition mirrors the latest GPS fix onto the driver row so
// fleet listings can show it without joining driver_locations.
func (repo *DriverRepo) UpdateCurrentPosition(ctx context.Context, driverID string, lat, lon float64, at time.Time) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE drivers
		SET current_latitude = $1, current_longitude = $2, last_location_update = $3
		WHERE id = $4
	`, lat, lon, at, driverID)
	if err != nil {
		return fmt.Errorf("update driver position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrNotFound
	}
	return nil
}

func scanDriver(row pgx.Row) (*driver.Driver, error) {
	var d driver.Driver
	var status string
	err := row.Scan(
		&d.ID, &d.OperatorID, &d.FullName, &d.LicenseNumber, &d.LicenseType, &d.Phone, &d.Address,
		&d.DateOfBirth, &status, &d.CurrentLatitude, &d.CurrentLongitude, &d.LastLocationUpdate, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Status = driver.Status(status)
	return &d, nil
}
