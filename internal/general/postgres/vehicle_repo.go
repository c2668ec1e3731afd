package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/vehicle"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// VehicleRepo persists operator vehicles using pgx and plain SQL.
type VehicleRepo struct{}

// NewVehicleRepo constructs a new VehicleRepo.
func NewVehicleRepo() ports.VehicleRepository {
	return &VehicleRepo{}
}

const vehicleColumns = `
	id, operator_id, vehicle_number, plate_number, vehicle_type,
	brand, model, year, capacity, status, is_active, created_at, updated_at`

// Create inserts a new vehicle row for the operator.
func (repo *VehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO vehicles (
			operator_id, vehicle_number, plate_number, vehicle_type,
			brand, model, year, capacity, status, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`,
		v.OperatorID, v.VehicleNumber, v.PlateNumber, v.VehicleType,
		v.Brand, v.Model, v.Year, v.Capacity, v.Status.String(), v.IsActive,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID returns the operator's vehicle with the given id.
func (repo *VehicleRepo) GetByID(ctx context.Context, operatorID, id string) (*vehicle.Vehicle, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	v, err := scanVehicle(tx.QueryRow(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE id = $1 AND operator_id = $2 AND is_active = TRUE
	`, id, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vehicle.ErrNotFound
		}
		return nil, fmt.Errorf("query vehicle: %w", err)
	}
	return v, nil
}

// ListByOperator returns all active vehicles of the operator, newest first.
func (repo *VehicleRepo) ListByOperator(ctx context.Context, operatorID string) ([]vehicle.Vehicle, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE operator_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, operatorID)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var out []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// Update rewrites the mutable vehicle columns.
func (repo *VehicleRepo) Update(ctx context.Context, v *vehicle.Vehicle) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	v.UpdatedAt = time.Now().UTC()
	tag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET vehicle_number = $1, plate_number = $2, vehicle_type = $3,
		    brand = $4, model = $5, year = $6, capacity = $7, status = $8, updated_at = $9
		WHERE id = $10 AND operator_id = $11 AND is_active = TRUE
	`,
		v.VehicleNumber, v.PlateNumber, v.VehicleType,
		v.Brand, v.Model, v.Year, v.Capacity, v.Status.String(), v.UpdatedAt,
		v.ID, v.OperatorID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}

// Delete soft-deletes the vehicle so historical travels keep their join.
func (repo *VehicleRepo) Delete(ctx context.Context, operatorID, id string) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE vehicles
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND operator_id = $2 AND is_active = TRUE
	`, id, operatorID)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	var status string
	err := row.Scan(
		&v.ID, &v.OperatorID, &v.VehicleNumber, &v.PlateNumber, &v.VehicleType,
		&v.Brand, &v.Model, &v.Year, &v.Capacity, &status, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Status = vehicle.Status(status)
	return &v, nil
}
