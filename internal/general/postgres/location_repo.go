package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/location"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// LocationRepo reads location references using pgx and plain SQL.
type LocationRepo struct{}

// NewLocationRepo constructs a new LocationRepo.
func NewLocationRepo() ports.LocationRepository {
	return &LocationRepo{}
}

const locationColumns = `
	id, name, type, parent_name, latitude, longitude, is_popular, is_active`

// List returns active references matching the filter, popular first then
// alphabetical. An ILIKE search covers name and parent name.
func (repo *LocationRepo) List(ctx context.Context, f ports.LocationFilter) ([]location.Reference, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + locationColumns + ` FROM location_references WHERE is_active = TRUE`
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR parent_name ILIKE $%d)`, len(args), len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type.String())
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if f.PopularOnly {
		query += ` AND is_popular = TRUE`
	}

	query += ` ORDER BY is_popular DESC, name ASC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []location.Reference
	for rows.Next() {
		ref, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, *ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

// GetByID returns the active reference with the given id.
func (repo *LocationRepo) GetByID(ctx context.Context, id string) (*location.Reference, error) {
	return repo.getOne(ctx, `WHERE id = $1 AND is_active = TRUE`, id)
}

// FindByName returns the active reference whose name matches exactly
// (case-insensitive). The weather travel lookup resolves origins and
// destinations through this.
func (repo *LocationRepo) FindByName(ctx context.Context, name string) (*location.Reference, error) {
	return repo.getOne(ctx, `WHERE LOWER(name) = LOWER($1) AND is_active = TRUE`, name)
}

func (repo *LocationRepo) getOne(ctx context.Context, where string, arg any) (*location.Reference, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := scanLocation(tx.QueryRow(ctx, `SELECT `+locationColumns+` FROM location_references `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return ref, nil
}

func scanLocation(row pgx.Row) (*location.Reference, error) {
	var ref location.Reference
	var typ string
	err := row.Scan(
		&ref.ID, &ref.Name, &typ, &ref.ParentName,
		&ref.Latitude, &ref.Longitude, &ref.IsPopular, &ref.IsActive,
	)
	if err != nil {
		return nil, err
	}
	ref.Type = location.Type(typ)
	return &ref, nil
}
