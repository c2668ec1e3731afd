package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/operator"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// OperatorRepo persists operator accounts using pgx and plain SQL.
type OperatorRepo struct{}

// NewOperatorRepo constructs a new OperatorRepo.
func NewOperatorRepo() ports.OperatorRepository {
	return &OperatorRepo{}
}

const operatorColumns = `
	id, name, email, phone, address, company_code, password_hash,
	logo_url, npwp, business_license, account_number, bank_name, account_holder,
	commission_rate, status, verified_at, rejected_reason, is_active, created_at`

// Create inserts a new operator row. A duplicate email maps to ErrEmailTaken.
func (repo *OperatorRepo) Create(ctx context.Context, op *operator.Operator) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO operators (
			name, email, phone, address, company_code, password_hash,
			commission_rate, status, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
		op.Name,
		op.Email,
		op.Phone,
		op.Address,
		op.CompanyCode,
		op.PasswordHash,
		op.CommissionRate,
		op.Status.String(),
		op.IsActive,
	).Scan(&op.ID, &op.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return operator.ErrEmailTaken
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

// GetByID returns the active operator with the given id.
func (repo *OperatorRepo) GetByID(ctx context.Context, id string) (*operator.Operator, error) {
	return repo.getOne(ctx, `WHERE id = $1 AND is_active = TRUE`, id)
}

// GetByEmail returns the active operator with the given email.
func (repo *OperatorRepo) GetByEmail(ctx context.Context, email string) (*operator.Operator, error) {
	return repo.getOne(ctx, `WHERE email = $1 AND is_active = TRUE`, email)
}

func (repo *OperatorRepo) getOne(ctx context.Context, where string, arg any) (*operator.Operator, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var op operator.Operator
	var status string
	err = tx.QueryRow(ctx, `SELECT `+operatorColumns+` FROM operators `+where, arg).Scan(
		&op.ID, &op.Name, &op.Email, &op.Phone, &op.Address, &op.CompanyCode, &op.PasswordHash,
		&op.LogoURL, &op.NPWP, &op.BusinessLicense, &op.AccountNumber, &op.BankName, &op.AccountHolder,
		&op.CommissionRate, &status, &op.VerifiedAt, &op.RejectedReason, &op.IsActive, &op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, operator.ErrNotFound
		}
		return nil, fmt.Errorf("query operator: %w", err)
	}
	op.Status = operator.Status(status)
	return &op, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
