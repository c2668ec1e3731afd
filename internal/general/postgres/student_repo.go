package postgres

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/student"
	"travel-po/internal/ports"

	"github.com/jackc/pgx/v5"
)

// StudentRepo persists student accounts using pgx and plain SQL.
type StudentRepo struct{}

// NewStudentRepo constructs a new StudentRepo.
func NewStudentRepo() ports.StudentRepository {
	return &StudentRepo{}
}

// Create inserts a new student row. A duplicate email maps to ErrEmailTaken.
func (repo *StudentRepo) Create(ctx context.Context, st *student.Student) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO students (full_name, email, phone, password_hash, nim, university, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		st.FullName, st.Email, st.Phone, st.PasswordHash, st.NIM, st.University, st.IsActive,
	).Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return student.ErrEmailTaken
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// GetByID returns the active student with the given id.
func (repo *StudentRepo) GetByID(ctx context.Context, id string) (*student.Student, error) {
	return repo.getOne(ctx, `WHERE id = $1 AND is_active = TRUE`, id)
}

// GetByEmail returns the active student with the given email.
func (repo *StudentRepo) GetByEmail(ctx context.Context, email string) (*student.Student, error) {
	return repo.getOne(ctx, `WHERE email = $1 AND is_active = TRUE`, email)
}

func (repo *StudentRepo) getOne(ctx context.Context, where string, arg any) (*student.Student, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var st student.Student
	err = tx.QueryRow(ctx, `
		SELECT id, full_name, email, phone, password_hash, nim, university, is_active, created_at
		FROM students `+where, arg,
	).Scan(
		&st.ID, &st.FullName, &st.Email, &st.Phone, &st.PasswordHash,
		&st.NIM, &st.University, &st.IsActive, &st.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, student.ErrNotFound
		}
		return nil, fmt.Errorf("query student: %w", err)
	}
	return &st, nil
}
