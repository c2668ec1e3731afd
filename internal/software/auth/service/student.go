package service

import (
	"context"
	"errors"
	"fmt"

	"travel-po/internal/domain/student"
	"travel-po/internal/domain/user"
	"travel-po/internal/ports"

	"golang.org/x/crypto/bcrypt"
)

// RegisterStudent creates a student account and returns a signed token with
// the profile.
func (service *authService) RegisterStudent(ctx context.Context, in ports.RegisterStudentInput) (ports.StudentAuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return ports.StudentAuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	st, err := student.New(in.FullName, in.Email, in.Phone, string(hash), in.NIM, in.University)
	if err != nil {
		return ports.StudentAuthResult{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.studentRepo.Create(txCtx, st)
	})
	if err != nil {
		return ports.StudentAuthResult{}, err
	}

	service.logger.Info(ctx, "student_registered", "Student account created",
		map[string]any{"student_id": st.ID})

	return service.studentResult(st)
}

// LoginStudent verifies credentials and returns a fresh token.
func (service *authService) LoginStudent(ctx context.Context, email, password string) (ports.StudentAuthResult, error) {
	var st *student.Student

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		st, err = service.studentRepo.GetByEmail(txCtx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return ports.StudentAuthResult{}, ErrInvalidCredentials
		}
		return ports.StudentAuthResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)) != nil {
		return ports.StudentAuthResult{}, ErrInvalidCredentials
	}

	service.logger.Info(ctx, "student_logged_in", "Student logged in",
		map[string]any{"student_id": st.ID})

	return service.studentResult(st)
}

func (service *authService) studentResult(st *student.Student) (ports.StudentAuthResult, error) {
	token, _, err := service.jwtMgr.IssueUserToken(st.ID, user.RoleStudent, "")
	if err != nil {
		return ports.StudentAuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return ports.StudentAuthResult{
		Token: token,
		Student: ports.StudentProfile{
			ID:         st.ID,
			FullName:   st.FullName,
			Email:      st.Email,
			Phone:      st.Phone,
			NIM:        st.NIM,
			University: st.University,
		},
	}, nil
}
