package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-po/internal/domain/operator"
	"travel-po/internal/domain/user"
	"travel-po/internal/ports"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterOperator creates an operator account in pending status, assigns a
// company code, and returns a signed token with the profile.
func (service *authService) RegisterOperator(ctx context.Context, in ports.RegisterOperatorInput) (ports.OperatorAuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return ports.OperatorAuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	op, err := operator.New(in.PoName, in.Email, in.Phone, in.Address, newCompanyCode(), string(hash))
	if err != nil {
		return ports.OperatorAuthResult{}, err
	}

	err = service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return service.operatorRepo.Create(txCtx, op)
	})
	if err != nil {
		return ports.OperatorAuthResult{}, err
	}

	service.logger.Info(ctx, "operator_registered", "Operator account created",
		map[string]any{"operator_id": op.ID, "company_code": op.CompanyCode})

	return service.operatorResult(op)
}

// LoginOperator verifies credentials and returns a fresh token.
func (service *authService) LoginOperator(ctx context.Context, email, password string) (ports.OperatorAuthResult, error) {
	var op *operator.Operator

	err := service.uow.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		op, err = service.operatorRepo.GetByEmail(txCtx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, operator.ErrNotFound) {
			return ports.OperatorAuthResult{}, ErrInvalidCredentials
		}
		return ports.OperatorAuthResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return ports.OperatorAuthResult{}, ErrInvalidCredentials
	}

	service.logger.Info(ctx, "operator_logged_in", "Operator logged in",
		map[string]any{"operator_id": op.ID})

	return service.operatorResult(op)
}

func (service *authService) operatorResult(op *operator.Operator) (ports.OperatorAuthResult, error) {
	token, _, err := service.jwtMgr.IssueUserToken(op.ID, user.RoleOperator, op.CompanyCode)
	if err != nil {
		return ports.OperatorAuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	return ports.OperatorAuthResult{
		Token: token,
		Operator: ports.OperatorProfile{
			ID:             op.ID,
			Name:           op.Name,
			Email:          op.Email,
			Phone:          op.Phone,
			Address:        op.Address,
			CompanyCode:    op.CompanyCode,
			CommissionRate: op.CommissionRate,
			Status:         op.Status.String(),
		},
	}, nil
}

// newCompanyCode derives a readable unique-enough code from the registration
// instant.
func newCompanyCode() string {
	return fmt.Sprintf("PO%d", time.Now().UnixMilli())
}
