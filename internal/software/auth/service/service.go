package service

import (
	"travel-po/internal/general/jwt"
	"travel-po/internal/general/logger"
	"travel-po/internal/ports"
)

// authService handles registration and login for operators and students.
type authService struct {
	logger       *logger.Logger
	uow          ports.UnitOfWork
	operatorRepo ports.OperatorRepository
	studentRepo  ports.StudentRepository
	jwtMgr       *jwt.Manager
}

// NewAuthService creates a new auth service with the provided dependencies.
func NewAuthService(
	logger *logger.Logger,
	uow ports.UnitOfWork,
	operatorRepo ports.OperatorRepository,
	studentRepo ports.StudentRepository,
	jwtMgr *jwt.Manager,
) ports.AuthService {
	return &authService{
		logger:       logger,
		uow:          uow,
		operatorRepo: operatorRepo,
		studentRepo:  studentRepo,
		jwtMgr:       jwtMgr,
	}
}
