package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"travel-po/internal/domain/operator"
	"travel-po/internal/domain/student"
	"travel-po/internal/general/logger"
	"travel-po/internal/general/web"
	"travel-po/internal/ports"
	"travel-po/internal/software/auth/service"
)

const reqTimeout = 10 * time.Second

// AuthHTTPHandler adapts HTTP requests to the AuthService.
type AuthHTTPHandler struct {
	svc    ports.AuthService
	logger *logger.Logger
}

// NewAuthHTTPHandler wires an HTTP handler around the AuthService.
func NewAuthHTTPHandler(svc ports.AuthService, logger *logger.Logger) *AuthHTTPHandler {
	return &AuthHTTPHandler{svc: svc, logger: logger}
}

// RegisterRoutes mounts auth endpoints on the provided mux. Auth endpoints
// are public by definition.
func (handler *AuthHTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", handler.handleRegisterOperator)
	mux.HandleFunc("POST /api/auth/login", handler.handleLoginOperator)
	mux.HandleFunc("POST /api/auth/student/register", handler.handleRegisterStudent)
	mux.HandleFunc("POST /api/auth/student/login", handler.handleLoginStudent)
}

func (handler *AuthHTTPHandler) begin(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(web.WithRequestID(handler.logger, r), reqTimeout)
}

func (handler *AuthHTTPHandler) authError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		web.Error(ctx, handler.logger, w, http.StatusUnauthorized, err.Error(), err)
	case errors.Is(err, operator.ErrEmailTaken), errors.Is(err, student.ErrEmailTaken):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "Email already registered", err)
	case isValidationErr(err):
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
	default:
		web.Error(ctx, handler.logger, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, operator.ErrEmptyName) ||
		errors.Is(err, operator.ErrEmptyEmail) ||
		errors.Is(err, operator.ErrEmptyPhone) ||
		errors.Is(err, operator.ErrEmptyPassword) ||
		errors.Is(err, student.ErrEmptyName) ||
		errors.Is(err, student.ErrEmptyEmail) ||
		errors.Is(err, student.ErrEmptyPassword)
}

type registerOperatorRequest struct {
	PoName   string `json:"po_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (handler *AuthHTTPHandler) handleRegisterOperator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req registerOperatorRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if len(req.Password) < 6 {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	result, err := handler.svc.RegisterOperator(ctx, ports.RegisterOperatorInput{
		PoName:   req.PoName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		handler.authError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Operator registered", result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *AuthHTTPHandler) handleLoginOperator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req loginRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := handler.svc.LoginOperator(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		handler.authError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Login successful", result)
}

type registerStudentRequest struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Phone      string  `json:"phone"`
	NIM        *string `json:"nim,omitempty"`
	University *string `json:"university,omitempty"`
}

func (handler *AuthHTTPHandler) handleRegisterStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req registerStudentRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	if len(req.Password) < 6 {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "password must be at least 6 characters", nil)
		return
	}

	result, err := handler.svc.RegisterStudent(ctx, ports.RegisterStudentInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		NIM:        req.NIM,
		University: req.University,
	})
	if err != nil {
		handler.authError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusCreated, "Student registered", result)
}

func (handler *AuthHTTPHandler) handleLoginStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handler.begin(r)
	defer cancel()

	var req loginRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, err.Error(), err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		web.Error(ctx, handler.logger, w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := handler.svc.LoginStudent(ctx, strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		handler.authError(ctx, w, err)
		return
	}

	web.Message(ctx, handler.logger, w, http.StatusOK, "Login successful", result)
}
