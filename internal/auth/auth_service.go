package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/employee"
	"go-hrm/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTTL   = 2 * time.Hour
	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	ChangePassword(ctx context.Context, empID int, req ChangePasswordRequest) error
}

type service struct {
	db        *sql.DB
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, employees: employees, logger: l}
}

// roleFor derives the authorization role from the designation. Only the HR
// designation carries elevated rights.
func roleFor(e *employee.Employee) string {
	if e.Designation == "HR" {
		return rbac.RoleHR
	}
	return rbac.RoleEmployee
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	e, err := s.employees.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed, unknown email", zap.String("email", req.Email))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed, wrong password", zap.Int("emp_id", e.EmpID))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	role := roleFor(e)
	token, err := s.generateToken(e, role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Int("emp_id", e.EmpID), zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login succeeded",
		zap.Int("emp_id", e.EmpID),
		zap.String("role", role),
	)

	return LoginResponse{
		Token:       token,
		EmpID:       e.EmpID,
		Name:        e.Name,
		Designation: e.Designation,
		Role:        role,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return RegisterResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.employees.WithTx(tx)

	joiningDate, err := parseOptionalDate(req.JoiningDate)
	if err != nil {
		return RegisterResponse{}, err
	}
	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		return RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResponse{}, err
	}

	e := &employee.Employee{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Department:   req.Department,
		Designation:  req.Designation,
		Contact:      req.Contact,
		JoiningDate:  joiningDate,
		LeaveBalance: req.LeaveBalance,
		Status:       employee.StatusActive,
		DOB:          dob,
	}

	if err := qtx.Create(ctx, e); err != nil {
		if isDuplicateEmail(err) {
			return RegisterResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	role := roleFor(e)
	s.logger.Info("employee registered",
		zap.Int("emp_id", e.EmpID),
		zap.String("email", e.Email),
		zap.String("role", role),
	)

	return RegisterResponse{
		EmpID: e.EmpID,
		Name:  e.Name,
		Email: e.Email,
		Role:  role,
	}, nil
}

func (s *service) ChangePassword(ctx context.Context, empID int, req ChangePasswordRequest) error {
	e, err := s.employees.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrProfileNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.OldPassword)); err != nil {
		s.logger.Warn("change password rejected, wrong old password", zap.Int("emp_id", empID))
		return autherrors.ErrWrongOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.employees.UpdatePassword(ctx, empID, string(hashed)); err != nil {
		s.logger.Error("change password persist failed", zap.Int("emp_id", empID), zap.Error(err))
		return err
	}

	s.logger.Info("password changed", zap.Int("emp_id", empID))
	return nil
}

func (s *service) generateToken(e *employee.Employee, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    e.Email,
		"emp_id": e.EmpID,
		"role":   role,
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func parseOptionalDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, autherrors.ErrInvalidDateFormat
	}
	return t, nil
}
