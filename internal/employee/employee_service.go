package employee

import (
	"context"
	"database/sql"
	"time"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id int) (EmployeeResponse, error)
	Update(ctx context.Context, id int, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int) error
	Report(ctx context.Context, id int) ([]byte, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	joiningDate, err := parseOptionalDate(req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	dob, err := parseOptionalDate(req.DOB)
	if err != nil {
		return EmployeeResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e := &Employee{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Department:   req.Department,
		Designation:  req.Designation,
		Contact:      req.Contact,
		JoiningDate:  joiningDate,
		LeaveBalance: req.LeaveBalance,
		Status:       StatusActive,
		DOB:          dob,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("employee created",
		zap.Int("emp_id", e.EmpID),
		zap.String("email", e.Email),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int) (EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id int, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Designation != nil {
		e.Designation = *req.Designation
	}
	if req.Contact != nil {
		e.Contact = *req.Contact
	}
	if req.LeaveBalance != nil {
		e.LeaveBalance = *req.LeaveBalance
	}
	if req.LeaveTaken != nil {
		e.LeaveTaken = *req.LeaveTaken
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	if req.DOB != nil {
		dob, err := parseOptionalDate(*req.DOB)
		if err != nil {
			return EmployeeResponse{}, err
		}
		e.DOB = dob
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.Int("emp_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("employee updated", zap.Int("emp_id", id))

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deleted", zap.Int("emp_id", id))
	return nil
}

func (s *service) Report(ctx context.Context, id int) ([]byte, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	since := time.Now().AddDate(0, 0, -30)
	leaves, err := s.repo.RecentLeaves(ctx, id, since)
	if err != nil {
		return nil, err
	}

	return buildEmployeeReportPDF(*e, leaves)
}

func parseOptionalDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmpID:        e.EmpID,
		Name:         e.Name,
		Email:        e.Email,
		Department:   e.Department,
		Designation:  e.Designation,
		Contact:      e.Contact,
		LeaveBalance: e.LeaveBalance,
		LeaveTaken:   e.LeaveTaken,
		Status:       e.Status,
	}
	if !e.JoiningDate.IsZero() {
		resp.JoiningDate = e.JoiningDate.Format(dateLayout)
	}
	if !e.DOB.IsZero() {
		resp.DOB = e.DOB.Format(dateLayout)
	}
	return resp
}
