package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	leaveerrors "go-hrm/internal/leave/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/policy"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// HolidayCalendar is the slice of the holiday service the admission check
// needs.
type HolidayCalendar interface {
	DateSet(ctx context.Context) (map[string]struct{}, error)
}

// PolicyProvider loads a fresh policy snapshot per operation.
type PolicyProvider interface {
	Snapshot(ctx context.Context) (policy.Snapshot, error)
}

// BalanceStore is the slice of the employee repository the leave module
// touches: balance reads and the conditional deduction.
type BalanceStore interface {
	FindByID(ctx context.Context, id int) (*employee.Employee, error)
	ApplyLeaveDeduction(ctx context.Context, id, days int) (bool, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, empID int, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id int) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, empID int) ([]LeaveResponse, error)
	HasPending(ctx context.Context) (bool, error)
	Review(ctx context.Context, id int, req ReviewLeaveRequest) (LeaveResponse, error)
	ApplyCounter(ctx context.Context, id int) (LeaveResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	holidays HolidayCalendar
	policies PolicyProvider
	balances BalanceStore
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	holidays HolidayCalendar,
	policies PolicyProvider,
	balances BalanceStore,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, holidays, policies, balances, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	holidays HolidayCalendar,
	policies PolicyProvider,
	balances BalanceStore,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		holidays: holidays,
		policies: policies,
		balances: balances,
		outbox:   outboxRepo,
		logger:   l,
	}
}

// Submit runs the admission check and persists the request as Pending.
// The balance is not touched here; deduction happens through ApplyCounter
// after approval.
func (s *service) Submit(ctx context.Context, empID int, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.Int("emp_id", empID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	holidaySet, err := s.holidays.DateSet(ctx)
	if err != nil {
		s.logger.Error("submit leave holiday lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	snap, err := s.policies.Snapshot(ctx)
	if err != nil {
		s.logger.Error("submit leave policy snapshot failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	maxLeaveDays := snap.MaxLeaveDays()

	workingDays := CountWorkingDays(startDate, endDate, holidaySet)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, empID, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.Int("emp_id", empID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	emp, err := s.balances.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("submit leave balance lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if workingDays > maxLeaveDays {
		s.logger.Warn("submit leave exceeds policy",
			zap.Int("emp_id", empID),
			zap.Int("working_days", workingDays),
			zap.Int("max_leave_days", maxLeaveDays),
		)
		return LeaveResponse{}, leaveerrors.ErrExceedsMaxLeaveDays
	}
	if emp.LeaveBalance < workingDays {
		s.logger.Warn("submit leave insufficient balance",
			zap.Int("emp_id", empID),
			zap.Int("working_days", workingDays),
			zap.Int("balance", emp.LeaveBalance),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &LeaveRequest{
		EmpID:     empID,
		StartDate: startDate,
		EndDate:   endDate,
		NoOfDays:  workingDays,
		Reason:    req.Reason,
		Status:    StatusPending,
		AppliedOn: time.Now().UTC(),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, l, events.LeaveSubmittedEventType); err != nil {
		s.logger.Error("submit leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.Int("leave_id", l.RequestID),
		zap.Int("emp_id", empID),
		zap.Int("working_days", workingDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id int) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByEmployee(ctx context.Context, empID int) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) HasPending(ctx context.Context) (bool, error) {
	return s.repo.HasPending(ctx)
}

// Review moves a Pending request to Approved or Rejected and stamps the
// review time.
func (s *service) Review(ctx context.Context, id int, req ReviewLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.Int("leave_id", id),
		zap.String("target_status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("review leave invalid transition",
			zap.Int("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", req.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	l.Status = req.Status
	l.HrNote = req.HrNote
	l.ReviewedOn = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("review leave persist failed",
			zap.Int("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	eventType := events.LeaveRejectedEventType
	if req.Status == StatusApproved {
		eventType = events.LeaveApprovedEventType
	}
	if err := s.enqueueLifecycleEvent(ctx, tx, l, eventType); err != nil {
		s.logger.Error("review leave enqueue event failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review leave commit failed",
			zap.Int("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	contextutil.GetLogger(ctx, s.logger).Info("review leave success",
		zap.Int("leave_id", id),
		zap.Int("reviewer_id", contextutil.GetEmpID(ctx)),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

// ApplyCounter performs the explicit balance deduction for an approved
// request. The counter_applied claim is flipped with a conditional update
// before any money moves: of two concurrent applies only one wins the
// claim, and the loser returns already-applied without deducting. A failed
// deduction releases the claim.
func (s *service) ApplyCounter(ctx context.Context, id int) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave counter begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusApproved {
		return LeaveResponse{}, leaveerrors.ErrCounterNotApproved
	}
	if l.CounterApplied {
		return LeaveResponse{}, leaveerrors.ErrCounterAlreadyApplied
	}

	claimed, err := qtx.MarkCounterApplied(ctx, id)
	if err != nil {
		s.logger.Error("apply leave counter claim failed",
			zap.Int("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if !claimed {
		// Another apply won the conditional update since our read.
		return LeaveResponse{}, leaveerrors.ErrCounterAlreadyApplied
	}

	ok, err := s.balances.ApplyLeaveDeduction(ctx, l.EmpID, l.NoOfDays)
	if err != nil || !ok {
		if clearErr := qtx.ClearCounterApplied(ctx, id); clearErr != nil {
			s.logger.Error("apply leave counter release failed",
				zap.Int("leave_id", id),
				zap.Error(clearErr),
			)
		}
		if err != nil {
			s.logger.Error("apply leave counter deduction failed",
				zap.Int("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
		s.logger.Warn("apply leave counter insufficient balance",
			zap.Int("leave_id", id),
			zap.Int("emp_id", l.EmpID),
			zap.Int("days", l.NoOfDays),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}
	l.CounterApplied = true

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave counter commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave counter success",
		zap.Int("leave_id", id),
		zap.Int("emp_id", l.EmpID),
		zap.Int("days", l.NoOfDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveLifecycleEvent{
		EventType:  eventType,
		RequestID:  l.RequestID,
		EmpID:      l.EmpID,
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		NoOfDays:   l.NoOfDays,
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   strconv.Itoa(l.RequestID),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		RequestID: l.RequestID,
		EmpID:     l.EmpID,
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		NoOfDays:  l.NoOfDays,
		Reason:    l.Reason,
		Status:    l.Status,
		HrNote:    l.HrNote,
		AppliedOn: l.AppliedOn.Format(time.RFC3339),
	}
	if l.ReviewedOn != nil {
		v := l.ReviewedOn.Format(time.RFC3339)
		resp.ReviewedOn = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
