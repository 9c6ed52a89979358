package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id int) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, empID int) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	HasOverlappingPeriod(ctx context.Context, empID int, startDate, endDate time.Time) (bool, error)
	HasPending(ctx context.Context) (bool, error)
	// MarkCounterApplied claims the deduction for a request; it reports false
	// when another caller already holds the claim.
	MarkCounterApplied(ctx context.Context, id int) (bool, error)
	ClearCounterApplied(ctx context.Context, id int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("CASE WHEN status = 'Pending' THEN 0 ELSE 1 END, applied_on DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "request_id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, empID int) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("emp_id = ?", empID).
		Order("applied_on DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// HasOverlappingPeriod reports whether a Pending or Approved request of the
// same employee intersects [startDate, endDate], bounds inclusive.
func (r *repository) HasOverlappingPeriod(ctx context.Context, empID int, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("emp_id = ?", empID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasPending(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count > 0, err
}

// MarkCounterApplied flips the flag only while it is still unset. The
// condition is the serialization point: of two concurrent applies for the
// same request, exactly one sees a row updated.
func (r *repository) MarkCounterApplied(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("request_id = ? AND counter_applied = ?", id, false).
		Update("counter_applied", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ClearCounterApplied(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("request_id = ?", id).
		Update("counter_applied", false).Error
}
