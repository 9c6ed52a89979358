package employee

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// RecentLeave is the slim projection used by the PDF report.
type RecentLeave struct {
	RequestID int
	StartDate time.Time
	EndDate   time.Time
	NoOfDays  int
	Status    string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) error

	// AddToAllBalances applies the monthly accrual to every employee.
	AddToAllBalances(ctx context.Context, amount int) (int64, error)
	// ResetYear zeroes taken counters and caps balances at the carry-forward
	// limit. Balances already below the cap are untouched.
	ResetYear(ctx context.Context, carryForwardCap int) (int64, error)
	// ApplyLeaveDeduction decrements balance and increments taken in one
	// conditional statement; returns false when the balance is insufficient.
	ApplyLeaveDeduction(ctx context.Context, id, days int) (bool, error)

	RecentLeaves(ctx context.Context, id int, since time.Time) ([]RecentLeave, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("emp_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "emp_id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "email = ?", email).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("emp_id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "emp_id = ?", id).Error
}

func (r *repository) AddToAllBalances(ctx context.Context, amount int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("status = ?", StatusActive).
		Update("leave_balance", gorm.Expr("leave_balance + ?", amount))
	return res.RowsAffected, res.Error
}

func (r *repository) ResetYear(ctx context.Context, carryForwardCap int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Updates(map[string]any{
			"leave_taken":   0,
			"leave_balance": gorm.Expr("LEAST(leave_balance, ?)", carryForwardCap),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ApplyLeaveDeduction(ctx context.Context, id, days int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("emp_id = ?", id).
		Where("leave_balance >= ?", days).
		Updates(map[string]any{
			"leave_balance": gorm.Expr("leave_balance - ?", days),
			"leave_taken":   gorm.Expr("leave_taken + ?", days),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) RecentLeaves(ctx context.Context, id int, since time.Time) ([]RecentLeave, error) {
	var leaves []RecentLeave
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("request_id, start_date, end_date, no_of_days, status").
		Where("emp_id = ?", id).
		Where("start_date >= ?", since).
		Order("start_date DESC").
		Scan(&leaves).Error
	return leaves, err
}
