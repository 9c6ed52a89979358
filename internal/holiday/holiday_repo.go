package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context) ([]Holiday, error)
	FindByID(ctx context.Context, id int) (*Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id int) error
	ListDates(ctx context.Context) ([]time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, "holiday_id = ?", id).Error
	return &h, err
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Delete(&Holiday{}, "holiday_id = ?", id).Error
}

func (r *repository) ListDates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Pluck("date", &dates).Error
	return dates, err
}
