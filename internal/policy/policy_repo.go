package policy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]CustomVar, error)
	Upsert(ctx context.Context, v CustomVar) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]CustomVar, error) {
	var vars []CustomVar
	err := r.db.WithContext(ctx).
		Order("var_name ASC").
		Find(&vars).Error
	return vars, err
}

func (r *repository) Upsert(ctx context.Context, v CustomVar) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO custom_vars (var_name, value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (var_name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, v.VarName, v.Value).Error
}
