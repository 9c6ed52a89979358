package policy_test

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/policy"

	"github.com/stretchr/testify/assert"
)

type fakePolicyRepository struct {
	findAllFn func(ctx context.Context) ([]policy.CustomVar, error)
	upsertFn  func(ctx context.Context, v policy.CustomVar) error
}

func (f *fakePolicyRepository) FindAll(ctx context.Context) ([]policy.CustomVar, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePolicyRepository) Upsert(ctx context.Context, v policy.CustomVar) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, v)
	}
	return nil
}

func TestPolicyService_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("reads stored knobs", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		repo.findAllFn = func(ctx context.Context) ([]policy.CustomVar, error) {
			return []policy.CustomVar{
				{VarName: policy.VarMaxLeaveDays, Value: 15},
				{VarName: policy.VarMonthlyAccrual, Value: 2},
				{VarName: policy.VarMaxCarryForward, Value: 5},
			}, nil
		}
		svc := policy.NewService(repo)

		snap, err := svc.Snapshot(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 15, snap.MaxLeaveDays())
		assert.Equal(t, 2, snap.MonthlyAccrual())
		assert.Equal(t, 5, snap.MaxCarryForward())
	})

	t.Run("missing knobs fall back to defaults", func(t *testing.T) {
		svc := policy.NewService(&fakePolicyRepository{})

		snap, err := svc.Snapshot(ctx)

		assert.NoError(t, err)
		assert.Equal(t, policy.DefaultMaxLeaveDays, snap.MaxLeaveDays())
		assert.Equal(t, policy.DefaultMaxCarryForward, snap.MaxCarryForward())
		// Accrual has no default: missing means disabled.
		assert.Equal(t, 0, snap.MonthlyAccrual())
	})

	t.Run("non-positive knobs fall back to defaults", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		repo.findAllFn = func(ctx context.Context) ([]policy.CustomVar, error) {
			return []policy.CustomVar{
				{VarName: policy.VarMaxLeaveDays, Value: -1},
				{VarName: policy.VarMaxCarryForward, Value: 0},
			}, nil
		}
		svc := policy.NewService(repo)

		snap, err := svc.Snapshot(ctx)

		assert.NoError(t, err)
		assert.Equal(t, policy.DefaultMaxLeaveDays, snap.MaxLeaveDays())
		assert.Equal(t, policy.DefaultMaxCarryForward, snap.MaxCarryForward())
	})

	t.Run("negative repo error", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		repo.findAllFn = func(ctx context.Context) ([]policy.CustomVar, error) {
			return nil, errors.New("db error")
		}
		svc := policy.NewService(repo)

		_, err := svc.Snapshot(ctx)

		assert.Error(t, err)
	})
}

func TestPolicyService_UpsertAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success upserts each var", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		var seen []policy.CustomVar
		repo.upsertFn = func(ctx context.Context, v policy.CustomVar) error {
			seen = append(seen, v)
			return nil
		}
		svc := policy.NewService(repo)

		count, err := svc.UpsertAll(ctx, policy.UpsertVarsRequest{
			Vars: []policy.VarUpdate{
				{VarName: policy.VarMaxLeaveDays, Value: 12},
				{VarName: policy.VarMonthlyAccrual, Value: 2},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, seen, 2)
		assert.Equal(t, policy.VarMaxLeaveDays, seen[0].VarName)
		assert.Equal(t, 12, seen[0].Value)
	})

	t.Run("negative stops on first failure", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		calls := 0
		repo.upsertFn = func(ctx context.Context, v policy.CustomVar) error {
			calls++
			if calls == 2 {
				return errors.New("db error")
			}
			return nil
		}
		svc := policy.NewService(repo)

		count, err := svc.UpsertAll(ctx, policy.UpsertVarsRequest{
			Vars: []policy.VarUpdate{
				{VarName: "A", Value: 1},
				{VarName: "B", Value: 2},
				{VarName: "C", Value: 3},
			},
		})

		assert.Error(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, 2, calls)
	})
}
