package policy

import (
	"context"

	"go.uber.org/zap"
)

// Snapshot is a point-in-time view of the policy knobs. It is loaded fresh
// per operation so an HR edit never races a half-applied decision.
type Snapshot struct {
	vars map[string]int
}

func (s Snapshot) get(name string) (int, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// MaxLeaveDays returns the per-request ceiling, falling back to the default
// when the knob is missing or non-positive.
func (s Snapshot) MaxLeaveDays() int {
	if v, ok := s.get(VarMaxLeaveDays); ok && v > 0 {
		return v
	}
	return DefaultMaxLeaveDays
}

// MonthlyAccrual returns the monthly balance increment. No fallback: a
// missing or non-positive knob means the monthly job must skip.
func (s Snapshot) MonthlyAccrual() int {
	v, _ := s.get(VarMonthlyAccrual)
	return v
}

// MaxCarryForward returns the year-boundary balance cap.
func (s Snapshot) MaxCarryForward() int {
	if v, ok := s.get(VarMaxCarryForward); ok && v > 0 {
		return v
	}
	return DefaultMaxCarryForward
}

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]VarResponse, error)
	UpsertAll(ctx context.Context, req UpsertVarsRequest) (int, error)
	Snapshot(ctx context.Context) (Snapshot, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]VarResponse, error) {
	vars, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]VarResponse, len(vars))
	for i, v := range vars {
		resp[i] = VarResponse{VarName: v.VarName, Value: v.Value}
	}
	return resp, nil
}

func (s *service) UpsertAll(ctx context.Context, req UpsertVarsRequest) (int, error) {
	total := 0
	for _, u := range req.Vars {
		if err := s.repo.Upsert(ctx, CustomVar{VarName: u.VarName, Value: u.Value}); err != nil {
			s.logger.Error("upsert policy var failed",
				zap.String("var_name", u.VarName),
				zap.Error(err),
			)
			return total, err
		}
		total++
	}

	s.logger.Info("policy vars updated", zap.Int("count", total))
	return total, nil
}

func (s *service) Snapshot(ctx context.Context) (Snapshot, error) {
	vars, err := s.repo.FindAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	m := make(map[string]int, len(vars))
	for _, v := range vars {
		m[v.VarName] = v.Value
	}
	return Snapshot{vars: m}, nil
}

// SnapshotFromMap builds a snapshot directly from knob values. Test helper.
func SnapshotFromMap(vars map[string]int) Snapshot {
	m := make(map[string]int, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	return Snapshot{vars: m}
}
