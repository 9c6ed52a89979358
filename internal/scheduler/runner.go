package scheduler

import (
	"context"
	"time"

	"go-hrm/internal/policy"

	"go.uber.org/zap"
)

// PolicyProvider supplies the accrual and carry-forward knobs.
type PolicyProvider interface {
	Snapshot(ctx context.Context) (policy.Snapshot, error)
}

// BalanceUpdater is the slice of the employee repository the runner needs.
type BalanceUpdater interface {
	AddToAllBalances(ctx context.Context, amount int) (int64, error)
	ResetYear(ctx context.Context, carryForwardCap int) (int64, error)
}

const defaultInterval = 24 * time.Hour

// Runner wakes on a fixed interval and fires the monthly accrual and the
// yearly reset when their period has rolled over since the last recorded
// run. Failures are logged and retried on the next tick; the last-run
// marker only advances after a successful pass.
type Runner struct {
	tracker  JobTracker
	policies PolicyProvider
	balances BalanceUpdater
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewRunner(tracker JobTracker, policies PolicyProvider, balances BalanceUpdater, logger ...*zap.Logger) *Runner {
	l := zap.L().Named("scheduler.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.runner")
	}
	return &Runner{
		tracker:  tracker,
		policies: policies,
		balances: balances,
		interval: defaultInterval,
		now:      time.Now,
		logger:   l,
	}
}

// Start blocks until ctx is cancelled. The first pass runs immediately so a
// restart never waits a full interval to catch up on a missed period.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("scheduler started", zap.Duration("interval", r.interval))

	r.RunOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce evaluates both jobs for the current period. Each job is isolated:
// one failing never blocks the other.
func (r *Runner) RunOnce(ctx context.Context) {
	// Period boundaries follow the server's local wall clock.
	now := r.now()

	if err := r.runMonthlyAccrual(ctx, now); err != nil {
		r.logger.Error("monthly accrual failed", zap.Error(err))
	}
	if err := r.runYearlyReset(ctx, now); err != nil {
		r.logger.Error("yearly reset failed", zap.Error(err))
	}
}

func (r *Runner) runMonthlyAccrual(ctx context.Context, now time.Time) error {
	last, err := r.tracker.LastRun(ctx, JobMonthlyAccrual)
	if err != nil {
		return err
	}
	if !monthlyDue(last, now) {
		return nil
	}

	snap, err := r.policies.Snapshot(ctx)
	if err != nil {
		return err
	}
	amount := snap.MonthlyAccrual()
	if amount <= 0 {
		// Accrual disabled: leave the last-run marker alone so the month
		// still runs if the knob is enabled before it ends.
		r.logger.Warn("monthly accrual skipped, knob disabled",
			zap.Int("amount", amount),
		)
		return nil
	}

	updated, err := r.balances.AddToAllBalances(ctx, amount)
	if err != nil {
		return err
	}
	if err := r.tracker.RecordRun(ctx, JobMonthlyAccrual, now.Year(), int(now.Month())); err != nil {
		return err
	}

	r.logger.Info("monthly accrual applied",
		zap.Int("amount", amount),
		zap.Int64("employees", updated),
		zap.Int("year", now.Year()),
		zap.Int("month", int(now.Month())),
	)
	return nil
}

func (r *Runner) runYearlyReset(ctx context.Context, now time.Time) error {
	last, err := r.tracker.LastRun(ctx, JobYearlyReset)
	if err != nil {
		return err
	}
	if !yearlyDue(last, now) {
		return nil
	}

	snap, err := r.policies.Snapshot(ctx)
	if err != nil {
		return err
	}
	cap := snap.MaxCarryForward()

	updated, err := r.balances.ResetYear(ctx, cap)
	if err != nil {
		return err
	}
	if err := r.tracker.RecordRun(ctx, JobYearlyReset, now.Year(), int(now.Month())); err != nil {
		return err
	}

	r.logger.Info("yearly reset applied",
		zap.Int("carry_forward_cap", cap),
		zap.Int64("employees", updated),
		zap.Int("year", now.Year()),
	)
	return nil
}

// monthlyDue reports whether (year, month) of now is strictly later than
// the last recorded run. A job that has never run is due.
func monthlyDue(last *SystemJob, now time.Time) bool {
	if last == nil {
		return true
	}
	if now.Year() != last.LastRunYear {
		return now.Year() > last.LastRunYear
	}
	return int(now.Month()) > last.LastRunMonth
}

func yearlyDue(last *SystemJob, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Year() > last.LastRunYear
}
