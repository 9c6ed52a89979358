package scheduler

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	JobMonthlyAccrual = "monthly_accrual"
	JobYearlyReset    = "yearly_reset"
)

// SystemJob records the last completed period of a recurring job. The
// period, not the wall-clock timestamp, decides whether a run is due, so a
// worker that was down over a boundary catches up on its next pass.
type SystemJob struct {
	JobName      string    `gorm:"column:job_name;primaryKey" json:"job_name"`
	LastRunYear  int       `gorm:"column:last_run_year" json:"last_run_year"`
	LastRunMonth int       `gorm:"column:last_run_month" json:"last_run_month"`
	LastRunAt    time.Time `gorm:"column:last_run_at" json:"last_run_at"`
}

func (SystemJob) TableName() string {
	return "system_jobs"
}

//go:generate mockgen -source=job_tracker.go -destination=mock/job_tracker_mock.go -package=mock
type JobTracker interface {
	LastRun(ctx context.Context, jobName string) (*SystemJob, error)
	RecordRun(ctx context.Context, jobName string, year, month int) error
}

type jobTracker struct {
	db *gorm.DB
}

func NewJobTracker(db *gorm.DB) JobTracker {
	return &jobTracker{db: db}
}

// LastRun returns nil without error when the job has never run.
func (t *jobTracker) LastRun(ctx context.Context, jobName string) (*SystemJob, error) {
	var job SystemJob
	err := t.db.WithContext(ctx).First(&job, "job_name = ?", jobName).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (t *jobTracker) RecordRun(ctx context.Context, jobName string, year, month int) error {
	job := SystemJob{
		JobName:      jobName,
		LastRunYear:  year,
		LastRunMonth: month,
		LastRunAt:    time.Now().UTC(),
	}
	return t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_run_year", "last_run_month", "last_run_at"}),
		}).
		Create(&job).Error
}
