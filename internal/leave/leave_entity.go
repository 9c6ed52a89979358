package leave

import "time"

type LeaveRequest struct {
	RequestID int       `gorm:"primaryKey;autoIncrement;column:request_id"`
	EmpID     int       `gorm:"not null;index:idx_leave_requests_emp_dates;column:emp_id"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_emp_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_emp_dates"`
	NoOfDays  int       `gorm:"type:int;not null;column:no_of_days"`
	Reason    string    `gorm:"type:text"`

	Status         string     `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`
	HrNote         *string    `gorm:"type:text;column:hr_note"`
	AppliedOn      time.Time  `gorm:"not null;column:applied_on"`
	ReviewedOn     *time.Time `gorm:"column:reviewed_on"`
	CounterApplied bool       `gorm:"not null;default:false;column:counter_applied"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
