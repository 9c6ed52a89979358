package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmittedEventType = "leave.submitted"
	LeaveApprovedEventType  = "leave.approved"
	LeaveRejectedEventType  = "leave.rejected"
)

type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  int       `json:"request_id"`
	EmpID      int       `json:"emp_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	NoOfDays   int       `json:"no_of_days"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
