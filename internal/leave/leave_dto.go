package leave

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type ReviewLeaveRequest struct {
	Status string  `json:"status" binding:"required,oneof=Approved Rejected"`
	HrNote *string `json:"hr_note"`
}

type LeaveResponse struct {
	RequestID  int     `json:"request_id"`
	EmpID      int     `json:"emp_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	NoOfDays   int     `json:"no_of_days"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	HrNote     *string `json:"hr_note,omitempty"`
	AppliedOn  string  `json:"applied_on"`
	ReviewedOn *string `json:"reviewed_on,omitempty"`
}
