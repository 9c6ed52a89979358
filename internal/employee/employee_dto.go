package employee

type CreateEmployeeRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Department   string `json:"department" binding:"required"`
	Designation  string `json:"designation" binding:"required"`
	Contact      string `json:"contact"`
	JoiningDate  string `json:"joining_date"`
	DOB          string `json:"dob"`
	LeaveBalance int    `json:"leave_balance"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Department   *string `json:"department"`
	Designation  *string `json:"designation"`
	Contact      *string `json:"contact"`
	LeaveBalance *int    `json:"leave_balance"`
	LeaveTaken   *int    `json:"leave_taken"`
	Status       *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	DOB          *string `json:"dob"`
}

type EmployeeResponse struct {
	EmpID        int    `json:"emp_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	Contact      string `json:"contact"`
	JoiningDate  string `json:"joining_date,omitempty"`
	LeaveBalance int    `json:"leave_balance"`
	LeaveTaken   int    `json:"leave_taken"`
	Status       string `json:"status"`
	DOB          string `json:"dob,omitempty"`
}
