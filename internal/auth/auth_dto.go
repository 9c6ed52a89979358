package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string `json:"token"`
	EmpID       int    `json:"emp_id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
}

type RegisterRequest struct {
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

type RegisterResponse struct {
	EmpID int    `json:"emp_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
