package employee

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Employee struct {
	EmpID        int       `gorm:"primaryKey;autoIncrement;column:emp_id"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	Department   string    `gorm:"type:varchar(80);not null"`
	Designation  string    `gorm:"type:varchar(80);not null"`
	Contact      string    `gorm:"type:varchar(40)"`
	JoiningDate  time.Time `gorm:"type:date"`
	LeaveBalance int       `gorm:"type:int;not null;default:0"`
	LeaveTaken   int       `gorm:"type:int;not null;default:0"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Active'"`
	DOB          time.Time `gorm:"type:date;column:dob"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}
