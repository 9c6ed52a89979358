package policy

import "time"

// CustomVar is a named integer policy knob, editable by HR.
type CustomVar struct {
	VarName   string `gorm:"primaryKey;type:varchar(64);column:var_name"`
	Value     int    `gorm:"type:int;not null"`
	UpdatedAt time.Time
}

func (CustomVar) TableName() string {
	return "custom_vars"
}

// Knob names.
const (
	VarMaxLeaveDays    = "MaxLeaveDays"
	VarMonthlyAccrual  = "MonthlyUpdateDay"
	VarMaxCarryForward = "MaxCarryForward"
)

// Fallback values applied when a knob is missing or non-positive.
const (
	DefaultMaxLeaveDays    = 10
	DefaultMaxCarryForward = 7
)
