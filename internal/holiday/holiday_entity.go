package holiday

import "time"

type Holiday struct {
	HolidayID   int       `gorm:"primaryKey;autoIncrement;column:holiday_id"`
	Title       string    `gorm:"type:varchar(120);not null"`
	Description *string   `gorm:"type:text"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_date"`
	CreatedAt   time.Time
}

func (Holiday) TableName() string {
	return "holidays"
}
