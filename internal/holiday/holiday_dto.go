package holiday

type CreateHolidayRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"`
}

type UpdateHolidayRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

type HolidayResponse struct {
	HolidayID   int     `json:"holiday_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}
