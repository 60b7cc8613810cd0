package domain

// EmployeePayload 是调用方传入的员工数据，日期均为 YYYY-MM-DD 字符串
type EmployeePayload struct {
	ID          string  `json:"id" validate:"required"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	WeeklyHours float64 `json:"weeklyHours" validate:"gte=0,lte=48"`
}

// WeekSchedulePayload 是一次合规检查的完整输入
type WeekSchedulePayload struct {
	Employees     []EmployeePayload `json:"employees" validate:"dive"`
	Shifts        []Shift           `json:"shifts" validate:"dive"`
	WeekStartDate string            `json:"weekStartDate" validate:"required,datetime=2006-01-02"`
}
