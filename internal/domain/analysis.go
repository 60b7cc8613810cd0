package domain

// WeeklyOvertime 只是信息性的加班分段，不会产生违规
type WeeklyOvertime struct {
	Band110Hours float64 `json:"band110Hours"` // 法定工时到第一档上限之间的小时数
	Band125Hours float64 `json:"band125Hours"` // 超过第一档上限的小时数
	PremiumHours float64 `json:"premiumHours"` // 按加班费率折算出的额外小时数
}

type RestPeriodAnalysis struct {
	EmployeeID             string              `json:"employeeID"`
	EmployeeName           string              `json:"employeeName"`
	DailyRestValid         bool                `json:"dailyRestValid"`
	WeeklyRestValid        bool                `json:"weeklyRestValid"`
	ConsecutiveWorkingDays int                 `json:"consecutiveWorkingDays"`
	WeeklyWorkingHours     float64             `json:"weeklyWorkingHours"`
	Overtime               WeeklyOvertime      `json:"overtime"`
	AbsenceHours           float64             `json:"absenceHours"`
	Violations             []LaborLawViolation `json:"violations"`
	Suggestions            []string            `json:"suggestions"`
}
