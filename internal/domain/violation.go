package domain

type ViolationType string

const (
	ViolationDailyRest        ViolationType = "daily_rest"
	ViolationWeeklyRest       ViolationType = "weekly_rest"
	ViolationMaxDailyHours    ViolationType = "max_daily_hours"
	ViolationMaxWeeklyHours   ViolationType = "max_weekly_hours"
	ViolationConsecutiveDays  ViolationType = "consecutive_days"
	ViolationContractPeriod   ViolationType = "contract_period"
	ViolationCoupureViolation ViolationType = "coupure_violation"
)

// ViolationTypes 按固定顺序列出所有违规类型，用于生成稳定的建议列表
var ViolationTypes = []ViolationType{
	ViolationDailyRest,
	ViolationWeeklyRest,
	ViolationMaxDailyHours,
	ViolationMaxWeeklyHours,
	ViolationConsecutiveDays,
	ViolationContractPeriod,
	ViolationCoupureViolation,
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

var SeverityValues = []string{
	string(SeverityCritical),
	string(SeverityWarning),
	string(SeverityInfo),
}

type LaborLawViolation struct {
	ID             string        `json:"id"`
	Type           ViolationType `json:"type"`
	Severity       Severity      `json:"severity"`
	EmployeeID     string        `json:"employeeID"`
	EmployeeName   string        `json:"employeeName"`
	Day            *int32        `json:"day,omitempty"`
	Message        string        `json:"message"`
	Suggestion     string        `json:"suggestion"`
	ShiftIDs       []string      `json:"shiftIDs"`
	LegalReference string        `json:"legalReference"`
}
