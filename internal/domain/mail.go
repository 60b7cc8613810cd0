package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeCriticalViolations = "critical_violations"

type CriticalViolationsMailData struct {
	ManagerName    string              `json:"managerName"`
	RestaurantName string              `json:"restaurantName"`
	WeekStartDate  string              `json:"weekStartDate"`
	RuleSetVersion string              `json:"ruleSetVersion"`
	Violations     []LaborLawViolation `json:"violations"`
}
