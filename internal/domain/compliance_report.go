package domain

// ComplianceReport 是一次周合规检查的完整结果，API、缓存、PDF 和命令行共用
type ComplianceReport struct {
	RestaurantID   string               `json:"restaurantID,omitempty"`
	WeekStartDate  string               `json:"weekStartDate"`
	RuleSetVersion string               `json:"ruleSetVersion"`
	Analyses       []RestPeriodAnalysis `json:"analyses"`
	Violations     []LaborLawViolation  `json:"violations"`
	IsCompliant    bool                 `json:"isCompliant"`
}
