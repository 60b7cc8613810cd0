package compliance

import (
	"log/slog"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

type Option func(*Validator)

// WithLogger 用于记录被跳过的畸形班次（Debug 级别）
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator 对一周的排班做合规检查。构造后不再修改，每次查询都是纯计算，
// 同样的输入总是得到相同的结果；需要缓存时由调用方负责。
type Validator struct {
	rules     *RuleSet
	employees []domain.Employee
	shifts    map[string][]domain.Shift // employeeID -> shifts，保持输入顺序
	weekStart time.Time
	logger    *slog.Logger
}

func New(rules *RuleSet, employees []domain.Employee, shifts []domain.Shift, weekStart time.Time, opts ...Option) *Validator {
	if rules == nil {
		rules = DefaultRules()
	}

	v := &Validator{
		rules:     rules,
		employees: employees,
		shifts:    make(map[string][]domain.Shift),
		weekStart: weekStart,
		logger:    discardLogger,
	}
	for _, opt := range opts {
		opt(v)
	}

	for _, shift := range shifts {
		v.shifts[shift.EmployeeID] = append(v.shifts[shift.EmployeeID], shift)
	}

	return v
}

func (v *Validator) Rules() *RuleSet {
	return v.rules
}

// ValidateWeeklySchedule 按输入顺序为每个员工返回一份分析结果
func (v *Validator) ValidateWeeklySchedule() []domain.RestPeriodAnalysis {
	analyses := make([]domain.RestPeriodAnalysis, 0, len(v.employees))
	for i := range v.employees {
		analyses = append(analyses, v.analyzeEmployee(&v.employees[i]))
	}
	return analyses
}

// AnalysisFor 返回单个员工的分析结果，员工不存在时第二个返回值为 false
func (v *Validator) AnalysisFor(employeeID string) (domain.RestPeriodAnalysis, bool) {
	for i := range v.employees {
		if v.employees[i].ID == employeeID {
			return v.analyzeEmployee(&v.employees[i]), true
		}
	}
	return domain.RestPeriodAnalysis{}, false
}

func (v *Validator) AllViolations() []domain.LaborLawViolation {
	return FlattenViolations(v.ValidateWeeklySchedule())
}

func (v *Validator) ViolationsBySeverity(severity domain.Severity) []domain.LaborLawViolation {
	return FilterBySeverity(v.AllViolations(), severity)
}

func (v *Validator) CriticalViolations() []domain.LaborLawViolation {
	return v.ViolationsBySeverity(domain.SeverityCritical)
}

// IsScheduleCompliant 只要没有 critical 违规就算合规，warning 和 info 不影响
func (v *Validator) IsScheduleCompliant() bool {
	return IsCompliant(v.AllViolations())
}

func (v *Validator) analyzeEmployee(emp *domain.Employee) domain.RestPeriodAnalysis {
	shifts := v.shifts[emp.ID]
	workdays := buildWorkdays(shifts, v.weekStart, v.rules.OvernightCutoffHour, v.logger)

	var violations []domain.LaborLawViolation
	violations = append(violations, CheckDailyRest(emp, workdays, v.rules)...)
	violations = append(violations, CheckCoupures(emp, workdays, v.rules)...)
	violations = append(violations, CheckWeeklyRest(emp, shifts, workdays, v.rules)...)
	violations = append(violations, CheckMaxDailyHours(emp, workdays, v.rules)...)
	violations = append(violations, CheckMaxWeeklyHours(emp, workdays, v.rules)...)
	violations = append(violations, CheckConsecutiveDays(emp, workdays, v.rules)...)
	violations = append(violations, CheckContractPeriod(emp, shifts, v.weekStart, v.rules)...)
	violations = dedupe(violations)

	weeklyHours := float64(workdaysMinutes(workdays)) / 60

	return domain.RestPeriodAnalysis{
		EmployeeID:             emp.ID,
		EmployeeName:           emp.FullName(),
		DailyRestValid:         !hasType(violations, domain.ViolationDailyRest),
		WeeklyRestValid:        !hasType(violations, domain.ViolationWeeklyRest),
		ConsecutiveWorkingDays: LongestWorkingStreak(workdays),
		WeeklyWorkingHours:     weeklyHours,
		Overtime:               WeeklyOvertime(weeklyHours, v.rules),
		AbsenceHours:           AbsenceHours(emp, shifts, v.rules),
		Violations:             violations,
		Suggestions:            BuildSuggestions(violations, v.rules),
	}
}

// dedupe 去掉 ID 相同的违规（例如输入里重复出现同一个班次），保留第一次出现的
func dedupe(violations []domain.LaborLawViolation) []domain.LaborLawViolation {
	seen := make(map[string]bool, len(violations))
	result := make([]domain.LaborLawViolation, 0, len(violations))
	for _, v := range violations {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		result = append(result, v)
	}
	return result
}

func hasType(violations []domain.LaborLawViolation, t domain.ViolationType) bool {
	for _, v := range violations {
		if v.Type == t {
			return true
		}
	}
	return false
}

func FlattenViolations(analyses []domain.RestPeriodAnalysis) []domain.LaborLawViolation {
	violations := make([]domain.LaborLawViolation, 0)
	for _, a := range analyses {
		violations = append(violations, a.Violations...)
	}
	return violations
}

func FilterBySeverity(violations []domain.LaborLawViolation, severity domain.Severity) []domain.LaborLawViolation {
	result := make([]domain.LaborLawViolation, 0)
	for _, v := range violations {
		if v.Severity == severity {
			result = append(result, v)
		}
	}
	return result
}

func IsCompliant(violations []domain.LaborLawViolation) bool {
	for _, v := range violations {
		if v.Severity == domain.SeverityCritical {
			return false
		}
	}
	return true
}

// Report 只做一次计算，同时给出分析结果、扁平化的违规列表和合规结论
func (v *Validator) Report() domain.ComplianceReport {
	analyses := v.ValidateWeeklySchedule()
	violations := FlattenViolations(analyses)

	return domain.ComplianceReport{
		WeekStartDate:  v.weekStart.Format(time.DateOnly),
		RuleSetVersion: v.rules.Version,
		Analyses:       analyses,
		Violations:     violations,
		IsCompliant:    IsCompliant(violations),
	}
}
