package compliance

import (
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// LongestWorkingStreak 返回本周内连续工作天数的最大值，不跨周计算
func LongestWorkingStreak(workdays []Workday) int {
	longest, current := 0, 0
	for i := range workdays {
		if i > 0 && workdays[i].Day == workdays[i-1].Day+1 {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
	}
	return longest
}

// CheckConsecutiveDays 连续工作天数不能超过上限（Art. L3132-1）
func CheckConsecutiveDays(emp *domain.Employee, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	streak := LongestWorkingStreak(workdays)
	if streak <= rules.MaxConsecutiveDays {
		return nil
	}

	var shiftIDs []string
	for i := range workdays {
		shiftIDs = append(shiftIDs, workdays[i].ShiftIDs()...)
	}

	v := newViolation(rules, emp, domain.ViolationConsecutiveDays, domain.SeverityCritical, "week", shiftIDs)
	v.Message = printer.Sprintf(
		"%d jours de travail consécutifs, au-delà du maximum de %d.",
		streak, rules.MaxConsecutiveDays,
	)
	v.Suggestion = "Libérer au moins un jour dans la série de jours travaillés et le marquer comme repos (REPOS)."
	return []domain.LaborLawViolation{v}
}

// CheckContractPeriod 每个班次（包括状态班次）都必须落在合同起止日期之内
func CheckContractPeriod(emp *domain.Employee, shifts []domain.Shift, weekStart time.Time, rules *RuleSet) []domain.LaborLawViolation {
	var violations []domain.LaborLawViolation

	start := civilDate(emp.StartDate)
	var end time.Time
	if emp.EndDate != nil {
		end = civilDate(*emp.EndDate)
	}

	for _, shift := range shifts {
		if !validDay(shift.Day) {
			continue
		}
		date := civilDate(weekDate(weekStart, shift.Day))

		if date.Before(start) {
			v := newViolation(rules, emp, domain.ViolationContractPeriod, domain.SeverityCritical, "before-start", []string{shift.ID})
			v.Day = dayPtr(shift.Day)
			v.Message = printer.Sprintf(
				"Service planifié le %s %s, avant le début du contrat (%s).",
				dayName(shift.Day), formatDate(date), formatDate(start),
			)
			v.Suggestion = printer.Sprintf("Supprimer ce service ou le planifier à partir du %s.", formatDate(start))
			violations = append(violations, v)
		}

		if emp.EndDate != nil && date.After(end) {
			v := newViolation(rules, emp, domain.ViolationContractPeriod, domain.SeverityCritical, "after-end", []string{shift.ID})
			v.Day = dayPtr(shift.Day)
			v.Message = printer.Sprintf(
				"Service planifié le %s %s, après la fin du contrat (%s).",
				dayName(shift.Day), formatDate(date), formatDate(end),
			)
			v.Suggestion = "Supprimer ce service ou prolonger le contrat avant de le planifier."
			violations = append(violations, v)
		}
	}

	return violations
}
