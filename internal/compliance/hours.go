package compliance

import (
	"fmt"
	"math"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// CheckMaxDailyHours 每个工作日的总工时不能超过上限（Art. L3121-18）
func CheckMaxDailyHours(emp *domain.Employee, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	var violations []domain.LaborLawViolation
	maxMinutes := rules.MaxDailyHours * 60

	for i := range workdays {
		wd := &workdays[i]
		if float64(wd.TotalMinutes) <= maxMinutes {
			continue
		}
		v := newViolation(rules, emp, domain.ViolationMaxDailyHours, domain.SeverityCritical, fmt.Sprint(wd.Day), wd.ShiftIDs())
		v.Day = dayPtr(wd.Day)
		v.Message = printer.Sprintf(
			"Durée de travail de %s le %s, au-delà du maximum de %s par jour.",
			formatHours(wd.TotalHours), dayName(wd.Day), formatHours(rules.MaxDailyHours),
		)
		v.Suggestion = printer.Sprintf(
			"Réduire la journée de %s d'au moins %s ou répartir un service sur un autre jour.",
			dayName(wd.Day), formatHours(wd.TotalHours-rules.MaxDailyHours),
		)
		violations = append(violations, v)
	}

	return violations
}

// CheckMaxWeeklyHours 一周的总工时不能超过上限（Art. L3121-20）
func CheckMaxWeeklyHours(emp *domain.Employee, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	minutes := workdaysMinutes(workdays)
	if float64(minutes) <= rules.MaxWeeklyHours*60 {
		return nil
	}

	var shiftIDs []string
	for i := range workdays {
		shiftIDs = append(shiftIDs, workdays[i].ShiftIDs()...)
	}

	hours := float64(minutes) / 60
	v := newViolation(rules, emp, domain.ViolationMaxWeeklyHours, domain.SeverityCritical, "week", shiftIDs)
	v.Message = printer.Sprintf(
		"%s travaillées dans la semaine, au-delà du maximum absolu de %s.",
		formatHours(hours), formatHours(rules.MaxWeeklyHours),
	)
	v.Suggestion = printer.Sprintf(
		"Retirer au moins %s de services sur la semaine ou les confier à un autre salarié.",
		formatHours(hours-rules.MaxWeeklyHours),
	)
	return []domain.LaborLawViolation{v}
}

// WeeklyOvertime 计算信息性的加班分段
func WeeklyOvertime(weeklyHours float64, rules *RuleSet) domain.WeeklyOvertime {
	firstBandWidth := rules.OvertimeFirstBandEnd - rules.LegalWeeklyHours
	band110 := math.Min(math.Max(weeklyHours-rules.LegalWeeklyHours, 0), firstBandWidth)
	band125 := math.Max(weeklyHours-rules.OvertimeFirstBandEnd, 0)

	return domain.WeeklyOvertime{
		Band110Hours: band110,
		Band125Hours: band125,
		PremiumHours: band110*(rules.OvertimeFirstBandRate-1) + band125*(rules.OvertimeAboveBandRate-1),
	}
}

// AbsenceHours 按合同周工时估算带薪缺勤天数对应的小时数
func AbsenceHours(emp *domain.Employee, shifts []domain.Shift, rules *RuleSet) float64 {
	days := make(map[int32]bool)
	for _, shift := range shifts {
		if shift.Status.IsPaidAbsence() && validDay(shift.Day) {
			days[shift.Day] = true
		}
	}
	if len(days) == 0 || rules.WorkingDaysPerWeek <= 0 {
		return 0
	}
	return float64(len(days)) * emp.WeeklyHours / float64(rules.WorkingDaysPerWeek)
}
