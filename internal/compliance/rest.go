package compliance

import (
	"fmt"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func minutesDuration(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}

// CheckDailyRest 检查相邻两个工作日之间的休息时间。
// 休息时间是前一个工作日最后一个班次结束到下一个工作日第一个班次开始之间的间隔，
// 同一天内班次之间的间隔属于 coupure，不在这里检查。
func CheckDailyRest(emp *domain.Employee, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	var violations []domain.LaborLawViolation
	minRest := hoursDuration(rules.MinDailyRestHours)

	for i := 0; i+1 < len(workdays); i++ {
		prev, next := &workdays[i], &workdays[i+1]
		rest := next.FirstShiftStart.Sub(prev.LastShiftEnd)
		if rest >= minRest {
			continue
		}

		shiftIDs := append(prev.ShiftIDs(), next.ShiftIDs()...)
		v := newViolation(rules, emp, domain.ViolationDailyRest, domain.SeverityCritical, fmt.Sprintf("%d-%d", prev.Day, next.Day), shiftIDs)
		v.Day = dayPtr(next.Day)
		v.Message = printer.Sprintf(
			"Repos quotidien insuffisant entre %s (fin à %s) et %s (reprise à %s) : %s au lieu de %s minimum.",
			dayName(prev.Day), formatClock(prev.LastShiftEnd),
			dayName(next.Day), formatClock(next.FirstShiftStart),
			formatDuration(rest), formatDuration(minRest),
		)
		earliest := prev.LastShiftEnd.Add(minRest)
		v.Suggestion = printer.Sprintf(
			"Décaler la prise de poste au plus tôt à %s le %s (%s après la fin de service de %s).",
			formatClock(earliest), dayName(weekdayIndex(earliest)),
			formatDuration(minRest), dayName(prev.Day),
		)
		violations = append(violations, v)
	}

	return violations
}

// CheckCoupures 检查同一天内相邻班次之间的间隔（coupure）是否在 CHR 协议允许的范围内
func CheckCoupures(emp *domain.Employee, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	var violations []domain.LaborLawViolation
	minGap := minutesDuration(rules.MinCoupureMinutes)
	maxGap := minutesDuration(rules.MaxCoupureMinutes)

	for i := range workdays {
		wd := &workdays[i]
		if !wd.HasCoupure {
			continue
		}

		for j := 0; j+1 < len(wd.Shifts); j++ {
			prev, next := &wd.Shifts[j], &wd.Shifts[j+1]
			gap := next.StartsAt.Sub(prev.EndsAt)
			shiftIDs := []string{prev.Shift.ID, next.Shift.ID}

			switch {
			case gap < 0:
				// 重叠的班次不会被拒绝，工时仍然按原样累加
				v := newViolation(rules, emp, domain.ViolationCoupureViolation, domain.SeverityWarning, "overlap", shiftIDs)
				v.Day = dayPtr(wd.Day)
				v.Message = printer.Sprintf(
					"Les services de %s se chevauchent : %s–%s et %s–%s.",
					dayName(wd.Day), prev.Shift.Start, prev.Shift.End, next.Shift.Start, next.Shift.End,
				)
				v.Suggestion = "Corriger les horaires pour que les deux services ne se recouvrent pas."
				violations = append(violations, v)
			case gap < minGap:
				v := newViolation(rules, emp, domain.ViolationCoupureViolation, domain.SeverityWarning, "too-short", shiftIDs)
				v.Day = dayPtr(wd.Day)
				v.Message = printer.Sprintf(
					"Coupure trop courte le %s entre %s et %s : %s (minimum %s).",
					dayName(wd.Day), prev.Shift.End, next.Shift.Start,
					formatMinutes(gap.Minutes()), formatMinutes(rules.MinCoupureMinutes),
				)
				v.Suggestion = printer.Sprintf(
					"Faire reprendre le service à %s au plus tôt, ou fusionner les deux services en un seul.",
					formatClock(prev.EndsAt.Add(minGap)),
				)
				violations = append(violations, v)
			case gap > maxGap:
				v := newViolation(rules, emp, domain.ViolationCoupureViolation, domain.SeverityInfo, "too-long", shiftIDs)
				v.Day = dayPtr(wd.Day)
				v.Message = printer.Sprintf(
					"Coupure très longue le %s entre %s et %s : %s (au-delà de %s).",
					dayName(wd.Day), prev.Shift.End, next.Shift.Start,
					formatMinutes(gap.Minutes()), formatMinutes(rules.MaxCoupureMinutes),
				)
				v.Suggestion = "Vérifier s'il s'agit de deux journées de travail distinctes, ou raccourcir la coupure."
				violations = append(violations, v)
			}
		}
	}

	return violations
}

// CheckWeeklyRest 检查周休：工作 6 天及以上且没有任何周休标记时为严重违规；
// 周日上班但当天没有周休标记时另行给出警告，两个检查互相独立
func CheckWeeklyRest(emp *domain.Employee, shifts []domain.Shift, workdays []Workday, rules *RuleSet) []domain.LaborLawViolation {
	var violations []domain.LaborLawViolation

	restDays := make(map[int32]bool)
	for _, shift := range shifts {
		if shift.Status == domain.ShiftStatusWeeklyRest && validDay(shift.Day) {
			restDays[shift.Day] = true
		}
	}

	if len(workdays) >= rules.WeeklyRestMinWorkedDays && len(restDays) == 0 {
		var shiftIDs []string
		for i := range workdays {
			shiftIDs = append(shiftIDs, workdays[i].ShiftIDs()...)
		}
		v := newViolation(rules, emp, domain.ViolationWeeklyRest, domain.SeverityCritical, "no-rest-day", shiftIDs)
		v.Message = printer.Sprintf(
			"%d jours travaillés sans aucun jour de repos hebdomadaire : le repos de %s consécutives n'est pas assuré.",
			len(workdays), formatHours(rules.MinWeeklyRestHours),
		)
		v.Suggestion = "Marquer au moins un jour de repos (REPOS) dans la semaine et retirer les services de ce jour."
		violations = append(violations, v)
	}

	for i := range workdays {
		wd := &workdays[i]
		if wd.Day != rules.SundayDay || restDays[wd.Day] {
			continue
		}
		v := newViolation(rules, emp, domain.ViolationWeeklyRest, domain.SeverityWarning, "sunday", wd.ShiftIDs())
		v.Day = dayPtr(wd.Day)
		v.Message = fmt.Sprintf("Travail le %s sans repos dominical compensé.", dayName(wd.Day))
		v.Suggestion = "Prévoir le repos hebdomadaire un autre jour et le marquer explicitement (REPOS)."
		violations = append(violations, v)
	}

	return violations
}
