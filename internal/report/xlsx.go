package report

import (
	"bytes"
	"fmt"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Synthèse"
	violationsSheet = "Violations"
)

var summaryHeaders = []any{"Salarié", "Heures", "Heures sup. 110 %", "Heures sup. 125 %", "Absences (h)", "Repos quotidien", "Repos hebdo", "Jours consécutifs", "Violations"}

var violationHeaders = []any{"Gravité", "Type", "Salarié", "Jour", "Message", "Suggestion", "Référence", "Services"}

var dayLabels = []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

func dayLabel(day *int32) string {
	if day == nil || *day < 0 || int(*day) >= len(dayLabels) {
		return ""
	}
	return dayLabels[*day]
}

// RenderComplianceXLSX 导出为 Excel，一个汇总表加一个违规明细表
func RenderComplianceXLSX(rep *domain.ComplianceReport, restaurantName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// 默认的工作表改名为汇总表
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(violationsSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	criticalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Conformité semaine du %s (%s)", rep.WeekStartDate, rep.RuleSetVersion)
	if restaurantName != "" {
		title = restaurantName + " - " + title
	}
	if err := f.SetCellValue(summarySheet, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}

	status := "Conforme"
	if !rep.IsCompliant {
		status = "Non conforme"
	}
	if err := f.SetCellValue(summarySheet, "A2", status); err != nil {
		return nil, err
	}

	if err := writeRow(f, summarySheet, 4, summaryHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A4", cellName(len(summaryHeaders), 4), headerStyle); err != nil {
		return nil, err
	}
	for i, a := range rep.Analyses {
		row := []any{
			a.EmployeeName,
			a.WeeklyWorkingHours,
			a.Overtime.Band110Hours,
			a.Overtime.Band125Hours,
			a.AbsenceHours,
			yesNo(a.DailyRestValid),
			yesNo(a.WeeklyRestValid),
			a.ConsecutiveWorkingDays,
			len(a.Violations),
		}
		if err := writeRow(f, summarySheet, 5+i, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, violationsSheet, 1, violationHeaders); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(violationsSheet, "A1", cellName(len(violationHeaders), 1), headerStyle); err != nil {
		return nil, err
	}
	for i, v := range rep.Violations {
		rowNum := 2 + i
		row := []any{
			severityLabels[v.Severity],
			string(v.Type),
			v.EmployeeName,
			dayLabel(v.Day),
			v.Message,
			v.Suggestion,
			v.LegalReference,
			fmt.Sprint(v.ShiftIDs),
		}
		if err := writeRow(f, violationsSheet, rowNum, row); err != nil {
			return nil, err
		}
		if v.Severity == domain.SeverityCritical {
			if err := f.SetCellStyle(violationsSheet, cellName(1, rowNum), cellName(1, rowNum), criticalStyle); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(violationsSheet, "E", "F", 60); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, cellName(1, row), &values)
}
