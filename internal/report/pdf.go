package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

var severityLabels = map[domain.Severity]string{
	domain.SeverityCritical: "CRITIQUE",
	domain.SeverityWarning:  "AVERTISSEMENT",
	domain.SeverityInfo:     "INFO",
}

var analysisColumns = []struct {
	title string
	width float64
}{
	{"Salarié", 52},
	{"Heures", 20},
	{"Repos quotidien", 30},
	{"Repos hebdo", 26},
	{"Jours consécutifs", 32},
	{"Heures sup.", 22},
}

func yesNo(ok bool) string {
	if ok {
		return "OK"
	}
	return "NON"
}

// RenderCompliancePDF 生成一周合规检查的 PDF 报告，供负责人下载或存档
func RenderCompliancePDF(rep *domain.ComplianceReport, restaurantName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// 内置字体使用 cp1252 编码，需要转换法语的重音字符
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Rapport de conformité au droit du travail"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if restaurantName != "" {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Établissement : %s", restaurantName)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("Semaine du : %s", rep.WeekStartDate)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Règles appliquées : %s", rep.RuleSetVersion)))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	status := "Planning conforme"
	if !rep.IsCompliant {
		status = "Planning NON conforme"
	}
	pdf.Cell(0, 7, tr(status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range analysisColumns {
		pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, a := range rep.Analyses {
		cells := []string{
			a.EmployeeName,
			fmt.Sprintf("%.1f", a.WeeklyWorkingHours),
			yesNo(a.DailyRestValid),
			yesNo(a.WeeklyRestValid),
			fmt.Sprintf("%d", a.ConsecutiveWorkingDays),
			fmt.Sprintf("%.1f", a.Overtime.Band110Hours+a.Overtime.Band125Hours),
		}
		for i, col := range analysisColumns {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Violations (%d)", len(rep.Violations))))
	pdf.Ln(9)

	if len(rep.Violations) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, tr("Aucune violation détectée."))
		pdf.Ln(6)
	}

	for _, v := range rep.Violations {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("[%s] %s", severityLabels[v.Severity], v.EmployeeName)), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(v.Message), "", "L", false)
		if v.Suggestion != "" {
			pdf.MultiCell(0, 5, tr("Suggestion : "+v.Suggestion), "", "L", false)
		}
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(v.LegalReference), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
