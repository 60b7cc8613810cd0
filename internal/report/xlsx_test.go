package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/compliance"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderComplianceXLSX(t *testing.T) {
	weekStart := time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)
	employees := []domain.Employee{{
		ID:          "emp-1",
		FirstName:   "Hugo",
		LastName:    "Lefèvre",
		StartDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		WeeklyHours: 35,
	}}
	shifts := []domain.Shift{
		{ID: "s1", EmployeeID: "emp-1", Day: 2, Start: "09:00", End: "21:00"},
	}
	rep := compliance.New(nil, employees, shifts, weekStart).Report()

	data, err := RenderComplianceXLSX(&rep, "Le Bistrot")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, violationsSheet}, f.GetSheetList())

	name, err := f.GetCellValue(summarySheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Hugo Lefèvre", name)

	rows, err := f.GetRows(violationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(rep.Violations))
	assert.Equal(t, "max_daily_hours", rows[1][1])
	assert.Equal(t, "mercredi", rows[1][3])
}
