package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/compliance"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCompliancePDF(t *testing.T) {
	weekStart := time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)
	employees := []domain.Employee{{
		ID:          "emp-1",
		FirstName:   "Hélène",
		LastName:    "Marchand",
		StartDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		WeeklyHours: 39,
	}}
	shifts := []domain.Shift{
		{ID: "s1", EmployeeID: "emp-1", Day: 0, Start: "10:00", End: "23:00"},
		{ID: "s2", EmployeeID: "emp-1", Day: 1, Start: "07:00", End: "15:00"},
	}

	rep := compliance.New(nil, employees, shifts, weekStart).Report()
	require.NotEmpty(t, rep.Violations)

	pdf, err := RenderCompliancePDF(&rep, "Brasserie du Port")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderCompliancePDFWithoutViolations(t *testing.T) {
	rep := &domain.ComplianceReport{
		WeekStartDate:  "2025-01-27",
		RuleSetVersion: "FR-HCR-2025.1",
		IsCompliant:    true,
	}

	pdf, err := RenderCompliancePDF(rep, "")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
