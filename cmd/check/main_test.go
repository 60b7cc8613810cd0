package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planning = `{
  "weekStartDate": "2025-01-27",
  "employees": [
    {"id": "emp-1", "firstName": "Lucas", "lastName": "Bernard", "startDate": "2023-05-02", "weeklyHours": 39}
  ],
  "shifts": [
    {"id": "s1", "employeeID": "emp-1", "day": 0, "start": "16:00", "end": "23:45"},
    {"id": "s2", "employeeID": "emp-1", "day": 1, "start": "08:00", "end": "12:00"}
  ]
}`

func writePlanning(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "planning.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCheckPrintsJSONReport(t *testing.T) {
	out, err := execute(t, writePlanning(t, planning))
	require.NoError(t, err)

	var rep domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "2025-01-27", rep.WeekStartDate)
	assert.False(t, rep.IsCompliant)
	require.NotEmpty(t, rep.Violations)
	assert.Equal(t, domain.ViolationDailyRest, rep.Violations[0].Type)
}

func TestCheckStrictFailsOnViolations(t *testing.T) {
	_, err := execute(t, "--strict", writePlanning(t, planning))
	assert.ErrorIs(t, err, errNotCompliant)
}

func TestCheckTextFormat(t *testing.T) {
	out, err := execute(t, "--format", "text", writePlanning(t, planning))
	require.NoError(t, err)
	assert.Contains(t, out, "NON CONFORME")
	assert.Contains(t, out, "Lucas Bernard")
}

func TestCheckPDFFormat(t *testing.T) {
	output := filepath.Join(t.TempDir(), "rapport.pdf")
	_, err := execute(t, "--format", "pdf", "--output", output, writePlanning(t, planning))
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = execute(t, "--format", "pdf", writePlanning(t, planning))
	assert.Error(t, err)
}

func TestCheckUsesRuleFile(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("version: LOCAL-1\nmin_daily_rest_hours: 8\n"), 0o600))

	out, err := execute(t, "--rules", rules, "--strict", writePlanning(t, planning))
	require.NoError(t, err)

	var rep domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "LOCAL-1", rep.RuleSetVersion)
	assert.True(t, rep.IsCompliant)
}

func TestCheckRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad severity", []string{"--severity", "fatal", writePlanning(t, planning)}},
		{"bad format", []string{"--format", "xml", writePlanning(t, planning)}},
		{"missing file", []string{filepath.Join(t.TempDir(), "absent.json")}},
		{"bad json", []string{writePlanning(t, "{")}},
		{"bad clock", []string{writePlanning(t, `{"weekStartDate":"2025-01-27","employees":[],"shifts":[{"id":"s1","employeeID":"e","day":0,"start":"7h","end":"12:00"}]}`)}},
		{"no argument", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCheckXLSXFormat(t *testing.T) {
	output := filepath.Join(t.TempDir(), "rapport.xlsx")
	_, err := execute(t, "--format", "xlsx", "--output", output, writePlanning(t, planning))
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	// xlsx 是一个 zip 包
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}
