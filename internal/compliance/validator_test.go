package compliance

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWeek() ([]domain.Employee, []domain.Shift) {
	alice := testEmployee("alice")
	alice.FirstName, alice.LastName = "Alice", "Martin"
	bob := testEmployee("bob")
	bob.FirstName, bob.LastName = "Bob", "Petit"
	chloe := testEmployee("chloe")

	shifts := []domain.Shift{
		// alice：周一晚班之后周二一早上班，休息不足；周二午休只有 30 分钟
		{ID: "a1", EmployeeID: "alice", Day: 0, Start: "17:00", End: "23:30"},
		{ID: "a2", EmployeeID: "alice", Day: 1, Start: "07:00", End: "11:00"},
		{ID: "a3", EmployeeID: "alice", Day: 1, Start: "11:30", End: "15:00"},
		// bob：只有一个过长的 coupure（info）
		{ID: "b1", EmployeeID: "bob", Day: 2, Start: "09:00", End: "11:00"},
		{ID: "b2", EmployeeID: "bob", Day: 2, Start: "18:00", End: "22:00"},
		{ID: "b3", EmployeeID: "bob", Day: 5, Status: domain.ShiftStatusWeeklyRest},
		// 不存在的员工的班次被忽略
		{ID: "x1", EmployeeID: "ghost", Day: 3, Start: "09:00", End: "23:00"},
	}

	return []domain.Employee{alice, bob, chloe}, shifts
}

func TestValidateWeeklyScheduleReturnsAnalysesInInputOrder(t *testing.T) {
	employees, shifts := sampleWeek()
	analyses := New(DefaultRules(), employees, shifts, testWeekStart).ValidateWeeklySchedule()

	require.Len(t, analyses, 3)
	assert.Equal(t, "alice", analyses[0].EmployeeID)
	assert.Equal(t, "Alice Martin", analyses[0].EmployeeName)
	assert.Equal(t, "bob", analyses[1].EmployeeID)
	assert.Equal(t, "chloe", analyses[2].EmployeeID)

	alice := analyses[0]
	assert.False(t, alice.DailyRestValid)
	assert.True(t, alice.WeeklyRestValid)
	assert.Equal(t, 2, alice.ConsecutiveWorkingDays)
	assert.InDelta(t, 14.0, alice.WeeklyWorkingHours, 1e-9)
	require.Len(t, alice.Violations, 2)
	assert.Equal(t, domain.ViolationDailyRest, alice.Violations[0].Type)
	assert.Equal(t, domain.ViolationCoupureViolation, alice.Violations[1].Type)
	assert.Len(t, alice.Suggestions, 2)

	bob := analyses[1]
	assert.True(t, bob.DailyRestValid)
	require.Len(t, bob.Violations, 1)
	assert.Equal(t, domain.SeverityInfo, bob.Violations[0].Severity)

	chloe := analyses[2]
	assert.True(t, chloe.DailyRestValid)
	assert.True(t, chloe.WeeklyRestValid)
	assert.Zero(t, chloe.WeeklyWorkingHours)
	assert.Empty(t, chloe.Violations)
	assert.Empty(t, chloe.Suggestions)
}

func TestComplianceIgnoresWarningsAndInfos(t *testing.T) {
	employees, shifts := sampleWeek()

	onlyBob := New(DefaultRules(), employees[1:2], shifts, testWeekStart)
	assert.NotEmpty(t, onlyBob.AllViolations())
	assert.True(t, onlyBob.IsScheduleCompliant())
	assert.Empty(t, onlyBob.CriticalViolations())

	everyone := New(DefaultRules(), employees, shifts, testWeekStart)
	assert.False(t, everyone.IsScheduleCompliant())
	assert.Len(t, everyone.ViolationsBySeverity(domain.SeverityCritical), 1)
	assert.Len(t, everyone.ViolationsBySeverity(domain.SeverityWarning), 1)
	assert.Len(t, everyone.ViolationsBySeverity(domain.SeverityInfo), 1)
	assert.Len(t, everyone.AllViolations(), 3)
	assert.Equal(t, len(everyone.CriticalViolations()) == 0, everyone.IsScheduleCompliant())
}

func TestValidateWeeklyScheduleIsDeterministic(t *testing.T) {
	employees, shifts := sampleWeek()
	v := New(DefaultRules(), employees, shifts, testWeekStart)

	first := v.ValidateWeeklySchedule()
	second := v.ValidateWeeklySchedule()
	assert.Equal(t, first, second)

	again := New(DefaultRules(), employees, shifts, testWeekStart).ValidateWeeklySchedule()
	assert.Equal(t, first, again)
}

func TestViolationIDsAreUnique(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.StartDate = testWeekStart.AddDate(0, 0, 10)

	shifts := daysShifts([]int32{0, 1, 2, 3, 4, 5, 6}, "08:00", "20:00")
	violations := New(DefaultRules(), []domain.Employee{emp}, shifts, testWeekStart).AllViolations()

	seen := make(map[string]bool)
	for _, v := range violations {
		assert.False(t, seen[v.ID], "duplicate id %s", v.ID)
		seen[v.ID] = true
	}
	// 7 天超时 + 周超时 + 无周休 + 周日 + 连续 7 天 + 7 个合同外班次
	assert.Len(t, violations, 7+1+1+1+1+7)
}

func TestDuplicateShiftsAreReportedOnce(t *testing.T) {
	emp := testEmployee("emp-1")
	emp.StartDate = testWeekStart.AddDate(0, 0, 3)
	shift := work("dup", 0, "10:00", "14:00")

	violations := New(DefaultRules(), []domain.Employee{emp}, []domain.Shift{shift, shift}, testWeekStart).AllViolations()

	// 两个相同的班次会互相重叠，同时合同期违规只报一次
	assert.Len(t, ofType(violations, domain.ViolationContractPeriod), 1)
	assert.Len(t, ofType(violations, domain.ViolationCoupureViolation), 1)
}

func TestEmployeesAreEvaluatedIndependently(t *testing.T) {
	broken := testEmployee("broken")
	healthy := testEmployee("healthy")
	shifts := []domain.Shift{
		{ID: "x", EmployeeID: "broken", Day: 42, Start: "25:00", End: "nope"},
		{ID: "y", EmployeeID: "broken", Day: -1},
		{ID: "h", EmployeeID: "healthy", Day: 0, Start: "06:00", End: "18:00"},
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	analyses := New(DefaultRules(), []domain.Employee{broken, healthy}, shifts, testWeekStart, WithLogger(logger)).ValidateWeeklySchedule()

	require.Len(t, analyses, 2)
	assert.Empty(t, analyses[0].Violations)
	require.Len(t, analyses[1].Violations, 1)
	assert.Equal(t, domain.ViolationMaxDailyHours, analyses[1].Violations[0].Type)
	assert.Contains(t, buf.String(), "shiftID=x")
}

func TestSuggestionsAreOnePerViolationType(t *testing.T) {
	emp := testEmployee("emp-1")
	shifts := []domain.Shift{
		work("a", 0, "16:00", "23:00"),
		work("b", 1, "07:00", "13:00"),
		work("c", 1, "17:00", "23:00"),
		work("d", 2, "07:00", "12:00"),
	}

	analysis, ok := New(DefaultRules(), []domain.Employee{emp}, shifts, testWeekStart).AnalysisFor("emp-1")
	require.True(t, ok)
	assert.Len(t, ofType(analysis.Violations, domain.ViolationDailyRest), 2)
	require.Len(t, analysis.Suggestions, 2)
	assert.Contains(t, analysis.Suggestions[0], "repos")

	_, ok = New(DefaultRules(), []domain.Employee{emp}, shifts, testWeekStart).AnalysisFor("missing")
	assert.False(t, ok)
}

func TestNewFallsBackToDefaultRules(t *testing.T) {
	v := New(nil, nil, nil, testWeekStart)
	assert.Equal(t, DefaultRules(), v.Rules())
	assert.Empty(t, v.ValidateWeeklySchedule())
	assert.True(t, v.IsScheduleCompliant())
}

func TestReportMatchesQuerySurface(t *testing.T) {
	employees, shifts := sampleWeek()
	v := New(DefaultRules(), employees, shifts, testWeekStart)

	report := v.Report()
	assert.Equal(t, "2025-01-27", report.WeekStartDate)
	assert.Equal(t, DefaultRules().Version, report.RuleSetVersion)
	assert.Equal(t, v.ValidateWeeklySchedule(), report.Analyses)
	assert.Equal(t, v.AllViolations(), report.Violations)
	assert.Equal(t, v.IsScheduleCompliant(), report.IsCompliant)
}
