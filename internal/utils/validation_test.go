package utils

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClock(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:30", false},
		{"12:60", false},
		{"", false},
		{"midi", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsClock(c.input), "IsClock(%q)", c.input)
	}
}

func TestHHMMValidationTag(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, RegisterValidations(v))

	ok := domain.Shift{ID: "s", EmployeeID: "e", Day: 2, Start: "10:00", End: "15:00"}
	assert.NoError(t, v.Struct(ok))

	marker := domain.Shift{ID: "s", EmployeeID: "e", Day: 6, Status: domain.ShiftStatusWeeklyRest}
	assert.NoError(t, v.Struct(marker))

	badClock := domain.Shift{ID: "s", EmployeeID: "e", Day: 2, Start: "25:00", End: "15:00"}
	assert.Error(t, v.Struct(badClock))

	badDay := domain.Shift{ID: "s", EmployeeID: "e", Day: 7, Start: "10:00", End: "15:00"}
	assert.Error(t, v.Struct(badDay))

	badStatus := domain.Shift{ID: "s", EmployeeID: "e", Day: 1, Status: "VACANCES"}
	assert.Error(t, v.Struct(badStatus))
}

func TestParseWeekStart(t *testing.T) {
	monday, err := ParseWeekStart("2025-01-27", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), monday)

	_, err = ParseWeekStart("2025-01-28", nil)
	assert.ErrorIs(t, err, ErrWeekStartNotMonday)

	_, err = ParseWeekStart("27/01/2025", nil)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestParseWeekSchedule(t *testing.T) {
	end := "2025-06-30"
	payload := &domain.WeekSchedulePayload{
		WeekStartDate: "2025-01-27",
		Employees: []domain.EmployeePayload{
			{ID: "e1", FirstName: "Léa", LastName: "Moreau", StartDate: "2024-09-01", WeeklyHours: 35},
			{ID: "e2", FirstName: "Hugo", LastName: "Roux", StartDate: "2025-01-01", EndDate: &end, WeeklyHours: 24},
		},
		Shifts: []domain.Shift{
			{ID: "s1", EmployeeID: "e1", Day: 0, Start: "10:00", End: "15:00"},
			{ID: "s2", EmployeeID: "e2", Day: 6, Status: domain.ShiftStatusWeeklyRest},
		},
	}

	employees, shifts, weekStart, err := ParseWeekSchedule(payload, nil)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), employees[0].StartDate)
	assert.Nil(t, employees[0].EndDate)
	require.NotNil(t, employees[1].EndDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *employees[1].EndDate)
	assert.Len(t, shifts, 2)
	assert.Equal(t, time.Monday, weekStart.Weekday())

	payload.Shifts = append(payload.Shifts, domain.Shift{ID: "s3", EmployeeID: "ghost", Day: 1, Start: "10:00", End: "12:00"})
	_, _, _, err = ParseWeekSchedule(payload, nil)
	assert.ErrorIs(t, err, ErrUnknownEmployee)

	payload.Shifts = payload.Shifts[:2]
	early := "2024-12-31"
	payload.Employees[1].EndDate = &early
	_, _, _, err = ParseWeekSchedule(payload, nil)
	assert.ErrorIs(t, err, ErrContractDates)
}

func TestGenerateRandomWeek(t *testing.T) {
	employee := GenerateRandomEmployee("r1", "example.fr")
	employee.ID = "e1"

	for _, workDays := range []int{0, 3, 5, 7, 9} {
		shifts := GenerateRandomWeek(employee, workDays)

		days := make(map[int32]bool)
		for _, s := range shifts {
			assert.Equal(t, "e1", s.EmployeeID)
			assert.True(t, s.Day >= 0 && s.Day <= 6)
			if s.IsWorking() {
				assert.True(t, IsClock(s.Start) && IsClock(s.End))
				days[s.Day] = true
			}
		}
		assert.Len(t, days, min(workDays, 7))
	}
}

func TestMondayOf(t *testing.T) {
	sunday := time.Date(2025, 2, 2, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), MondayOf(sunday))

	monday := time.Date(2025, 1, 27, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), MondayOf(monday))
}
