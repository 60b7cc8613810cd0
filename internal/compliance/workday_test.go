package compliance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkdaysGroupsAndSortsByDay(t *testing.T) {
	shifts := []domain.Shift{
		work("c", 3, "18:00", "23:00"),
		work("a", 1, "11:00", "15:00"),
		work("b", 1, "09:00", "10:00"),
		marker("rest", 2, domain.ShiftStatusWeeklyRest),
		{ID: "no-end", EmployeeID: "emp-1", Day: 4, Start: "09:00"},
		work("bad-clock", 5, "9h", "17:00"),
		work("bad-day", 9, "09:00", "17:00"),
		{ID: "cp-with-times", EmployeeID: "emp-1", Day: 6, Start: "09:00", End: "17:00", Status: domain.ShiftStatusPaidLeave},
	}

	workdays := BuildWorkdays(shifts, testWeekStart, DefaultOvernightCutoffHour)

	require.Len(t, workdays, 2)
	assert.Equal(t, int32(1), workdays[0].Day)
	assert.Equal(t, int32(3), workdays[1].Day)

	tuesday := workdays[0]
	assert.Equal(t, []string{"b", "a"}, tuesday.ShiftIDs())
	assert.True(t, tuesday.HasCoupure)
	assert.Equal(t, 5*60, tuesday.TotalMinutes)
	assert.InDelta(t, 5.0, tuesday.TotalHours, 1e-9)
	assert.Equal(t, time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC), tuesday.FirstShiftStart)
	assert.Equal(t, time.Date(2025, 1, 28, 15, 0, 0, 0, time.UTC), tuesday.LastShiftEnd)

	assert.False(t, workdays[1].HasCoupure)
}

func TestBuildWorkdaysOvernightShift(t *testing.T) {
	workdays := BuildWorkdays([]domain.Shift{work("night", 2, "22:00", "02:00")}, testWeekStart, DefaultOvernightCutoffHour)

	require.Len(t, workdays, 1)
	wd := workdays[0]
	assert.Equal(t, time.Date(2025, 1, 29, 22, 0, 0, 0, time.UTC), wd.FirstShiftStart)
	// 结束时间落在第 3 天的日期上
	assert.Equal(t, time.Date(2025, 1, 30, 2, 0, 0, 0, time.UTC), wd.LastShiftEnd)
	assert.InDelta(t, 4.0, wd.TotalHours, 1e-9)
}

func TestBuildWorkdaysCutoffIsConfigurable(t *testing.T) {
	shifts := []domain.Shift{work("early", 0, "04:00", "07:00")}

	// 默认 06:00 时班次跨过分界点，留在当天；分界点改成 08:00 后整体落到第二天凌晨
	withDefault := BuildWorkdays(shifts, testWeekStart, DefaultOvernightCutoffHour)
	withLaterCutoff := BuildWorkdays(shifts, testWeekStart, 8)

	assert.Equal(t, time.Date(2025, 1, 27, 4, 0, 0, 0, time.UTC), withDefault[0].FirstShiftStart)
	assert.Equal(t, time.Date(2025, 1, 27, 7, 0, 0, 0, time.UTC), withDefault[0].LastShiftEnd)
	assert.Equal(t, time.Date(2025, 1, 28, 4, 0, 0, 0, time.UTC), withLaterCutoff[0].FirstShiftStart)
	assert.Equal(t, time.Date(2025, 1, 28, 7, 0, 0, 0, time.UTC), withLaterCutoff[0].LastShiftEnd)
	assert.Equal(t, 3*60, withDefault[0].TotalMinutes)
	assert.Equal(t, 3*60, withLaterCutoff[0].TotalMinutes)
}

func TestBuildWorkdaysEarlyOpenerStaysOnItsDay(t *testing.T) {
	workdays := BuildWorkdays([]domain.Shift{work("opener", 1, "05:30", "13:00")}, testWeekStart, DefaultOvernightCutoffHour)

	require.Len(t, workdays, 1)
	wd := workdays[0]
	assert.Equal(t, time.Date(2025, 1, 28, 5, 30, 0, 0, time.UTC), wd.FirstShiftStart)
	assert.Equal(t, time.Date(2025, 1, 28, 13, 0, 0, 0, time.UTC), wd.LastShiftEnd)
	assert.Equal(t, 7*60+30, wd.TotalMinutes)
}

func TestBuildWorkdaysOrdersAfterMidnightContinuation(t *testing.T) {
	// 03:00-05:00 是 22:00-02:00 夜班之后的凌晨班次，按钟点排序会排到前面
	workdays := BuildWorkdays([]domain.Shift{
		work("n2", 2, "03:00", "05:00"),
		work("n1", 2, "22:00", "02:00"),
	}, testWeekStart, DefaultOvernightCutoffHour)

	require.Len(t, workdays, 1)
	wd := workdays[0]
	assert.Equal(t, []string{"n1", "n2"}, wd.ShiftIDs())
	assert.Equal(t, time.Date(2025, 1, 29, 22, 0, 0, 0, time.UTC), wd.FirstShiftStart)
	assert.Equal(t, time.Date(2025, 1, 30, 5, 0, 0, 0, time.UTC), wd.LastShiftEnd)
	assert.Equal(t, 6*60, wd.TotalMinutes)
}

func TestBuildWorkdaysLastEndIsLatestEnd(t *testing.T) {
	// 后开始的短班次先结束
	workdays := BuildWorkdays([]domain.Shift{
		work("long", 0, "09:00", "18:00"),
		work("short", 0, "10:00", "12:00"),
	}, testWeekStart, DefaultOvernightCutoffHour)

	require.Len(t, workdays, 1)
	assert.Equal(t, []string{"long", "short"}, workdays[0].ShiftIDs())
	assert.Equal(t, time.Date(2025, 1, 27, 18, 0, 0, 0, time.UTC), workdays[0].LastShiftEnd)
}

func TestBuildWorkdaysEmptyInput(t *testing.T) {
	assert.Empty(t, BuildWorkdays(nil, testWeekStart, DefaultOvernightCutoffHour))
}

func TestWorkdayHoursMatchShiftDurations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clock := func() string {
		return time.Date(2000, 1, 1, rng.Intn(24), rng.Intn(4)*15, 0, 0, time.UTC).Format("15:04")
	}

	for round := 0; round < 50; round++ {
		var shifts []domain.Shift
		direct := 0.0
		n := rng.Intn(12)
		for i := 0; i < n; i++ {
			s := work(string(rune('a'+i)), int32(rng.Intn(7)), clock(), clock())
			shifts = append(shifts, s)

			start, _ := time.Parse("15:04", s.Start)
			end, _ := time.Parse("15:04", s.End)
			d := end.Sub(start).Hours()
			if d < 0 {
				d += 24
			}
			direct += d
		}

		fromWorkdays := 0.0
		for _, wd := range BuildWorkdays(shifts, testWeekStart, DefaultOvernightCutoffHour) {
			fromWorkdays += wd.TotalHours
			assert.False(t, wd.LastShiftEnd.Before(wd.FirstShiftStart), "round %d day %d", round, wd.Day)
			for j, s := range wd.Shifts {
				assert.False(t, s.EndsAt.Before(s.StartsAt), "round %d shift %s", round, s.Shift.ID)
				if j > 0 {
					assert.False(t, s.StartsAt.Before(wd.Shifts[j-1].StartsAt), "round %d shift %s", round, s.Shift.ID)
				}
			}
		}
		assert.InDelta(t, direct, fromWorkdays, 1e-9, "round %d", round)
	}
}
