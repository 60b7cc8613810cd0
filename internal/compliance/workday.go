package compliance

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ScheduledShift 是已经锚定到绝对时间的工作班次
type ScheduledShift struct {
	Shift    domain.Shift
	StartsAt time.Time
	EndsAt   time.Time
	Minutes  int
}

// Workday 是某个员工某一天所有工作班次的合并记录
type Workday struct {
	Day             int32
	Shifts          []ScheduledShift // 按开始时间升序
	FirstShiftStart time.Time
	LastShiftEnd    time.Time
	TotalMinutes    int
	TotalHours      float64
	HasCoupure      bool // 当天不止一个班次
}

func (w *Workday) ShiftIDs() []string {
	ids := make([]string, 0, len(w.Shifts))
	for _, s := range w.Shifts {
		ids = append(ids, s.Shift.ID)
	}
	return ids
}

// BuildWorkdays 把一周的班次按天分组成 Workday，无法解析的班次直接跳过
func BuildWorkdays(shifts []domain.Shift, weekStart time.Time, cutoffHour int) []Workday {
	return buildWorkdays(shifts, weekStart, cutoffHour, nil)
}

func buildWorkdays(shifts []domain.Shift, weekStart time.Time, cutoffHour int, logger *slog.Logger) []Workday {
	type parsed struct {
		shift      domain.Shift
		start, end int
	}

	if logger == nil {
		logger = discardLogger
	}

	byDay := make(map[int32][]parsed)
	for _, shift := range shifts {
		if !shift.IsWorking() {
			continue
		}
		if !validDay(shift.Day) {
			logger.Debug("跳过日期越界的班次", "shiftID", shift.ID, "day", shift.Day)
			continue
		}
		start, okStart := parseClock(shift.Start)
		end, okEnd := parseClock(shift.End)
		if !okStart || !okEnd {
			logger.Debug("跳过时间格式错误的班次", "shiftID", shift.ID, "start", shift.Start, "end", shift.End)
			continue
		}
		byDay[shift.Day] = append(byDay[shift.Day], parsed{shift: shift, start: start, end: end})
	}

	days := make([]int32, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	workdays := make([]Workday, 0, len(days))
	for _, day := range days {
		items := byDay[day]

		wd := Workday{
			Day:        day,
			Shifts:     make([]ScheduledShift, 0, len(items)),
			HasCoupure: len(items) > 1,
		}
		for _, item := range items {
			minutes := shiftMinutes(item.start, item.end)
			startsAt, endsAt := anchorShift(weekStart, day, item.start, minutes, cutoffHour)
			wd.Shifts = append(wd.Shifts, ScheduledShift{
				Shift:    item.shift,
				StartsAt: startsAt,
				EndsAt:   endsAt,
				Minutes:  minutes,
			})
			wd.TotalMinutes += minutes
		}

		// 按锚定后的时间排序，凌晨的延续班次排在前一晚的班次之后；
		// 同一开始时间时保持输入顺序，保证结果稳定
		sort.SliceStable(wd.Shifts, func(i, j int) bool { return wd.Shifts[i].StartsAt.Before(wd.Shifts[j].StartsAt) })

		wd.FirstShiftStart = wd.Shifts[0].StartsAt
		wd.LastShiftEnd = wd.Shifts[0].EndsAt
		for _, s := range wd.Shifts[1:] {
			if s.EndsAt.After(wd.LastShiftEnd) {
				wd.LastShiftEnd = s.EndsAt
			}
		}
		wd.TotalHours = float64(wd.TotalMinutes) / 60

		workdays = append(workdays, wd)
	}

	return workdays
}

func workdaysMinutes(workdays []Workday) int {
	total := 0
	for _, wd := range workdays {
		total += wd.TotalMinutes
	}
	return total
}
