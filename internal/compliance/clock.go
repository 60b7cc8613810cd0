package compliance

import (
	"time"
)

const minutesPerDay = 24 * 60

// parseClock 把 "HH:MM" 解析为当天的分钟数
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// shiftMinutes 计算班次时长，结束早于开始时视为跨过午夜
func shiftMinutes(start, end int) int {
	d := end - start
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// weekDate 返回周一之后第 day 天的零点
func weekDate(weekStart time.Time, day int32) time.Time {
	y, m, d := weekStart.Date()
	return time.Date(y, m, d+int(day), 0, 0, 0, 0, weekStart.Location())
}

// anchorShift 把某天的班次换算成绝对时间。结束时间总是开始时间加上时长，
// 跨过午夜的班次自然落到第二天。开始时间早于 cutoffHour 且整个班次在
// cutoffHour 之前结束时，视为前一晚夜班的延续，整体落到第二天的凌晨；
// 跨过 cutoffHour 的早班（例如 05:30-13:00）留在当天。
func anchorShift(weekStart time.Time, day int32, start, minutes, cutoffHour int) (time.Time, time.Time) {
	offset := int(day)
	cutoff := cutoffHour * 60
	if start < cutoff && start+minutes <= cutoff {
		offset++
	}
	y, m, d := weekStart.Date()
	startsAt := time.Date(y, m, d+offset, start/60, start%60, 0, 0, weekStart.Location())
	return startsAt, startsAt.Add(time.Duration(minutes) * time.Minute)
}

// civilDate 只保留日历日期，用于跨时区比较合同起止日期
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekdayIndex 返回以周一为 0 的星期序号
func weekdayIndex(t time.Time) int32 {
	return int32((int(t.Weekday()) + 6) % 7)
}

func validDay(day int32) bool {
	return day >= 0 && day <= 6
}
