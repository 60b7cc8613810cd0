package compliance

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

var dayNames = [7]string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}

func dayName(day int32) string {
	if !validDay(day) {
		return printer.Sprintf("jour %d", day)
	}
	return dayNames[day]
}

func formatHours(h float64) string {
	return printer.Sprintf("%.1f h", h)
}

// formatDuration 按法语习惯输出时长，例如 "10 h 59"，整点时省略分钟
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int(d.Round(time.Minute) / time.Minute)
	if total%60 == 0 {
		return fmt.Sprintf("%s%d h", sign, total/60)
	}
	return fmt.Sprintf("%s%d h %02d", sign, total/60, total%60)
}

func formatMinutes(m float64) string {
	return printer.Sprintf("%.0f min", m)
}

func formatClock(t time.Time) string {
	return t.Format("15:04")
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
