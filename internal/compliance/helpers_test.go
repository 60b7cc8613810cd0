package compliance

import (
	"fmt"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// 2025-01-27 是周一
var testWeekStart = time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC)

func testEmployee(id string) domain.Employee {
	return domain.Employee{
		ID:          id,
		FirstName:   "Camille",
		LastName:    "Durand",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WeeklyHours: 35,
	}
}

func work(id string, day int32, start, end string) domain.Shift {
	return domain.Shift{ID: id, EmployeeID: "emp-1", Day: day, Start: start, End: end}
}

func marker(id string, day int32, status domain.ShiftStatus) domain.Shift {
	return domain.Shift{ID: id, EmployeeID: "emp-1", Day: day, Status: status}
}

// daysShifts 在给定的每一天生成一个 start-end 的班次
func daysShifts(days []int32, start, end string) []domain.Shift {
	shifts := make([]domain.Shift, 0, len(days))
	for _, d := range days {
		shifts = append(shifts, work(fmt.Sprintf("s%d", d), d, start, end))
	}
	return shifts
}

func ofType(violations []domain.LaborLawViolation, t domain.ViolationType) []domain.LaborLawViolation {
	var result []domain.LaborLawViolation
	for _, v := range violations {
		if v.Type == t {
			result = append(result, v)
		}
	}
	return result
}
