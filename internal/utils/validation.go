package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

var (
	ErrInvalidDateFormat  = errors.New("date invalide, format attendu AAAA-MM-JJ")
	ErrWeekStartNotMonday = errors.New("la semaine doit commencer un lundi")
	ErrContractDates      = errors.New("la date de fin de contrat précède la date de début")
	ErrUnknownEmployee    = errors.New("service rattaché à un salarié inconnu")
)

// IsClock 检查 "HH:MM" 格式（00:00 - 23:59）
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// RegisterValidations 注册自定义的校验标签
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// ParseWeekStart 解析周一的日期，并放到餐厅所在时区的零点
func ParseWeekStart(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("%w: %s", ErrWeekStartNotMonday, s)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseWeekSchedule 把调用方的输入转换为引擎使用的领域类型。
// 调用前应该已经用 validator 做过字段级校验，这里只做跨字段的检查。
func ParseWeekSchedule(payload *domain.WeekSchedulePayload, loc *time.Location) ([]domain.Employee, []domain.Shift, time.Time, error) {
	weekStart, err := ParseWeekStart(payload.WeekStartDate, loc)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	employees := make([]domain.Employee, 0, len(payload.Employees))
	known := make(map[string]bool, len(payload.Employees))
	for i, p := range payload.Employees {
		start, err := ParseDate(p.StartDate)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("salarié %d : %w", i+1, err)
		}

		employee := domain.Employee{
			ID:          p.ID,
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			StartDate:   start,
			WeeklyHours: p.WeeklyHours,
		}

		if p.EndDate != nil && *p.EndDate != "" {
			end, err := ParseDate(*p.EndDate)
			if err != nil {
				return nil, nil, time.Time{}, fmt.Errorf("salarié %d : %w", i+1, err)
			}
			if end.Before(start) {
				return nil, nil, time.Time{}, fmt.Errorf("salarié %d : %w", i+1, ErrContractDates)
			}
			employee.EndDate = &end
		}

		known[p.ID] = true
		employees = append(employees, employee)
	}

	for i, shift := range payload.Shifts {
		if !known[shift.EmployeeID] {
			return nil, nil, time.Time{}, fmt.Errorf("service %d (%s) : %w", i+1, shift.ID, ErrUnknownEmployee)
		}
	}

	return employees, payload.Shifts, weekStart, nil
}
