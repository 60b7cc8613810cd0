package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

var commonFirstNames = []string{
	"Camille", "Léa", "Manon", "Chloé", "Inès", "Sarah", "Julie", "Emma", "Lucie", "Anaïs",
	"Lucas", "Hugo", "Thomas", "Nathan", "Théo", "Louis", "Maxime", "Karim", "Yanis", "Antoine",
}

var commonLastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau",
	"Simon", "Laurent", "Lefebvre", "Michel", "Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier",
}

// 常见的 CHR 班次组合：午市、晚市、两头班、全天
var shiftPatterns = [][][2]string{
	{{"10:00", "15:00"}},
	{{"18:00", "23:30"}},
	{{"10:30", "14:30"}, {"18:30", "23:00"}},
	{{"09:00", "17:00"}},
	{{"17:00", "01:00"}},
}

var contractHours = []float64{24, 35, 35, 35, 39, 42}

func GenerateRandomEmployee(restaurantID string, emailDomainName string) *domain.Employee {
	firstName := commonFirstNames[rand.Intn(len(commonFirstNames))]
	lastName := commonLastNames[rand.Intn(len(commonLastNames))]

	start := time.Now().AddDate(0, -rand.Intn(36), -rand.Intn(28))
	employee := &domain.Employee{
		RestaurantID: restaurantID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        fmt.Sprintf("%s.%s%d@%s", asciiLower(firstName), asciiLower(lastName), rand.Intn(100), emailDomainName),
		StartDate:    time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		WeeklyHours:  contractHours[rand.Intn(len(contractHours))],
	}

	// 大约五分之一是 CDD，有合同结束日期
	if rand.Intn(5) == 0 {
		end := time.Now().AddDate(0, rand.Intn(6), rand.Intn(28))
		endDate := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
		employee.EndDate = &endDate
	}

	return employee
}

func asciiLower(s string) string {
	replacer := strings.NewReplacer("é", "e", "è", "e", "ë", "e", "ï", "i", "î", "i", "ç", "c", "à", "a", "É", "e")
	return strings.ToLower(replacer.Replace(s))
}

// GenerateRandomWeek 为员工生成一周的班次，workDays 为工作天数，其余天里随机放一个周休标记
func GenerateRandomWeek(employee *domain.Employee, workDays int) []domain.Shift {
	days := []int32{0, 1, 2, 3, 4, 5, 6}
	rand.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })

	workDays = max(0, min(workDays, len(days)))
	shifts := make([]domain.Shift, 0, workDays*2+1)

	for _, day := range days[:workDays] {
		pattern := shiftPatterns[rand.Intn(len(shiftPatterns))]
		for _, p := range pattern {
			shifts = append(shifts, domain.Shift{
				EmployeeID:   employee.ID,
				RestaurantID: employee.RestaurantID,
				Day:          day,
				Start:        p[0],
				End:          p[1],
			})
		}
	}

	if workDays < len(days) && rand.Intn(2) == 0 {
		shifts = append(shifts, domain.Shift{
			EmployeeID:   employee.ID,
			RestaurantID: employee.RestaurantID,
			Day:          days[workDays],
			Status:       domain.ShiftStatusWeeklyRest,
		})
	}

	return shifts
}

// MondayOf 返回 t 所在周的周一零点
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}
