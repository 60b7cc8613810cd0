package domain

import "time"

type Employee struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurantID"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"` // 为 nil 表示 CDI，没有合同结束日期
	WeeklyHours  float64    `json:"weeklyHours"`
}

func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	default:
		return e.FirstName + " " + e.LastName
	}
}
