package repository

import (
	"context"
	"database/sql"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// GetEmployeesByRestaurantID 按姓名排序返回餐厅的所有员工，包括合同已经结束的
func (r *Repository) GetEmployeesByRestaurantID(ctx context.Context, restaurantID string) ([]domain.Employee, error) {
	query := `
		SELECT id, first_name, last_name, email, start_date, end_date, weekly_hours
		FROM employees
		WHERE restaurant_id = $1
		ORDER BY last_name, first_name, id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		employee := domain.Employee{
			RestaurantID: restaurantID,
		}
		var endDate sql.NullTime

		dst := []any{&employee.ID, &employee.FirstName, &employee.LastName, &employee.Email, &employee.StartDate, &endDate, &employee.WeeklyHours}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if endDate.Valid {
			employee.EndDate = &endDate.Time
		}

		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	query := `
		INSERT INTO employees (restaurant_id, first_name, last_name, email, start_date, end_date, weekly_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{employee.RestaurantID, employee.FirstName, employee.LastName, employee.Email, employee.StartDate, employee.EndDate, employee.WeeklyHours}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID)
}
