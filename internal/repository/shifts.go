package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// GetShiftsByWeek 返回某餐厅某一周（weekStart 为周一）的所有班次，包括状态班次
func (r *Repository) GetShiftsByWeek(ctx context.Context, restaurantID string, weekStart time.Time) ([]domain.Shift, error) {
	query := `
		SELECT id, employee_id, day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), status
		FROM shifts
		WHERE restaurant_id = $1 AND week_start_date = $2
		ORDER BY employee_id, day_of_week, start_time NULLS LAST, id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, restaurantID, weekStart.Format(time.DateOnly))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0)
	for rows.Next() {
		var row struct {
			id         string
			employeeID string
			day        int32
			start      sql.NullString
			end        sql.NullString
			status     sql.NullString
		}

		dst := []any{&row.id, &row.employeeID, &row.day, &row.start, &row.end, &row.status}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		shifts = append(shifts, domain.Shift{
			ID:           row.id,
			EmployeeID:   row.employeeID,
			RestaurantID: restaurantID,
			Day:          row.day,
			Start:        row.start.String,
			End:          row.end.String,
			Status:       domain.ShiftStatus(row.status.String),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(ctx context.Context, weekStart time.Time, shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (restaurant_id, employee_id, week_start_date, day_of_week, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::time, NULLIF($6, '')::time, NULLIF($7, ''))
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{shift.RestaurantID, shift.EmployeeID, weekStart.Format(time.DateOnly), shift.Day, shift.Start, shift.End, string(shift.Status)}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID)
}
