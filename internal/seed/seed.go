package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/restaurant-ops/labor-compliance/backend/internal/repository"
	"github.com/restaurant-ops/labor-compliance/backend/internal/utils"
	"github.com/xuri/excelize/v2"
)

// DayColumnMap 对应排班导出表中的“jour”列，CSV 和 Excel 共用同一套表头
var DayColumnMap = map[string]int32{
	"lundi":    0,
	"mardi":    1,
	"mercredi": 2,
	"jeudi":    3,
	"vendredi": 4,
	"samedi":   5,
	"dimanche": 6,
}

var csvHeaders = []string{"employee_id", "jour", "debut", "fin", "statut"}

var ErrInvalidHeader = errors.New("en-tête CSV invalide, attendu : " + strings.Join(csvHeaders, ","))

type DemoOptions struct {
	RestaurantName string
	ManagerName    string
	ManagerEmail   string
	Timezone       string
	EmailDomain    string
	Employees      int
	WeekStart      time.Time
}

// SeedDemoRestaurant 插入一个餐厅、若干随机员工以及他们一周的班次
func SeedDemoRestaurant(ctx context.Context, repo *repository.Repository, opts DemoOptions) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{
		Name:         opts.RestaurantName,
		ManagerName:  opts.ManagerName,
		ManagerEmail: opts.ManagerEmail,
		Timezone:     opts.Timezone,
	}
	if err := repo.CreateRestaurant(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("无法插入餐厅: %w", err)
	}

	shiftCount := 0
	for i := 0; i < opts.Employees; i++ {
		employee := utils.GenerateRandomEmployee(restaurant.ID, opts.EmailDomain)
		if err := repo.CreateEmployee(ctx, employee); err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}

		// 偶尔排满 6 到 7 天，方便演示违规
		for _, shift := range utils.GenerateRandomWeek(employee, 4+i%4) {
			if err := repo.CreateShift(ctx, opts.WeekStart, &shift); err != nil {
				slog.Error("无法插入班次", "employeeID", employee.ID, "error", err)
				continue
			}
			shiftCount++
		}
	}

	slog.Info("插入演示数据成功", "restaurantID", restaurant.ID, "employees", opts.Employees, "shifts", shiftCount)
	return restaurant, nil
}

// ParseWeekCSV 解析 CSV 格式的排班导出表，每行是一个班次或一个状态标记
func ParseWeekCSV(r io.Reader, restaurantID string, validate *validator.Validate) ([]domain.Shift, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取 CSV 失败: %w", err)
	}
	return parseWeekRows(rows, restaurantID, validate)
}

// ParseWeekXLSX 解析 Excel 格式的排班导出表，只读取第一个工作表
func ParseWeekXLSX(r io.Reader, restaurantID string, validate *validator.Validate) ([]domain.Shift, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return parseWeekRows(rows, restaurantID, validate)
}

func parseWeekRows(rows [][]string, restaurantID string, validate *validator.Validate) ([]domain.Shift, error) {
	if len(rows) == 0 || len(rows[0]) != len(csvHeaders) {
		return nil, ErrInvalidHeader
	}
	for i, header := range rows[0] {
		if strings.TrimSpace(strings.ToLower(header)) != csvHeaders[i] {
			return nil, ErrInvalidHeader
		}
	}

	shifts := []domain.Shift{}
	for i, record := range rows[1:] {
		line := i + 2
		if len(record) > len(csvHeaders) {
			return nil, fmt.Errorf("ligne %d : trop de colonnes", line)
		}
		// Excel 会省略行尾的空单元格
		for len(record) < len(csvHeaders) {
			record = append(record, "")
		}

		day, ok := DayColumnMap[strings.ToLower(strings.TrimSpace(record[1]))]
		if !ok {
			return nil, fmt.Errorf("ligne %d : jour inconnu %q", line, record[1])
		}

		shift := domain.Shift{
			// 导入时还没有数据库 ID，用行号占位以通过校验
			ID:           fmt.Sprintf("ligne-%d", line),
			EmployeeID:   strings.TrimSpace(record[0]),
			RestaurantID: restaurantID,
			Day:          day,
			Start:        strings.TrimSpace(record[2]),
			End:          strings.TrimSpace(record[3]),
			Status:       domain.ShiftStatus(strings.ToUpper(strings.TrimSpace(record[4]))),
		}
		if err := validate.Struct(shift); err != nil {
			return nil, fmt.Errorf("ligne %d : %w", line, err)
		}
		if shift.Status == domain.ShiftStatusNone && !shift.IsWorking() {
			return nil, fmt.Errorf("ligne %d : un service doit avoir un début et une fin, ou un statut", line)
		}

		shifts = append(shifts, shift)
	}

	return shifts, nil
}

// NewImportValidator 返回导入排班时使用的校验器
func NewImportValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := utils.RegisterValidations(validate); err != nil {
		return nil, err
	}
	return validate, nil
}

// ImportWeek 把解析好的班次写入数据库，员工必须已经存在
func ImportWeek(ctx context.Context, repo *repository.Repository, restaurantID string, weekStart time.Time, shifts []domain.Shift) (int, error) {
	employees, err := repo.GetEmployeesByRestaurantID(ctx, restaurantID)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e.ID] = true
	}

	cnt := 0
	for _, shift := range shifts {
		if !known[shift.EmployeeID] {
			slog.Warn("跳过未知员工的班次", "employeeID", shift.EmployeeID, "row", shift.ID)
			continue
		}
		row := shift.ID
		if err := repo.CreateShift(ctx, weekStart, &shift); err != nil {
			slog.Error("无法插入班次", "row", row, "error", err)
			continue
		}
		cnt++
	}

	return cnt, nil
}
