package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/restaurant-ops/labor-compliance/backend/internal/config"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"github.com/restaurant-ops/labor-compliance/backend/internal/repository"
	"github.com/restaurant-ops/labor-compliance/backend/internal/seed"
	"github.com/restaurant-ops/labor-compliance/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var restaurantID string
	var week string
	var file string
	var emailDomain string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入演示餐厅及随机排班, 2: 导入排班 CSV/XLSX)")
	flag.IntVar(&n, "n", 0, "演示餐厅的员工数量，为 0 时使用配置中的默认值")
	flag.StringVar(&restaurantID, "restaurant-id", "", "导入 CSV 时的餐厅 ID")
	flag.StringVar(&week, "week", "", "周一的日期 (YYYY-MM-DD)，为空时使用本周")
	flag.StringVar(&file, "file", "", "要导入的排班文件 (.csv 或 .xlsx)")
	flag.StringVar(&emailDomain, "email-domain", "example.fr", "随机员工的邮箱域名")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	weekStart := utils.MondayOf(time.Now().UTC())
	if week != "" {
		weekStart, err = utils.ParseWeekStart(week, time.UTC)
		if err != nil {
			logger.Error("周一日期非法", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			n = cfg.Seed.EmployeesPerRestaurant
		}
		if _, err := seed.SeedDemoRestaurant(context.Background(), repo, seed.DemoOptions{
			RestaurantName: "Brasserie de démonstration",
			ManagerName:    "Responsable Démo",
			ManagerEmail:   "responsable@" + emailDomain,
			Timezone:       "Europe/Paris",
			EmailDomain:    emailDomain,
			Employees:      n,
			WeekStart:      weekStart,
		}); err != nil {
			slog.Error("无法插入演示数据", slog.String("error", err.Error()))
		}
	case 2:
		if restaurantID == "" || file == "" {
			slog.Error("导入排班需要同时指定 -restaurant-id 和 -file")
			return
		}

		f, err := os.Open(file)
		if err != nil {
			slog.Error("打开文件失败", "error", err)
			return
		}
		defer f.Close()

		validate, err := seed.NewImportValidator()
		if err != nil {
			slog.Error("无法创建校验器", slog.String("error", err.Error()))
			return
		}

		var shifts []domain.Shift
		switch strings.ToLower(filepath.Ext(file)) {
		case ".xlsx":
			shifts, err = seed.ParseWeekXLSX(f, restaurantID, validate)
		default:
			shifts, err = seed.ParseWeekCSV(f, restaurantID, validate)
		}
		if err != nil {
			slog.Error("解析排班文件失败", slog.String("error", err.Error()))
			return
		}

		cnt, err := seed.ImportWeek(context.Background(), repo, restaurantID, weekStart, shifts)
		if err != nil {
			slog.Error("导入排班失败", slog.String("error", err.Error()))
			return
		}
		slog.Info("导入排班成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
