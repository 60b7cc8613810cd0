package compliance

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultOvernightCutoffHour 完全落在这个钟点之前的班次被视为前一晚夜班在第二天凌晨的延续，
// 跨过这个钟点的早班留在当天（夜班跨天的启发式规则，
// 不是法律规定，部署方可以在规则表里调整）
const DefaultOvernightCutoffHour = 6

// RuleSet 是一张可版本化的阈值表，换一个国家或集体协议只需要换一张表
type RuleSet struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Version string `json:"version" yaml:"version" validate:"required"`

	MinDailyRestHours       float64 `json:"minDailyRestHours" yaml:"min_daily_rest_hours" validate:"gt=0,lte=24"`
	MinWeeklyRestHours      float64 `json:"minWeeklyRestHours" yaml:"min_weekly_rest_hours" validate:"gt=0"`
	WeeklyRestMinWorkedDays int     `json:"weeklyRestMinWorkedDays" yaml:"weekly_rest_min_worked_days" validate:"min=1,max=7"`
	SundayDay               int32   `json:"sundayDay" yaml:"sunday_day" validate:"min=0,max=6"`

	MaxDailyHours      float64 `json:"maxDailyHours" yaml:"max_daily_hours" validate:"gt=0,lte=24"`
	MaxWeeklyHours     float64 `json:"maxWeeklyHours" yaml:"max_weekly_hours" validate:"gt=0,lte=168"`
	MaxConsecutiveDays int     `json:"maxConsecutiveDays" yaml:"max_consecutive_days" validate:"min=1,max=7"`

	MinCoupureMinutes float64 `json:"minCoupureMinutes" yaml:"min_coupure_minutes" validate:"gte=0"`
	MaxCoupureMinutes float64 `json:"maxCoupureMinutes" yaml:"max_coupure_minutes" validate:"gtefield=MinCoupureMinutes"`

	LegalWeeklyHours      float64 `json:"legalWeeklyHours" yaml:"legal_weekly_hours" validate:"gt=0"`
	OvertimeFirstBandEnd  float64 `json:"overtimeFirstBandEnd" yaml:"overtime_first_band_end" validate:"gtefield=LegalWeeklyHours"`
	OvertimeFirstBandRate float64 `json:"overtimeFirstBandRate" yaml:"overtime_first_band_rate" validate:"gte=1"`
	OvertimeAboveBandRate float64 `json:"overtimeAboveBandRate" yaml:"overtime_above_band_rate" validate:"gte=1"`

	OvernightCutoffHour int `json:"overnightCutoffHour" yaml:"overnight_cutoff_hour" validate:"min=0,max=12"`
	WorkingDaysPerWeek  int `json:"workingDaysPerWeek" yaml:"working_days_per_week" validate:"min=1,max=7"`

	Citations map[domain.ViolationType]string `json:"citations" yaml:"citations" validate:"required"`
}

var rulesValidate = validator.New(validator.WithRequiredStructEnabled())

// DefaultRules 返回法国劳动法 + CHR 集体协议的规则表
func DefaultRules() *RuleSet {
	return &RuleSet{
		Name:    "Code du travail + Convention collective HCR",
		Version: "FR-HCR-2025.1",

		MinDailyRestHours:       11,
		MinWeeklyRestHours:      35,
		WeeklyRestMinWorkedDays: 6,
		SundayDay:               6,

		MaxDailyHours:      10,
		MaxWeeklyHours:     48,
		MaxConsecutiveDays: 6,

		MinCoupureMinutes: 60,
		MaxCoupureMinutes: 240,

		LegalWeeklyHours:      35,
		OvertimeFirstBandEnd:  39,
		OvertimeFirstBandRate: 1.10,
		OvertimeAboveBandRate: 1.25,

		OvernightCutoffHour: DefaultOvernightCutoffHour,
		WorkingDaysPerWeek:  5,

		Citations: map[domain.ViolationType]string{
			domain.ViolationDailyRest:        "Code du travail, Art. L3131-1",
			domain.ViolationWeeklyRest:       "Code du travail, Art. L3132-2",
			domain.ViolationMaxDailyHours:    "Code du travail, Art. L3121-18",
			domain.ViolationMaxWeeklyHours:   "Code du travail, Art. L3121-20",
			domain.ViolationConsecutiveDays:  "Code du travail, Art. L3132-1",
			domain.ViolationContractPeriod:   "Contrat de travail (dates de début et de fin)",
			domain.ViolationCoupureViolation: "Convention collective HCR, Art. 21",
		},
	}
}

// LoadRules 从 YAML 文件读取规则表，文件中没有出现的字段沿用默认值
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("load rules %s: %w", path, err)
	}

	return rules, nil
}

func ParseRules(data []byte) (*RuleSet, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleSet) Validate() error {
	if err := rulesValidate.Struct(r); err != nil {
		return fmt.Errorf("validate rules: %w", err)
	}
	for _, t := range domain.ViolationTypes {
		if r.Citations[t] == "" {
			return fmt.Errorf("validate rules: missing citation for %s", t)
		}
	}
	return nil
}

func (r *RuleSet) citation(t domain.ViolationType) string {
	return r.Citations[t]
}
