package domain

// ShiftStatus 表示非工作状态的标记，为空时表示这是一个正常工作的班次
type ShiftStatus string

const (
	ShiftStatusNone          ShiftStatus = ""
	ShiftStatusPaidLeave     ShiftStatus = "CP"      // 带薪假
	ShiftStatusPublicHoliday ShiftStatus = "FERIE"   // 法定节假日
	ShiftStatusWeeklyRest    ShiftStatus = "REPOS"   // 周休标记
	ShiftStatusSickLeave     ShiftStatus = "MALADIE" // 病假
	ShiftStatusUnpaidLeave   ShiftStatus = "ABSENCE" // 无薪缺勤
)

var ShiftStatusValues = []string{
	string(ShiftStatusPaidLeave),
	string(ShiftStatusPublicHoliday),
	string(ShiftStatusWeeklyRest),
	string(ShiftStatusSickLeave),
	string(ShiftStatusUnpaidLeave),
}

// IsPaidAbsence 返回该状态是否按合同工时计入周工时估算
func (s ShiftStatus) IsPaidAbsence() bool {
	return s == ShiftStatusPaidLeave || s == ShiftStatusPublicHoliday
}

type Shift struct {
	ID           string      `json:"id" validate:"required"`
	EmployeeID   string      `json:"employeeID" validate:"required"`
	RestaurantID string      `json:"restaurantID"`
	Day          int32       `json:"day" validate:"min=0,max=6"` // 相对于周一的偏移量
	Start        string      `json:"start,omitempty" validate:"omitempty,hhmm"`
	End          string      `json:"end,omitempty" validate:"omitempty,hhmm"`
	Status       ShiftStatus `json:"status,omitempty" validate:"omitempty,oneof=CP FERIE REPOS MALADIE ABSENCE"`
}

// IsWorking 只有没有状态且同时带有开始和结束时间的班次才算工作班次
func (s *Shift) IsWorking() bool {
	return s.Status == ShiftStatusNone && s.Start != "" && s.End != ""
}
