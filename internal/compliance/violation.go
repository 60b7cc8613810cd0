package compliance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// violationNamespace 用来生成确定性的违规 ID：同样的输入总是得到同样的 ID
var violationNamespace = uuid.MustParse("3b0f6a52-8c1d-4e57-9f2a-6d4c1e8b7a90")

func newViolation(rules *RuleSet, emp *domain.Employee, t domain.ViolationType, sev domain.Severity, key string, shiftIDs []string) domain.LaborLawViolation {
	parts := append([]string{string(t), emp.ID, key}, shiftIDs...)

	if shiftIDs == nil {
		shiftIDs = []string{}
	}

	return domain.LaborLawViolation{
		ID:             uuid.NewSHA1(violationNamespace, []byte(strings.Join(parts, "|"))).String(),
		Type:           t,
		Severity:       sev,
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName(),
		ShiftIDs:       shiftIDs,
		LegalReference: rules.citation(t),
	}
}

func dayPtr(day int32) *int32 {
	return &day
}
