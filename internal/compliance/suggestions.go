package compliance

import (
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// BuildSuggestions 按出现过的违规类型生成通用建议，每种类型一条
func BuildSuggestions(violations []domain.LaborLawViolation, rules *RuleSet) []string {
	present := make(map[domain.ViolationType]bool)
	for _, v := range violations {
		present[v.Type] = true
	}

	suggestions := make([]string, 0, len(present))
	for _, t := range domain.ViolationTypes {
		if !present[t] {
			continue
		}
		suggestions = append(suggestions, suggestionFor(t, rules))
	}
	return suggestions
}

func suggestionFor(t domain.ViolationType, rules *RuleSet) string {
	switch t {
	case domain.ViolationDailyRest:
		return printer.Sprintf("Respecter %s de repos entre la fin d'une journée et le début de la suivante.", formatHours(rules.MinDailyRestHours))
	case domain.ViolationWeeklyRest:
		return printer.Sprintf("Garantir un repos hebdomadaire de %s consécutives, de préférence le dimanche.", formatHours(rules.MinWeeklyRestHours))
	case domain.ViolationMaxDailyHours:
		return printer.Sprintf("Limiter chaque journée à %s de travail effectif.", formatHours(rules.MaxDailyHours))
	case domain.ViolationMaxWeeklyHours:
		return printer.Sprintf("Ne pas dépasser %s de travail sur la semaine.", formatHours(rules.MaxWeeklyHours))
	case domain.ViolationConsecutiveDays:
		return printer.Sprintf("Ne pas planifier plus de %d jours de travail d'affilée.", rules.MaxConsecutiveDays)
	case domain.ViolationContractPeriod:
		return "Vérifier les dates de contrat avant de planifier des services."
	case domain.ViolationCoupureViolation:
		return printer.Sprintf("Prévoir des coupures comprises entre %s et %s.", formatMinutes(rules.MinCoupureMinutes), formatMinutes(rules.MaxCoupureMinutes))
	default:
		return ""
	}
}
