package service

import (
	"strings"

	"mindpath/internal/config"
	"mindpath/internal/model"
)

// ValidateInsight decides whether a parsed insight is complete enough to
// ship: every required scalar meets its minimum length and every required
// list its minimum cardinality. Pure predicate; thresholds come from the
// per-kind configuration.
func ValidateInsight(result *model.InsightResult, kind model.InsightKind, cfg config.KindConfig) bool {
	if result == nil {
		return false
	}

	for _, spec := range fieldSpecs(kind) {
		if spec.List {
			if len(result.List(spec.Name)) < cfg.MinListLength {
				return false
			}
			continue
		}

		min := cfg.MinFieldLength
		if spec.Narrative {
			min = cfg.MinNarrativeLength
		}
		if len(strings.TrimSpace(result.Field(spec.Name))) < min {
			return false
		}
	}

	return true
}
