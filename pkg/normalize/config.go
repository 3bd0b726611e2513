package normalize

import "github.com/arnavshah/roster-config-api/pkg/models"

// MaxWeight is the solver weight of a slider at 100
const MaxWeight = 1.5

// SliderToWeight maps a 0-100 importance slider onto a 0.0-1.5 solver weight
func SliderToWeight(v int) float64 {
	return (float64(v) / 100) * MaxWeight
}

// NormalizeHumanConfig returns an independent, solver-ready copy of cfg.
// Intervals are filled in and split at midnight, soft rule sliders become weights and unset
// shift lengths get their 4-8 hour defaults. cfg is not modified.
func NormalizeHumanConfig(cfg models.HumanConfig) models.NormalizedConfig {
	out := cfg.Clone()

	weights := make(map[string]float64, 9)
	for name, v := range cfg.SoftRules.Sliders() {
		weights[name] = SliderToWeight(v)
	}

	out.Coverage = normalizeCoverage(cfg.Coverage)

	for i := range out.Employees {
		sl := &out.Employees[i].PreferredShiftLength
		if sl.Min == 0 {
			sl.Min = models.DefaultShiftLengthMin
		}
		if sl.Max == 0 {
			sl.Max = models.DefaultShiftLengthMax
		}
	}

	return models.NormalizedConfig{
		HumanConfig:     out,
		SoftRuleWeights: weights,
	}
}

func normalizeCoverage(in models.RoleCoverage) models.RoleCoverage {
	if in == nil {
		return nil
	}

	out := make(models.RoleCoverage, len(in))
	for _, role := range in.RoleNames() {
		days := in[role]
		target := make(map[models.Day][]models.CoverageInterval, len(days))
		for d := range days {
			target[d] = []models.CoverageInterval{}
		}
		for _, d := range models.OrderedDays(days) {
			for _, iv := range days[d] {
				for _, part := range SplitCrossMidnightInterval(d, NormalizeCoverageInterval(iv)) {
					target[part.Day] = append(target[part.Day], part.Interval)
				}
			}
		}
		out[role] = target
	}
	return out
}
