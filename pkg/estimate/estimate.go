// Package estimate computes cheap staffing health and labor cost projections from a configuration.
// Both are heuristics meant to run on every edit, not solver results.
package estimate

import (
	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/models"
)

// DefaultHourlyRate is used for roles nobody is qualified for
const DefaultHourlyRate = 15.0

// QualifiedCounts returns how many employees list each role
func QualifiedCounts(employees []models.Employee) map[string]int {
	counts := make(map[string]int)
	for _, e := range employees {
		for _, r := range e.Roles {
			counts[r]++
		}
	}
	return counts
}

// CalculateCoverageHealth scores 0-100 how well qualified head counts match declared coverage
func CalculateCoverageHealth(cfg models.HumanConfig) models.CoverageHealth {
	counts := QualifiedCounts(cfg.Employees)

	var h models.CoverageHealth
	for role, days := range cfg.Coverage {
		qualified := float64(counts[role])
		for _, ivs := range days {
			for _, iv := range ivs {
				h.TotalSlots++
				if float64(iv.Min) > qualified/2 {
					h.UnderstaffedSlots++
				}
				if float64(iv.Max) > qualified {
					h.OverstaffedSlots++
				}
			}
		}
	}

	h.Score = min(max(100-(h.UnderstaffedSlots*10+h.OverstaffedSlots*5), 0), 100)
	return h
}

// MeanWageByRole returns the arithmetic mean wage of employees listing each role
func MeanWageByRole(employees []models.Employee) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range employees {
		for _, r := range e.Roles {
			sums[r] += e.Wage
			counts[r]++
		}
	}

	out := make(map[string]float64, len(sums))
	for r, sum := range sums {
		out[r] = sum / float64(counts[r])
	}
	return out
}

// EstimateLaborCost projects the floor weekly labor cost of cfg from minimum staffing.
// It works on the raw configuration, so midnight-crossing intervals are measured with wraparound.
// Overtime is always zero: it needs an actual schedule.
func EstimateLaborCost(cfg models.HumanConfig) models.CostEstimate {
	wages := MeanWageByRole(cfg.Employees)

	est := models.CostEstimate{ByRole: make(map[string]float64)}
	for _, role := range costRoles(cfg) {
		var roleHours float64
		for _, ivs := range cfg.Coverage[role] {
			for _, iv := range ivs {
				roleHours += clock.DurationHours(iv.Start, iv.End) * float64(iv.Min)
			}
		}

		rate, ok := wages[role]
		if !ok {
			rate = DefaultHourlyRate
		}

		est.ByRole[role] = roleHours * rate
		est.Total += est.ByRole[role]
		est.Breakdown.TotalHours += roleHours
	}

	est.Breakdown.RegularHours = est.Breakdown.TotalHours
	return est
}

// costRoles lists the configured roles followed by any extra roles that only appear in coverage
func costRoles(cfg models.HumanConfig) []string {
	seen := make(map[string]bool, len(cfg.Roles))
	var roles []string
	for _, r := range cfg.Roles {
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	for _, r := range cfg.Coverage.RoleNames() {
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	return roles
}
