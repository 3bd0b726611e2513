// Package conflicts scans a configuration for problems the operator should fix before solving.
// Problems are returned as data, never as errors: an imperfect configuration can still be saved.
package conflicts

import (
	"fmt"

	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/estimate"
	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/normalize"
)

// BudgetOverrunFactor is how far the floor cost may exceed the weekly limit before warning
const BudgetOverrunFactor = 1.5

// UI sections a conflict points at
const (
	LocationCoverage  = "coverage"
	LocationRules     = "rules"
	LocationEmployees = "employees"
	LocationBudget    = "budget"
)

// FindAllConflicts runs every pass and concatenates the results
func FindAllConflicts(cfg models.HumanConfig) []models.ConflictItem {
	out := []models.ConflictItem{}
	out = append(out, FindOverlappingIntervals(cfg)...)
	out = append(out, ValidateCoverageWithinBusinessHours(cfg)...)
	out = append(out, ValidateEmployees(cfg)...)
	out = append(out, ValidateHardRules(cfg)...)
	out = append(out, CheckBudget(cfg)...)
	return out
}

// HasErrors reports whether any item is error severity
func HasErrors(items []models.ConflictItem) bool {
	for _, it := range items {
		if it.Severity == models.SeverityError {
			return true
		}
	}
	return false
}

// dayPart is one piece of a coverage interval after the midnight split, remembering its source
type dayPart struct {
	from       models.Day
	idx        int
	iv         models.CoverageInterval
	start, end int
}

// FindOverlappingIntervals flags each pair of overlapping intervals within a role and day.
// Midnight-crossing intervals are split first, so their after-midnight part is checked against
// the next day's intervals. Each pair is reported once, under the original interval ids.
func FindOverlappingIntervals(cfg models.HumanConfig) []models.ConflictItem {
	var out []models.ConflictItem
	for _, role := range cfg.Coverage.RoleNames() {
		days := cfg.Coverage[role]

		buckets := make(map[models.Day][]dayPart)
		for _, day := range models.OrderedDays(days) {
			for idx, iv := range days[day] {
				for _, p := range normalize.SplitCrossMidnightInterval(day, iv) {
					buckets[p.Day] = append(buckets[p.Day], dayPart{
						from:  day,
						idx:   idx,
						iv:    iv,
						start: clock.TimeToMinutes(p.Interval.Start),
						end:   clock.TimeToMinutes(p.Interval.End),
					})
				}
			}
		}

		seen := make(map[string]bool)
		for _, day := range models.Days {
			parts := buckets[day]
			for i := 0; i < len(parts); i++ {
				a := parts[i]
				for j := i + 1; j < len(parts); j++ {
					b := parts[j]
					if !clock.Overlaps(a.start, a.end, b.start, b.end) {
						continue
					}
					pair := fmt.Sprintf("%s/%d|%s/%d", a.from, a.idx, b.from, b.idx)
					if seen[pair] {
						continue
					}
					seen[pair] = true
					out = append(out, models.ConflictItem{
						ID:       fmt.Sprintf("overlap-%s-%s-%s-%s", role, day, a.iv.ID, b.iv.ID),
						Severity: models.SeverityError,
						Category: models.CategoryCoverage,
						Message: fmt.Sprintf("%s on %s: %s overlaps %s",
							role, day, a.label(day), b.label(day)),
						Location: LocationCoverage,
					})
				}
			}
		}
	}
	return out
}

func (p dayPart) label(day models.Day) string {
	if p.from != day {
		return fmt.Sprintf("%s-%s (from %s)", p.iv.Start, p.iv.End, p.from)
	}
	return p.iv.Start + "-" + p.iv.End
}

// ValidateCoverageWithinBusinessHours flags intervals starting or ending outside opening hours.
// Closed, 24h and midnight-crossing days are skipped.
func ValidateCoverageWithinBusinessHours(cfg models.HumanConfig) []models.ConflictItem {
	var out []models.ConflictItem
	for _, role := range cfg.Coverage.RoleNames() {
		days := cfg.Coverage[role]
		for _, day := range models.OrderedDays(days) {
			ivs := days[day]
			hours, ok := cfg.BusinessHours[day]
			if len(ivs) == 0 || !ok || hours.Closed || hours.Is24h || hours.CrossesMidnight {
				continue
			}

			open, closeAt := clock.TimeToMinutes(hours.Open), clock.TimeToMinutes(hours.Close)
			outside := func(m int) bool { return m < open || m > closeAt }

			for _, iv := range ivs {
				if !outside(clock.TimeToMinutes(iv.Start)) && !outside(clock.TimeToMinutes(iv.End)) {
					continue
				}
				out = append(out, models.ConflictItem{
					ID:       fmt.Sprintf("hours-%s-%s-%s", role, day, iv.ID),
					Severity: models.SeverityError,
					Category: models.CategoryCoverage,
					Message: fmt.Sprintf("%s on %s: %s-%s is outside business hours %s-%s",
						role, day, iv.Start, iv.End, hours.Open, hours.Close),
					Location: LocationCoverage,
				})
			}
		}
	}
	return out
}

// ValidateEmployees flags employees without roles and inverted preferred hours
func ValidateEmployees(cfg models.HumanConfig) []models.ConflictItem {
	var out []models.ConflictItem
	for _, e := range cfg.Employees {
		if len(e.Roles) == 0 {
			out = append(out, models.ConflictItem{
				ID:       "employee-no-roles-" + e.ID,
				Severity: models.SeverityError,
				Category: models.CategoryEmployee,
				Message:  fmt.Sprintf("%s has no roles assigned", displayName(e)),
				Location: LocationEmployees,
			})
		}
		if e.PreferredHours.Min > e.PreferredHours.Max {
			out = append(out, models.ConflictItem{
				ID:       "employee-hours-" + e.ID,
				Severity: models.SeverityError,
				Category: models.CategoryEmployee,
				Message: fmt.Sprintf("%s: preferred minimum hours (%g) exceed maximum (%g)",
					displayName(e), e.PreferredHours.Min, e.PreferredHours.Max),
				Location: LocationEmployees,
			})
		}
	}
	return out
}

// ValidateHardRules flags hard rule ceilings that cannot hold together
func ValidateHardRules(cfg models.HumanConfig) []models.ConflictItem {
	var out []models.ConflictItem
	hr := cfg.HardRules
	add := func(id string, sev models.Severity, msg string) {
		out = append(out, models.ConflictItem{
			ID:       "rules-" + id,
			Severity: sev,
			Category: models.CategoryRules,
			Message:  msg,
			Location: LocationRules,
		})
	}

	if hr.MaxHoursPerDay > 24 {
		add("max-hours-per-day", models.SeverityError,
			fmt.Sprintf("Max hours per day (%g) exceeds 24", hr.MaxHoursPerDay))
	}
	if hr.MaxHoursPerWeek > 0 && hr.MaxHoursPerWeek < hr.MaxHoursPerDay {
		add("max-hours-per-week", models.SeverityError,
			fmt.Sprintf("Max hours per week (%g) is below max hours per day (%g)", hr.MaxHoursPerWeek, hr.MaxHoursPerDay))
	}
	if hr.MaxConsecutiveDays > 7 {
		add("max-consecutive-days", models.SeverityError,
			fmt.Sprintf("Max consecutive days (%d) exceeds 7", hr.MaxConsecutiveDays))
	}

	known := make(map[string]bool, len(cfg.Roles))
	for _, r := range cfg.Roles {
		known[r] = true
	}
	for i, rp := range hr.RequiredPresence {
		if !known[rp.Role] {
			add(fmt.Sprintf("required-presence-%d", i), models.SeverityWarning,
				fmt.Sprintf("Required presence on %s names unknown role %q", rp.Day, rp.Role))
		}
	}
	return out
}

// CheckBudget warns when the floor labor cost is far above the weekly limit
func CheckBudget(cfg models.HumanConfig) []models.ConflictItem {
	if cfg.Budget.WeeklyLimit <= 0 {
		return nil
	}
	total := estimate.EstimateLaborCost(cfg).Total
	if total <= cfg.Budget.WeeklyLimit*BudgetOverrunFactor {
		return nil
	}
	return []models.ConflictItem{{
		ID:       "budget-infeasible",
		Severity: models.SeverityWarning,
		Category: models.CategoryBudget,
		Message: fmt.Sprintf("Minimum staffing costs $%.2f, well above the $%.2f weekly limit",
			total, cfg.Budget.WeeklyLimit),
		Location: LocationBudget,
	}}
}

func displayName(e models.Employee) string {
	if e.Name != "" {
		return e.Name
	}
	return "Employee " + e.ID
}
