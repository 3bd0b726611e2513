package store

import "github.com/arnavshah/roster-config-api/pkg/models"

// Patch types carry only the fields a caller wants to change. Nil means keep.

// IntervalPatch holds the interval fields to change
type IntervalPatch struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
	Min   *int    `json:"min"`
	Max   *int    `json:"max"`
	Ideal *int    `json:"ideal"`
}

func (p IntervalPatch) apply(iv *models.CoverageInterval) {
	if p.Start != nil {
		iv.Start = *p.Start
	}
	if p.End != nil {
		iv.End = *p.End
	}
	if p.Min != nil {
		iv.Min = *p.Min
	}
	if p.Max != nil {
		iv.Max = *p.Max
	}
	if p.Ideal != nil {
		iv.Ideal = *p.Ideal
	}
}

// EmployeePatch holds the employee fields to change
type EmployeePatch struct {
	Name                 *string                     `json:"name"`
	Roles                *[]string                   `json:"roles"`
	Wage                 *float64                    `json:"wage"`
	Seniority            *int                        `json:"seniority"`
	PreferredHours       *models.HoursRange          `json:"preferredHours"`
	PreferredShiftLength *models.ShiftLength         `json:"preferredShiftLength"`
	Availability         *[]models.AvailabilityBlock `json:"availability"`
	Preferences          *models.ShiftPreferences    `json:"preferences"`
	Pairing              *models.Pairing             `json:"pairing"`
}

func (p EmployeePatch) apply(e *models.Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Roles != nil {
		e.Roles = append([]string{}, (*p.Roles)...)
	}
	if p.Wage != nil {
		e.Wage = *p.Wage
	}
	if p.Seniority != nil {
		e.Seniority = *p.Seniority
	}
	if p.PreferredHours != nil {
		e.PreferredHours = *p.PreferredHours
	}
	if p.PreferredShiftLength != nil {
		e.PreferredShiftLength = *p.PreferredShiftLength
	}
	if p.Availability != nil {
		e.Availability = append([]models.AvailabilityBlock{}, (*p.Availability)...)
	}
	if p.Preferences != nil {
		e.Preferences = *p.Preferences
	}
	if p.Pairing != nil {
		e.Pairing = models.Pairing{
			PreferWith: append([]string{}, p.Pairing.PreferWith...),
			AvoidWith:  append([]string{}, p.Pairing.AvoidWith...),
		}
	}
}

// HardRulesPatch holds the hard rule fields to change
type HardRulesPatch struct {
	MaxHoursPerDay     *float64                   `json:"maxHoursPerDay"`
	MaxHoursPerWeek    *float64                   `json:"maxHoursPerWeek"`
	MinRestHours       *float64                   `json:"minRestHours"`
	MaxConsecutiveDays *int                       `json:"maxConsecutiveDays"`
	NoSplitShifts      *bool                      `json:"noSplitShifts"`
	RequiredPresence   *[]models.RequiredPresence `json:"requiredPresence"`
	BreakPolicy        *[]models.BreakRule        `json:"breakPolicy"`
	Blackouts          *[]models.Blackout         `json:"blackouts"`
}

func (p HardRulesPatch) apply(h *models.HardRules) {
	if p.MaxHoursPerDay != nil {
		h.MaxHoursPerDay = *p.MaxHoursPerDay
	}
	if p.MaxHoursPerWeek != nil {
		h.MaxHoursPerWeek = *p.MaxHoursPerWeek
	}
	if p.MinRestHours != nil {
		h.MinRestHours = *p.MinRestHours
	}
	if p.MaxConsecutiveDays != nil {
		h.MaxConsecutiveDays = *p.MaxConsecutiveDays
	}
	if p.NoSplitShifts != nil {
		h.NoSplitShifts = *p.NoSplitShifts
	}
	if p.RequiredPresence != nil {
		h.RequiredPresence = append([]models.RequiredPresence{}, (*p.RequiredPresence)...)
	}
	if p.BreakPolicy != nil {
		h.BreakPolicy = append([]models.BreakRule{}, (*p.BreakPolicy)...)
	}
	if p.Blackouts != nil {
		h.Blackouts = append([]models.Blackout{}, (*p.Blackouts)...)
	}
}

// SoftRulesPatch holds the soft rule weights to change
type SoftRulesPatch struct {
	FairnessBalance    *int `json:"fairnessBalance"`
	MinimizeUnderstaff *int `json:"minimizeUnderstaff"`
	MinimizeOverstaff  *int `json:"minimizeOverstaff"`
	MinimizeCost       *int `json:"minimizeCost"`
	RespectPreferences *int `json:"respectPreferences"`
	SeniorityPriority  *int `json:"seniorityPriority"`
	ShiftContinuity    *int `json:"shiftContinuity"`
	PairingPreferences *int `json:"pairingPreferences"`
	OpenCloseBalance   *int `json:"openCloseBalance"`
}

func (p SoftRulesPatch) apply(s *models.SoftRules) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.FairnessBalance, p.FairnessBalance)
	set(&s.MinimizeUnderstaff, p.MinimizeUnderstaff)
	set(&s.MinimizeOverstaff, p.MinimizeOverstaff)
	set(&s.MinimizeCost, p.MinimizeCost)
	set(&s.RespectPreferences, p.RespectPreferences)
	set(&s.SeniorityPriority, p.SeniorityPriority)
	set(&s.ShiftContinuity, p.ShiftContinuity)
	set(&s.PairingPreferences, p.PairingPreferences)
	set(&s.OpenCloseBalance, p.OpenCloseBalance)
}

// BudgetPatch holds the budget fields to change
type BudgetPatch struct {
	WeeklyLimit   *float64 `json:"weeklyLimit"`
	AllowExceedBy *float64 `json:"allowExceedBy"`
}

func (p BudgetPatch) apply(b *models.Budget) {
	if p.WeeklyLimit != nil {
		b.WeeklyLimit = *p.WeeklyLimit
	}
	if p.AllowExceedBy != nil {
		b.AllowExceedBy = *p.AllowExceedBy
	}
}
