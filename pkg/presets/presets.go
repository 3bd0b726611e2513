// Package presets holds the built-in catalog of partial configurations an operator can start from.
package presets

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arnavshah/roster-config-api/pkg/models"
)

//go:embed *.toml
var catalogFS embed.FS

// ErrUnknownPreset is returned when a preset name is not in the catalog
var ErrUnknownPreset = errors.New("unknown preset")

// Overlay is a partial HumanConfig. Nil fields leave the live value untouched.
type Overlay struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	BusinessHours models.BusinessHours `json:"businessHours,omitempty"`
	Roles         []string             `json:"roles,omitempty"`
	Coverage      models.RoleCoverage  `json:"coverage,omitempty"`
	HardRules     *models.HardRules    `json:"hardRules,omitempty"`
	SoftRules     *models.SoftRules    `json:"softRules,omitempty"`
	Budget        *models.Budget       `json:"budget,omitempty"`
}

// Summary is the catalog listing entry
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type presetFile struct {
	Name          string                  `toml:"name"`
	Description   string                  `toml:"description"`
	Roles         []string                `toml:"roles"`
	BusinessHours map[string]dayHoursFile `toml:"business_hours"`
	Coverage      []coverageFile          `toml:"coverage"`
	HardRules     *hardRulesFile          `toml:"hard_rules"`
	SoftRules     *softRulesFile          `toml:"soft_rules"`
	Budget        *budgetFile             `toml:"budget"`
}

type dayHoursFile struct {
	Open            string `toml:"open"`
	Close           string `toml:"close"`
	Closed          bool   `toml:"closed"`
	Is24h           bool   `toml:"is_24h"`
	CrossesMidnight bool   `toml:"crosses_midnight"`
}

type coverageFile struct {
	Role  string   `toml:"role"`
	Days  []string `toml:"days"`
	Start string   `toml:"start"`
	End   string   `toml:"end"`
	Min   int      `toml:"min"`
	Ideal int      `toml:"ideal"`
	Max   int      `toml:"max"`
}

type hardRulesFile struct {
	MaxHoursPerDay     float64 `toml:"max_hours_per_day"`
	MaxHoursPerWeek    float64 `toml:"max_hours_per_week"`
	MinRestHours       float64 `toml:"min_rest_hours"`
	MaxConsecutiveDays int     `toml:"max_consecutive_days"`
	NoSplitShifts      bool    `toml:"no_split_shifts"`
	RequiredPresence   []struct {
		Role  string `toml:"role"`
		Day   string `toml:"day"`
		Start string `toml:"start"`
		End   string `toml:"end"`
		Count int    `toml:"count"`
	} `toml:"required_presence"`
	BreakPolicy []struct {
		AfterHours float64 `toml:"after_hours"`
		Minutes    int     `toml:"minutes"`
		Paid       bool    `toml:"paid"`
	} `toml:"break_policy"`
}

type softRulesFile struct {
	FairnessBalance    int `toml:"fairness_balance"`
	MinimizeUnderstaff int `toml:"minimize_understaff"`
	MinimizeOverstaff  int `toml:"minimize_overstaff"`
	MinimizeCost       int `toml:"minimize_cost"`
	RespectPreferences int `toml:"respect_preferences"`
	SeniorityPriority  int `toml:"seniority_priority"`
	ShiftContinuity    int `toml:"shift_continuity"`
	PairingPreferences int `toml:"pairing_preferences"`
	OpenCloseBalance   int `toml:"open_close_balance"`
}

type budgetFile struct {
	WeeklyLimit   float64 `toml:"weekly_limit"`
	AllowExceedBy float64 `toml:"allow_exceed_by"`
}

// Names lists the catalog in alphabetical order
func Names() []string {
	entries, err := catalogFS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".toml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
		}
	}
	sort.Strings(names)
	return names
}

// List returns the name and description of every preset
func List() ([]Summary, error) {
	var out []Summary
	for _, name := range Names() {
		o, err := Load(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{Name: o.Name, Description: o.Description})
	}
	return out, nil
}

// Load decodes a preset by name
func Load(name string) (Overlay, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return Overlay{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	data, err := catalogFS.ReadFile(name + ".toml")
	if err != nil {
		return Overlay{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return Overlay{}, fmt.Errorf("decode preset %s: %w", name, err)
	}
	if f.Name == "" {
		f.Name = name
	}
	return f.overlay(), nil
}

// Apply merges the overlay into cfg one top-level section at a time and returns the result.
// cfg itself is not modified.
func Apply(cfg models.HumanConfig, o Overlay) models.HumanConfig {
	out := cfg.Clone()
	if o.BusinessHours != nil {
		out.BusinessHours = make(models.BusinessHours, len(o.BusinessHours))
		for d, h := range o.BusinessHours {
			out.BusinessHours[d] = h
		}
	}
	if o.Roles != nil {
		out.Roles = append([]string{}, o.Roles...)
	}
	if o.Coverage != nil {
		out.Coverage = o.Coverage.Clone()
	}
	if o.HardRules != nil {
		out.HardRules = o.HardRules.Clone()
	}
	if o.SoftRules != nil {
		out.SoftRules = *o.SoftRules
	}
	if o.Budget != nil {
		out.Budget = *o.Budget
	}
	return out
}

func (f presetFile) overlay() Overlay {
	o := Overlay{
		Name:        f.Name,
		Description: f.Description,
		Roles:       f.Roles,
	}

	if f.BusinessHours != nil {
		o.BusinessHours = make(models.BusinessHours, len(f.BusinessHours))
		for day, h := range f.BusinessHours {
			o.BusinessHours[models.Day(day)] = models.DayHours{
				Open:            h.Open,
				Close:           h.Close,
				Closed:          h.Closed,
				Is24h:           h.Is24h,
				CrossesMidnight: h.CrossesMidnight,
			}
		}
	}

	if f.Coverage != nil {
		o.Coverage = make(models.RoleCoverage)
		for _, role := range f.Roles {
			o.Coverage[role] = make(map[models.Day][]models.CoverageInterval)
		}
		for _, c := range f.Coverage {
			days, ok := o.Coverage[c.Role]
			if !ok {
				days = make(map[models.Day][]models.CoverageInterval)
				o.Coverage[c.Role] = days
			}
			for _, day := range c.Days {
				d := models.Day(day)
				days[d] = append(days[d], models.CoverageInterval{
					ID:    fmt.Sprintf("%s-%s-%s-%d", f.Name, c.Role, d, len(days[d])+1),
					Start: c.Start,
					End:   c.End,
					Min:   c.Min,
					Ideal: c.Ideal,
					Max:   c.Max,
				})
			}
		}
	}

	if hr := f.HardRules; hr != nil {
		rules := models.HardRules{
			MaxHoursPerDay:     hr.MaxHoursPerDay,
			MaxHoursPerWeek:    hr.MaxHoursPerWeek,
			MinRestHours:       hr.MinRestHours,
			MaxConsecutiveDays: hr.MaxConsecutiveDays,
			NoSplitShifts:      hr.NoSplitShifts,
			RequiredPresence:   []models.RequiredPresence{},
			BreakPolicy:        []models.BreakRule{},
			Blackouts:          []models.Blackout{},
		}
		for _, rp := range hr.RequiredPresence {
			rules.RequiredPresence = append(rules.RequiredPresence, models.RequiredPresence{
				Role: rp.Role, Day: models.Day(rp.Day), Start: rp.Start, End: rp.End, Count: rp.Count,
			})
		}
		for _, b := range hr.BreakPolicy {
			rules.BreakPolicy = append(rules.BreakPolicy, models.BreakRule{AfterHours: b.AfterHours, Minutes: b.Minutes, Paid: b.Paid})
		}
		o.HardRules = &rules
	}

	if sr := f.SoftRules; sr != nil {
		o.SoftRules = &models.SoftRules{
			FairnessBalance:    sr.FairnessBalance,
			MinimizeUnderstaff: sr.MinimizeUnderstaff,
			MinimizeOverstaff:  sr.MinimizeOverstaff,
			MinimizeCost:       sr.MinimizeCost,
			RespectPreferences: sr.RespectPreferences,
			SeniorityPriority:  sr.SeniorityPriority,
			ShiftContinuity:    sr.ShiftContinuity,
			PairingPreferences: sr.PairingPreferences,
			OpenCloseBalance:   sr.OpenCloseBalance,
		}
	}

	if f.Budget != nil {
		o.Budget = &models.Budget{WeeklyLimit: f.Budget.WeeklyLimit, AllowExceedBy: f.Budget.AllowExceedBy}
	}
	return o
}
