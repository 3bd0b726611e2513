// Package solver translates a normalized configuration into the request consumed by the external
// optimizer and talks to it over HTTP.
package solver

import (
	"fmt"

	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/estimate"
	"github.com/arnavshah/roster-config-api/pkg/models"
)

// ShiftType is the service period a shift belongs to
type ShiftType string

const (
	ShiftPrep    ShiftType = "Prep"
	ShiftOpening ShiftType = "Opening"
	ShiftLunch   ShiftType = "Lunch"
	ShiftDinner  ShiftType = "Dinner"
)

// TimeSlot is a window on one day
type TimeSlot struct {
	Day       models.Day `json:"day"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
}

// Worker is an employee as the solver sees it
type Worker struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Skills       []string   `json:"skills"`
	HourlyRate   float64    `json:"hourly_rate"`
	MaxHours     float64    `json:"max_hours"`
	MinHours     float64    `json:"min_hours"`
	Seniority    int        `json:"seniority"`
	Unavailable  []TimeSlot `json:"unavailable,omitempty"`
	Dispreferred []TimeSlot `json:"dispreferred,omitempty"`
	PreferWith   []string   `json:"prefer_with,omitempty"`
	AvoidWith    []string   `json:"avoid_with,omitempty"`
}

// Requirement is a head count of one role on a shift
type Requirement struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// Shift is one normalized coverage interval
type Shift struct {
	ID           string        `json:"id"`
	Day          models.Day    `json:"day"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	ShiftType    ShiftType     `json:"shift_type"`
	Requirements []Requirement `json:"requirements"`
	MinCount     int           `json:"min_count"`
	MaxCount     int           `json:"max_count"`
}

// Budget caps the total cost of a solution
type Budget struct {
	MaxTotalCost float64 `json:"max_total_cost"`
}

// Fairness carries the rest and streak constraints
type Fairness struct {
	MaxConsecutiveDays int     `json:"max_consecutive_days"`
	MinRestHours       float64 `json:"min_rest_hours"`
	MaxHoursPerDay     float64 `json:"max_hours_per_day"`
	NoSplitShifts      bool    `json:"no_split_shifts"`
}

// Request is the full solver input
type Request struct {
	Workers  []Worker           `json:"workers"`
	Shifts   []Shift            `json:"shifts"`
	Budget   *Budget            `json:"budget,omitempty"`
	Fairness Fairness           `json:"fairness"`
	Weights  map[string]float64 `json:"weights"`
}

// ClassifyShift infers the service period from the start hour
func ClassifyShift(start string) ShiftType {
	switch h := clock.Hour(start); {
	case h < 8:
		return ShiftPrep
	case h < 11:
		return ShiftOpening
	case h < 17:
		return ShiftLunch
	default:
		return ShiftDinner
	}
}

// ShiftID names the shift built from a normalized interval
func ShiftID(role string, day models.Day, intervalID string) string {
	return fmt.Sprintf("%s-%s-%s", role, day, intervalID)
}

// BuildRequest turns a normalized configuration into solver input
func BuildRequest(n models.NormalizedConfig) Request {
	hr := n.HardRules
	req := Request{
		Workers: make([]Worker, 0, len(n.Employees)),
		Shifts:  []Shift{},
		Fairness: Fairness{
			MaxConsecutiveDays: hr.MaxConsecutiveDays,
			MinRestHours:       hr.MinRestHours,
			MaxHoursPerDay:     hr.MaxHoursPerDay,
			NoSplitShifts:      hr.NoSplitShifts,
		},
		Weights: make(map[string]float64, len(n.SoftRuleWeights)),
	}
	for k, v := range n.SoftRuleWeights {
		req.Weights[k] = v
	}

	for _, e := range n.Employees {
		req.Workers = append(req.Workers, buildWorker(e, hr))
	}

	for _, role := range n.Coverage.RoleNames() {
		days := n.Coverage[role]
		for _, day := range models.OrderedDays(days) {
			for _, iv := range days[day] {
				req.Shifts = append(req.Shifts, Shift{
					ID:           ShiftID(role, day, iv.ID),
					Day:          day,
					StartTime:    iv.Start,
					EndTime:      iv.End,
					ShiftType:    ClassifyShift(iv.Start),
					Requirements: []Requirement{{Role: role, Count: iv.Ideal}},
					MinCount:     iv.Min,
					MaxCount:     iv.Max,
				})
			}
		}
	}

	if n.Budget.WeeklyLimit > 0 {
		req.Budget = &Budget{MaxTotalCost: n.Budget.WeeklyLimit * (1 + n.Budget.AllowExceedBy/100)}
	}
	return req
}

func buildWorker(e models.Employee, hr models.HardRules) Worker {
	rate := e.Wage
	if rate == 0 {
		rate = estimate.DefaultHourlyRate
	}

	maxHours := e.PreferredHours.Max
	if maxHours == 0 || (hr.MaxHoursPerWeek > 0 && hr.MaxHoursPerWeek < maxHours) {
		maxHours = hr.MaxHoursPerWeek
	}

	w := Worker{
		ID:         e.ID,
		Name:       e.Name,
		Skills:     append([]string{}, e.Roles...),
		HourlyRate: rate,
		MaxHours:   maxHours,
		MinHours:   e.PreferredHours.Min,
		Seniority:  e.Seniority,
		PreferWith: e.Pairing.PreferWith,
		AvoidWith:  e.Pairing.AvoidWith,
	}
	for _, b := range e.Availability {
		slot := TimeSlot{Day: b.Day, StartTime: b.Start, EndTime: b.End}
		if b.Type == models.AvailabilitySoft {
			w.Dispreferred = append(w.Dispreferred, slot)
		} else {
			w.Unavailable = append(w.Unavailable, slot)
		}
	}
	return w
}
