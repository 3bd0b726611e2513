package models

// Day is a lowercase day-of-week name used as a key throughout the configuration
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists the week in order, starting on monday
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is one of the seven known days
func (d Day) Valid() bool {
	for _, day := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// Next returns the following day in week order, sunday wraps to monday
func (d Day) Next() Day {
	for i, day := range Days {
		if d == day {
			return Days[(i+1)%len(Days)]
		}
	}
	return d
}

// DayHours holds the opening window for a single day
type DayHours struct {
	Open            string `json:"open" validate:"omitempty,hhmm"`
	Close           string `json:"close" validate:"omitempty,hhmm"`
	Closed          bool   `json:"closed"`
	Is24h           bool   `json:"is24h"`
	CrossesMidnight bool   `json:"crossesMidnight,omitempty"`
}

// BusinessHours maps each day of the week to its opening window
type BusinessHours map[Day]DayHours

// CoverageInterval is a time window requiring between Min and Max staff of a role
type CoverageInterval struct {
	ID    string `json:"id"`
	Start string `json:"start" validate:"hhmm"`
	End   string `json:"end" validate:"hhmm"`
	Min   int    `json:"min" validate:"gte=0"`
	Max   int    `json:"max" validate:"gte=0"`
	Ideal int    `json:"ideal" validate:"gte=0"`
}

// RoleCoverage maps role name -> day -> coverage intervals
type RoleCoverage map[string]map[Day][]CoverageInterval

// HoursRange is a weekly hours preference
type HoursRange struct {
	Min    float64 `json:"min" validate:"gte=0"`
	Target float64 `json:"target" validate:"gte=0"`
	Max    float64 `json:"max" validate:"gte=0"`
}

// ShiftLength is the preferred shift length bounds in hours
type ShiftLength struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0"`
}

// AvailabilityType distinguishes unavailable (hard) from dispreferred (soft) blocks
type AvailabilityType string

const (
	AvailabilityHard AvailabilityType = "hard"
	AvailabilitySoft AvailabilityType = "soft"
)

// AvailabilityBlock marks a window in which an employee is unavailable or would rather not work
type AvailabilityBlock struct {
	Day   Day              `json:"day" validate:"weekday"`
	Start string           `json:"start" validate:"hhmm"`
	End   string           `json:"end" validate:"hhmm"`
	Type  AvailabilityType `json:"type" validate:"oneof=hard soft"`
}

// ShiftPreferences records opening/closing preferences
type ShiftPreferences struct {
	PrefersOpenings bool `json:"prefersOpenings"`
	PrefersClosings bool `json:"prefersClosings"`
}

// Pairing lists employee ids this employee prefers to work with or to avoid
type Pairing struct {
	PreferWith []string `json:"preferWith"`
	AvoidWith  []string `json:"avoidWith"`
}

// Employee represents a staff member and their scheduling constraints
type Employee struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Roles                []string            `json:"roles" validate:"min=1"`
	Wage                 float64             `json:"wage" validate:"gte=0"`
	Seniority            int                 `json:"seniority" validate:"gte=0,lte=10"`
	PreferredHours       HoursRange          `json:"preferredHours"`
	PreferredShiftLength ShiftLength         `json:"preferredShiftLength"`
	Availability         []AvailabilityBlock `json:"availability" validate:"dive"`
	Preferences          ShiftPreferences    `json:"preferences"`
	Pairing              Pairing             `json:"pairing"`
}

// HasRole reports whether the employee lists the given role
func (e Employee) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequiredPresence demands a minimum head count of a role in a window
type RequiredPresence struct {
	Role  string `json:"role"`
	Day   Day    `json:"day" validate:"weekday"`
	Start string `json:"start" validate:"hhmm"`
	End   string `json:"end" validate:"hhmm"`
	Count int    `json:"count" validate:"gte=0"`
}

// BreakRule grants a break once a shift reaches AfterHours
type BreakRule struct {
	AfterHours float64 `json:"afterHours" validate:"gte=0"`
	Minutes    int     `json:"minutes" validate:"gte=0"`
	Paid       bool    `json:"paid"`
}

// Blackout blocks scheduling on a calendar date
type Blackout struct {
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// HardRules are constraints the solver must satisfy exactly
type HardRules struct {
	MaxHoursPerDay     float64            `json:"maxHoursPerDay" validate:"gte=0"`
	MaxHoursPerWeek    float64            `json:"maxHoursPerWeek" validate:"gte=0"`
	MinRestHours       float64            `json:"minRestHours" validate:"gte=0"`
	MaxConsecutiveDays int                `json:"maxConsecutiveDays" validate:"gte=0,lte=7"`
	NoSplitShifts      bool               `json:"noSplitShifts"`
	RequiredPresence   []RequiredPresence `json:"requiredPresence" validate:"dive"`
	BreakPolicy        []BreakRule        `json:"breakPolicy" validate:"dive"`
	Blackouts          []Blackout         `json:"blackouts"`
}

// SoftRules are 0-100 importance sliders set by the operator
type SoftRules struct {
	FairnessBalance    int `json:"fairnessBalance" validate:"gte=0,lte=100"`
	MinimizeUnderstaff int `json:"minimizeUnderstaff" validate:"gte=0,lte=100"`
	MinimizeOverstaff  int `json:"minimizeOverstaff" validate:"gte=0,lte=100"`
	MinimizeCost       int `json:"minimizeCost" validate:"gte=0,lte=100"`
	RespectPreferences int `json:"respectPreferences" validate:"gte=0,lte=100"`
	SeniorityPriority  int `json:"seniorityPriority" validate:"gte=0,lte=100"`
	ShiftContinuity    int `json:"shiftContinuity" validate:"gte=0,lte=100"`
	PairingPreferences int `json:"pairingPreferences" validate:"gte=0,lte=100"`
	OpenCloseBalance   int `json:"openCloseBalance" validate:"gte=0,lte=100"`
}

// Sliders returns the nine sliders keyed by their JSON names
func (s SoftRules) Sliders() map[string]int {
	return map[string]int{
		"fairnessBalance":    s.FairnessBalance,
		"minimizeUnderstaff": s.MinimizeUnderstaff,
		"minimizeOverstaff":  s.MinimizeOverstaff,
		"minimizeCost":       s.MinimizeCost,
		"respectPreferences": s.RespectPreferences,
		"seniorityPriority":  s.SeniorityPriority,
		"shiftContinuity":    s.ShiftContinuity,
		"pairingPreferences": s.PairingPreferences,
		"openCloseBalance":   s.OpenCloseBalance,
	}
}

// Budget caps weekly labor spend
type Budget struct {
	WeeklyLimit   float64 `json:"weeklyLimit" validate:"gte=0"`
	AllowExceedBy float64 `json:"allowExceedBy" validate:"gte=0,lte=100"`
}

// HumanConfig is the human-editable scheduling configuration
type HumanConfig struct {
	BusinessHours BusinessHours `json:"businessHours"`
	Roles         []string      `json:"roles"`
	Coverage      RoleCoverage  `json:"coverage"`
	Employees     []Employee    `json:"employees" validate:"dive"`
	HardRules     HardRules     `json:"hardRules"`
	SoftRules     SoftRules     `json:"softRules"`
	Budget        Budget        `json:"budget"`
}

// NormalizedConfig is the solver-ready form of a HumanConfig
type NormalizedConfig struct {
	HumanConfig
	SoftRuleWeights map[string]float64 `json:"softRuleWeights"`
}

// Severity classifies a conflict as blocking or advisory
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups conflicts by the part of the configuration they concern
type Category string

const (
	CategoryCoverage Category = "coverage"
	CategoryEmployee Category = "employee"
	CategoryRules    Category = "rules"
	CategoryBudget   Category = "budget"
)

// ConflictItem is a detected configuration problem
type ConflictItem struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Location string   `json:"location"`
}

// CoverageHealth is a heuristic 0-100 staffing score
type CoverageHealth struct {
	Score             int `json:"score"`
	UnderstaffedSlots int `json:"understaffedSlots"`
	OverstaffedSlots  int `json:"overstaffedSlots"`
	TotalSlots        int `json:"totalSlots"`
}

// CostBreakdown splits projected hours
type CostBreakdown struct {
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalHours    float64 `json:"totalHours"`
}

// CostEstimate is the floor labor cost projected from minimum staffing
type CostEstimate struct {
	Total     float64            `json:"total"`
	ByRole    map[string]float64 `json:"byRole"`
	Breakdown CostBreakdown      `json:"breakdown"`
}
