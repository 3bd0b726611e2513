package models

// Default shift length bounds applied when an employee leaves them unset
const (
	DefaultShiftLengthMin = 4
	DefaultShiftLengthMax = 8
)

// Default returns the configuration a new workspace starts from
func Default() HumanConfig {
	hours := make(BusinessHours, len(Days))
	for _, d := range Days {
		hours[d] = DayHours{Open: "11:00", Close: "22:00"}
	}
	hours[Friday] = DayHours{Open: "11:00", Close: "23:00"}
	hours[Saturday] = DayHours{Open: "10:00", Close: "23:00"}
	hours[Sunday] = DayHours{Open: "10:00", Close: "21:00"}

	roles := []string{"Server", "Cook", "Host"}
	coverage := make(RoleCoverage, len(roles))
	for _, r := range roles {
		coverage[r] = make(map[Day][]CoverageInterval)
	}

	return HumanConfig{
		BusinessHours: hours,
		Roles:         roles,
		Coverage:      coverage,
		Employees:     []Employee{},
		HardRules: HardRules{
			MaxHoursPerDay:     10,
			MaxHoursPerWeek:    40,
			MinRestHours:       10,
			MaxConsecutiveDays: 6,
			RequiredPresence:   []RequiredPresence{},
			BreakPolicy:        []BreakRule{{AfterHours: 6, Minutes: 30}},
			Blackouts:          []Blackout{},
		},
		SoftRules: SoftRules{
			FairnessBalance:    50,
			MinimizeUnderstaff: 80,
			MinimizeOverstaff:  40,
			MinimizeCost:       50,
			RespectPreferences: 60,
			SeniorityPriority:  30,
			ShiftContinuity:    50,
			PairingPreferences: 20,
			OpenCloseBalance:   40,
		},
		Budget: Budget{AllowExceedBy: 10},
	}
}
