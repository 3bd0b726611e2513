package models

// Clone returns a deep copy that shares no slices or maps with c
func (c HumanConfig) Clone() HumanConfig {
	out := c

	if c.BusinessHours != nil {
		out.BusinessHours = make(BusinessHours, len(c.BusinessHours))
		for d, h := range c.BusinessHours {
			out.BusinessHours[d] = h
		}
	}

	out.Roles = cloneStrings(c.Roles)
	out.Coverage = c.Coverage.Clone()

	if c.Employees != nil {
		out.Employees = make([]Employee, len(c.Employees))
		for i, e := range c.Employees {
			out.Employees[i] = e.Clone()
		}
	}

	out.HardRules = c.HardRules.Clone()
	return out
}

// Clone returns a deep copy of the coverage map
func (rc RoleCoverage) Clone() RoleCoverage {
	if rc == nil {
		return nil
	}
	out := make(RoleCoverage, len(rc))
	for role, days := range rc {
		if days == nil {
			out[role] = nil
			continue
		}
		cp := make(map[Day][]CoverageInterval, len(days))
		for d, ivs := range days {
			if ivs == nil {
				cp[d] = nil
				continue
			}
			cp[d] = append([]CoverageInterval{}, ivs...)
		}
		out[role] = cp
	}
	return out
}

// Clone returns a deep copy of the employee
func (e Employee) Clone() Employee {
	out := e
	out.Roles = cloneStrings(e.Roles)
	if e.Availability != nil {
		out.Availability = append([]AvailabilityBlock{}, e.Availability...)
	}
	out.Pairing.PreferWith = cloneStrings(e.Pairing.PreferWith)
	out.Pairing.AvoidWith = cloneStrings(e.Pairing.AvoidWith)
	return out
}

// Clone returns a deep copy of the hard rules
func (h HardRules) Clone() HardRules {
	out := h
	if h.RequiredPresence != nil {
		out.RequiredPresence = append([]RequiredPresence{}, h.RequiredPresence...)
	}
	if h.BreakPolicy != nil {
		out.BreakPolicy = append([]BreakRule{}, h.BreakPolicy...)
	}
	if h.Blackouts != nil {
		out.Blackouts = append([]Blackout{}, h.Blackouts...)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
