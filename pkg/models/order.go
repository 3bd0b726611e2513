package models

import "sort"

// RoleNames returns the coverage role names sorted alphabetically
func (rc RoleCoverage) RoleNames() []string {
	roles := make([]string, 0, len(rc))
	for role := range rc {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// OrderedDays returns the keys of days in week order, with unknown keys sorted after sunday
func OrderedDays(days map[Day][]CoverageInterval) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range Days {
		if _, ok := days[d]; ok {
			out = append(out, d)
		}
	}
	var extra []Day
	for d := range days {
		if !d.Valid() {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
