package solver

import (
	"fmt"

	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/models"
)

// CoverageGap is a shift whose minimum cannot be met by the eligible staff
type CoverageGap struct {
	ShiftID         string     `json:"shift_id"`
	Day             models.Day `json:"day"`
	TimeRange       string     `json:"time_range"`
	ShiftType       ShiftType  `json:"shift_type"`
	RequiredRole    string     `json:"required_role"`
	MissingStaff    int        `json:"missing_staff"`
	EligibleWorkers int        `json:"eligible_workers"`
	Reason          string     `json:"reason"`
}

// Preflight reports every normalized interval that has fewer eligible employees than its minimum.
// An employee is eligible when they hold the role and no hard availability block overlaps the interval.
func Preflight(n models.NormalizedConfig) []CoverageGap {
	gaps := []CoverageGap{}
	for _, role := range n.Coverage.RoleNames() {
		days := n.Coverage[role]
		for _, day := range models.OrderedDays(days) {
			for _, iv := range days[day] {
				eligible := 0
				for _, e := range n.Employees {
					if e.HasRole(role) && available(e, day, iv) {
						eligible++
					}
				}
				if eligible >= iv.Min {
					continue
				}
				gaps = append(gaps, CoverageGap{
					ShiftID:         ShiftID(role, day, iv.ID),
					Day:             day,
					TimeRange:       iv.Start + "-" + iv.End,
					ShiftType:       ClassifyShift(iv.Start),
					RequiredRole:    role,
					MissingStaff:    iv.Min - eligible,
					EligibleWorkers: eligible,
					Reason:          gapReason(eligible, iv.Min),
				})
			}
		}
	}
	return gaps
}

func available(e models.Employee, day models.Day, iv models.CoverageInterval) bool {
	start, end := clock.TimeToMinutes(iv.Start), clock.TimeToMinutes(iv.End)
	for _, b := range e.Availability {
		if b.Type != models.AvailabilityHard || b.Day != day {
			continue
		}
		bStart, bEnd := clock.TimeToMinutes(b.Start), clock.TimeToMinutes(b.End)
		if bEnd < bStart {
			bEnd = clock.MinutesPerDay
		}
		if clock.Overlaps(start, end, bStart, bEnd) {
			return false
		}
	}
	return true
}

func gapReason(eligible, needed int) string {
	if eligible == 0 {
		return "No workers available with required role and availability"
	}
	return fmt.Sprintf("Only %d eligible workers, need %d", eligible, needed)
}
