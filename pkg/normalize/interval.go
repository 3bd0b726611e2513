// Package normalize turns a human-edited configuration into the solver-ready canonical form.
package normalize

import (
	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/models"
)

// DayInterval is a coverage interval tagged with the day it falls on
type DayInterval struct {
	Day      models.Day              `json:"day"`
	Interval models.CoverageInterval `json:"interval"`
}

// NormalizeCoverageInterval fills unset ideal/max and clamps so that min <= ideal <= max.
// Zero ideal or max is treated as unset.
func NormalizeCoverageInterval(iv models.CoverageInterval) models.CoverageInterval {
	if iv.Ideal == 0 {
		iv.Ideal = iv.Min
	}
	if iv.Max == 0 {
		iv.Max = iv.Ideal + 1
	}
	iv.Ideal = max(iv.Min, iv.Ideal)
	iv.Max = max(iv.Ideal, iv.Max)
	return iv
}

// SplitCrossMidnightInterval splits an interval whose end is before its start into a part ending
// at 23:59 on day and a part starting at 00:00 on the next day
func SplitCrossMidnightInterval(day models.Day, iv models.CoverageInterval) []DayInterval {
	if clock.TimeToMinutes(iv.End) >= clock.TimeToMinutes(iv.Start) {
		return []DayInterval{{Day: day, Interval: iv}}
	}

	first := iv
	first.ID = iv.ID + "_p1"
	first.End = "23:59"

	second := iv
	second.ID = iv.ID + "_p2"
	second.Start = "00:00"

	return []DayInterval{
		{Day: day, Interval: first},
		{Day: day.Next(), Interval: second},
	}
}
