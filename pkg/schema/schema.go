// Package schema performs the structural validation that runs alongside the conflict detector:
// shapes, ranges, time strings and cross-field refinements.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arnavshah/roster-config-api/pkg/clock"
	"github.com/arnavshah/roster-config-api/pkg/models"
)

// FieldError describes a single structural problem
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := clock.ParseTime(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return models.Day(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(intervalLevel, models.CoverageInterval{})
	v.RegisterStructValidation(employeeLevel, models.Employee{})
	v.RegisterStructValidation(dayHoursLevel, models.DayHours{})
	return v
}

// intervalLevel treats zero ideal/max as unset
func intervalLevel(sl validator.StructLevel) {
	iv := sl.Current().Interface().(models.CoverageInterval)
	if iv.Ideal != 0 && iv.Ideal < iv.Min {
		sl.ReportError(iv.Ideal, "Ideal", "ideal", "gtemin", "")
	}
	if iv.Max != 0 && iv.Max < max(iv.Min, iv.Ideal) {
		sl.ReportError(iv.Max, "Max", "max", "gteideal", "")
	}
}

func employeeLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(models.Employee)
	ph := e.PreferredHours
	if ph.Min > ph.Target || ph.Target > ph.Max {
		sl.ReportError(ph, "PreferredHours", "preferredHours", "ordered", "")
	}
	sh := e.PreferredShiftLength
	if sh.Min != 0 && sh.Max != 0 && sh.Min > sh.Max {
		sl.ReportError(sh, "PreferredShiftLength", "preferredShiftLength", "ordered", "")
	}
}

func dayHoursLevel(sl validator.StructLevel) {
	h := sl.Current().Interface().(models.DayHours)
	if !h.Closed && !h.Is24h && h.Open == h.Close {
		sl.ReportError(h.Close, "Close", "close", "neopen", "")
	}
}

// Validate checks the whole configuration. An empty result means it is structurally valid.
func Validate(cfg models.HumanConfig) []FieldError {
	var out []FieldError
	out = append(out, collect("", validate.Struct(cfg))...)

	for _, d := range models.Days {
		if _, ok := cfg.BusinessHours[d]; !ok {
			out = append(out, FieldError{Field: "businessHours." + string(d), Message: "is required"})
		}
	}
	for _, d := range sortedHoursDays(cfg.BusinessHours) {
		h := cfg.BusinessHours[d]
		if !d.Valid() {
			out = append(out, FieldError{Field: "businessHours." + string(d), Message: "is not a day of the week"})
			continue
		}
		out = append(out, collect("businessHours."+string(d), validate.Struct(h))...)
	}

	for _, role := range cfg.Coverage.RoleNames() {
		days := cfg.Coverage[role]
		for _, d := range models.OrderedDays(days) {
			prefix := fmt.Sprintf("coverage.%s.%s", role, d)
			if !d.Valid() {
				out = append(out, FieldError{Field: prefix, Message: "is not a day of the week"})
				continue
			}
			for i, iv := range days[d] {
				out = append(out, collect(fmt.Sprintf("%s[%d]", prefix, i), validate.Struct(iv))...)
			}
		}
	}
	return out
}

// ValidateInterval checks a single coverage interval
func ValidateInterval(iv models.CoverageInterval) []FieldError {
	return collect("", validate.Struct(iv))
}

// ValidateEmployee checks a single employee
func ValidateEmployee(e models.Employee) []FieldError {
	return collect("", validate.Struct(e))
}

// ValidateDayHours checks a single business hours entry
func ValidateDayHours(h models.DayHours) []FieldError {
	return collect("", validate.Struct(h))
}

// Join folds field errors into one error, nil when there are none
func Join(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func collect(prefix string, err error) []FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: prefix, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonPath(fe.Namespace())
		if prefix != "" {
			field = prefix + "." + field
		}
		out = append(out, FieldError{Field: field, Message: message(fe)})
	}
	return out
}

// jsonPath drops the root struct name and lowercases the first letter of each segment
func jsonPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "hhmm":
		return "must be HH:MM between 00:00 and 23:59"
	case "weekday":
		return "must be a lowercase day of the week"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gtemin":
		return "must not be below min"
	case "gteideal":
		return "must not be below ideal"
	case "ordered":
		return "min, target and max must be in increasing order"
	case "neopen":
		return "must differ from open unless closed or open 24h"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func sortedHoursDays(h models.BusinessHours) []models.Day {
	out := make([]models.Day, 0, len(h))
	for _, d := range models.Days {
		if _, ok := h[d]; ok {
			out = append(out, d)
		}
	}
	for d := range h {
		if !d.Valid() {
			out = append(out, d)
		}
	}
	return out
}
