package schema

import (
	"strings"
	"testing"

	"github.com/arnavshah/roster-config-api/pkg/models"
)

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateDefault(t *testing.T) {
	if errs := Validate(models.Default()); len(errs) != 0 {
		t.Errorf("Expected default config to be valid, got %+v", errs)
	}
}

func TestValidateMissingDay(t *testing.T) {
	cfg := models.Default()
	delete(cfg.BusinessHours, models.Wednesday)

	errs := Validate(cfg)
	if !hasField(errs, "businessHours.wednesday") {
		t.Errorf("Expected missing wednesday to be reported, got %+v", errs)
	}
}

func TestValidateDayHours(t *testing.T) {
	tests := []struct {
		name  string
		hours models.DayHours
		ok    bool
	}{
		{name: "normal", hours: models.DayHours{Open: "11:00", Close: "22:00"}, ok: true},
		{name: "closed without times", hours: models.DayHours{Closed: true}, ok: true},
		{name: "24h", hours: models.DayHours{Open: "00:00", Close: "00:00", Is24h: true}, ok: true},
		{name: "open equals close", hours: models.DayHours{Open: "09:00", Close: "09:00"}, ok: false},
		{name: "bad time", hours: models.DayHours{Open: "25:00", Close: "22:00"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDayHours(tt.hours)
			if tt.ok && len(errs) != 0 {
				t.Errorf("Expected valid, got %+v", errs)
			}
			if !tt.ok && len(errs) == 0 {
				t.Errorf("Expected an error for %+v", tt.hours)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name  string
		iv    models.CoverageInterval
		field string
	}{
		{name: "valid", iv: models.CoverageInterval{Start: "11:00", End: "14:00", Min: 2, Ideal: 3, Max: 4}},
		{name: "unset ideal and max", iv: models.CoverageInterval{Start: "11:00", End: "14:00", Min: 2}},
		{name: "ideal below min", iv: models.CoverageInterval{Start: "11:00", End: "14:00", Min: 3, Ideal: 2}, field: "ideal"},
		{name: "max below ideal", iv: models.CoverageInterval{Start: "11:00", End: "14:00", Min: 1, Ideal: 4, Max: 3}, field: "max"},
		{name: "bad start", iv: models.CoverageInterval{Start: "9am", End: "14:00"}, field: "start"},
		{name: "negative min", iv: models.CoverageInterval{Start: "11:00", End: "14:00", Min: -1}, field: "min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateInterval(tt.iv)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Errorf("Expected valid, got %+v", errs)
				}
				return
			}
			if !hasField(errs, tt.field) {
				t.Errorf("Expected error on %s, got %+v", tt.field, errs)
			}
		})
	}
}

func TestValidateEmployee(t *testing.T) {
	e := models.Employee{ID: "e1", Name: "Alice", Roles: []string{"Server"}, Wage: 15}
	if errs := ValidateEmployee(e); len(errs) != 0 {
		t.Fatalf("Expected valid employee, got %+v", errs)
	}

	e.Roles = nil
	e.PreferredHours = models.HoursRange{Min: 30, Target: 20, Max: 40}
	e.Seniority = 11
	errs := ValidateEmployee(e)
	for _, field := range []string{"roles", "preferredHours", "seniority"} {
		if !hasField(errs, field) {
			t.Errorf("Expected error on %s, got %+v", field, errs)
		}
	}
}

func TestValidateNestedPaths(t *testing.T) {
	cfg := models.Default()
	cfg.Coverage["Server"][models.Monday] = []models.CoverageInterval{{ID: "a", Start: "11:00", End: "99:00"}}
	cfg.Employees = []models.Employee{{ID: "e1", Roles: []string{"Server"}, Availability: []models.AvailabilityBlock{
		{Day: "funday", Start: "09:00", End: "12:00", Type: models.AvailabilityHard},
	}}}
	cfg.SoftRules.MinimizeCost = 150

	errs := Validate(cfg)
	for _, field := range []string{
		"coverage.Server.monday[0].end",
		"employees[0].availability[0].day",
		"softRules.minimizeCost",
	} {
		if !hasField(errs, field) {
			t.Errorf("Expected error on %s, got %+v", field, errs)
		}
	}
}

func TestJoin(t *testing.T) {
	if Join(nil) != nil {
		t.Error("Expected nil for no errors")
	}
	err := Join([]FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}})
	if err == nil || !strings.Contains(err.Error(), "a: bad") || !strings.Contains(err.Error(), "b: worse") {
		t.Errorf("Unexpected joined error %v", err)
	}
}
