package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/presets"
)

// mutate runs fn under the write lock and recomputes when it succeeds
func (s *Store) mutate(op string, fn func(cfg *models.HumanConfig) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.cfg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.commit()
	s.logger.Debug("Applied mutation", zap.String("workspace", s.workspace), zap.String("op", op))
	return nil
}

func checkDay(day models.Day) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	return nil
}

// SetBusinessHours replaces the opening window of one day
func (s *Store) SetBusinessHours(day models.Day, hours models.DayHours) error {
	if err := checkDay(day); err != nil {
		return err
	}
	return s.mutate("set business hours", func(cfg *models.HumanConfig) error {
		if cfg.BusinessHours == nil {
			cfg.BusinessHours = make(models.BusinessHours)
		}
		cfg.BusinessHours[day] = hours
		return nil
	})
}

// AddRole appends a role and gives it an empty coverage map
func (s *Store) AddRole(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoleName
	}
	return s.mutate("add role", func(cfg *models.HumanConfig) error {
		cfg.Roles = append(cfg.Roles, name)
		if cfg.Coverage == nil {
			cfg.Coverage = make(models.RoleCoverage)
		}
		if _, ok := cfg.Coverage[name]; !ok {
			cfg.Coverage[name] = make(map[models.Day][]models.CoverageInterval)
		}
		return nil
	})
}

// RemoveRole drops a role and its coverage. Employees keep the role in their lists.
func (s *Store) RemoveRole(name string) error {
	return s.mutate("remove role", func(cfg *models.HumanConfig) error {
		kept := cfg.Roles[:0:0]
		for _, r := range cfg.Roles {
			if r != name {
				kept = append(kept, r)
			}
		}
		_, hasCoverage := cfg.Coverage[name]
		if len(kept) == len(cfg.Roles) && !hasCoverage {
			return fmt.Errorf("%w: %q", ErrRoleNotFound, name)
		}
		cfg.Roles = kept
		delete(cfg.Coverage, name)
		return nil
	})
}

// AddCoverageInterval appends an interval, assigning an id when it has none
func (s *Store) AddCoverageInterval(role string, day models.Day, iv models.CoverageInterval) (models.CoverageInterval, error) {
	if err := checkDay(day); err != nil {
		return models.CoverageInterval{}, err
	}
	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	err := s.mutate("add coverage interval", func(cfg *models.HumanConfig) error {
		if cfg.Coverage == nil {
			cfg.Coverage = make(models.RoleCoverage)
		}
		days, ok := cfg.Coverage[role]
		if !ok || days == nil {
			days = make(map[models.Day][]models.CoverageInterval)
			cfg.Coverage[role] = days
		}
		days[day] = append(days[day], iv)
		return nil
	})
	if err != nil {
		return models.CoverageInterval{}, err
	}
	return iv, nil
}

// UpdateCoverageInterval applies patch to the interval with the given id
func (s *Store) UpdateCoverageInterval(role string, day models.Day, id string, patch IntervalPatch) (models.CoverageInterval, error) {
	var updated models.CoverageInterval
	err := s.mutate("update coverage interval", func(cfg *models.HumanConfig) error {
		ivs, err := findDay(cfg, role, day)
		if err != nil {
			return err
		}
		for i := range ivs {
			if ivs[i].ID == id {
				patch.apply(&ivs[i])
				updated = ivs[i]
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrIntervalNotFound, id)
	})
	return updated, err
}

// RemoveCoverageInterval deletes the interval with the given id
func (s *Store) RemoveCoverageInterval(role string, day models.Day, id string) error {
	return s.mutate("remove coverage interval", func(cfg *models.HumanConfig) error {
		ivs, err := findDay(cfg, role, day)
		if err != nil {
			return err
		}
		for i := range ivs {
			if ivs[i].ID == id {
				cfg.Coverage[role][day] = append(ivs[:i:i], ivs[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrIntervalNotFound, id)
	})
}

// DuplicateDaySchedule replaces the role's intervals on each target day with copies of from's
func (s *Store) DuplicateDaySchedule(role string, from models.Day, to []models.Day) error {
	if err := checkDay(from); err != nil {
		return err
	}
	for _, d := range to {
		if err := checkDay(d); err != nil {
			return err
		}
	}
	return s.mutate("duplicate day schedule", func(cfg *models.HumanConfig) error {
		days, ok := cfg.Coverage[role]
		if !ok || days == nil {
			return fmt.Errorf("%w: %q", ErrRoleNotFound, role)
		}
		src := days[from]
		for _, d := range to {
			if d == from {
				continue
			}
			copies := make([]models.CoverageInterval, len(src))
			for i, iv := range src {
				iv.ID = uuid.NewString()
				copies[i] = iv
			}
			days[d] = copies
		}
		return nil
	})
}

// AddEmployee appends an employee, assigning an id and default shift length when unset
func (s *Store) AddEmployee(e models.Employee) (models.Employee, error) {
	e = e.Clone()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.PreferredShiftLength.Min == 0 {
		e.PreferredShiftLength.Min = models.DefaultShiftLengthMin
	}
	if e.PreferredShiftLength.Max == 0 {
		e.PreferredShiftLength.Max = models.DefaultShiftLengthMax
	}
	if e.Roles == nil {
		e.Roles = []string{}
	}
	if e.Availability == nil {
		e.Availability = []models.AvailabilityBlock{}
	}

	err := s.mutate("add employee", func(cfg *models.HumanConfig) error {
		cfg.Employees = append(cfg.Employees, e)
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}
	return e.Clone(), nil
}

// UpdateEmployee applies patch to the employee with the given id
func (s *Store) UpdateEmployee(id string, patch EmployeePatch) (models.Employee, error) {
	var updated models.Employee
	err := s.mutate("update employee", func(cfg *models.HumanConfig) error {
		for i := range cfg.Employees {
			if cfg.Employees[i].ID == id {
				patch.apply(&cfg.Employees[i])
				updated = cfg.Employees[i].Clone()
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	})
	return updated, err
}

// RemoveEmployee deletes the employee and drops it from everyone's pairing lists
func (s *Store) RemoveEmployee(id string) error {
	return s.mutate("remove employee", func(cfg *models.HumanConfig) error {
		idx := -1
		for i, e := range cfg.Employees {
			if e.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
		}
		cfg.Employees = append(cfg.Employees[:idx:idx], cfg.Employees[idx+1:]...)
		for i := range cfg.Employees {
			p := &cfg.Employees[i].Pairing
			p.PreferWith = without(p.PreferWith, id)
			p.AvoidWith = without(p.AvoidWith, id)
		}
		return nil
	})
}

// SetHardRules patches the hard rules
func (s *Store) SetHardRules(patch HardRulesPatch) error {
	return s.mutate("set hard rules", func(cfg *models.HumanConfig) error {
		patch.apply(&cfg.HardRules)
		return nil
	})
}

// SetSoftRules patches the soft rule sliders
func (s *Store) SetSoftRules(patch SoftRulesPatch) error {
	return s.mutate("set soft rules", func(cfg *models.HumanConfig) error {
		patch.apply(&cfg.SoftRules)
		return nil
	})
}

// SetBudget patches the budget
func (s *Store) SetBudget(patch BudgetPatch) error {
	return s.mutate("set budget", func(cfg *models.HumanConfig) error {
		patch.apply(&cfg.Budget)
		return nil
	})
}

// LoadPreset merges a named preset into the live config
func (s *Store) LoadPreset(name string) error {
	overlay, err := presets.Load(name)
	if err != nil {
		return err
	}
	return s.mutate("load preset", func(cfg *models.HumanConfig) error {
		*cfg = presets.Apply(*cfg, overlay)
		return nil
	})
}

// Reset restores the default configuration
func (s *Store) Reset() {
	_ = s.mutate("reset", func(cfg *models.HumanConfig) error {
		*cfg = models.Default()
		return nil
	})
}

func findDay(cfg *models.HumanConfig, role string, day models.Day) ([]models.CoverageInterval, error) {
	days, ok := cfg.Coverage[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoleNotFound, role)
	}
	ivs, ok := days[day]
	if !ok {
		if !day.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, day)
		}
		return nil, fmt.Errorf("%w: no coverage on %s", ErrIntervalNotFound, day)
	}
	return ivs, nil
}

func without(ids []string, id string) []string {
	if ids == nil {
		return nil
	}
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
