package store

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/presets"
)

type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: make(map[string][]byte)}
}

func (m *memSnapshots) Save(_ context.Context, workspace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[workspace] = append([]byte{}, data...)
	return nil
}

func (m *memSnapshots) Load(_ context.Context, workspace string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[workspace]
	return d, ok, nil
}

func TestNewStoreDefaults(t *testing.T) {
	s := New(nil)

	if len(s.Conflicts()) != 0 {
		t.Errorf("Expected no conflicts, got %+v", s.Conflicts())
	}
	if h := s.CoverageHealth(); h.Score != 100 || h.TotalSlots != 0 {
		t.Errorf("Expected perfect health, got %+v", h)
	}
	if s.Version() != 0 {
		t.Errorf("Expected version 0, got %d", s.Version())
	}
}

func TestAddCoverageIntervalRecomputes(t *testing.T) {
	s := New(nil)

	a, err := s.AddCoverageInterval("Server", models.Monday, models.CoverageInterval{Start: "11:00", End: "15:00", Min: 1})
	if err != nil {
		t.Fatalf("Failed to add interval: %v", err)
	}
	if a.ID == "" {
		t.Error("Expected an id to be assigned")
	}
	if _, err := s.AddCoverageInterval("Server", models.Monday, models.CoverageInterval{Start: "14:00", End: "18:00", Min: 1}); err != nil {
		t.Fatalf("Failed to add interval: %v", err)
	}

	d := s.Derived()
	if d.Version != 2 || s.Version() != 2 {
		t.Errorf("Expected version 2, got derived %d store %d", d.Version, s.Version())
	}
	if len(d.Conflicts) != 1 || d.Conflicts[0].Severity != models.SeverityError {
		t.Fatalf("Expected one overlap error, got %+v", d.Conflicts)
	}
	if d.CoverageHealth.TotalSlots != 2 {
		t.Errorf("Expected 2 slots, got %+v", d.CoverageHealth)
	}
}

func TestAddCoverageIntervalNewRole(t *testing.T) {
	s := New(nil)
	if _, err := s.AddCoverageInterval("Bartender", models.Friday, models.CoverageInterval{ID: "bar", Start: "18:00", End: "23:00", Min: 1}); err != nil {
		t.Fatalf("Failed to add interval: %v", err)
	}
	if got := s.Config().Coverage["Bartender"][models.Friday]; len(got) != 1 || got[0].ID != "bar" {
		t.Errorf("Unexpected coverage %+v", got)
	}

	if _, err := s.AddCoverageInterval("Bartender", "caturday", models.CoverageInterval{}); !errors.Is(err, ErrUnknownDay) {
		t.Errorf("Expected ErrUnknownDay, got %v", err)
	}
}

func TestUpdateAndRemoveCoverageInterval(t *testing.T) {
	s := New(nil)
	mustAdd := func(iv models.CoverageInterval) {
		t.Helper()
		if _, err := s.AddCoverageInterval("Cook", models.Tuesday, iv); err != nil {
			t.Fatalf("Failed to add interval: %v", err)
		}
	}
	mustAdd(models.CoverageInterval{ID: "a", Start: "11:00", End: "15:00", Min: 1})
	mustAdd(models.CoverageInterval{ID: "b", Start: "14:00", End: "18:00", Min: 1})

	end := "14:00"
	iv, err := s.UpdateCoverageInterval("Cook", models.Tuesday, "a", IntervalPatch{End: &end})
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}
	if iv.End != "14:00" || iv.Start != "11:00" {
		t.Errorf("Unexpected patched interval %+v", iv)
	}
	if len(s.Conflicts()) != 0 {
		t.Errorf("Expected overlap resolved, got %+v", s.Conflicts())
	}

	if err := s.RemoveCoverageInterval("Cook", models.Tuesday, "a"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if got := s.Config().Coverage["Cook"][models.Tuesday]; len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Unexpected coverage after remove %+v", got)
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"missing id", s.RemoveCoverageInterval("Cook", models.Tuesday, "zzz"), ErrIntervalNotFound},
		{"missing role", s.RemoveCoverageInterval("Juggler", models.Tuesday, "b"), ErrRoleNotFound},
		{"missing day", s.RemoveCoverageInterval("Cook", models.Sunday, "b"), ErrIntervalNotFound},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.err)
		}
	}
}

func TestFailedMutationKeepsVersion(t *testing.T) {
	s := New(nil)
	if err := s.RemoveEmployee("ghost"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("Expected ErrEmployeeNotFound, got %v", err)
	}
	if s.Version() != 0 {
		t.Errorf("Expected failed mutation to leave version at 0, got %d", s.Version())
	}
}

func TestSetBusinessHours(t *testing.T) {
	s := New(nil)
	if err := s.SetBusinessHours("someday", models.DayHours{}); !errors.Is(err, ErrUnknownDay) {
		t.Errorf("Expected ErrUnknownDay, got %v", err)
	}
	if _, err := s.AddCoverageInterval("Server", models.Monday, models.CoverageInterval{ID: "x", Start: "09:00", End: "12:00", Min: 1}); err != nil {
		t.Fatal(err)
	}
	if len(s.Conflicts()) != 1 {
		t.Fatalf("Expected out-of-hours conflict, got %+v", s.Conflicts())
	}

	if err := s.SetBusinessHours(models.Monday, models.DayHours{Open: "08:00", Close: "22:00"}); err != nil {
		t.Fatalf("Failed to set hours: %v", err)
	}
	if len(s.Conflicts()) != 0 {
		t.Errorf("Expected conflict cleared, got %+v", s.Conflicts())
	}
}

func TestRoles(t *testing.T) {
	s := New(nil)
	if err := s.AddRole("  "); !errors.Is(err, ErrEmptyRoleName) {
		t.Errorf("Expected ErrEmptyRoleName, got %v", err)
	}
	if err := s.AddRole("Bartender"); err != nil {
		t.Fatalf("Failed to add role: %v", err)
	}
	cfg := s.Config()
	if _, ok := cfg.Coverage["Bartender"]; !ok {
		t.Error("Expected coverage map for new role")
	}
	if cfg.Roles[len(cfg.Roles)-1] != "Bartender" {
		t.Errorf("Expected role appended, got %v", cfg.Roles)
	}

	if _, err := s.AddEmployee(models.Employee{ID: "e1", Roles: []string{"Server"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveRole("Server"); err != nil {
		t.Fatalf("Failed to remove role: %v", err)
	}
	cfg = s.Config()
	for _, r := range cfg.Roles {
		if r == "Server" {
			t.Error("Expected Server removed from roles")
		}
	}
	if _, ok := cfg.Coverage["Server"]; ok {
		t.Error("Expected Server coverage removed")
	}
	if !cfg.Employees[0].HasRole("Server") {
		t.Error("Expected employee to keep the removed role")
	}

	if err := s.RemoveRole("Server"); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("Expected ErrRoleNotFound, got %v", err)
	}
}

func TestDuplicateDaySchedule(t *testing.T) {
	s := New(nil)
	for _, iv := range []models.CoverageInterval{
		{ID: "lunch", Start: "11:00", End: "14:00", Min: 2},
		{ID: "dinner", Start: "17:00", End: "21:00", Min: 3},
	} {
		if _, err := s.AddCoverageInterval("Server", models.Monday, iv); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.AddCoverageInterval("Server", models.Wednesday, models.CoverageInterval{ID: "old", Start: "12:00", End: "13:00", Min: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.DuplicateDaySchedule("Server", models.Monday, []models.Day{models.Tuesday, models.Wednesday, models.Monday}); err != nil {
		t.Fatalf("Failed to duplicate: %v", err)
	}

	cov := s.Config().Coverage["Server"]
	if len(cov[models.Monday]) != 2 || cov[models.Monday][0].ID != "lunch" {
		t.Errorf("Expected source untouched, got %+v", cov[models.Monday])
	}
	seen := map[string]bool{"lunch": true, "dinner": true}
	for _, d := range []models.Day{models.Tuesday, models.Wednesday} {
		if len(cov[d]) != 2 {
			t.Fatalf("Expected 2 intervals on %s, got %+v", d, cov[d])
		}
		if cov[d][1].Start != "17:00" || cov[d][1].Min != 3 {
			t.Errorf("Unexpected copy on %s: %+v", d, cov[d][1])
		}
		for _, iv := range cov[d] {
			if seen[iv.ID] {
				t.Errorf("Expected fresh id, got reused %s", iv.ID)
			}
			seen[iv.ID] = true
		}
	}

	if err := s.DuplicateDaySchedule("Juggler", models.Monday, []models.Day{models.Tuesday}); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("Expected ErrRoleNotFound, got %v", err)
	}
	if err := s.DuplicateDaySchedule("Server", models.Monday, []models.Day{"funday"}); !errors.Is(err, ErrUnknownDay) {
		t.Errorf("Expected ErrUnknownDay, got %v", err)
	}
}

func TestEmployees(t *testing.T) {
	s := New(nil)

	alice, err := s.AddEmployee(models.Employee{Name: "Alice", Roles: []string{"Server"}, Wage: 16})
	if err != nil {
		t.Fatal(err)
	}
	if alice.ID == "" {
		t.Error("Expected an id to be assigned")
	}
	if alice.PreferredShiftLength != (models.ShiftLength{Min: 4, Max: 8}) {
		t.Errorf("Expected default shift length, got %+v", alice.PreferredShiftLength)
	}

	bob, err := s.AddEmployee(models.Employee{ID: "bob", Name: "Bob", Roles: []string{"Cook"},
		PreferredShiftLength: models.ShiftLength{Min: 6},
		Pairing:              models.Pairing{PreferWith: []string{alice.ID}, AvoidWith: []string{alice.ID, "carol"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if bob.PreferredShiftLength != (models.ShiftLength{Min: 6, Max: 8}) {
		t.Errorf("Expected only max defaulted, got %+v", bob.PreferredShiftLength)
	}

	wage := 18.5
	updated, err := s.UpdateEmployee(alice.ID, EmployeePatch{Wage: &wage})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Wage != 18.5 || updated.Name != "Alice" {
		t.Errorf("Unexpected patched employee %+v", updated)
	}

	if err := s.RemoveEmployee(alice.ID); err != nil {
		t.Fatal(err)
	}
	cfg := s.Config()
	if len(cfg.Employees) != 1 {
		t.Fatalf("Expected 1 employee left, got %d", len(cfg.Employees))
	}
	p := cfg.Employees[0].Pairing
	if len(p.PreferWith) != 0 || len(p.AvoidWith) != 1 || p.AvoidWith[0] != "carol" {
		t.Errorf("Expected removed id scrubbed from pairing, got %+v", p)
	}

	if _, err := s.UpdateEmployee(alice.ID, EmployeePatch{}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("Expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRuleAndBudgetPatches(t *testing.T) {
	s := New(nil)
	if _, err := s.AddCoverageInterval("Server", models.Monday, models.CoverageInterval{Start: "11:00", End: "14:00", Min: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEmployee(models.Employee{Roles: []string{"Server"}, Wage: 15}); err != nil {
		t.Fatal(err)
	}

	limit := 50.0
	if err := s.SetBudget(BudgetPatch{WeeklyLimit: &limit}); err != nil {
		t.Fatal(err)
	}
	cfg := s.Config()
	if cfg.Budget.WeeklyLimit != 50 || cfg.Budget.AllowExceedBy != 10 {
		t.Errorf("Unexpected budget %+v", cfg.Budget)
	}
	budget := 0
	for _, c := range s.Conflicts() {
		if c.Category == models.CategoryBudget && c.Severity == models.SeverityWarning {
			budget++
		}
	}
	if budget != 1 {
		t.Errorf("Expected one budget warning, got %+v", s.Conflicts())
	}
	if s.CostEstimate().Total != 135 {
		t.Errorf("Expected cost 135, got %v", s.CostEstimate().Total)
	}

	cost := 100
	if err := s.SetSoftRules(SoftRulesPatch{MinimizeCost: &cost}); err != nil {
		t.Fatal(err)
	}
	if w := s.Normalized().SoftRuleWeights["minimizeCost"]; w != 1.5 {
		t.Errorf("Expected weight 1.5, got %v", w)
	}
	if s.Config().SoftRules.FairnessBalance != 50 {
		t.Error("Expected untouched sliders to keep their values")
	}

	perDay := 30.0
	if err := s.SetHardRules(HardRulesPatch{MaxHoursPerDay: &perDay}); err != nil {
		t.Fatal(err)
	}
	if s.Config().HardRules.MaxHoursPerWeek != 40 {
		t.Error("Expected untouched hard rules to keep their values")
	}
	hasRuleError := false
	for _, c := range s.Conflicts() {
		if c.Category == models.CategoryRules && c.Severity == models.SeverityError {
			hasRuleError = true
		}
	}
	if !hasRuleError {
		t.Errorf("Expected a rules error, got %+v", s.Conflicts())
	}
}

func TestImportFailureKeepsState(t *testing.T) {
	s := New(nil)
	if err := s.AddRole("Bartender"); err != nil {
		t.Fatal(err)
	}
	before := s.Config()
	version := s.Version()

	if err := s.Import([]byte(`{"roles": [`)); err == nil {
		t.Fatal("Expected import of malformed JSON to fail")
	}
	if s.LastImportError() == nil {
		t.Error("Expected import failure to be observable")
	}
	if s.Version() != version {
		t.Errorf("Expected version unchanged, got %d", s.Version())
	}
	after := s.Config()
	if len(after.Roles) != len(before.Roles) || after.Roles[len(after.Roles)-1] != "Bartender" {
		t.Errorf("Expected config untouched, got roles %v", after.Roles)
	}

	if err := s.Import([]byte(`{"roles": ["Only"]}`)); err != nil {
		t.Fatalf("Failed to import: %v", err)
	}
	if s.LastImportError() != nil {
		t.Error("Expected successful import to clear the error")
	}
	if got := s.Config().Roles; len(got) != 1 || got[0] != "Only" {
		t.Errorf("Expected wholesale replacement, got %v", got)
	}
	if s.Conflicts() == nil {
		t.Error("Expected derived state for an imported sparse config")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := New(nil)
	if err := s.LoadPreset("bar-forward"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEmployee(models.Employee{ID: "e1", Name: "Sam", Roles: []string{"Bartender"}, Wage: 17}); err != nil {
		t.Fatal(err)
	}

	first, err := s.Export()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(first, []byte("\n  \"softRuleWeights\"")) {
		t.Error("Expected two-space indented export with soft rule weights")
	}

	other := New(nil)
	if err := other.Import(first); err != nil {
		t.Fatalf("Failed to import export: %v", err)
	}
	second, err := other.Export()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("Expected export to survive a round trip\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestLoadPreset(t *testing.T) {
	s := New(nil)
	if err := s.LoadPreset("brunch"); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
	if err := s.LoadPreset("weekend-heavy"); err != nil {
		t.Fatal(err)
	}
	if s.CoverageHealth().TotalSlots == 0 {
		t.Error("Expected preset coverage to be scored")
	}

	s.Reset()
	if s.CoverageHealth().TotalSlots != 0 || len(s.Config().Roles) != 3 {
		t.Errorf("Expected defaults after reset, got %+v", s.Config().Roles)
	}
}

func TestConfigReturnsCopy(t *testing.T) {
	s := New(nil)
	cfg := s.Config()
	cfg.Roles[0] = "Changed"
	cfg.BusinessHours[models.Monday] = models.DayHours{Closed: true}

	again := s.Config()
	if again.Roles[0] != "Server" || again.BusinessHours[models.Monday].Closed {
		t.Error("Expected store state to be isolated from returned copies")
	}
}

func TestPersistAndRegistryRestore(t *testing.T) {
	ctx := context.Background()
	snaps := newMemSnapshots()

	reg := NewRegistry(nil, snaps)
	s, err := reg.Get(ctx, "ws-1")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddRole("Sommelier"); err != nil {
		t.Fatal(err)
	}
	if err := s.Persist(ctx); err != nil {
		t.Fatalf("Failed to persist: %v", err)
	}

	again, err := reg.Get(ctx, "ws-1")
	if err != nil || again != s {
		t.Fatalf("Expected cached store, got %v %v", again, err)
	}

	fresh := NewRegistry(nil, snaps)
	restored, err := fresh.Get(ctx, "ws-1")
	if err != nil {
		t.Fatal(err)
	}
	roles := restored.Config().Roles
	if roles[len(roles)-1] != "Sommelier" {
		t.Errorf("Expected restored roles, got %v", roles)
	}

	other, err := fresh.Get(ctx, "ws-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other.Config().Roles) != 3 {
		t.Error("Expected defaults for a workspace without a snapshot")
	}
	if ws := fresh.Workspaces(); len(ws) != 2 || ws[0] != "ws-1" || ws[1] != "ws-2" {
		t.Errorf("Unexpected workspaces %v", ws)
	}
}

func TestConcurrentReadersSeeConsistentState(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.AddCoverageInterval("Host", models.Saturday, models.CoverageInterval{Start: "10:00", End: "12:00", Min: 1})
		}()
		go func() {
			defer wg.Done()
			d := s.Derived()
			if d.CoverageHealth.TotalSlots != int(d.Version) {
				t.Errorf("Derived state out of step: %d slots at version %d", d.CoverageHealth.TotalSlots, d.Version)
			}
		}()
	}
	wg.Wait()

	if s.Version() != 8 || s.CoverageHealth().TotalSlots != 8 {
		t.Errorf("Expected 8 mutations, got version %d health %+v", s.Version(), s.CoverageHealth())
	}
}
