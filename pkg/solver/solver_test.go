package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arnavshah/roster-config-api/pkg/models"
	"github.com/arnavshah/roster-config-api/pkg/normalize"
)

func TestClassifyShift(t *testing.T) {
	tests := []struct {
		start string
		want  ShiftType
	}{
		{"05:30", ShiftPrep},
		{"07:59", ShiftPrep},
		{"08:00", ShiftOpening},
		{"10:45", ShiftOpening},
		{"11:00", ShiftLunch},
		{"16:59", ShiftLunch},
		{"17:00", ShiftDinner},
		{"23:00", ShiftDinner},
	}
	for _, tt := range tests {
		if got := ClassifyShift(tt.start); got != tt.want {
			t.Errorf("ClassifyShift(%s) = %s, want %s", tt.start, got, tt.want)
		}
	}
}

func sampleConfig() models.HumanConfig {
	cfg := models.Default()
	cfg.Roles = []string{"Bartender"}
	cfg.Coverage = models.RoleCoverage{
		"Bartender": {
			models.Friday: {{ID: "late", Start: "22:00", End: "02:00", Min: 2}},
		},
	}
	cfg.Employees = []models.Employee{
		{ID: "e1", Name: "Ana", Roles: []string{"Bartender"}, Wage: 18, PreferredHours: models.HoursRange{Min: 10, Target: 20, Max: 50},
			Availability: []models.AvailabilityBlock{
				{Day: models.Saturday, Start: "00:00", End: "06:00", Type: models.AvailabilityHard},
				{Day: models.Monday, Start: "09:00", End: "12:00", Type: models.AvailabilitySoft},
			}},
		{ID: "e2", Name: "Ben", Roles: []string{"Bartender", "Server"}},
	}
	cfg.Budget = models.Budget{WeeklyLimit: 1000, AllowExceedBy: 10}
	return cfg
}

func TestBuildRequest(t *testing.T) {
	req := BuildRequest(normalize.NormalizeHumanConfig(sampleConfig()))

	if len(req.Shifts) != 2 {
		t.Fatalf("Expected the midnight interval to become 2 shifts, got %d", len(req.Shifts))
	}
	first, second := req.Shifts[0], req.Shifts[1]
	if first.ID != "Bartender-friday-late_p1" || first.EndTime != "23:59" || first.ShiftType != ShiftDinner {
		t.Errorf("Unexpected first shift %+v", first)
	}
	if second.ID != "Bartender-saturday-late_p2" || second.StartTime != "00:00" || second.ShiftType != ShiftPrep {
		t.Errorf("Unexpected second shift %+v", second)
	}
	if first.MinCount != 2 || first.MaxCount != 3 || first.Requirements[0].Count != 2 {
		t.Errorf("Expected normalized counts on shift, got %+v", first)
	}

	if req.Budget == nil || req.Budget.MaxTotalCost < 1099.99 || req.Budget.MaxTotalCost > 1100.01 {
		t.Errorf("Expected max total cost 1100, got %+v", req.Budget)
	}
	if req.Fairness.MaxConsecutiveDays != 6 || req.Fairness.MinRestHours != 10 {
		t.Errorf("Unexpected fairness %+v", req.Fairness)
	}
	if len(req.Weights) != 9 {
		t.Errorf("Expected 9 weights, got %d", len(req.Weights))
	}

	ana, ben := req.Workers[0], req.Workers[1]
	if ana.HourlyRate != 18 || ana.MaxHours != 40 || ana.MinHours != 10 {
		t.Errorf("Unexpected worker %+v", ana)
	}
	if len(ana.Unavailable) != 1 || len(ana.Dispreferred) != 1 {
		t.Errorf("Expected availability split by type, got %+v", ana)
	}
	if ben.HourlyRate != 15 || ben.MaxHours != 40 {
		t.Errorf("Expected defaults for Ben, got %+v", ben)
	}
}

func TestBuildRequestWithoutBudget(t *testing.T) {
	cfg := sampleConfig()
	cfg.Budget.WeeklyLimit = 0
	req := BuildRequest(normalize.NormalizeHumanConfig(cfg))
	if req.Budget != nil {
		t.Errorf("Expected budget omitted, got %+v", req.Budget)
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "max_total_cost") {
		t.Errorf("Expected no budget in %s", data)
	}
}

func TestPreflight(t *testing.T) {
	gaps := Preflight(normalize.NormalizeHumanConfig(sampleConfig()))

	// Ana is hard-unavailable early saturday, so only Ben can take the second part
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %+v", gaps)
	}
	g := gaps[0]
	if g.ShiftID != "Bartender-saturday-late_p2" || g.EligibleWorkers != 1 || g.MissingStaff != 1 {
		t.Errorf("Unexpected gap %+v", g)
	}
	if g.Reason != "Only 1 eligible workers, need 2" {
		t.Errorf("Unexpected reason %q", g.Reason)
	}
}

func TestPreflightNoEligible(t *testing.T) {
	cfg := sampleConfig()
	cfg.Employees = nil
	gaps := Preflight(normalize.NormalizeHumanConfig(cfg))
	if len(gaps) != 2 {
		t.Fatalf("Expected 2 gaps, got %d", len(gaps))
	}
	if gaps[0].Reason != "No workers available with required role and availability" {
		t.Errorf("Unexpected reason %q", gaps[0].Reason)
	}
}

func TestHTTPSolver(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "solution": {"assignments": [{"worker_id": "e1", "shift_id": "s1", "cost": 72}], "total_cost": 72}}`))
	}))
	defer srv.Close()

	s := NewHTTPSolver(srv.URL, 5*time.Second, nil)
	res, err := s.Solve(context.Background(), BuildRequest(normalize.NormalizeHumanConfig(sampleConfig())))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !res.Success || res.Solution == nil || res.Solution.TotalCost != 72 {
		t.Errorf("Unexpected result %+v", res)
	}
	if len(got.Workers) != 2 || len(got.Shifts) != 2 {
		t.Errorf("Solver did not receive the full request: %+v", got)
	}
}

func TestHTTPSolverErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "infeasible", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewHTTPSolver(srv.URL, time.Second, nil).Solve(context.Background(), Request{})
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Errorf("Expected status error, got %v", err)
	}
}
