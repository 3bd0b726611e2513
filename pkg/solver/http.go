package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Assignment places one worker on one shift
type Assignment struct {
	WorkerID      string    `json:"worker_id"`
	ShiftID       string    `json:"shift_id"`
	Day           string    `json:"day"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	ShiftType     ShiftType `json:"shift_type"`
	Cost          float64   `json:"cost"`
}

// Solution is the optimizer's schedule
type Solution struct {
	Assignments []Assignment       `json:"assignments"`
	WorkerHours map[string]float64 `json:"worker_hours"`
	TotalCost   float64            `json:"total_cost"`
	SolveTime   float64            `json:"solve_time"`
}

// Result is the optimizer's response
type Result struct {
	Success      bool          `json:"success"`
	Solution     *Solution     `json:"solution,omitempty"`
	Errors       []string      `json:"errors"`
	Messages     []string      `json:"messages"`
	CoverageGaps []CoverageGap `json:"coverage_gaps"`
}

// Solver produces a schedule for a request
type Solver interface {
	Solve(ctx context.Context, req Request) (*Result, error)
}

// HTTPSolver posts requests as JSON to an optimizer endpoint
type HTTPSolver struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPSolver creates a solver client with the given per-request timeout
func NewHTTPSolver(url string, timeout time.Duration, logger *zap.Logger) *HTTPSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSolver{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Solve sends req and decodes the optimizer's result
func (s *HTTPSolver) Solve(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode solver request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build solver request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call solver: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read solver response: %w", err)
	}
	s.logger.Info("Solver responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("workers", len(req.Workers)),
		zap.Int("shifts", len(req.Shifts)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("solver returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode solver response: %w", err)
	}
	return &result, nil
}
