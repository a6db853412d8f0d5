package smoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wesleyorama2/cicd-template/internal/config"
	"github.com/wesleyorama2/cicd-template/internal/http"
)

// Report is the outcome of running a suite against one service
type Report struct {
	Suite      string        `json:"suite" yaml:"suite"`
	BaseURL    string        `json:"baseUrl" yaml:"baseUrl"`
	Passed     int           `json:"passed" yaml:"passed"`
	Failed     int           `json:"failed" yaml:"failed"`
	DurationMs int64         `json:"durationMs" yaml:"durationMs"`
	Timestamp  string        `json:"timestamp" yaml:"timestamp"`
	Checks     []CheckResult `json:"checks" yaml:"checks"`
}

// OK reports whether every check passed
func (r *Report) OK() bool {
	return r.Failed == 0
}

// CheckResult is the outcome of one check over all its attempts
type CheckResult struct {
	Name     string `json:"name" yaml:"name"`
	Method   string `json:"method" yaml:"method"`
	Path     string `json:"path" yaml:"path"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Attempts int    `json:"attempts" yaml:"attempts"`
	Failures int    `json:"failures" yaml:"failures"`
	// Assertions come from the first failing attempt, or the last one when all passed
	Assertions []AssertionResult `json:"assertions" yaml:"assertions"`
	Latency    LatencySummary    `json:"latency" yaml:"latency"`
	Phases     PhaseSummary      `json:"phases" yaml:"phases"`
}

// Runner executes smoke suites with a client bound to the target service
type Runner struct {
	client *http.Client
	repeat int
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithRepeat sets how many times each check is executed (minimum 1)
func WithRepeat(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.repeat = n
		}
	}
}

// NewRunner creates a runner using client for every request
func NewRunner(client *http.Client, options ...RunnerOption) *Runner {
	r := &Runner{client: client, repeat: 1}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run validates suite, then executes its checks in order. The returned error
// is reserved for suites that cannot be run at all; failing checks are
// reported in the Report.
func (r *Runner) Run(ctx context.Context, suite *config.Suite) (*Report, error) {
	if errs := config.ValidateSuite(suite); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("invalid suite: %w", errors.Join(joined...))
	}

	checks := make([]*compiledCheck, 0, len(suite.Checks))
	for _, check := range suite.Checks {
		cc, err := compileCheck(check)
		if err != nil {
			return nil, err
		}
		checks = append(checks, cc)
	}

	start := time.Now()
	report := &Report{
		Suite:     suite.Name,
		BaseURL:   r.client.BaseURL(),
		Timestamp: start.UTC().Format(time.RFC3339),
		Checks:    make([]CheckResult, 0, len(checks)),
	}

	for _, cc := range checks {
		result := r.runCheck(ctx, cc)
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Checks = append(report.Checks, result)
	}

	report.DurationMs = time.Since(start).Milliseconds()
	return report, nil
}

func (r *Runner) runCheck(ctx context.Context, cc *compiledCheck) CheckResult {
	result := CheckResult{
		Name:   cc.Name,
		Method: cc.MethodOrDefault(),
		Path:   cc.Path,
	}
	latency := newLatencyRecorder()

	var firstFailure, last []AssertionResult
	for i := 0; i < r.repeat; i++ {
		req := http.NewRequest(result.Method, cc.Path).WithQueryParams(cc.Query)
		for key, value := range cc.Headers {
			req.WithHeader(key, value)
		}

		var assertions []AssertionResult
		resp, err := r.client.Do(ctx, req)
		if err != nil {
			assertions = []AssertionResult{requestFailure(err)}
		} else {
			latency.Record(resp.Duration())
			latency.RecordPhases(resp.Timing.ConnectTime, resp.Timing.TimeToFirstByte)
			assertions = cc.evaluate(resp)
		}

		result.Attempts++
		last = assertions
		if !allPassed(assertions) {
			result.Failures++
			if firstFailure == nil {
				firstFailure = assertions
			}
		}

		if ctx.Err() != nil {
			break
		}
	}

	result.Passed = result.Failures == 0
	result.Assertions = last
	if firstFailure != nil {
		result.Assertions = firstFailure
	}
	result.Latency = latency.Summary()
	result.Phases = latency.Phases()

	return result
}
