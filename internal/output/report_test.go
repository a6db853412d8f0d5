package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cicd-template/internal/smoke"
)

func sampleReport() *smoke.Report {
	return &smoke.Report{
		Suite:      "default",
		BaseURL:    "http://localhost:3000",
		Passed:     1,
		Failed:     1,
		DurationMs: 42,
		Timestamp:  "2024-05-01T12:00:00Z",
		Checks: []smoke.CheckResult{
			{
				Name:     "health",
				Method:   "GET",
				Path:     "/health",
				Passed:   true,
				Attempts: 1,
				Assertions: []smoke.AssertionResult{
					{Type: smoke.AssertStatus, Expected: "200", Actual: "200", Passed: true, Message: "status code"},
				},
				Latency: smoke.LatencySummary{Count: 1, MinMs: 2.5, MeanMs: 2.5, P50Ms: 2.5, P95Ms: 2.5, P99Ms: 2.5, MaxMs: 2.5},
				Phases:  smoke.PhaseSummary{ConnectMs: 0.4, TTFBMs: 2.1},
			},
			{
				Name:     "status",
				Method:   "GET",
				Path:     "/status",
				Passed:   false,
				Attempts: 3,
				Failures: 2,
				Assertions: []smoke.AssertionResult{
					{Type: smoke.AssertEquals, Field: "$.status", Expected: "OK", Actual: "DOWN", Passed: false, Message: "$.status equals"},
				},
				Latency: smoke.LatencySummary{Count: 3, MinMs: 1, MeanMs: 2, P50Ms: 2, P95Ms: 3, P99Ms: 3, MaxMs: 3},
				Phases:  smoke.PhaseSummary{TTFBMs: 1.8},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, sampleReport(), FormatText, true))

	out := buf.String()
	assert.Contains(t, out, "▶ SMOKE SUITE: default (http://localhost:3000)")
	assert.Contains(t, out, "✓ health")
	assert.Contains(t, out, "✗ status")
	assert.Contains(t, out, "2.5ms")
	assert.Contains(t, out, "p50 2.0ms")
	assert.Contains(t, out, "[connect 0.4ms, ttfb 2.1ms]")
	assert.Contains(t, out, "[ttfb 1.8ms]")
	assert.Contains(t, out, "2 of 3 attempts failed")
	assert.Contains(t, out, "$.status equals (expected OK, got DOWN)")
	assert.Contains(t, out, "Checks: 1 passed, 1 failed")
	assert.Contains(t, out, "Total time: 42ms")
	assert.NotContains(t, out, "\x1b[", "no-color output must not contain escape sequences")

	// Passing assertions are not listed
	assert.NotContains(t, out, "status code")
}

func TestRenderReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, sampleReport(), FormatJSON, true))

	var decoded smoke.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "default", decoded.Suite)
	assert.Equal(t, 1, decoded.Failed)
	require.Len(t, decoded.Checks, 2)
	assert.Equal(t, "DOWN", decoded.Checks[1].Assertions[0].Actual)
	assert.InDelta(t, 2.1, decoded.Checks[0].Phases.TTFBMs, 0.001)
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "), "JSON output should be indented")
}

func TestRenderReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, sampleReport(), FormatYAML, true))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "default", decoded["suite"])
	assert.Equal(t, 42, decoded["durationMs"])
}

func TestRenderReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := RenderReport(&buf, sampleReport(), OutputFormat("xml"), true)
	assert.Error(t, err)
}
