package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cicd-template/internal/smoke"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat converts a --format value into an OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (text, json, yaml)", s)
}

// RenderReport writes report to w in the requested format
func RenderReport(w io.Writer, report *smoke.Report, format OutputFormat, noColor bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, formatText(report, noColor))
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func formatText(report *smoke.Report, noColor bool) string {
	scheme := SchemeFor(noColor)
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ SMOKE SUITE: %s (%s)\n\n",
		scheme.Title.Sprint(report.Suite), report.BaseURL))

	nameWidth, pathWidth := 0, 0
	for _, c := range report.Checks {
		nameWidth = max(nameWidth, len(c.Name))
		pathWidth = max(pathWidth, len(c.Path))
	}

	for _, c := range report.Checks {
		icon := SuccessIcon(noColor)
		if !c.Passed {
			icon = ErrorIcon(noColor)
		}

		buf.WriteString(fmt.Sprintf("  %s %s  %s  %s  %s\n",
			icon,
			padRight(c.Name, nameWidth),
			scheme.Method.Sprint(padRight(c.Method, 6)),
			scheme.Path.Sprint(padRight(c.Path, pathWidth)),
			scheme.Muted.Sprint(formatLatency(c))))

		if c.Attempts > 1 && c.Failures > 0 {
			buf.WriteString(fmt.Sprintf("      %s %d of %d attempts failed\n",
				WarningIcon(noColor), c.Failures, c.Attempts))
		}

		for _, a := range c.Assertions {
			if a.Passed {
				continue
			}
			buf.WriteString(fmt.Sprintf("      %s %s\n", ErrorIcon(noColor), describeFailure(a)))
		}
	}

	buf.WriteString("\n▶ SUMMARY\n")

	summary := scheme.Passed
	icon := SuccessIcon(noColor)
	if !report.OK() {
		summary = scheme.Failed
		icon = ErrorIcon(noColor)
	}
	buf.WriteString(fmt.Sprintf("  %s Checks: %s passed, %s failed\n",
		icon,
		summary.Sprint(report.Passed),
		summary.Sprint(report.Failed)))
	buf.WriteString(fmt.Sprintf("  %s Total time: %s\n",
		InfoIcon(noColor),
		scheme.Highlight.Sprintf("%dms", report.DurationMs)))

	return buf.String()
}

func formatLatency(c smoke.CheckResult) string {
	l := c.Latency
	var total string
	switch {
	case l.Count == 0:
		return "-"
	case l.Count == 1:
		total = fmt.Sprintf("%.1fms", l.MaxMs)
	default:
		total = fmt.Sprintf("p50 %.1fms  p95 %.1fms  p99 %.1fms  max %.1fms (n=%d)",
			l.P50Ms, l.P95Ms, l.P99Ms, l.MaxMs, l.Count)
	}
	return total + formatPhases(c.Phases)
}

// formatPhases describes connection setup and time to first byte.
// A zero connect time means the connection was reused and is left out.
func formatPhases(p smoke.PhaseSummary) string {
	if p.TTFBMs == 0 && p.ConnectMs == 0 {
		return ""
	}
	if p.ConnectMs == 0 {
		return fmt.Sprintf("  [ttfb %.1fms]", p.TTFBMs)
	}
	return fmt.Sprintf("  [connect %.1fms, ttfb %.1fms]", p.ConnectMs, p.TTFBMs)
}

func describeFailure(a smoke.AssertionResult) string {
	if a.Expected == "" && a.Actual == "" {
		return a.Message
	}
	return fmt.Sprintf("%s (expected %s, got %s)", a.Message, orDash(a.Expected), orDash(a.Actual))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
