package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Suite is a named set of smoke checks run against a deployed service
type Suite struct {
	Name   string  `json:"name" yaml:"name"`
	Checks []Check `json:"checks" yaml:"checks"`
}

// Check is a single request and the expectations on its response
type Check struct {
	Name    string            `json:"name" yaml:"name"`
	Method  string            `json:"method,omitempty" yaml:"method,omitempty"`
	Path    string            `json:"path" yaml:"path"`
	Query   map[string]string `json:"query,omitempty" yaml:"query,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Expect  Expectation       `json:"expect" yaml:"expect"`
}

// Expectation describes what a response must look like for a check to pass.
// JSON paths use the $.a.b[0] form understood by pkg/jsonpath.
type Expectation struct {
	Status      int                 `json:"status,omitempty" yaml:"status,omitempty"`
	ContentType string              `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Equals      map[string]string   `json:"equals,omitempty" yaml:"equals,omitempty"`
	Exists      []string            `json:"exists,omitempty" yaml:"exists,omitempty"`
	Matches     map[string]string   `json:"matches,omitempty" yaml:"matches,omitempty"`
	Keys        map[string][]string `json:"keys,omitempty" yaml:"keys,omitempty"`
	Schema      string              `json:"schema,omitempty" yaml:"schema,omitempty"`
	MinDuration string              `json:"minDuration,omitempty" yaml:"minDuration,omitempty"`
	MaxDuration string              `json:"maxDuration,omitempty" yaml:"maxDuration,omitempty"`
}

// MethodOrDefault returns the check's method, GET when unset
func (c Check) MethodOrDefault() string {
	if c.Method == "" {
		return "GET"
	}
	return strings.ToUpper(c.Method)
}

// Durations returns the parsed minimum and maximum response times.
// Zero means no bound.
func (e Expectation) Durations() (min, max time.Duration, err error) {
	if e.MinDuration != "" {
		if min, err = parseDurationString(e.MinDuration); err != nil {
			return 0, 0, fmt.Errorf("invalid minDuration '%s': %w", e.MinDuration, err)
		}
	}
	if e.MaxDuration != "" {
		if max, err = parseDurationString(e.MaxDuration); err != nil {
			return 0, 0, fmt.Errorf("invalid maxDuration '%s': %w", e.MaxDuration, err)
		}
	}
	return min, max, nil
}

// LoadSuite loads a suite file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func LoadSuite(path string) (*Suite, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("suite file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading suite file: %w", err)
	}

	var suite Suite
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &suite)
	default:
		err = yaml.Unmarshal(data, &suite)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing suite file: %w", err)
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &suite, nil
}

// DefaultSuite mirrors the pipeline's post-deploy checks
func DefaultSuite() *Suite {
	timestamp := `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`

	return &Suite{
		Name: "default",
		Checks: []Check{
			{
				Name: "home",
				Path: "/",
				Expect: Expectation{
					Status:      200,
					ContentType: "application/json",
					Exists:      []string{"$.message"},
					Equals: map[string]string{
						"$.endpoints.status": "/status",
						"$.endpoints.health": "/health",
					},
				},
			},
			{
				Name: "status",
				Path: "/status",
				Expect: Expectation{
					Status:      200,
					ContentType: "application/json",
					Equals: map[string]string{
						"$.status":                  "OK",
						"$.infrastructure.platform": "AWS ECS Fargate",
					},
					Matches: map[string]string{"$.timestamp": timestamp},
					Keys: map[string][]string{
						"$.release":        {"version", "commit"},
						"$.infrastructure": {"platform", "cluster", "service", "region"},
					},
					Schema: "status",
				},
			},
			{
				Name: "health",
				Path: "/health",
				Expect: Expectation{
					Status:  200,
					Equals:  map[string]string{"$.status": "healthy"},
					Matches: map[string]string{"$.timestamp": timestamp},
					Schema:  "health",
				},
			},
			{
				Name:  "latency",
				Path:  "/latency",
				Query: map[string]string{"ms": "100"},
				Expect: Expectation{
					Status:      200,
					Matches:     map[string]string{"$.message": `100ms`},
					MinDuration: "100ms",
				},
			},
			{
				Name: "error",
				Path: "/error",
				Expect: Expectation{
					Status: 500,
					Equals: map[string]string{"$.error": "Erro interno simulado"},
					Schema: "error",
				},
			},
			{
				Name: "not-found",
				Path: "/nonexistent",
				Expect: Expectation{
					Status: 404,
					Equals: map[string]string{"$.error": "Rota não encontrada"},
					Schema: "error",
				},
			},
			{
				Name:   "status-post",
				Method: "POST",
				Path:   "/status",
				Expect: Expectation{
					Status: 404,
				},
			},
		},
	}
}

// parseDurationString parses duration strings like "30s", "5m", "1h"
func parseDurationString(duration string) (time.Duration, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}

	if d, err := time.ParseDuration(duration); err == nil {
		return d, nil
	}

	// Handle additional formats like "1 minute", "30 seconds"
	duration = strings.ToLower(duration)
	duration = strings.ReplaceAll(duration, " ", "")

	// Longest words first so "seconds" is not left as "s" + "s"
	replacements := []struct{ word, abbrev string }{
		{"milliseconds", "ms"},
		{"millisecond", "ms"},
		{"seconds", "s"},
		{"second", "s"},
		{"minutes", "m"},
		{"minute", "m"},
		{"hours", "h"},
		{"hour", "h"},
	}

	for _, r := range replacements {
		duration = strings.ReplaceAll(duration, r.word, r.abbrev)
	}

	return time.ParseDuration(duration)
}
