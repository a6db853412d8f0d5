package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var validMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// ValidateSuite validates a smoke suite
func ValidateSuite(suite *Suite) []ValidationError {
	var errors []ValidationError

	if suite == nil {
		return []ValidationError{{Path: "suite", Message: "suite cannot be nil"}}
	}

	if suite.Name == "" {
		errors = append(errors, ValidationError{
			Path:    "name",
			Message: "suite name is required",
		})
	}

	if len(suite.Checks) == 0 {
		errors = append(errors, ValidationError{
			Path:    "checks",
			Message: "at least one check is required",
		})
	}

	seen := make(map[string]bool)
	for i, check := range suite.Checks {
		prefix := fmt.Sprintf("checks[%d]", i)

		if check.Name == "" {
			errors = append(errors, ValidationError{
				Path:    prefix + ".name",
				Message: "check name is required",
			})
		} else if seen[check.Name] {
			errors = append(errors, ValidationError{
				Path:    prefix + ".name",
				Message: fmt.Sprintf("duplicate check name: %s", check.Name),
			})
		}
		seen[check.Name] = true

		if !strings.HasPrefix(check.Path, "/") {
			errors = append(errors, ValidationError{
				Path:    prefix + ".path",
				Message: "path must start with /",
			})
		}

		if !stringInSlice(check.MethodOrDefault(), validMethods) {
			errors = append(errors, ValidationError{
				Path:    prefix + ".method",
				Message: fmt.Sprintf("invalid method: %s", check.Method),
			})
		}

		for name := range check.Headers {
			if strings.TrimSpace(name) == "" {
				errors = append(errors, ValidationError{
					Path:    prefix + ".headers",
					Message: "header name cannot be empty",
				})
			}
		}

		errors = append(errors, validateExpectation(prefix+".expect", check.Expect)...)
	}

	return errors
}

func validateExpectation(prefix string, e Expectation) []ValidationError {
	var errors []ValidationError

	if e.Status != 0 && (e.Status < 100 || e.Status > 599) {
		errors = append(errors, ValidationError{
			Path:    prefix + ".status",
			Message: fmt.Sprintf("status must be between 100 and 599, got %d", e.Status),
		})
	}

	for path, pattern := range e.Matches {
		if _, err := regexp.Compile(pattern); err != nil {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("%s.matches.%s", prefix, path),
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	for path, keys := range e.Keys {
		if len(keys) == 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("%s.keys.%s", prefix, path),
				Message: "at least one key is required",
			})
		}
	}

	for i, path := range e.Exists {
		if path == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("%s.exists[%d]", prefix, i),
				Message: "path cannot be empty",
			})
		}
	}

	min, max, err := e.Durations()
	if err != nil {
		errors = append(errors, ValidationError{
			Path:    prefix,
			Message: err.Error(),
		})
	} else if max > 0 && min > max {
		errors = append(errors, ValidationError{
			Path:    prefix + ".minDuration",
			Message: "minDuration cannot exceed maxDuration",
		})
	}

	return errors
}

// stringInSlice checks if a string is in a slice
func stringInSlice(str string, slice []string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
