package smoke

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/wesleyorama2/cicd-template/internal/config"
	"github.com/wesleyorama2/cicd-template/internal/http"
	"github.com/wesleyorama2/cicd-template/pkg/jsonpath"
	"github.com/wesleyorama2/cicd-template/pkg/jsonschema"
)

// Assertion types
const (
	AssertRequest     = "request"
	AssertStatus      = "status"
	AssertContentType = "contentType"
	AssertEquals      = "equals"
	AssertExists      = "exists"
	AssertMatches     = "matches"
	AssertKeys        = "keys"
	AssertSchema      = "schema"
	AssertMinDuration = "minDuration"
	AssertMaxDuration = "maxDuration"
)

// AssertionResult is the outcome of one expectation against one response
type AssertionResult struct {
	Type     string `json:"type" yaml:"type"`
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Passed   bool   `json:"passed" yaml:"passed"`
	Message  string `json:"message" yaml:"message"`
}

// compiledCheck is a check with its regexes, schema and durations prepared
// once, so repeated attempts only pay for evaluation.
type compiledCheck struct {
	config.Check
	minDuration time.Duration
	maxDuration time.Duration
	patterns    map[string]*regexp.Regexp
	schema      *jsonschema.Schema
}

func compileCheck(check config.Check) (*compiledCheck, error) {
	cc := &compiledCheck{
		Check:    check,
		patterns: make(map[string]*regexp.Regexp),
	}

	var err error
	cc.minDuration, cc.maxDuration, err = check.Expect.Durations()
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", check.Name, err)
	}

	for path, pattern := range check.Expect.Matches {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("check %s: invalid pattern for %s: %w", check.Name, path, err)
		}
		cc.patterns[path] = re
	}

	if check.Expect.Schema != "" {
		text, err := resolveSchema(check.Expect.Schema)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", check.Name, err)
		}
		name := check.Expect.Schema
		if strings.HasPrefix(strings.TrimSpace(name), "{") {
			name = check.Name
		}
		if cc.schema, err = jsonschema.Compile(name, text); err != nil {
			return nil, fmt.Errorf("check %s: %w", check.Name, err)
		}
	}

	return cc, nil
}

// evaluate runs every expectation of the check against resp, in a stable order
func (cc *compiledCheck) evaluate(resp *http.Response) []AssertionResult {
	var results []AssertionResult
	body := resp.BodyString()
	expect := cc.Expect

	results = append(results, assertStatus(expect.Status, resp))

	if expect.ContentType != "" {
		actual := resp.MediaType()
		results = append(results, AssertionResult{
			Type:     AssertContentType,
			Expected: expect.ContentType,
			Actual:   actual,
			Passed:   strings.EqualFold(actual, expect.ContentType),
			Message:  fmt.Sprintf("Content-Type is %s", expect.ContentType),
		})
	}

	for _, path := range sortedKeys(expect.Equals) {
		want := expect.Equals[path]
		got, err := jsonpath.Extract(body, path)
		result := AssertionResult{
			Type:     AssertEquals,
			Field:    path,
			Expected: want,
			Actual:   got,
			Passed:   err == nil && got == want,
			Message:  fmt.Sprintf("%s equals %q", path, want),
		}
		if err != nil {
			result.Message = err.Error()
		}
		results = append(results, result)
	}

	for _, path := range expect.Exists {
		exists := jsonpath.Exists(body, path)
		message := fmt.Sprintf("%s exists", path)
		if !exists {
			message = fmt.Sprintf("path not found: %s", path)
		}
		results = append(results, AssertionResult{
			Type:    AssertExists,
			Field:   path,
			Passed:  exists,
			Message: message,
		})
	}

	for _, path := range sortedKeys(expect.Matches) {
		re := cc.patterns[path]
		got, err := jsonpath.Extract(body, path)
		result := AssertionResult{
			Type:     AssertMatches,
			Field:    path,
			Expected: re.String(),
			Actual:   got,
			Passed:   err == nil && re.MatchString(got),
			Message:  fmt.Sprintf("%s matches %s", path, re.String()),
		}
		if err != nil {
			result.Message = err.Error()
		}
		results = append(results, result)
	}

	for _, path := range sortedKeys(expect.Keys) {
		want := expect.Keys[path]
		got, err := jsonpath.Keys(body, path)
		result := AssertionResult{
			Type:     AssertKeys,
			Field:    path,
			Expected: strings.Join(want, ","),
			Actual:   strings.Join(got, ","),
			Passed:   err == nil && sameKeys(want, got),
			Message:  fmt.Sprintf("%s has exactly keys %s", path, strings.Join(want, ", ")),
		}
		if err != nil {
			result.Message = err.Error()
		}
		results = append(results, result)
	}

	if cc.schema != nil {
		errs := cc.schema.Validate(resp.Body)
		result := AssertionResult{
			Type:     AssertSchema,
			Expected: cc.schema.Name(),
			Passed:   len(errs) == 0,
			Message:  fmt.Sprintf("Body matches schema %s", cc.schema.Name()),
		}
		if len(errs) > 0 {
			result.Message = errs.Error()
		}
		results = append(results, result)
	}

	elapsed := resp.Duration()
	if cc.minDuration > 0 {
		results = append(results, AssertionResult{
			Type:     AssertMinDuration,
			Expected: cc.minDuration.String(),
			Actual:   elapsed.String(),
			Passed:   elapsed >= cc.minDuration,
			Message:  fmt.Sprintf("Response took at least %s", cc.minDuration),
		})
	}
	if cc.maxDuration > 0 {
		results = append(results, AssertionResult{
			Type:     AssertMaxDuration,
			Expected: cc.maxDuration.String(),
			Actual:   elapsed.String(),
			Passed:   elapsed <= cc.maxDuration,
			Message:  fmt.Sprintf("Response took at most %s", cc.maxDuration),
		})
	}

	return results
}

// assertStatus checks the status code; 0 accepts any 2xx
func assertStatus(want int, resp *http.Response) AssertionResult {
	result := AssertionResult{
		Type:   AssertStatus,
		Actual: fmt.Sprintf("%d", resp.StatusCode),
	}

	if want == 0 {
		result.Expected = "2xx"
		result.Passed = resp.IsSuccess()
		result.Message = "Status code is 2xx"
	} else {
		result.Expected = fmt.Sprintf("%d", want)
		result.Passed = resp.StatusCode == want
		result.Message = fmt.Sprintf("Status code is %d", want)
	}

	if !result.Passed {
		result.Message = fmt.Sprintf("%s, got a %s response", result.Message, statusClass(resp))
	}
	return result
}

func statusClass(resp *http.Response) string {
	switch {
	case resp.IsSuccess():
		return "success"
	case resp.IsClientError():
		return "client error"
	case resp.IsServerError():
		return "server error"
	}
	return "non-success"
}

func requestFailure(err error) AssertionResult {
	return AssertionResult{
		Type:    AssertRequest,
		Passed:  false,
		Message: err.Error(),
	}
}

func allPassed(results []AssertionResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// sameKeys compares key sets, ignoring order
func sameKeys(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	a := append([]string(nil), want...)
	b := append([]string(nil), got...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
