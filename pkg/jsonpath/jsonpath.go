// Package jsonpath reads values out of JSON documents using a small subset
// of JSONPath ($.a.b, $.list[0], $['key']) translated to gjson paths.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	result, err := lookup(json, path)
	if err != nil {
		return "", err
	}

	if result.Type == gjson.Null {
		return "null", nil
	}

	return result.String(), nil
}

// Exists reports whether path resolves to a value (null included)
func Exists(json string, path string) bool {
	_, err := lookup(json, path)
	return err == nil
}

// Keys returns the keys of the object at path, in document order
func Keys(json string, path string) ([]string, error) {
	result, err := lookup(json, path)
	if err != nil {
		return nil, err
	}

	if !result.IsObject() {
		return nil, fmt.Errorf("value at %s is not an object", path)
	}

	var keys []string
	result.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})

	return keys, nil
}

func lookup(json string, path string) (gjson.Result, error) {
	if json == "" {
		return gjson.Result{}, fmt.Errorf("empty JSON string")
	}

	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}

	if !gjson.Valid(json) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}

	result := gjson.Get(json, convertToGjsonPath(path))
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}

	return result, nil
}

// convertToGjsonPath converts a JSONPath expression to a gjson path format
//
//	$.users[0].name -> users.0.name
func convertToGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")

	if path == "" {
		return "@this"
	}

	// Bracketed keys: $['name'] and $["name"]
	for _, quote := range []string{"'", "\""} {
		path = strings.ReplaceAll(path, "["+quote, ".")
		path = strings.ReplaceAll(path, quote+"]", "")
	}

	// Array indexes: [n] -> .n
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	return strings.TrimPrefix(path, ".")
}
