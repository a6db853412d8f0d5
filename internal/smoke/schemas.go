package smoke

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed schemas/*.json
var builtinSchemas embed.FS

// BuiltinSchemas lists the schema names usable in a check's expect.schema
func BuiltinSchemas() []string {
	entries, err := builtinSchemas.ReadDir("schemas")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// resolveSchema returns the schema text for ref, which is either the name of
// a built-in schema or an inline JSON Schema document.
func resolveSchema(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "{") {
		return ref, nil
	}

	data, err := builtinSchemas.ReadFile("schemas/" + ref + ".json")
	if err != nil {
		return "", fmt.Errorf("unknown schema %q (built-in: %s)", ref, strings.Join(BuiltinSchemas(), ", "))
	}
	return string(data), nil
}
