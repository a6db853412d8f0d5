package output

import (
	"bytes"
	"testing"
)

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default":  DefaultColorScheme(),
		"no-color": NoColorScheme(),
	} {
		if scheme.Title == nil {
			t.Errorf("%s: Title should not be nil", name)
		}
		if scheme.Method == nil {
			t.Errorf("%s: Method should not be nil", name)
		}
		if scheme.Path == nil {
			t.Errorf("%s: Path should not be nil", name)
		}
		if scheme.Passed == nil {
			t.Errorf("%s: Passed should not be nil", name)
		}
		if scheme.Failed == nil {
			t.Errorf("%s: Failed should not be nil", name)
		}
		if scheme.Muted == nil {
			t.Errorf("%s: Muted should not be nil", name)
		}
		if scheme.Highlight == nil {
			t.Errorf("%s: Highlight should not be nil", name)
		}
	}

	// A disabled scheme must never emit escape sequences
	got := NoColorScheme().Failed.Sprint("boom")
	if got != "boom" {
		t.Errorf("NoColorScheme().Failed.Sprint() = %q, want %q", got, "boom")
	}
}

func TestIcons(t *testing.T) {
	tests := []struct {
		name string
		icon func(bool) string
		want string
	}{
		{"success", SuccessIcon, "✓"},
		{"error", ErrorIcon, "✗"},
		{"info", InfoIcon, "ℹ"},
		{"warning", WarningIcon, "⚠"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.icon(true); got != tt.want {
				t.Errorf("icon(true) = %q, want %q", got, tt.want)
			}
			if got := tt.icon(false); !bytes.Contains([]byte(got), []byte(tt.want)) {
				t.Errorf("icon(false) = %q, should contain %q", got, tt.want)
			}
		})
	}
}

func TestDisableColor(t *testing.T) {
	var buf bytes.Buffer

	if !DisableColor(&buf, true) {
		t.Error("DisableColor should honour an explicit request")
	}
	if !DisableColor(&buf, false) {
		t.Error("DisableColor should disable colors for non-file writers")
	}

	t.Setenv("NO_COLOR", "1")
	if !DisableColor(&buf, false) {
		t.Error("DisableColor should honour NO_COLOR")
	}
}
