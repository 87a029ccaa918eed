package render

import (
	"testing"

	"routeplan/canvas"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		unicode bool
		color   bool
	}{
		{"xterm utf8", map[string]string{"TERM": "xterm-256color", "LANG": "en_US.UTF-8"}, true, true},
		{"lowercase utf8", map[string]string{"TERM": "screen", "LC_ALL": "C.utf8"}, true, true},
		{"no locale", map[string]string{"TERM": "xterm"}, false, true},
		{"linux console", map[string]string{"TERM": "linux", "LANG": "en_US.UTF-8"}, false, false},
		{"dumb", map[string]string{"TERM": "dumb", "LANG": "C.UTF-8"}, false, false},
		{"no color", map[string]string{"TERM": "xterm-256color", "LANG": "C.UTF-8", "NO_COLOR": "1"}, true, false},
		{"colorterm", map[string]string{"TERM": "vt100", "COLORTERM": "truecolor"}, false, true},
		{"lc_all wins", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8", "TERM": "xterm"}, false, true},
		{"force ascii", map[string]string{"ROUTEPLAN_TERMINAL_MODE": "ascii", "TERM": "xterm", "LANG": "C.UTF-8"}, false, false},
		{"force unicode", map[string]string{"ROUTEPLAN_TERMINAL_MODE": "unicode", "TERM": "dumb"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := DetectCapabilities(envFrom(tt.env))
			if caps.Unicode != tt.unicode {
				t.Errorf("Unicode = %v, want %v", caps.Unicode, tt.unicode)
			}
			if caps.Color != tt.color {
				t.Errorf("Color = %v, want %v", caps.Color, tt.color)
			}
		})
	}
}

func TestCapabilities_Glyphs(t *testing.T) {
	if ForceASCII().Glyphs() != canvas.ASCIIGlyphs {
		t.Error("ASCII terminal should use ASCII glyphs")
	}
	if ForceUnicode().Glyphs() != canvas.UnicodeGlyphs {
		t.Error("Unicode terminal should use Unicode glyphs")
	}
}
