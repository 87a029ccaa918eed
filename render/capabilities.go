package render

import (
	"os"
	"strings"

	"routeplan/canvas"
)

// Capabilities describes what the output terminal can display.
type Capabilities struct {
	Name    string
	Unicode bool
	Color   bool
}

// DetectCapabilities inspects the environment through getenv. A nil getenv
// reads the process environment. ROUTEPLAN_TERMINAL_MODE=ascii|unicode
// overrides detection.
func DetectCapabilities(getenv func(string) string) Capabilities {
	if getenv == nil {
		getenv = os.Getenv
	}

	switch getenv("ROUTEPLAN_TERMINAL_MODE") {
	case "ascii":
		return ForceASCII()
	case "unicode":
		return ForceUnicode()
	}

	term := getenv("TERM")
	caps := Capabilities{Name: term}

	if term != "" && !strings.Contains(term, "dumb") {
		if strings.Contains(term, "color") ||
			strings.HasPrefix(term, "xterm") || strings.HasPrefix(term, "screen") || strings.HasPrefix(term, "tmux") {
			caps.Color = true
		}
	}
	if getenv("COLORTERM") != "" {
		caps.Color = true
	}

	// https://no-color.org/
	if getenv("NO_COLOR") != "" {
		caps.Color = false
	}

	caps.Unicode = detectUTF8Locale(getenv) && term != "linux" && term != "dumb"
	return caps
}

// Glyphs returns the glyph set suited to the terminal.
func (c Capabilities) Glyphs() canvas.Glyphs {
	if c.Unicode {
		return canvas.UnicodeGlyphs
	}
	return canvas.ASCIIGlyphs
}

// detectUTF8Locale checks if the locale supports UTF-8.
func detectUTF8Locale(getenv func(string) string) bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := getenv(env)
		if value == "" {
			continue
		}
		// C.UTF-8, en_US.UTF-8, en_US.utf8@euro, ...
		upper := strings.ToUpper(value)
		return strings.Contains(upper, "UTF-8") || strings.Contains(upper, "UTF8")
	}
	return false
}

// ForceASCII returns capabilities configured for ASCII-only output.
func ForceASCII() Capabilities {
	return Capabilities{Name: "ascii"}
}

// ForceUnicode returns capabilities configured for full Unicode support.
func ForceUnicode() Capabilities {
	return Capabilities{Name: "unicode", Unicode: true, Color: true}
}
