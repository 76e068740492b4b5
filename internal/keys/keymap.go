// Package keys implements the keystroke script grammar and the mapping of
// named keys to the low-range control characters legacy targets accept.
package keys

import "strings"

// Named keys map to Windows virtual-key codes sent as single characters.
// The default WebDriver key set lives in the Unicode private-use area,
// which older applications under Winium ignore.

var modifierKeys = map[string]rune{
	"SHIFT": 0x10,
	"CTRL":  0x11,
	"ALT":   0x12,
	"WIN":   0x5B,
}

var namedKeys = map[string]rune{
	"BACKSPACE": 0x08,
	"TAB":       0x09,
	"ENTER":     0x0D,
	"PAUSE":     0x13,
	"CAPSLOCK":  0x14,
	"ESC":       0x1B,
	"SPACE":     0x20,
	"PAGEUP":    0x21,
	"PAGEDOWN":  0x22,
	"END":       0x23,
	"HOME":      0x24,
	"LEFT":      0x25,
	"UP":        0x26,
	"RIGHT":     0x27,
	"DOWN":      0x28,
	"INSERT":    0x2D,
	"DEL":       0x2E,
	"F1":        0x70,
	"F2":        0x71,
	"F3":        0x72,
	"F4":        0x73,
	"F5":        0x74,
	"F6":        0x75,
	"F7":        0x76,
	"F8":        0x77,
	"F9":        0x78,
	"F10":       0x79,
	"F11":       0x7A,
	"F12":       0x7B,
}

var aliases = map[string]string{
	"CONTROL":   "CTRL",
	"RETURN":    "ENTER",
	"ESCAPE":    "ESC",
	"DELETE":    "DEL",
	"PGUP":      "PAGEUP",
	"PGDN":      "PAGEDOWN",
	"INS":       "INSERT",
	"WINDOWS":   "WIN",
	"BKSP":      "BACKSPACE",
	"ARROWUP":   "UP",
	"ARROWDOWN": "DOWN",
}

// normalizeName strips braces and whitespace and resolves aliases.
func normalizeName(token string) string {
	name := strings.ToUpper(strings.TrimSpace(token))
	name = strings.TrimPrefix(name, "{")
	name = strings.TrimSuffix(name, "}")
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

// LookupModifier returns the code for a modifier key token such as "{CTRL}".
func LookupModifier(token string) (rune, bool) {
	r, ok := modifierKeys[normalizeName(token)]
	return r, ok
}

// LookupKey returns the code for a non-modifier named key such as "{ENTER}".
func LookupKey(token string) (rune, bool) {
	r, ok := namedKeys[normalizeName(token)]
	return r, ok
}

// Encode converts a script into the raw string sent to the backend.
// Literal spans are sent verbatim. Each keystroke span holds one or more
// space-separated combos like "CTRL-SHIFT-S"; modifiers are pressed, the
// key sent, then the modifiers sent again to release them. Unmapped key
// names are passed through raw.
func Encode(script string) string {
	var b strings.Builder
	for _, s := range Spans(script) {
		if s.Kind == SpanText {
			b.WriteString(s.Value)
			continue
		}
		for _, combo := range strings.Fields(s.Value) {
			b.WriteString(encodeCombo(combo))
		}
	}
	return b.String()
}

func encodeCombo(combo string) string {
	parts := splitCombo(combo)
	var mods []rune
	var key string
	for i, p := range parts {
		if i < len(parts)-1 {
			if m, ok := LookupModifier(p); ok {
				mods = append(mods, m)
				continue
			}
		}
		if k, ok := LookupKey(p); ok {
			key += string(k)
		} else if m, ok := LookupModifier(p); ok {
			key += string(m)
		} else {
			key += p
		}
	}
	return string(mods) + key + string(mods)
}

// splitCombo splits "CTRL-C" or "CTRL+C" into its parts. A trailing
// separator character is treated as the key itself, so "CTRL--" is CTRL
// plus the minus key.
func splitCombo(combo string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(combo); i++ {
		if (combo[i] == '-' || combo[i] == '+') && i > start {
			parts = append(parts, combo[start:i])
			start = i + 1
		}
	}
	if start < len(combo) {
		parts = append(parts, combo[start:])
	}
	return parts
}
