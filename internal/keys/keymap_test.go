package keys

import "testing"

func TestLookupKey(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"{ENTER}", 0x0D},
		{"enter", 0x0D},
		{"{Return}", 0x0D},
		{"TAB", 0x09},
		{"{F5}", 0x74},
		{"{DELETE}", 0x2E},
	}
	for _, tt := range tests {
		got, ok := LookupKey(tt.input)
		if !ok {
			t.Errorf("LookupKey(%q) not found", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("LookupKey(%q) = %#x, want %#x", tt.input, got, tt.want)
		}
	}
}

func TestLookupKey_NotFound(t *testing.T) {
	for _, tok := range []string{"{NOPE}", "", "{CTRL}"} {
		if _, ok := LookupKey(tok); ok {
			t.Errorf("LookupKey(%q) should not be found", tok)
		}
	}
}

func TestLookupModifier(t *testing.T) {
	if r, ok := LookupModifier("{CTRL}"); !ok || r != 0x11 {
		t.Errorf("LookupModifier(CTRL) = %#x, %v", r, ok)
	}
	if r, ok := LookupModifier("control"); !ok || r != 0x11 {
		t.Errorf("LookupModifier(control) = %#x, %v", r, ok)
	}
	if _, ok := LookupModifier("{ENTER}"); ok {
		t.Error("ENTER is not a modifier")
	}
}

func TestTablesStayInLowRange(t *testing.T) {
	for name, r := range namedKeys {
		if r < 0x01 || r > 0xFF {
			t.Errorf("%s maps outside 0x01-0xFF: %#x", name, r)
		}
	}
	for name, r := range modifierKeys {
		if r < 0x01 || r > 0xFF {
			t.Errorf("%s maps outside 0x01-0xFF: %#x", name, r)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"literal", "<<abc>>", "abc"},
		{"single key", "[[ENTER]]", "\x0d"},
		{"combo", "[[CTRL-C]]", "\x11C\x11"},
		{"two combos", "[[CTRL-A DEL]]", "\x11A\x11\x2e"},
		{"mixed", "<<user>>[[TAB]]<<pw>>", "user\x09pw"},
		{"unknown key passes through", "[[CTRL-FOO]]", "\x11FOO\x11"},
		{"minus key", "[[CTRL--]]", "\x11-\x11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.script)
			if got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.script, got, tt.want)
			}
		})
	}
}
