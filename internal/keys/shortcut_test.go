package keys

import "testing"

func TestForceShortcutSyntax(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"[CTRL-C]", "[[CTRL-C]]"},
		{"[[CTRL-C]]", "[[CTRL-C]]"},
		{"<<hello>>", "<<hello>>"},
		{"hello", "<<hello>>"},
		{"[unterminated", "<<[unterminated>>"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ForceShortcutSyntax(tt.input)
			if got != tt.want {
				t.Errorf("ForceShortcutSyntax(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestForceShortcutSyntax_Idempotent(t *testing.T) {
	for _, tok := range []string{"[[ENTER]]", "<<abc>>", "[[CTRL-SHIFT-S]]", "<<>>"} {
		if got := ForceShortcutSyntax(tok); got != tok {
			t.Errorf("ForceShortcutSyntax(%q) = %q, want unchanged", tok, got)
		}
		once := ForceShortcutSyntax("raw " + tok)
		if twice := ForceShortcutSyntax(once); twice != once {
			t.Errorf("not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestAddShortcut_EmptyExisting(t *testing.T) {
	for _, tok := range []string{"[CTRL-A]", "abc", "[[TAB]]", "<<x>>"} {
		if got, want := AddShortcut("", tok), ForceShortcutSyntax(tok); got != want {
			t.Errorf("AddShortcut(\"\", %q) = %q, want %q", tok, got, want)
		}
	}
}

func TestAddShortcut(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		token    string
		want     string
	}{
		{"empty token", "<<a>>", "", "<<a>>"},
		{"merge literal", "<<ab>>", "cd", "<<abcd>>"},
		{"keys after keys", "[[CTRL-A]]", "[DEL]", "[[CTRL-A]][[END]][[DEL]]"},
		{"keys after text", "<<abc>>", "[ENTER]", "<<abc>>[[ENTER]]"},
		{"text after keys", "[[ENTER]]", "abc", "[[ENTER]]<<abc>>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddShortcut(tt.existing, tt.token)
			if got != tt.want {
				t.Errorf("AddShortcut(%q, %q) = %q, want %q", tt.existing, tt.token, got, tt.want)
			}
		})
	}
}

func TestToKeystrokes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", "<<hello>>"},
		{"ab[[TAB]]cd", "<<ab>>[[TAB]]<<cd>>"},
		{"[[CTRL-A]][[DEL]]", "[[CTRL-A]][[DEL]]"},
		{"x[[CTRL", "<<x[[CTRL>>"},
		{"<<kept>>[[ENTER]]", "<<kept>>[[ENTER]]"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToKeystrokes(tt.input)
			if got != tt.want {
				t.Errorf("ToKeystrokes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToKeystrokes_RoundTripsLiteral(t *testing.T) {
	for _, x := range []string{"hello", "user name 42", "a-b+c"} {
		spans := Spans(ToKeystrokes(ForceShortcutSyntax(x)))
		if len(spans) != 1 || spans[0].Kind != SpanText || spans[0].Value != x {
			t.Errorf("round trip of %q gave %+v", x, spans)
		}
	}
}

func TestSpans_Classification(t *testing.T) {
	spans := Spans("<<user>>[[TAB]]<<secret>>[[ENTER]]")
	want := []Span{
		{SpanText, "user"},
		{SpanKeys, "TAB"},
		{SpanText, "secret"},
		{SpanKeys, "ENTER"},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d: %+v", len(spans), len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}
