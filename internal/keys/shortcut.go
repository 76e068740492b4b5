package keys

import "strings"

// Span delimiters understood by the automation backend scripts.
const (
	KeysOpen  = "[["
	KeysClose = "]]"
	TextOpen  = "<<"
	TextClose = ">>"
)

// moveToEnd separates two adjacent keystroke spans.
const moveToEnd = KeysOpen + "END" + KeysClose

// SpanKind classifies a span of a keystroke script.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanKeys
)

func (k SpanKind) String() string {
	if k == SpanKeys {
		return "keys"
	}
	return "text"
}

// Span is one delimited run of a script with its delimiters stripped.
type Span struct {
	Kind  SpanKind `yaml:"kind"  json:"kind"`
	Value string   `yaml:"value" json:"value"`
}

func isKeysSpan(s string) bool {
	return len(s) >= len(KeysOpen)+len(KeysClose) &&
		strings.HasPrefix(s, KeysOpen) && strings.HasSuffix(s, KeysClose)
}

func isTextSpan(s string) bool {
	return len(s) >= len(TextOpen)+len(TextClose) &&
		strings.HasPrefix(s, TextOpen) && strings.HasSuffix(s, TextClose)
}

// ForceShortcutSyntax normalizes one token into canonical delimited form.
// Canonical spans pass through, "[CTRL-C]" becomes "[[CTRL-C]]" and
// anything else is wrapped as literal text.
func ForceShortcutSyntax(text string) string {
	switch {
	case text == "":
		return ""
	case isKeysSpan(text), isTextSpan(text):
		return text
	case len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']':
		return KeysOpen + text[1:len(text)-1] + KeysClose
	default:
		return TextOpen + text + TextClose
	}
}

// AddShortcut appends token to an existing script.
func AddShortcut(existing, token string) string {
	next := ForceShortcutSyntax(token)
	if next == "" {
		return existing
	}
	if existing == "" {
		return next
	}
	switch {
	case strings.HasSuffix(existing, TextClose) && isTextSpan(next):
		inner := next[len(TextOpen) : len(next)-len(TextClose)]
		return existing[:len(existing)-len(TextClose)] + inner + TextClose
	case strings.HasSuffix(existing, KeysClose) && isKeysSpan(next):
		return existing + moveToEnd + next
	default:
		return existing + next
	}
}

// ToKeystrokes rewrites raw text so that every run outside a keystroke
// span becomes a literal-text span. Existing spans are kept as is.
func ToKeystrokes(text string) string {
	var b strings.Builder
	for _, s := range Spans(text) {
		if s.Kind == SpanKeys {
			b.WriteString(KeysOpen + s.Value + KeysClose)
		} else {
			b.WriteString(TextOpen + s.Value + TextClose)
		}
	}
	return b.String()
}

// Spans splits a script into keystroke and literal spans. Bare runs are
// literal; an unterminated opener turns the remainder into literal text.
// Adjacent literal runs are merged.
func Spans(text string) []Span {
	var spans []Span
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Value: pending.String()})
			pending.Reset()
		}
	}

	rest := text
	for rest != "" {
		ki := strings.Index(rest, KeysOpen)
		ti := strings.Index(rest, TextOpen)
		if ki < 0 && ti < 0 {
			pending.WriteString(rest)
			break
		}

		open, closer, kind := KeysOpen, KeysClose, SpanKeys
		at := ki
		if ki < 0 || (ti >= 0 && ti < ki) {
			open, closer, kind, at = TextOpen, TextClose, SpanText, ti
		}

		pending.WriteString(rest[:at])
		body := rest[at+len(open):]
		end := strings.Index(body, closer)
		if end < 0 {
			pending.WriteString(rest[at:])
			break
		}

		if kind == SpanText {
			pending.WriteString(body[:end])
		} else {
			flush()
			if body[:end] != "" {
				spans = append(spans, Span{Kind: SpanKeys, Value: body[:end]})
			}
		}
		rest = body[end+len(closer):]
	}
	flush()
	return spans
}
