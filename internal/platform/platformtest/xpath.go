package platformtest

import (
	"fmt"
	"strings"
)

type predicate struct {
	attr, value string
}

type step struct {
	descendant bool
	preds      []predicate
}

// Eval evaluates xpath with ctx as the context node. Absolute and
// relative paths are both evaluated from ctx.
func Eval(ctx *Node, xpath string) ([]*Node, error) {
	steps, err := parse(xpath)
	if err != nil {
		return nil, err
	}
	set := []*Node{ctx}
	for _, s := range steps {
		var next []*Node
		seen := map[*Node]bool{}
		for _, n := range set {
			var candidates []*Node
			if s.descendant {
				candidates = descendants(n)
			} else {
				candidates = n.visibleChildren()
			}
			for _, c := range candidates {
				if !seen[c] && c.matches(s.preds) {
					seen[c] = true
					next = append(next, c)
				}
			}
		}
		set = next
	}
	return set, nil
}

func (n *Node) matches(preds []predicate) bool {
	for _, p := range preds {
		if n.Attrs[p.attr] != p.value {
			return false
		}
	}
	return true
}

func descendants(n *Node) []*Node {
	var out []*Node
	for _, c := range n.visibleChildren() {
		out = append(out, c)
		out = append(out, descendants(c)...)
	}
	return out
}

func parse(xpath string) ([]step, error) {
	s := strings.TrimSpace(xpath)
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, fmt.Errorf("empty xpath %q", xpath)
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}

	var steps []step
	for len(s) > 0 {
		var st step
		switch {
		case strings.HasPrefix(s, "//"):
			st.descendant = true
			s = s[2:]
		case strings.HasPrefix(s, "/"):
			s = s[1:]
		default:
			return nil, fmt.Errorf("xpath %q: expected / at %q", xpath, s)
		}
		if !strings.HasPrefix(s, "*") {
			return nil, fmt.Errorf("xpath %q: only * node tests are supported", xpath)
		}
		s = s[1:]
		for strings.HasPrefix(s, "[") {
			p, rest, err := parsePredicate(s)
			if err != nil {
				return nil, fmt.Errorf("xpath %q: %w", xpath, err)
			}
			st.preds = append(st.preds, p)
			s = rest
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// parsePredicate reads [@Attr=literal] from the start of s.
func parsePredicate(s string) (predicate, string, error) {
	if !strings.HasPrefix(s, "[@") {
		return predicate{}, s, fmt.Errorf("bad predicate at %q", s)
	}
	s = s[2:]
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return predicate{}, s, fmt.Errorf("missing = in predicate")
	}
	attr := s[:eq]
	value, rest, err := parseLiteral(s[eq+1:])
	if err != nil {
		return predicate{}, s, err
	}
	if !strings.HasPrefix(rest, "]") {
		return predicate{}, rest, fmt.Errorf("unterminated predicate at %q", rest)
	}
	return predicate{attr: attr, value: value}, rest[1:], nil
}

// parseLiteral reads a quoted string or a concat() of quoted strings.
func parseLiteral(s string) (string, string, error) {
	if strings.HasPrefix(s, "concat(") {
		s = s[len("concat("):]
		var b strings.Builder
		for {
			s = strings.TrimLeft(s, " ")
			part, rest, err := parseQuoted(s)
			if err != nil {
				return "", s, err
			}
			b.WriteString(part)
			rest = strings.TrimLeft(rest, " ")
			switch {
			case strings.HasPrefix(rest, ","):
				s = rest[1:]
			case strings.HasPrefix(rest, ")"):
				return b.String(), rest[1:], nil
			default:
				return "", rest, fmt.Errorf("bad concat at %q", rest)
			}
		}
	}
	return parseQuoted(s)
}

func parseQuoted(s string) (string, string, error) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return "", s, fmt.Errorf("expected string literal at %q", s)
	}
	end := strings.IndexByte(s[1:], s[0])
	if end < 0 {
		return "", s, fmt.Errorf("unterminated string literal %q", s)
	}
	return s[1 : end+1], s[end+2:], nil
}
