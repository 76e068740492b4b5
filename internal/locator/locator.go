// Package locator builds XPath expressions for Winium's UI Automation tree.
//
// Paths are assembled from explicit steps and predicates rather than by
// editing strings, so a wrapper step can be injected between a container
// and an item without re-parsing the container's expression.
package locator

import (
	"fmt"
	"strings"
)

// UI Automation attribute names exposed by Winium.
const (
	AttrControlType  = "ControlType"
	AttrName         = "Name"
	AttrAutomationID = "AutomationId"
)

// Axis is the relation of a step to the previous one.
type Axis int

const (
	Child Axis = iota
	Descendant
)

func (a Axis) String() string {
	if a == Descendant {
		return "//"
	}
	return "/"
}

// Predicate is a single [@Attr='Value'] filter.
type Predicate struct {
	Attr  string
	Value string
}

func (p Predicate) String() string {
	return fmt.Sprintf("[@%s=%s]", p.Attr, Literal(p.Value))
}

// Step is one location step. Steps always use the "*" node test and
// filter by predicates.
type Step struct {
	Axis       Axis
	Predicates []Predicate
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Axis.String())
	b.WriteString("*")
	for _, p := range s.Predicates {
		b.WriteString(p.String())
	}
	return b.String()
}

// Where returns a copy of s with an extra predicate appended.
func (s Step) Where(attr, value string) Step {
	preds := make([]Predicate, len(s.Predicates), len(s.Predicates)+1)
	copy(preds, s.Predicates)
	s.Predicates = append(preds, Predicate{Attr: attr, Value: value})
	return s
}

// OfType is a child step filtered by control type.
func OfType(controlType string) Step {
	return Step{Axis: Child}.Where(AttrControlType, controlType)
}

// Path is an absolute locator made of steps.
type Path struct {
	steps []Step
}

// Root returns a path that starts with the given step.
func Root(step Step) Path {
	return Path{steps: []Step{step}}
}

// Append returns a new path with the steps appended.
func (p Path) Append(steps ...Step) Path {
	out := make([]Step, 0, len(p.steps)+len(steps))
	out = append(out, p.steps...)
	out = append(out, steps...)
	return Path{steps: out}
}

// Wrap returns a new path where a wrapper step of the given control type
// is inserted before the last step. It is used for items the automation
// tree presents under an intermediate container, e.g. menu items under a
// Menu. A path with fewer than two steps is returned unchanged.
func (p Path) Wrap(controlType string) Path {
	if len(p.steps) < 2 {
		return p
	}
	last := p.steps[len(p.steps)-1]
	return Path{steps: p.steps[:len(p.steps)-1]}.Append(OfType(controlType), last)
}

// Len returns the number of steps.
func (p Path) Len() int { return len(p.steps) }

// IsZero reports whether the path has no steps.
func (p Path) IsZero() bool { return len(p.steps) == 0 }

func (p Path) String() string {
	var b strings.Builder
	for _, s := range p.steps {
		b.WriteString(s.String())
	}
	return b.String()
}

// Literal quotes s as an XPath string literal. Values that contain both
// quote kinds are emitted with concat().
func Literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts)-1)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
