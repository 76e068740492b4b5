package locator

import (
	"fmt"
	"strings"
)

// Strategy selects which predicates identify a configured control.
type Strategy int

const (
	// ByControlType filters on ControlType, and on Name when one is known.
	ByControlType Strategy = iota
	// ByName filters on Name only.
	ByName
	// ByAutomationID filters on AutomationId, falling back to Name.
	ByAutomationID
)

var strategyNames = map[Strategy]string{
	ByControlType:  "controltype",
	ByName:         "name",
	ByAutomationID: "automationid",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses a strategy name. An empty name selects ByControlType.
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	if norm == "" {
		return ByControlType, nil
	}
	for k, v := range strategyNames {
		if v == norm {
			return k, nil
		}
	}
	return ByControlType, fmt.Errorf("unknown xpath strategy: %q (use controltype, name, or automationid)", s)
}

// Target describes the identifying attributes of a control.
type Target struct {
	ControlType  string
	Name         string
	AutomationID string
}

// Step builds the location step for t using the strategy.
func (s Strategy) Step(axis Axis, t Target) Step {
	step := Step{Axis: axis}
	switch s {
	case ByName:
		if t.Name != "" {
			return step.Where(AttrName, t.Name)
		}
	case ByAutomationID:
		if t.AutomationID != "" {
			return step.Where(AttrAutomationID, t.AutomationID)
		}
		if t.Name != "" {
			return step.Where(AttrName, t.Name)
		}
	}
	if t.ControlType != "" {
		step = step.Where(AttrControlType, t.ControlType)
	}
	if t.Name != "" {
		step = step.Where(AttrName, t.Name)
	}
	return step
}
