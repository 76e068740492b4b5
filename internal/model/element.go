package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/winium-desktop/internal/locator"
)

// ElementType is the kind of a modeled control.
type ElementType int

const (
	TypeGeneric ElementType = iota
	TypeApplication
	TypeWindow
	TypeMenuBar
	TypeMenu
	TypeMenuItem
	TypeSeparator
	TypeTabGroup
	TypeTabItem
	TypeDialog
	TypeLoginForm
	TypeButton
	TypeEdit
	TypeText
)

var typeNames = [...]string{
	TypeGeneric:     "Generic",
	TypeApplication: "Application",
	TypeWindow:      "Window",
	TypeMenuBar:     "MenuBar",
	TypeMenu:        "Menu",
	TypeMenuItem:    "MenuItem",
	TypeSeparator:   "Separator",
	TypeTabGroup:    "TabGroup",
	TypeTabItem:     "TabItem",
	TypeDialog:      "Dialog",
	TypeLoginForm:   "LoginForm",
	TypeButton:      "Button",
	TypeEdit:        "Edit",
	TypeText:        "Text",
}

func (t ElementType) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("ElementType(%d)", int(t))
}

// MarshalText renders the type by name in YAML and JSON output.
func (t ElementType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText reads a type written by MarshalText.
func (t *ElementType) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			*t = ElementType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown element type %q", name)
}

// ElementID addresses an element inside a Tree.
type ElementID int

// NoElement is the container of the root.
const NoElement ElementID = -1

// Element represents one modeled control.
type Element struct {
	ID           ElementID
	Label        string // logical name, unique among siblings
	Name         string // UI Automation Name
	ControlType  string
	AutomationID string
	Type         ElementType
	Layout       Layout
	Editable     bool
	Container    ElementID

	// Tabs is the static tab-name list of a TabGroup.
	Tabs []string
	// Timeout bounds waits performed on the element (login dialogs).
	Timeout time.Duration
	// Component names a third-party configuration fragment.
	Component string

	// Wrapped marks menu items presented under an intermediate Menu.
	Wrapped bool

	locator  locator.Path
	children *childMap
}

// Target returns the identifying attributes used to build locators.
func (e *Element) Target() locator.Target {
	return locator.Target{
		ControlType:  e.ControlType,
		Name:         e.Name,
		AutomationID: e.AutomationID,
	}
}

// Locator returns the element's locator path.
func (e *Element) Locator() locator.Path { return e.locator }

// XPath returns the element's XPath expression.
func (e *Element) XPath() string { return e.locator.String() }

// DisplayName returns the best human-readable name of the element.
func (e *Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Label
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	if e.children == nil {
		return 0
	}
	return e.children.Len()
}

// NormalizeControlType strips the "ControlType." prefix Winium reports
// for the ControlType attribute.
func NormalizeControlType(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "ControlType.")
}
