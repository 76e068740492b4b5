// Package platform is the boundary between the element model and the
// automation endpoint that talks to UI Automation.
package platform

// UI Automation attribute names read through Control.Attribute.
const (
	AttrControlType       = "ControlType"
	AttrName              = "Name"
	AttrAutomationID      = "AutomationId"
	AttrBoundingRectangle = "BoundingRectangle"
	AttrExpandCollapse    = "IsExpandCollapsePatternAvailable"
	AttrIsEnabled         = "IsEnabled"
)

// Control is one live element of the application under test.
type Control interface {
	// Attribute reads a UI Automation property. Missing properties read
	// as the empty string.
	Attribute(name string) (string, error)

	// FindAll returns the controls matching xpath relative to this one.
	FindAll(xpath string) ([]Control, error)

	Click() error
	SendKeys(keys string) error
}

// Driver is a session with the automation endpoint.
type Driver interface {
	// FindAll returns the controls matching an absolute xpath.
	FindAll(xpath string) ([]Control, error)

	// SetValue sets a control's value through its value pattern, without
	// typing.
	SetValue(c Control, value string) error

	// ScriptClick clicks a control through the endpoint's input script,
	// for controls that ignore a plain click.
	ScriptClick(c Control) error

	// Screenshot captures the desktop as PNG.
	Screenshot() ([]byte, error)

	// Quit ends the session.
	Quit() error
}
