// Package winium implements the automation backend over a Winium.Desktop
// endpoint, which speaks the WebDriver JSON wire protocol.
package winium

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"github.com/mj1618/winium-desktop/internal/platform"
)

// Scripts understood by Winium.Desktop's ExecuteScript command.
const (
	scriptSetValue  = "automation: ValuePattern.SetValue"
	scriptCtrlClick = "input: ctrl_click"
)

// Capabilities builds the session capabilities for opts.
func Capabilities(opts platform.SessionOptions) selenium.Capabilities {
	caps := selenium.Capabilities{"app": opts.App}
	if opts.Args != "" {
		caps["args"] = opts.Args
	}
	if opts.LaunchDelay > 0 {
		caps["launchDelay"] = int(opts.LaunchDelay.Seconds())
	}
	if opts.Attach {
		caps["debugConnectToRunningApp"] = true
	}
	return caps
}

// Driver is a Winium session.
type Driver struct {
	wd selenium.WebDriver
}

// Open starts a session at opts.URL.
func Open(opts platform.SessionOptions) (*Driver, error) {
	wd, err := selenium.NewRemote(Capabilities(opts), strings.TrimRight(opts.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to create winium session: %w", err)
	}
	return &Driver{wd: wd}, nil
}

// FindAll implements platform.Driver. No match is an empty result.
func (d *Driver) FindAll(xpath string) ([]platform.Control, error) {
	found, err := d.wd.FindElements(selenium.ByXPATH, xpath)
	if err != nil {
		return nil, notFoundAsEmpty(err)
	}
	return wrap(found), nil
}

// SetValue implements platform.Driver through the ValuePattern script.
func (d *Driver) SetValue(c platform.Control, value string) error {
	we, err := unwrap(c)
	if err != nil {
		return err
	}
	if _, err := d.wd.ExecuteScript(scriptSetValue, []interface{}{we, value}); err != nil {
		return fmt.Errorf("set value: %w", err)
	}
	return nil
}

// ScriptClick implements platform.Driver through the ctrl_click input script.
func (d *Driver) ScriptClick(c platform.Control) error {
	we, err := unwrap(c)
	if err != nil {
		return err
	}
	if _, err := d.wd.ExecuteScript(scriptCtrlClick, []interface{}{we}); err != nil {
		return fmt.Errorf("script click: %w", err)
	}
	return nil
}

// Screenshot implements platform.Driver.
func (d *Driver) Screenshot() ([]byte, error) {
	return d.wd.Screenshot()
}

// Quit implements platform.Driver.
func (d *Driver) Quit() error {
	return d.wd.Quit()
}

// control adapts a selenium.WebElement.
type control struct {
	we selenium.WebElement
}

func (c control) Attribute(name string) (string, error) {
	v, err := c.we.GetAttribute(name)
	if err != nil {
		// Winium returns null for properties the control does not
		// support; the client reports that as an error.
		if strings.Contains(err.Error(), "nil return value") {
			return "", nil
		}
		return "", fmt.Errorf("attribute %s: %w", name, err)
	}
	return v, nil
}

func (c control) FindAll(xpath string) ([]platform.Control, error) {
	found, err := c.we.FindElements(selenium.ByXPATH, xpath)
	if err != nil {
		return nil, notFoundAsEmpty(err)
	}
	return wrap(found), nil
}

func (c control) Click() error { return c.we.Click() }

func (c control) SendKeys(keys string) error { return c.we.SendKeys(keys) }

func wrap(found []selenium.WebElement) []platform.Control {
	out := make([]platform.Control, len(found))
	for i, we := range found {
		out[i] = control{we: we}
	}
	return out
}

func unwrap(c platform.Control) (selenium.WebElement, error) {
	cc, ok := c.(control)
	if !ok {
		return nil, fmt.Errorf("control %T does not belong to a winium session", c)
	}
	return cc.we, nil
}

// notFoundAsEmpty maps the endpoint's "no such element" failure to an
// empty result so callers can treat absence uniformly.
func notFoundAsEmpty(err error) error {
	var se *selenium.Error
	if errors.As(err, &se) && se.Err == "no such element" {
		return nil
	}
	if strings.Contains(err.Error(), "no such element") {
		return nil
	}
	return err
}
