package desktop

import (
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/platform"
)

// ErrEmptyDialog is returned when a dialog control has no children.
var ErrEmptyDialog = errors.New("dialog has no content")

// Dialog is the content of a message dialog.
type Dialog struct {
	Title   string   `yaml:"title,omitempty"   json:"title,omitempty"`
	Body    string   `yaml:"body,omitempty"    json:"body,omitempty"`
	Buttons []string `yaml:"buttons,omitempty" json:"buttons,omitempty"`

	controls *orderedmap.OrderedMap[string, platform.Control]
}

// Button returns the control of the named button.
func (d *Dialog) Button(name string) (platform.Control, bool) {
	if c, ok := d.controls.Get(name); ok {
		return c, true
	}
	for pair := d.controls.Oldest(); pair != nil; pair = pair.Next() {
		if strings.EqualFold(stripAccelerator(pair.Key), stripAccelerator(name)) {
			return pair.Value, true
		}
	}
	return nil, false
}

// ReadDialog classifies the immediate children of a dialog control. The
// first title bar names the dialog; buttons are keyed by name, a later
// button replacing an earlier one of the same name; text lines form the
// body.
func ReadDialog(c platform.Control) (*Dialog, error) {
	children, err := scanChildren(c, childrenXPath)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, ErrEmptyDialog
	}

	d := &Dialog{controls: orderedmap.New[string, platform.Control]()}
	titled := false
	var lines []string
	for _, ch := range children {
		switch ch.controlType {
		case "TitleBar":
			if !titled {
				d.Title = ch.name
				titled = true
			}
		case "Button", "SplitButton":
			d.controls.Set(ch.name, ch.ctrl)
		case "Text":
			lines = append(lines, ch.name)
		}
	}
	d.Body = strings.TrimSpace(strings.Join(lines, "\n"))
	for pair := d.controls.Oldest(); pair != nil; pair = pair.Next() {
		d.Buttons = append(d.Buttons, pair.Key)
	}
	return d, nil
}

// inspectDialog adds the dialog's buttons.
func (s *Session) inspectDialog(e *model.Element) error {
	c, err := s.Control(e.ID)
	if err != nil {
		return err
	}
	d, err := ReadDialog(c)
	if err != nil {
		return err
	}
	for pair := d.controls.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			continue
		}
		el := model.Element{
			Label:       pair.Key,
			Name:        pair.Key,
			ControlType: "Button",
			Type:        model.TypeButton,
			Layout:      e.Layout,
		}
		btn, added, err := s.adopt(e.ID, el, locator.Child)
		if err != nil {
			return err
		}
		if added || btn.Name == pair.Key {
			s.handles[btn.ID] = pair.Value
		}
	}
	return nil
}

// dialogControl waits up to the dialog's timeout for it to show and
// returns its control.
func (s *Session) dialogControl(id model.ElementID) (platform.Control, error) {
	e, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = s.Config.DefaultWait
	}
	if _, err := s.waitFor(timeout, func() (bool, error) { return s.present(id) }); err != nil {
		return nil, err
	}
	return s.find(id)
}

// ReadDialog reads the dialog id as it is now on screen.
func (s *Session) ReadDialog(id model.ElementID) (*Dialog, error) {
	c, err := s.dialogControl(id)
	if err != nil {
		return nil, err
	}
	return ReadDialog(c)
}

// ShowDialog reports the dialog's content as a Result: the title as the
// message and the body and buttons as items.
func (s *Session) ShowDialog(id model.ElementID) (Result, *Dialog, error) {
	res := Result{Action: "dialog", Target: s.targetOf(id)}
	d, err := s.ReadDialog(id)
	if err != nil {
		if offscreen(err) || errors.Is(err, ErrEmptyDialog) {
			return res.fail("%v", err), nil, nil
		}
		return res, nil, err
	}
	res.Items = d.Buttons
	return res.ok("%s", d.Title), d, nil
}

// ClickDialogButton clicks the named button of dialog id.
func (s *Session) ClickDialogButton(id model.ElementID, button string) (Result, error) {
	res := Result{Action: "dialog", Target: s.targetOf(id)}
	d, err := s.ReadDialog(id)
	if err != nil {
		if offscreen(err) || errors.Is(err, ErrEmptyDialog) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	c, ok := d.Button(button)
	if !ok {
		return res.fail("no button %q (have %s)", button, strings.Join(d.Buttons, ", ")), nil
	}
	if ok, err := enabled(c); err != nil {
		return res, err
	} else if !ok {
		return res.fail("button %q is not enabled", button), nil
	}
	if err := c.Click(); err != nil {
		return res, fmt.Errorf("click %q: %w", button, err)
	}
	if err := s.Refresh(id); err != nil {
		return res, err
	}
	s.log.Infof("clicked %q in %s", button, res.Target)
	return res.ok("clicked %q", button), nil
}
