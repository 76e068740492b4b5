package desktop

import (
	"fmt"
	"time"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/platform"
)

// Labels of the controls of a login form.
const (
	PartUsername = "Username"
	PartPassword = "Password"
	PartLogin    = "Login"
	PartCancel   = "Cancel"
)

var loginPartLabels = []string{PartUsername, PartPassword, PartLogin, PartCancel}

func (s *Session) loginForm(id model.ElementID) (*model.Element, error) {
	form, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	if form.Type != model.TypeLoginForm {
		return nil, fmt.Errorf("%s is not a login form", s.describe(form))
	}
	return form, nil
}

// loginParts loads the component that names the controls of form. A form
// without a component is described by its configured children alone.
func (s *Session) loginParts(form *model.Element) (config.LoginParts, error) {
	if form.Component == "" {
		return config.LoginParts{}, nil
	}
	return config.LoadComponent[config.LoginParts](s.src, s.Config.AppID, form.Component)
}

// loginTimeout is the form's own timeout, else the component's, else the
// default wait.
func (s *Session) loginTimeout(form *model.Element, parts config.LoginParts) time.Duration {
	switch {
	case form.Timeout > 0:
		return form.Timeout
	case parts.TimeoutMs > 0:
		return time.Duration(parts.TimeoutMs) * time.Millisecond
	default:
		return s.Config.DefaultWait
	}
}

// inspectLoginForm adds the login controls named by the form's component.
// Configured children with the same labels take precedence.
func (s *Session) inspectLoginForm(form *model.Element) error {
	parts, err := s.loginParts(form)
	if err != nil {
		return err
	}
	byLabel := map[string]config.Part{
		PartUsername: parts.Username,
		PartPassword: parts.Password,
		PartLogin:    parts.Login,
		PartCancel:   parts.Cancel,
	}
	for _, label := range loginPartLabels {
		p := byLabel[label]
		if p.Name == "" && p.AutomationID == "" {
			continue
		}
		ct := model.NormalizeControlType(p.ControlType)
		el := model.Element{
			Label:        label,
			Name:         p.Name,
			AutomationID: p.AutomationID,
			ControlType:  ct,
			Type:         model.TypeForControl(ct),
			Editable:     label == PartUsername || label == PartPassword,
			Layout:       form.Layout,
		}
		if _, _, err := s.adopt(form.ID, el, locator.Descendant); err != nil {
			return err
		}
	}
	return nil
}

// Login fills and submits the login form id. The form is waited for up to
// its timeout; if it never shows the user is taken to be logged in
// already. Each control must resolve before anything is typed.
func (s *Session) Login(id model.ElementID, username, password string) (Result, error) {
	form, err := s.loginForm(id)
	if err != nil {
		return Result{}, err
	}
	res := Result{Action: "login", Target: s.targetOf(id)}
	parts, err := s.loginParts(form)
	if err != nil {
		return res, err
	}
	timeout := s.loginTimeout(form, parts)

	shown, err := s.waitFor(timeout, func() (bool, error) { return s.present(id) })
	if err != nil {
		return res, err
	}
	if !shown {
		s.log.Infof("login form %s not shown within %s", res.Target, timeout)
		return res.ok("already logged in"), nil
	}

	// A new form instance: forget handles bound to an earlier one.
	if err := s.Refresh(id); err != nil {
		return res, err
	}
	if _, err := s.Inspect(id); err != nil {
		return res, err
	}

	ctrls := make(map[string]platform.Control, len(loginPartLabels))
	for _, label := range loginPartLabels {
		el, ok := s.Tree.Child(id, label)
		if !ok {
			return res.fail("%s control is not configured", label), nil
		}
		c, err := s.find(el.ID)
		if err != nil {
			if offscreen(err) {
				return res.fail("%s control not found", label), nil
			}
			return res, err
		}
		ctrls[label] = c
	}

	// Password boxes may ignore a plain click; focus through the endpoint.
	if err := s.driver.ScriptClick(ctrls[PartPassword]); err != nil {
		return res, fmt.Errorf("focus %s: %w", PartPassword, err)
	}
	if err := s.driver.SetValue(ctrls[PartUsername], username); err != nil {
		return res, fmt.Errorf("set %s: %w", PartUsername, err)
	}
	if err := s.driver.SetValue(ctrls[PartPassword], password); err != nil {
		return res, fmt.Errorf("set %s: %w", PartPassword, err)
	}
	if err := ctrls[PartLogin].Click(); err != nil {
		return res, fmt.Errorf("click %s: %w", PartLogin, err)
	}

	gone, err := s.waitFor(timeout, func() (bool, error) {
		p, err := s.present(id)
		return !p, err
	})
	if err != nil {
		return res, err
	}
	if err := s.Refresh(id); err != nil {
		return res, err
	}
	if !gone {
		return res.fail("login form still open after %s", timeout), nil
	}
	s.log.Infof("logged in to %s as %s", s.Config.AppID, username)
	return res.ok("logged in as %s", username), nil
}
