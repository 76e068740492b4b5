// Package desktop drives a modeled application through an automation
// backend. A Session binds the element tree of one application to a live
// driver, discovers elements on demand and performs the high-level
// operations (menus, tabs, login forms, dialogs, typing).
package desktop

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/winium-desktop/internal/config"
	"github.com/mj1618/winium-desktop/internal/keys"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/platform"
)

var (
	// ErrNoDriver is returned when a session is created without a backend.
	ErrNoDriver = errors.New("session has no driver")
	// ErrNoElement is returned for element IDs or labels the model does not hold.
	ErrNoElement = errors.New("element not in model")
	// ErrBlankLocator is returned for elements without an XPath.
	ErrBlankLocator = errors.New("element has no locator")
)

// DefaultPoll is the interval between checks in bounded waits.
const DefaultPoll = 250 * time.Millisecond

// Session is a live automation session over one application.
type Session struct {
	ID     string
	Config *config.DesktopConfig
	Tree   *model.Tree

	// Poll is the interval of bounded waits.
	Poll time.Duration

	driver    platform.Driver
	src       config.Source
	log       *logrus.Entry
	handles   map[model.ElementID]platform.Control
	inspected map[model.ElementID]bool
}

// NewSession binds cfg to driver. src resolves third-party component
// fragments. A nil logger discards output.
func NewSession(cfg *config.DesktopConfig, driver platform.Driver, src config.Source, logger *logrus.Logger) (*Session, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	if cfg == nil || cfg.Tree == nil {
		return nil, errors.New("session needs a loaded configuration")
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		Config:    cfg,
		Tree:      cfg.Tree,
		Poll:      DefaultPoll,
		driver:    driver,
		src:       src,
		log:       logger.WithFields(logrus.Fields{"session": id[:8], "app": cfg.AppID}),
		handles:   make(map[model.ElementID]platform.Control),
		inspected: make(map[model.ElementID]bool),
	}, nil
}

// Driver returns the backend of the session.
func (s *Session) Driver() platform.Driver { return s.driver }

// Close ends the backend session.
func (s *Session) Close() error {
	s.handles = make(map[model.ElementID]platform.Control)
	return s.driver.Quit()
}

// Element returns the element with the given ID.
func (s *Session) Element(id model.ElementID) (*model.Element, error) {
	e := s.Tree.Get(id)
	if e == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNoElement, id)
	}
	return e, nil
}

// Lookup resolves a label path below the root, inspecting containers as
// needed.
func (s *Session) Lookup(labels ...string) (*model.Element, error) {
	cur := s.Tree.Root()
	for _, l := range labels {
		next, err := s.Child(cur.ID, l)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// SplitPath splits a label path written as "File > Save" or "File/Save".
// Blank segments are dropped.
func SplitPath(path string) []string {
	sep := "/"
	if strings.Contains(path, ">") {
		sep = ">"
	}
	var labels []string
	for _, p := range strings.Split(path, sep) {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// Child returns the child of id labeled label. Children that are not
// configured are discovered by inspecting id once.
func (s *Session) Child(id model.ElementID, label string) (*model.Element, error) {
	e, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	if c, ok := s.Tree.Child(id, label); ok {
		return c, nil
	}
	if !s.inspected[id] {
		if _, err := s.Inspect(id); err != nil {
			return nil, err
		}
		if c, ok := s.Tree.Child(id, label); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q under %s", ErrNoElement, label, s.describe(e))
}

// XPath returns the locator expression of id.
func (s *Session) XPath(id model.ElementID) (string, error) {
	e, err := s.Element(id)
	if err != nil {
		return "", err
	}
	x := e.XPath()
	if strings.TrimSpace(x) == "" {
		return "", fmt.Errorf("%w: %s", ErrBlankLocator, s.describe(e))
	}
	return x, nil
}

// Control returns the live control of id, resolving it by XPath on first
// use.
func (s *Session) Control(id model.ElementID) (platform.Control, error) {
	if c, ok := s.handles[id]; ok {
		return c, nil
	}
	c, err := s.find(id)
	if err != nil {
		return nil, err
	}
	s.handles[id] = c
	return c, nil
}

// find resolves id by XPath without consulting or filling the cache.
func (s *Session) find(id model.ElementID) (platform.Control, error) {
	x, err := s.XPath(id)
	if err != nil {
		return nil, err
	}
	c, err := platform.First(s.driver, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.describe(s.Tree.Get(id)), err)
	}
	return c, nil
}

// enabled reports whether c accepts input. Controls that do not report
// IsEnabled count as enabled.
func enabled(c platform.Control) (bool, error) {
	v, err := c.Attribute(platform.AttrIsEnabled)
	if err != nil {
		return false, err
	}
	return !strings.EqualFold(strings.TrimSpace(v), "false"), nil
}

// present reports whether id currently resolves to a control.
func (s *Session) present(id model.ElementID) (bool, error) {
	x, err := s.XPath(id)
	if err != nil {
		return false, err
	}
	found, err := s.driver.FindAll(x)
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Refresh forgets the bound controls of id and its descendants and marks
// them for re-inspection, for use after the UI changed.
func (s *Session) Refresh(id model.ElementID) error {
	if _, err := s.Element(id); err != nil {
		return err
	}
	s.Tree.Walk(id, func(e *model.Element, _ int) bool {
		delete(s.handles, e.ID)
		delete(s.inspected, e.ID)
		return true
	})
	return nil
}

// Rect returns the on-screen bounds of id.
func (s *Session) Rect(id model.ElementID) (model.Rect, error) {
	c, err := s.Control(id)
	if err != nil {
		return model.Rect{}, err
	}
	return rectOf(c, id)
}

func rectOf(c platform.Control, id model.ElementID) (model.Rect, error) {
	v, err := c.Attribute(platform.AttrBoundingRectangle)
	if err != nil {
		return model.Rect{}, err
	}
	r, err := model.ParseRect(v)
	if err != nil {
		return model.Rect{}, err
	}
	r.Element = id
	return r, nil
}

// Rects returns the bounds of id and its modeled descendants that are on
// screen. Subtrees of elements that cannot be located are skipped, as are
// controls without a usable bounding rectangle.
func (s *Session) Rects(id model.ElementID) ([]model.Rect, error) {
	if _, err := s.Element(id); err != nil {
		return nil, err
	}
	var (
		rects   []model.Rect
		walkErr error
	)
	s.Tree.Walk(id, func(e *model.Element, _ int) bool {
		if walkErr != nil {
			return false
		}
		c, err := s.Control(e.ID)
		if err != nil {
			if !offscreen(err) && !errors.Is(err, ErrBlankLocator) {
				walkErr = err
			}
			return false
		}
		v, err := c.Attribute(platform.AttrBoundingRectangle)
		if err != nil {
			walkErr = err
			return false
		}
		if r, err := model.ParseRect(v); err == nil {
			r.Element = e.ID
			rects = append(rects, r)
		}
		return true
	})
	return rects, walkErr
}

// TypeKeys sends a shortcut script to id. See package keys for the
// script syntax.
func (s *Session) TypeKeys(id model.ElementID, script string) (Result, error) {
	res := Result{Action: "keys", Target: s.targetOf(id)}
	c, err := s.Control(id)
	if err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	if err := c.SendKeys(keys.Encode(script)); err != nil {
		return res, fmt.Errorf("send keys to %s: %w", res.Target, err)
	}
	s.log.Debugf("sent %q to %s", script, res.Target)
	return res.ok("sent %d spans", len(keys.Spans(script))), nil
}

// waitFor polls cond until it reports true or timeout passes. It reports
// whether cond was met.
func (s *Session) waitFor(timeout time.Duration, cond func() (bool, error)) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(s.Poll)
	}
}

// offscreen reports whether err means a control could not be found on
// screen, which operations report as a failed Result.
func offscreen(err error) bool {
	return errors.Is(err, platform.ErrNotFound)
}

func isNoElement(err error) bool {
	return errors.Is(err, ErrNoElement)
}

func (s *Session) describe(e *model.Element) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %q", e.Type, strings.Join(s.Tree.LabelPath(e.ID), "/"))
}

func (s *Session) targetOf(id model.ElementID) string {
	return strings.Join(s.Tree.LabelPath(id), "/")
}
