package desktop

import (
	"fmt"
	"strings"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/platform"
)

// childrenXPath selects the immediate children of a control.
const childrenXPath = "./*"

// relative turns a child step into an expression evaluated against a
// control instead of the desktop root.
func relative(step locator.Step) string {
	return "." + step.String()
}

// Inspect discovers the children of id according to its type and returns
// all of its children, configured and discovered. Discovery runs once per
// element until Refresh.
func (s *Session) Inspect(id model.ElementID) ([]*model.Element, error) {
	e, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	if s.inspected[id] {
		return s.Tree.Children(id), nil
	}

	switch e.Type {
	case model.TypeMenuBar:
		err = s.inspectMenuBar(e)
	case model.TypeTabGroup:
		err = s.inspectTabGroup(e)
	case model.TypeLoginForm:
		err = s.inspectLoginForm(e)
	case model.TypeDialog:
		err = s.inspectDialog(e)
	default:
		err = s.inspectGeneric(e)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", s.describe(e), err)
	}
	s.inspected[id] = true
	s.log.Debugf("inspected %s: %d children", s.describe(e), e.ChildCount())
	return s.Tree.Children(id), nil
}

// InspectPath resolves a label path, inspects the element it names and
// returns the element with its subtree flattened.
func (s *Session) InspectPath(labels ...string) (*model.Element, []model.FlatElement, error) {
	e, err := s.Lookup(labels...)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.Inspect(e.ID); err != nil {
		return nil, nil, err
	}
	return e, model.Flatten(s.Tree, e.ID), nil
}

// inspectGeneric adds every immediate child of the live control.
func (s *Session) inspectGeneric(e *model.Element) error {
	c, err := s.Control(e.ID)
	if err != nil {
		return err
	}
	items, err := scanChildren(c, childrenXPath)
	if err != nil {
		return err
	}
	claimed := make(map[model.ElementID]bool)
	labels := newLabeler()
	for _, it := range items {
		if s.claim(e.ID, it, claimed) {
			continue
		}
		child, added, err := s.adopt(e.ID, it.element(s.freeLabel(e.ID, labels, it.labelBase()), e.Layout), locator.Child)
		if err != nil {
			return err
		}
		if added {
			claimed[child.ID] = true
			s.handles[child.ID] = it.ctrl
		}
	}
	return nil
}

// claim binds a scanned control to the first unclaimed child of parent
// that already models it, and reports whether there was one.
func (s *Session) claim(parent model.ElementID, it liveChild, claimed map[model.ElementID]bool) bool {
	for _, c := range s.Tree.Children(parent) {
		if !claimed[c.ID] && it.matches(c) {
			claimed[c.ID] = true
			s.handles[c.ID] = it.ctrl
			return true
		}
	}
	return false
}

// liveChild is a control found while scanning, with the attributes the
// model needs.
type liveChild struct {
	ctrl         platform.Control
	controlType  string
	name         string
	automationID string
	expandable   bool
}

func scanChildren(c platform.Control, xpath string) ([]liveChild, error) {
	found, err := c.FindAll(xpath)
	if err != nil {
		return nil, err
	}
	out := make([]liveChild, 0, len(found))
	for _, f := range found {
		lc, err := readLive(f)
		if err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, nil
}

func readLive(c platform.Control) (liveChild, error) {
	lc := liveChild{ctrl: c}
	attrs := []struct {
		name string
		dst  *string
	}{
		{platform.AttrControlType, &lc.controlType},
		{platform.AttrName, &lc.name},
		{platform.AttrAutomationID, &lc.automationID},
	}
	for _, a := range attrs {
		v, err := c.Attribute(a.name)
		if err != nil {
			return lc, err
		}
		*a.dst = strings.TrimSpace(v)
	}
	lc.controlType = model.NormalizeControlType(lc.controlType)

	exp, err := c.Attribute(platform.AttrExpandCollapse)
	if err != nil {
		return lc, err
	}
	lc.expandable = strings.EqualFold(strings.TrimSpace(exp), "true")
	return lc, nil
}

func (lc liveChild) labelBase() string {
	switch {
	case lc.name != "":
		return lc.name
	case lc.automationID != "":
		return lc.automationID
	case lc.controlType != "":
		return lc.controlType
	default:
		return "Element"
	}
}

// matches reports whether e identifies this control: by automation id when
// e has one, otherwise by name and control type.
func (lc liveChild) matches(e *model.Element) bool {
	if e.AutomationID != "" {
		return e.AutomationID == lc.automationID
	}
	if e.Name == "" || e.Name != lc.name {
		return false
	}
	return e.ControlType == "" || e.ControlType == lc.controlType
}

func (lc liveChild) element(label string, layout model.Layout) model.Element {
	return model.Element{
		Label:        label,
		Name:         lc.name,
		ControlType:  lc.controlType,
		AutomationID: lc.automationID,
		Type:         model.TypeForControl(lc.controlType),
		Editable:     model.IsInput(lc.controlType),
		Layout:       layout,
	}
}

// labeler hands out labels for one scan. Repeated bases get a "#n"
// suffix so that the same control keeps its label across scans.
type labeler struct {
	seen map[string]int
}

func newLabeler() *labeler {
	return &labeler{seen: make(map[string]int)}
}

func (l *labeler) next(base string) string {
	l.seen[base]++
	if n := l.seen[base]; n > 1 {
		return fmt.Sprintf("%s#%d", base, n)
	}
	return base
}

// freeLabel returns the next label for base that no child of parent uses.
func (s *Session) freeLabel(parent model.ElementID, labels *labeler, base string) string {
	for {
		label := labels.next(base)
		if _, taken := s.Tree.Child(parent, label); !taken {
			return label
		}
	}
}

// adopt attaches a discovered element under parent using the tree's
// strategy, or returns the existing child with the same label. added is
// false for an existing child.
func (s *Session) adopt(parent model.ElementID, e model.Element, axis locator.Axis) (*model.Element, bool, error) {
	return s.adoptStep(parent, e, s.Tree.Strategy().Step(axis, e.Target()))
}

func (s *Session) adoptStep(parent model.ElementID, e model.Element, step locator.Step) (*model.Element, bool, error) {
	if c, ok := s.Tree.Child(parent, e.Label); ok {
		return c, false, nil
	}
	c, err := s.Tree.AttachStep(parent, e, step)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}
