package desktop

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/platform"
)

// inspectMenuBar walks the menu bar. Expandable items are opened, scanned
// and closed again one at a time.
func (s *Session) inspectMenuBar(bar *model.Element) error {
	c, err := s.Control(bar.ID)
	if err != nil {
		return err
	}
	return s.scanMenu(bar.ID, c, bar.Layout)
}

// scanMenu attaches the entries presented by c under parent. A Menu
// wrapper is not modeled: its items go under parent with a wrapper step
// in their locator.
func (s *Session) scanMenu(parent model.ElementID, c platform.Control, layout model.Layout) error {
	items, err := scanChildren(c, childrenXPath)
	if err != nil {
		return err
	}
	labels := newLabeler()
	for _, it := range items {
		if model.TypeForControl(it.controlType) != model.TypeMenu {
			if err := s.addMenuEntry(parent, it, labels, layout, false); err != nil {
				return err
			}
			continue
		}
		inner, err := scanChildren(it.ctrl, childrenXPath)
		if err != nil {
			return err
		}
		for _, in := range inner {
			if err := s.addMenuEntry(parent, in, labels, layout, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) addMenuEntry(parent model.ElementID, it liveChild, labels *labeler, layout model.Layout, wrapped bool) error {
	var label string
	switch model.TypeForControl(it.controlType) {
	case model.TypeSeparator:
		label = labels.next("Separator")
	case model.TypeMenuItem:
		label = labels.next(it.labelBase())
	default:
		return nil
	}

	el := it.element(label, layout)
	el.Wrapped = wrapped
	item, _, err := s.adopt(parent, el, locator.Child)
	if err != nil {
		return err
	}
	if item.Type == model.TypeMenuItem && it.expandable {
		if err := s.expand(item, it.ctrl); err != nil {
			return err
		}
	}
	return nil
}

// expand opens a menu item, scans its submenu and closes it again. The
// item is closed on every exit path.
func (s *Session) expand(item *model.Element, c platform.Control) (err error) {
	if err := c.Click(); err != nil {
		return fmt.Errorf("open %s: %w", s.describe(item), err)
	}
	defer func() {
		if cerr := c.Click(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", s.describe(item), cerr)
		}
	}()
	s.log.Debugf("expanded %s", s.describe(item))
	return s.scanMenu(item.ID, c, item.Layout)
}

// MenuBar returns the menu bar of the application, discovering it when it
// is not configured.
func (s *Session) MenuBar() (*model.Element, error) {
	if bar := s.findMenuBar(); bar != nil {
		return bar, nil
	}
	root := s.Tree.Root()
	if _, err := s.Inspect(root.ID); err != nil {
		return nil, err
	}
	if bar := s.findMenuBar(); bar != nil {
		return bar, nil
	}
	return nil, fmt.Errorf("%w: %s has no menu bar", ErrNoElement, s.describe(root))
}

func (s *Session) findMenuBar() *model.Element {
	found := model.FilterByType(s.Tree, s.Tree.Root().ID, model.TypeMenuBar)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// menuEntry finds an entry under parent by label, falling back to a
// case-insensitive match on the displayed name.
func (s *Session) menuEntry(parent model.ElementID, label string) *model.Element {
	if c, ok := s.Tree.Child(parent, label); ok && c.Type == model.TypeMenuItem {
		return c
	}
	want := stripAccelerator(label)
	for _, c := range s.Tree.Children(parent) {
		if c.Type == model.TypeMenuItem && strings.EqualFold(stripAccelerator(c.Name), want) {
			return c
		}
	}
	return nil
}

func stripAccelerator(s string) string {
	s = strings.ReplaceAll(s, "&", "")
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ClickMenu opens each menu along path and clicks the last item. Menus
// opened on the way are closed again if the path cannot be completed.
func (s *Session) ClickMenu(path ...string) (res Result, err error) {
	res = Result{Action: "menu", Target: strings.Join(path, " > ")}
	if len(path) == 0 {
		return res, errors.New("empty menu path")
	}

	bar, err := s.MenuBar()
	if err != nil {
		if isNoElement(err) || offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	if _, err := s.Inspect(bar.ID); err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}

	var opened []platform.Control
	defer func() {
		if res.OK {
			return
		}
		for i := len(opened) - 1; i >= 0; i-- {
			if cerr := opened[i].Click(); cerr != nil {
				s.log.Warnf("failed to close menu: %v", cerr)
			}
		}
	}()

	cur := bar
	for i, label := range path {
		next := s.menuEntry(cur.ID, label)
		if next == nil {
			return res.fail("no menu item %q under %q (have %s)", label, cur.DisplayName(), s.menuNames(cur.ID)), nil
		}
		c, err := s.find(next.ID)
		if err != nil {
			if offscreen(err) {
				return res.fail("menu item %q is not on screen", label), nil
			}
			return res, err
		}
		if ok, err := enabled(c); err != nil {
			return res, err
		} else if !ok {
			return res.fail("menu item %q is not enabled", label), nil
		}
		if err := c.Click(); err != nil {
			return res, fmt.Errorf("click %s: %w", s.describe(next), err)
		}
		if i < len(path)-1 {
			opened = append(opened, c)
		}
		cur = next
	}
	s.log.Infof("clicked menu %s", res.Target)
	return res.ok("clicked %s", cur.DisplayName()), nil
}

// MenuItems lists the label paths of every menu item below the menu bar.
func (s *Session) MenuItems() (Result, error) {
	res := Result{Action: "menu"}
	bar, err := s.MenuBar()
	if err != nil {
		if isNoElement(err) || offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	res.Target = s.targetOf(bar.ID)
	if _, err := s.Inspect(bar.ID); err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	depth := len(s.Tree.LabelPath(bar.ID))
	s.Tree.Walk(bar.ID, func(e *model.Element, _ int) bool {
		if e.Type == model.TypeMenuItem {
			res.Items = append(res.Items, strings.Join(s.Tree.LabelPath(e.ID)[depth:], " > "))
		}
		return true
	})
	return res.ok("%d menu items", len(res.Items)), nil
}

func (s *Session) menuNames(parent model.ElementID) string {
	var names []string
	for _, c := range s.Tree.Children(parent) {
		if c.Type == model.TypeMenuItem {
			names = append(names, c.Label)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
