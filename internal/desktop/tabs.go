package desktop

import (
	"fmt"
	"strings"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
)

const tabItemType = "TabItem"

// inspectTabGroup adds the tabs of a group. A configured tab list is used
// as is, without reading the live control.
func (s *Session) inspectTabGroup(g *model.Element) error {
	if len(g.Tabs) > 0 {
		for _, name := range g.Tabs {
			el := model.Element{
				Label:       name,
				Name:        name,
				ControlType: tabItemType,
				Type:        model.TypeTabItem,
				Layout:      g.Layout,
			}
			if _, _, err := s.adoptStep(g.ID, el, locator.OfType(tabItemType).Where(locator.AttrName, name)); err != nil {
				return err
			}
		}
		return nil
	}

	c, err := s.Control(g.ID)
	if err != nil {
		return err
	}
	items, err := scanChildren(c, relative(locator.OfType(tabItemType)))
	if err != nil {
		return err
	}
	claimed := make(map[model.ElementID]bool)
	labels := newLabeler()
	for _, it := range items {
		if it.name == "" || s.claim(g.ID, it, claimed) {
			continue
		}
		el := it.element(s.freeLabel(g.ID, labels, it.name), g.Layout)
		el.Type = model.TypeTabItem
		tab, added, err := s.adopt(g.ID, el, locator.Child)
		if err != nil {
			return err
		}
		if added {
			claimed[tab.ID] = true
			s.handles[tab.ID] = it.ctrl
		}
	}
	return nil
}

// Tabs lists the tab names of a tab group.
func (s *Session) Tabs(id model.ElementID) (Result, error) {
	g, err := s.tabGroup(id)
	if err != nil {
		return Result{}, err
	}
	res := Result{Action: "tab", Target: s.targetOf(id)}
	tabs, err := s.tabItems(g)
	if err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	for _, t := range tabs {
		res.Items = append(res.Items, t.DisplayName())
	}
	return res.ok("%d tabs", len(tabs)), nil
}

// ClickTab selects the tab called name in the tab group id.
func (s *Session) ClickTab(id model.ElementID, name string) (Result, error) {
	g, err := s.tabGroup(id)
	if err != nil {
		return Result{}, err
	}
	res := Result{Action: "tab", Target: s.targetOf(id)}
	tabs, err := s.tabItems(g)
	if err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}

	var tab *model.Element
	var names []string
	for _, t := range tabs {
		names = append(names, t.DisplayName())
		if tab == nil && (t.Label == name || strings.EqualFold(t.Name, name)) {
			tab = t
		}
	}
	if tab == nil {
		return res.fail("no tab %q (have %s)", name, strings.Join(names, ", ")), nil
	}

	res.Target = s.targetOf(tab.ID)
	c, err := s.Control(tab.ID)
	if err != nil {
		if offscreen(err) {
			return res.fail("tab %q could not be located", name), nil
		}
		return res, err
	}
	if ok, err := enabled(c); err != nil {
		return res, err
	} else if !ok {
		return res.fail("tab %q is not enabled", tab.DisplayName()), nil
	}
	if err := c.Click(); err != nil {
		return res, fmt.Errorf("click tab %q: %w", name, err)
	}
	s.log.Infof("selected tab %s", res.Target)
	return res.ok("selected tab %q", tab.DisplayName()), nil
}

func (s *Session) tabGroup(id model.ElementID) (*model.Element, error) {
	g, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	if g.Type != model.TypeTabGroup {
		return nil, fmt.Errorf("%s is not a tab group", s.describe(g))
	}
	return g, nil
}

// tabItems inspects g and returns its tabs.
func (s *Session) tabItems(g *model.Element) ([]*model.Element, error) {
	children, err := s.Inspect(g.ID)
	if err != nil {
		return nil, err
	}
	var tabs []*model.Element
	for _, c := range children {
		if c.Type == model.TypeTabItem {
			tabs = append(tabs, c)
		}
	}
	return tabs, nil
}
