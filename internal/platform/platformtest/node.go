// Package platformtest provides an in-memory automation backend for tests.
//
// A fake desktop is a tree of Nodes. Nodes answer the XPath subset the
// locator package generates: child and descendant steps over "*" with
// [@Attr='value'] predicates.
package platformtest

import (
	"fmt"
	"strings"

	"github.com/mj1618/winium-desktop/internal/platform"
)

// Node is a fake control. It implements platform.Control.
type Node struct {
	Attrs    map[string]string
	Children []*Node

	// Collapsed nodes hide their children until clicked open; a second
	// click closes them again, like a drop-down menu.
	Collapsed bool
	// OnClick runs after every click, plain or scripted.
	OnClick func(n *Node)
	// FindErr, when set, is returned by FindAll on this node.
	FindErr error

	Clicks       int
	ScriptClicks int
	Opens        int
	Keys         []string
	Value        string

	open   bool
	parent *Node
}

// New creates a node with the given control type and name.
func New(controlType, name string, children ...*Node) *Node {
	n := &Node{Attrs: map[string]string{}}
	if controlType != "" {
		n.Attrs[platform.AttrControlType] = controlType
	}
	if name != "" {
		n.Attrs[platform.AttrName] = name
	}
	n.Add(children...)
	return n
}

// With sets an attribute and returns n.
func (n *Node) With(attr, value string) *Node {
	n.Attrs[attr] = value
	return n
}

// ID sets the AutomationId attribute.
func (n *Node) ID(automationID string) *Node {
	return n.With(platform.AttrAutomationID, automationID)
}

// At sets the BoundingRectangle attribute.
func (n *Node) At(x, y, w, h int) *Node {
	return n.With(platform.AttrBoundingRectangle, fmt.Sprintf("%d,%d,%d,%d", x, y, w, h))
}

// Menu marks n as collapsed with an expand/collapse pattern.
func (n *Node) Menu() *Node {
	n.Collapsed = true
	return n.With(platform.AttrExpandCollapse, "True")
}

// Add appends children to n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Detach removes n from its parent, as when a window closes.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// IsOpen reports whether a collapsed node is currently open.
func (n *Node) IsOpen() bool { return n.open }

// Attribute implements platform.Control. ControlType reads with the
// "ControlType." prefix Winium reports.
func (n *Node) Attribute(name string) (string, error) {
	v := n.Attrs[name]
	if name == platform.AttrControlType && v != "" {
		return "ControlType." + v, nil
	}
	return v, nil
}

// FindAll implements platform.Control.
func (n *Node) FindAll(xpath string) ([]platform.Control, error) {
	if n.FindErr != nil {
		return nil, n.FindErr
	}
	found, err := Eval(n, xpath)
	if err != nil {
		return nil, err
	}
	return controls(found), nil
}

// Click implements platform.Control.
func (n *Node) Click() error {
	n.Clicks++
	n.toggle()
	return nil
}

// SendKeys implements platform.Control.
func (n *Node) SendKeys(keys string) error {
	n.Keys = append(n.Keys, keys)
	return nil
}

func (n *Node) toggle() {
	if n.Collapsed {
		n.open = !n.open
		if n.open {
			n.Opens++
		}
	}
	if n.OnClick != nil {
		n.OnClick(n)
	}
}

// visibleChildren returns the children that a live tree would expose.
func (n *Node) visibleChildren() []*Node {
	if n.Collapsed && !n.open {
		return nil
	}
	return n.Children
}

func (n *Node) String() string {
	ct := n.Attrs[platform.AttrControlType]
	if name := n.Attrs[platform.AttrName]; name != "" {
		return ct + " " + strings.TrimSpace(name)
	}
	return ct
}

func controls(nodes []*Node) []platform.Control {
	out := make([]platform.Control, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
