package model

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mj1618/winium-desktop/internal/locator"
)

type childMap = orderedmap.OrderedMap[string, ElementID]

// ErrDuplicateLabel is returned when a sibling already uses a label.
var ErrDuplicateLabel = errors.New("duplicate label")

// Tree is an arena of elements rooted at the application. Elements refer
// to their container by ID and keep children in insertion order.
type Tree struct {
	strategy locator.Strategy
	elems    []*Element
}

// NewTree creates a tree whose root is the given element. The root's
// locator is a top-level child of the desktop.
func NewTree(strategy locator.Strategy, root Element) *Tree {
	t := &Tree{strategy: strategy}
	root.ID = 0
	root.Container = NoElement
	root.children = orderedmap.New[string, ElementID]()
	root.locator = locator.Root(strategy.Step(locator.Child, root.Target()))
	t.elems = append(t.elems, &root)
	return t
}

// Strategy returns the XPath generation strategy of the tree.
func (t *Tree) Strategy() locator.Strategy { return t.strategy }

// Root returns the application element.
func (t *Tree) Root() *Element { return t.elems[0] }

// Len returns the number of elements in the tree.
func (t *Tree) Len() int { return len(t.elems) }

// Get returns the element with the given ID, or nil.
func (t *Tree) Get(id ElementID) *Element {
	if id < 0 || int(id) >= len(t.elems) {
		return nil
	}
	return t.elems[id]
}

// Container returns the element's container, or nil for the root.
func (t *Tree) Container(id ElementID) *Element {
	e := t.Get(id)
	if e == nil {
		return nil
	}
	return t.Get(e.Container)
}

// Attach adds e under parent using the tree's strategy to derive the
// relative step.
func (t *Tree) Attach(parent ElementID, e Element, axis locator.Axis) (*Element, error) {
	return t.AttachStep(parent, e, t.strategy.Step(axis, e.Target()))
}

// AttachStep adds e under parent with an explicit relative step. The
// child's locator is always the parent's locator plus step; Wrapped
// elements get a Menu wrapper step injected before their own.
func (t *Tree) AttachStep(parent ElementID, e Element, step locator.Step) (*Element, error) {
	p := t.Get(parent)
	if p == nil {
		return nil, fmt.Errorf("attach %q: container %d not found", e.Label, parent)
	}
	if e.Label == "" {
		return nil, fmt.Errorf("attach under %q: empty label", p.Label)
	}
	if _, exists := p.children.Get(e.Label); exists {
		return nil, fmt.Errorf("attach %q under %q: %w", e.Label, p.Label, ErrDuplicateLabel)
	}

	e.ID = ElementID(len(t.elems))
	e.Container = parent
	e.children = orderedmap.New[string, ElementID]()
	e.locator = p.locator.Append(step)
	if e.Wrapped {
		e.locator = e.locator.Wrap("Menu")
	}

	t.elems = append(t.elems, &e)
	p.children.Set(e.Label, e.ID)
	return &e, nil
}

// Child looks up a direct child by label.
func (t *Tree) Child(parent ElementID, label string) (*Element, bool) {
	p := t.Get(parent)
	if p == nil {
		return nil, false
	}
	id, ok := p.children.Get(label)
	if !ok {
		return nil, false
	}
	return t.elems[id], true
}

// Children returns the direct children of parent in insertion order.
func (t *Tree) Children(parent ElementID) []*Element {
	p := t.Get(parent)
	if p == nil {
		return nil
	}
	out := make([]*Element, 0, p.children.Len())
	for pair := p.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, t.elems[pair.Value])
	}
	return out
}

// Lookup resolves a label path starting below the root.
func (t *Tree) Lookup(labels ...string) (*Element, bool) {
	cur := t.Root()
	for _, l := range labels {
		next, ok := t.Child(cur.ID, l)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// LabelPath returns the labels from the root to id, inclusive.
func (t *Tree) LabelPath(id ElementID) []string {
	var path []string
	for e := t.Get(id); e != nil; e = t.Get(e.Container) {
		path = append([]string{e.Label}, path...)
	}
	return path
}

// Walk visits id and its descendants depth-first, parents before
// children. Returning false from fn skips the element's subtree.
func (t *Tree) Walk(id ElementID, fn func(e *Element, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id ElementID, depth int, fn func(e *Element, depth int) bool) {
	e := t.Get(id)
	if e == nil || !fn(e, depth) {
		return
	}
	for pair := e.children.Oldest(); pair != nil; pair = pair.Next() {
		t.walk(pair.Value, depth+1, fn)
	}
}
