package desktop

import (
	"fmt"
	"strings"

	"github.com/mj1618/winium-desktop/internal/model"
)

// FindInput returns the input of container id that belongs to the label
// text, using the container's layout. Of several candidates the closest
// wins.
func (s *Session) FindInput(id model.ElementID, label string) (*model.Element, error) {
	form, err := s.Element(id)
	if err != nil {
		return nil, err
	}
	children, err := s.Inspect(id)
	if err != nil {
		return nil, err
	}

	var text *model.Element
	for _, c := range children {
		if c.Type == model.TypeText && (c.Label == label || strings.EqualFold(strings.TrimSuffix(c.Name, ":"), strings.TrimSuffix(label, ":"))) {
			text = c
			break
		}
	}
	if text == nil {
		return nil, fmt.Errorf("%w: label %q in %s", ErrNoElement, label, s.describe(form))
	}
	lr, err := s.Rect(text.ID)
	if err != nil {
		return nil, err
	}

	var best *model.Element
	bestDist := 0
	for _, c := range children {
		if !c.Editable {
			continue
		}
		r, err := s.Rect(c.ID)
		if err != nil {
			return nil, err
		}
		if !form.Layout.Belongs(lr, r) {
			continue
		}
		if d := form.Layout.Distance(lr, r); best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no input for label %q in %s (%s layout)", ErrNoElement, label, s.describe(form), form.Layout.Kind)
	}
	return best, nil
}

// Fill sets the value of the input that belongs to label in container id.
func (s *Session) Fill(id model.ElementID, label, value string) (Result, error) {
	res := Result{Action: "fill", Target: s.targetOf(id)}
	in, err := s.FindInput(id, label)
	if err != nil {
		if offscreen(err) || isNoElement(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	res.Target = s.targetOf(in.ID)
	c, err := s.Control(in.ID)
	if err != nil {
		if offscreen(err) {
			return res.fail("%v", err), nil
		}
		return res, err
	}
	if err := s.driver.SetValue(c, value); err != nil {
		return res, fmt.Errorf("set %s: %w", res.Target, err)
	}
	return res.ok("filled %q", label), nil
}
