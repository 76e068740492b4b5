package model

import "strings"

// FindByText returns the elements below id whose label or name contains
// text (case-insensitive), in depth-first order.
func FindByText(t *Tree, id ElementID, text string) []*Element {
	textLower := strings.ToLower(text)
	var result []*Element
	t.Walk(id, func(e *Element, _ int) bool {
		if textMatchesElement(e, textLower) {
			result = append(result, e)
		}
		return true
	})
	return result
}

func textMatchesElement(el *Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Label), textLower) ||
		strings.Contains(strings.ToLower(el.Name), textLower)
}

// FilterByType returns the elements below id with one of the given types.
// An empty type list matches everything.
func FilterByType(t *Tree, id ElementID, types ...ElementType) []*Element {
	set := make(map[ElementType]bool, len(types))
	for _, ty := range types {
		set[ty] = true
	}
	var result []*Element
	t.Walk(id, func(e *Element, _ int) bool {
		if len(set) == 0 || set[e.Type] {
			result = append(result, e)
		}
		return true
	})
	return result
}
