package model

import "strconv"

// ChangeType represents the kind of UI change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change is a single difference between two listings of a subtree.
type Change struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	Path    string               `yaml:"p"                 json:"p"`
	Element *FlatElement         `yaml:"el,omitempty"      json:"el,omitempty"` // added elements
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"`
}

// Diff compares two flat listings. Elements are matched by label path:
// IDs depend on discovery order and differ between sessions.
func Diff(prev, curr []FlatElement) []Change {
	prevMap := make(map[string]FlatElement, len(prev))
	for _, el := range prev {
		prevMap[el.Path] = el
	}
	currMap := make(map[string]FlatElement, len(curr))
	for _, el := range curr {
		currMap[el.Path] = el
	}

	var changes []Change
	for _, el := range curr {
		prevEl, existed := prevMap[el.Path]
		if !existed {
			elCopy := el
			changes = append(changes, Change{Type: ChangeAdded, Path: el.Path, Element: &elCopy})
			continue
		}
		if diffs := diffProperties(prevEl, el); diffs != nil {
			changes = append(changes, Change{Type: ChangeChanged, Path: el.Path, Changes: diffs})
		}
	}
	for _, el := range prev {
		if _, exists := currMap[el.Path]; !exists {
			changes = append(changes, Change{Type: ChangeRemoved, Path: el.Path})
		}
	}
	return changes
}

// diffProperties returns the changed fields of an element, keyed like
// the FlatElement serialization.
func diffProperties(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)
	if prev.Type != curr.Type {
		diffs["type"] = [2]string{prev.Type.String(), curr.Type.String()}
	}
	if prev.Name != curr.Name {
		diffs["name"] = [2]string{prev.Name, curr.Name}
	}
	if prev.AutomationID != curr.AutomationID {
		diffs["aid"] = [2]string{prev.AutomationID, curr.AutomationID}
	}
	if prev.XPath != curr.XPath {
		diffs["xpath"] = [2]string{prev.XPath, curr.XPath}
	}
	if prev.Editable != curr.Editable {
		diffs["editable"] = [2]string{strconv.FormatBool(prev.Editable), strconv.FormatBool(curr.Editable)}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
