package model

import "strings"

// FlatElement is an element with a label breadcrumb instead of children.
type FlatElement struct {
	ID           ElementID   `yaml:"i"                json:"i"`
	Label        string      `yaml:"label"            json:"label"`
	Type         ElementType `yaml:"type"             json:"type"`
	Role         string      `yaml:"r,omitempty"      json:"r,omitempty"`
	Name         string      `yaml:"name,omitempty"   json:"name,omitempty"`
	AutomationID string      `yaml:"aid,omitempty"    json:"aid,omitempty"`
	XPath        string      `yaml:"xpath"            json:"xpath"`
	Editable     bool        `yaml:"editable,omitempty" json:"editable,omitempty"`
	Path         string      `yaml:"p,omitempty"      json:"p,omitempty"`
}

// Flatten converts the subtree at id into a flat list. Each element gets
// a path string of labels joined with " > ".
func Flatten(t *Tree, id ElementID) []FlatElement {
	var result []FlatElement
	base := t.LabelPath(id)
	if len(base) == 0 {
		return nil
	}
	prefix := strings.Join(base[:len(base)-1], " > ")
	flattenRecursive(t, id, prefix, &result)
	return result
}

func flattenRecursive(t *Tree, id ElementID, parentPath string, result *[]FlatElement) {
	el := t.Get(id)
	if el == nil {
		return
	}
	currentPath := el.Label
	if parentPath != "" {
		currentPath = parentPath + " > " + el.Label
	}

	role := ""
	if el.ControlType != "" {
		role = MapRole(el.ControlType)
	}
	*result = append(*result, FlatElement{
		ID:           el.ID,
		Label:        el.Label,
		Type:         el.Type,
		Role:         role,
		Name:         el.Name,
		AutomationID: el.AutomationID,
		XPath:        el.XPath(),
		Editable:     el.Editable,
		Path:         currentPath,
	})

	for _, child := range t.Children(id) {
		flattenRecursive(t, child.ID, currentPath, result)
	}
}
