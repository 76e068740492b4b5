package model

import "strings"

// RoleMap maps UI Automation control types to compact role codes.
var RoleMap = map[string]string{
	"Button":      "btn",
	"SplitButton": "btn",
	"Text":        "txt",
	"Hyperlink":   "lnk",
	"Image":       "img",
	"Edit":        "input",
	"Document":    "input",
	"ComboBox":    "combo",
	"CheckBox":    "chk",
	"RadioButton": "radio",
	"Menu":        "menu",
	"MenuBar":     "menu",
	"MenuItem":    "menuitem",
	"Separator":   "sep",
	"Tab":         "tab",
	"TabItem":     "tabitem",
	"List":        "list",
	"DataGrid":    "list",
	"Table":       "list",
	"ListItem":    "row",
	"DataItem":    "row",
	"Group":       "group",
	"Pane":        "group",
	"ScrollBar":   "scroll",
	"ToolBar":     "toolbar",
	"TitleBar":    "title",
	"Window":      "window",
}

// MapRole converts a control type, with or without the "ControlType."
// prefix, to a compact code.
func MapRole(controlType string) string {
	if short, ok := RoleMap[NormalizeControlType(controlType)]; ok {
		return short
	}
	return "other"
}

// TypeForControl maps a live control type to the element type used when
// a control is discovered rather than configured.
func TypeForControl(controlType string) ElementType {
	switch NormalizeControlType(controlType) {
	case "MenuBar":
		return TypeMenuBar
	case "Menu":
		return TypeMenu
	case "MenuItem":
		return TypeMenuItem
	case "Separator":
		return TypeSeparator
	case "Tab":
		return TypeTabGroup
	case "TabItem":
		return TypeTabItem
	case "Button", "SplitButton":
		return TypeButton
	case "Edit", "Document":
		return TypeEdit
	case "Text":
		return TypeText
	case "Window":
		return TypeWindow
	default:
		return TypeGeneric
	}
}

// IsInput reports whether the control type accepts typed values.
func IsInput(controlType string) bool {
	switch strings.ToLower(NormalizeControlType(controlType)) {
	case "edit", "document", "combobox":
		return true
	}
	return false
}

// ControlTypeFor returns the control type a configured element of type t
// has when the configuration does not name one.
func ControlTypeFor(t ElementType) string {
	switch t {
	case TypeApplication, TypeWindow, TypeDialog, TypeLoginForm:
		return "Window"
	case TypeMenuBar:
		return "MenuBar"
	case TypeMenu:
		return "Menu"
	case TypeMenuItem:
		return "MenuItem"
	case TypeSeparator:
		return "Separator"
	case TypeTabGroup:
		return "Tab"
	case TypeTabItem:
		return "TabItem"
	case TypeButton:
		return "Button"
	case TypeEdit:
		return "Edit"
	case TypeText:
		return "Text"
	default:
		return ""
	}
}
