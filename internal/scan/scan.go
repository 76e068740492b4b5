// Package scan resolves component type hints from configuration to
// element types.
package scan

import (
	"strings"

	"github.com/mj1618/winium-desktop/internal/model"
)

var registry = map[string]model.ElementType{
	"application": model.TypeApplication,
	"app":         model.TypeApplication,
	"window":      model.TypeWindow,
	"menubar":     model.TypeMenuBar,
	"menu":        model.TypeMenu,
	"menuitem":    model.TypeMenuItem,
	"tabgroup":    model.TypeTabGroup,
	"tabs":        model.TypeTabGroup,
	"tab":         model.TypeTabGroup,
	"tabitem":     model.TypeTabItem,
	"dialog":      model.TypeDialog,
	"loginform":   model.TypeLoginForm,
	"login":       model.TypeLoginForm,
	"button":      model.TypeButton,
	"edit":        model.TypeEdit,
	"textbox":     model.TypeEdit,
	"text":        model.TypeText,
	"label":       model.TypeText,
}

// singleInstance lists types a container may hold at most once.
var singleInstance = map[model.ElementType]bool{
	model.TypeApplication: true,
	model.TypeMenuBar:     true,
	model.TypeLoginForm:   true,
}

func normalize(hint string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(hint)))
}

// FindMatchingType resolves a hint. Unknown hints report false.
func FindMatchingType(hint string) (model.ElementType, bool) {
	t, ok := registry[normalize(hint)]
	return t, ok
}

// SingleInstance reports whether the type resolved from hint may appear
// only once under a container. Unknown hints report false.
func SingleInstance(hint string) bool {
	t, ok := FindMatchingType(hint)
	return ok && singleInstance[t]
}

// IsSingleInstance reports the cardinality constraint for a resolved type.
func IsSingleInstance(t model.ElementType) bool {
	return singleInstance[t]
}
