package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
)

// LoadComponent loads the fragment for component of appID and decodes it
// into T. Fragments live in components/<type>.json, where <type> is the
// lowercased name of T, as a document keyed by app id then component name.
func LoadComponent[T any](src Source, appID, component string) (T, error) {
	var out T
	typeName := strings.ToLower(reflect.TypeFor[T]().Name())
	if typeName == "" {
		return out, fmt.Errorf("component target must be a named type, got %s", reflect.TypeFor[T]())
	}

	data, origin, err := src.read(componentPath(typeName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, fmt.Errorf("%w: no %s document for %s/%s", ErrUnknownComponent, typeName, appID, component)
		}
		return out, err
	}

	var doc map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return out, fmt.Errorf("parse %s: %w", origin, err)
	}
	raw, ok := doc[appID][component]
	if !ok {
		return out, fmt.Errorf("%w: %s/%s in %s", ErrUnknownComponent, appID, component, origin)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s/%s from %s: %w", appID, component, origin, err)
	}
	return out, nil
}

// Part names one control of a composite component.
type Part struct {
	Name         string `json:"name"`
	AutomationID string `json:"automationId,omitempty"`
	ControlType  string `json:"controlType,omitempty"`
}

// LoginParts describes the controls of a login dialog supplied by a
// third-party component.
type LoginParts struct {
	Username Part `json:"username"`
	Password Part `json:"password"`
	Login    Part `json:"login"`
	Cancel   Part `json:"cancel"`
	// TimeoutMs overrides the dialog wait when set.
	TimeoutMs int `json:"timeout,omitempty"`
}
