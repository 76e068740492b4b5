package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/mj1618/winium-desktop/internal/locator"
	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/scan"
)

// Load resolves and parses the description of appID. A missing document
// is ErrUnknownApp; automation cannot proceed without the model.
func Load(src Source, appID string) (*DesktopConfig, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, fmt.Errorf("%w: empty application id", ErrUnknownApp)
	}
	data, origin, err := src.read(appPath(appID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q (no %s in data dir or embedded resources)", ErrUnknownApp, appID, appPath(appID))
		}
		return nil, err
	}
	cfg, err := Parse(data, appID)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", origin, err)
	}
	return cfg, nil
}

// Parse builds a DesktopConfig from a JSON document. fallbackID is used
// when the document carries no appId.
func Parse(data []byte, fallbackID string) (*DesktopConfig, error) {
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid config json: %w", err)
	}
	if fc.AppID == "" {
		fc.AppID = fallbackID
	}

	strategy, err := locator.ParseStrategy(fc.XPathStrategy)
	if err != nil {
		return nil, err
	}
	layout := model.DefaultLayout
	if fc.Layout != "" || fc.LayoutTolerance > 0 {
		hint := fc.Layout
		if hint == "" {
			hint = model.DefaultLayout.Kind.String()
		}
		if layout, err = model.ParseLayout(hint, fc.LayoutTolerance); err != nil {
			return nil, err
		}
	}
	terminate, err := ParseTerminate(fc.Launch.Terminate.String())
	if err != nil {
		return nil, err
	}
	fc.Launch.Terminate = terminate

	appData, dataType, _, err := jsonparser.Get(data, "app")
	if err != nil || dataType != jsonparser.Object {
		return nil, errors.New("config has no \"app\" object")
	}

	l := &loader{strategy: strategy, layout: layout}
	root, children, typed, err := l.decodeNode(fc.AppID, appData)
	if err != nil {
		return nil, err
	}
	// A controlType on the root only shapes its locator; the root is the
	// application unless a type hint says otherwise.
	if !typed {
		root.Type = model.TypeApplication
	}
	if root.ControlType == "" {
		root.ControlType = model.ControlTypeFor(root.Type)
	}
	l.tree = model.NewTree(strategy, root)
	if err := l.attachChildren(0, children); err != nil {
		return nil, err
	}

	return &DesktopConfig{
		AppID:         fc.AppID,
		Launch:        fc.Launch,
		DefaultWait:   millis(fc.DefaultWaitMs, DefaultWait),
		StartupWait:   millis(fc.StartupWaitMs, StartupWait),
		XPathStrategy: strategy,
		Layout:        layout,
		Tree:          l.tree,
	}, nil
}

func millis(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

type loader struct {
	strategy locator.Strategy
	layout   model.Layout
	tree     *model.Tree
}

// childDoc is a nested object waiting to be attached under its parent.
type childDoc struct {
	label string
	data  []byte
}

// attachChildren attaches each nested object under parent in document
// order, then recurses into its own children.
func (l *loader) attachChildren(parent model.ElementID, docs []childDoc) error {
	singles := make(map[model.ElementType]string)
	for _, d := range docs {
		el, grandchildren, _, err := l.decodeNode(d.label, d.data)
		if err != nil {
			return err
		}
		if scan.IsSingleInstance(el.Type) {
			if prev, dup := singles[el.Type]; dup {
				return fmt.Errorf("%q and %q: only one %s allowed under %q",
					prev, d.label, el.Type, strings.Join(l.tree.LabelPath(parent), "/"))
			}
			singles[el.Type] = d.label
		}
		child, err := l.tree.Attach(parent, el, locator.Descendant)
		if err != nil {
			return err
		}
		if err := l.attachChildren(child.ID, grandchildren); err != nil {
			return err
		}
	}
	return nil
}

// decodeNode reads the scalar attributes of one node and collects its
// nested objects, preserving document order. typed reports whether the
// node carried a recognized type hint.
func (l *loader) decodeNode(label string, data []byte) (el model.Element, children []childDoc, typed bool, err error) {
	el = model.Element{Label: label}
	var typeHint, layoutHint string
	tolerance := 0

	err = jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k := string(key)
		if dataType == jsonparser.Object {
			children = append(children, childDoc{label: k, data: value})
			return nil
		}
		switch strings.ToLower(k) {
		case "name":
			return parseString(k, value, dataType, &el.Name)
		case "controltype":
			var ct string
			if err := parseString(k, value, dataType, &ct); err != nil {
				return err
			}
			el.ControlType = model.NormalizeControlType(ct)
		case "automationid":
			return parseString(k, value, dataType, &el.AutomationID)
		case "type":
			return parseString(k, value, dataType, &typeHint)
		case "layout":
			return parseString(k, value, dataType, &layoutHint)
		case "component":
			return parseString(k, value, dataType, &el.Component)
		case "tolerance":
			n, err := jsonparser.ParseInt(value)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			tolerance = int(n)
		case "timeout":
			n, err := jsonparser.ParseInt(value)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			el.Timeout = time.Duration(n) * time.Millisecond
		case "editable":
			b, err := jsonparser.ParseBoolean(value)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			el.Editable = b
		case "tabs":
			tabs, err := parseTabs(value, dataType)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			el.Tabs = tabs
		}
		return nil
	})
	if err != nil {
		return el, nil, false, fmt.Errorf("node %q: %w", label, err)
	}

	if t, ok := scan.FindMatchingType(typeHint); ok {
		el.Type = t
		typed = true
	} else if el.ControlType != "" {
		el.Type = model.TypeForControl(el.ControlType)
	}
	if el.ControlType == "" {
		el.ControlType = model.ControlTypeFor(el.Type)
	}

	el.Layout = l.layout
	if layoutHint != "" || tolerance > 0 {
		if layoutHint == "" {
			layoutHint = l.layout.Kind.String()
		}
		if tolerance <= 0 {
			tolerance = l.layout.Tolerance
		}
		layout, err := model.ParseLayout(layoutHint, tolerance)
		if err != nil {
			return el, nil, false, fmt.Errorf("node %q: %w", label, err)
		}
		el.Layout = layout
	}
	if el.Type == model.TypeEdit {
		el.Editable = true
	}
	return el, children, typed, nil
}

func parseString(key string, value []byte, dataType jsonparser.ValueType, dst *string) error {
	if dataType != jsonparser.String {
		return fmt.Errorf("%s: expected string, got %s", key, dataType)
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = s
	return nil
}

// parseTabs accepts either a comma-separated string or an array of strings.
func parseTabs(value []byte, dataType jsonparser.ValueType) ([]string, error) {
	var raw []string
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, err
		}
		raw = strings.Split(s, ",")
	case jsonparser.Array:
		var itemErr error
		_, err := jsonparser.ArrayEach(value, func(item []byte, t jsonparser.ValueType, _ int, _ error) {
			if itemErr != nil {
				return
			}
			if t != jsonparser.String {
				itemErr = fmt.Errorf("expected string items, got %s", t)
				return
			}
			s, err := jsonparser.ParseString(item)
			if err != nil {
				itemErr = err
				return
			}
			raw = append(raw, s)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
	default:
		return nil, fmt.Errorf("expected string or array, got %s", dataType)
	}

	var tabs []string
	for _, r := range raw {
		if name := strings.TrimSpace(r); name != "" {
			tabs = append(tabs, name)
		}
	}
	return tabs, nil
}
