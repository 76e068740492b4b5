package model

import (
	"fmt"
	"strings"
)

// LayoutKind is how labels and inputs are arranged on a form.
type LayoutKind int

const (
	// LeftToRight places each input to the right of its label.
	LeftToRight LayoutKind = iota
	// TwoLines places each input on the line below its label.
	TwoLines
)

func (k LayoutKind) String() string {
	if k == TwoLines {
		return "TwoLines"
	}
	return "LeftToRight"
}

// DefaultTolerance is the pixel slack used when none is configured.
const DefaultTolerance = 10

// Layout pairs a layout kind with the pixel tolerance used to decide
// whether an input belongs to a nearby label.
type Layout struct {
	Kind      LayoutKind `yaml:"kind"      json:"kind"`
	Tolerance int        `yaml:"tolerance" json:"tolerance"`
}

// DefaultLayout is used by nodes that carry no layout hint.
var DefaultLayout = Layout{Kind: LeftToRight, Tolerance: DefaultTolerance}

// ParseLayout parses a layout hint. Unknown hints are an error since
// they mean the model and the UI have diverged.
func ParseLayout(hint string, tolerance int) (Layout, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(hint)) {
	case "lefttoright", "ltr":
		return Layout{Kind: LeftToRight, Tolerance: tolerance}, nil
	case "twolines", "twoline":
		return Layout{Kind: TwoLines, Tolerance: tolerance}, nil
	default:
		return Layout{}, fmt.Errorf("unknown layout %q (use LeftToRight or TwoLines)", hint)
	}
}

// Belongs reports whether input is positioned as the input of label.
func (l Layout) Belongs(label, input Rect) bool {
	tol := l.Tolerance
	switch l.Kind {
	case TwoLines:
		below := input.Y >= label.Bottom()-tol
		aligned := abs(input.X-label.X) <= tol
		return below && aligned
	default:
		right := input.X >= label.Right()-tol
		_, lc := label.Center()
		_, ic := input.Center()
		return right && abs(lc-ic) <= tol
	}
}

// Distance is the gap between a label and an input along the layout's
// reading direction; smaller is closer.
func (l Layout) Distance(label, input Rect) int {
	if l.Kind == TwoLines {
		return abs(input.Y - label.Bottom())
	}
	return abs(input.X - label.Right())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
