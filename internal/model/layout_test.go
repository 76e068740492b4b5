package model

import "testing"

func TestParseLayout(t *testing.T) {
	tests := []struct {
		hint string
		want LayoutKind
	}{
		{"LeftToRight", LeftToRight},
		{"left-to-right", LeftToRight},
		{"TwoLines", TwoLines},
		{"two_lines", TwoLines},
	}
	for _, tt := range tests {
		l, err := ParseLayout(tt.hint, 0)
		if err != nil {
			t.Errorf("ParseLayout(%q): %v", tt.hint, err)
			continue
		}
		if l.Kind != tt.want {
			t.Errorf("ParseLayout(%q) = %v, want %v", tt.hint, l.Kind, tt.want)
		}
		if l.Tolerance != DefaultTolerance {
			t.Errorf("tolerance = %d, want default", l.Tolerance)
		}
	}
	if _, err := ParseLayout("diagonal", 5); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestLayout_BelongsLeftToRight(t *testing.T) {
	l := Layout{Kind: LeftToRight, Tolerance: 5}
	label := Rect{X: 10, Y: 100, Width: 80, Height: 20}
	if !l.Belongs(label, Rect{X: 95, Y: 98, Width: 200, Height: 24}) {
		t.Error("input right of label should belong")
	}
	if l.Belongs(label, Rect{X: 95, Y: 140, Width: 200, Height: 24}) {
		t.Error("input on another row should not belong")
	}
	if l.Belongs(label, Rect{X: 0, Y: 100, Width: 5, Height: 20}) {
		t.Error("input left of label should not belong")
	}
}

func TestLayout_BelongsTwoLines(t *testing.T) {
	l := Layout{Kind: TwoLines, Tolerance: 5}
	label := Rect{X: 10, Y: 100, Width: 80, Height: 20}
	if !l.Belongs(label, Rect{X: 12, Y: 122, Width: 200, Height: 24}) {
		t.Error("input below label should belong")
	}
	if l.Belongs(label, Rect{X: 95, Y: 100, Width: 200, Height: 20}) {
		t.Error("input right of label should not belong in two-line layout")
	}
}
