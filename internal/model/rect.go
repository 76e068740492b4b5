package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect is a control's bounding rectangle in screen pixels.
type Rect struct {
	X       int       `yaml:"x"       json:"x"`
	Y       int       `yaml:"y"       json:"y"`
	Width   int       `yaml:"width"   json:"width"`
	Height  int       `yaml:"height"  json:"height"`
	Element ElementID `yaml:"-"       json:"-"`
}

// ParseRect parses Winium's BoundingRectangle attribute, "x,y,w,h".
// Whitespace around the numbers is ignored, as are fractional parts.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("invalid bounding rectangle %q: expected x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("invalid bounding rectangle %q: %w", s, err)
		}
		vals[i] = int(f)
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3], Element: NoElement}, nil
}

// Adjust returns r moved and resized by the given deltas.
func (r Rect) Adjust(dx, dy, dw, dh int) Rect {
	r.X += dx
	r.Y += dy
	r.Width += dw
	r.Height += dh
	return r
}

// Center returns the center point.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
}
