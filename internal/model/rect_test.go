package model

import "testing"

func TestParseRect_Valid(t *testing.T) {
	r, err := ParseRect("10,20,300,400")
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 10 || r.Y != 20 || r.Width != 300 || r.Height != 400 {
		t.Errorf("got %+v, want {10 20 300 400}", r)
	}
	if r.Element != NoElement {
		t.Errorf("element = %d, want NoElement", r.Element)
	}
}

func TestParseRect_WithSpacesAndFractions(t *testing.T) {
	r, err := ParseRect(" 10.0, 20.5 , 300, 400.9")
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 10 || r.Y != 20 || r.Width != 300 || r.Height != 400 {
		t.Errorf("got %+v", r)
	}
}

func TestParseRect_Invalid(t *testing.T) {
	for _, s := range []string{"", "10,20,300", "10,20,300,400,500", "a,b,c,d"} {
		if _, err := ParseRect(s); err == nil {
			t.Errorf("ParseRect(%q) should fail", s)
		}
	}
}

func TestRect_AdjustAndCenter(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 20}.Adjust(5, -5, 10, 0)
	if r.X != 15 || r.Y != 5 || r.Width != 110 || r.Height != 20 {
		t.Errorf("adjusted = %+v", r)
	}
	x, y := r.Center()
	if x != 70 || y != 15 {
		t.Errorf("center = (%d,%d)", x, y)
	}
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Error("touching rects should not intersect")
	}
}
