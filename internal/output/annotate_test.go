package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/mj1618/winium-desktop/internal/model"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestAnnotate_DrawsOutline(t *testing.T) {
	img := whiteImage(100, 100)
	out := Annotate(img, []Box{{Rect: model.Rect{X: 110, Y: 220, Width: 30, Height: 20}}}, image.Pt(100, 200))

	// Box is at 10,20 in image coordinates.
	if got := out.RGBAAt(10, 20); got != boxColor {
		t.Errorf("corner = %v, want box color", got)
	}
	if got := out.RGBAAt(39, 39); got != boxColor {
		t.Errorf("far corner = %v, want box color", got)
	}
	if got := out.RGBAAt(25, 30); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("unlabeled box interior = %v, want untouched", got)
	}
}

func TestAnnotate_Label(t *testing.T) {
	img := whiteImage(200, 60)
	out := Annotate(img, []Box{{Rect: model.Rect{X: 20, Y: 10, Width: 160, Height: 40}, Label: "Save"}}, image.Point{})

	dark := 0
	for y := 11; y < 49; y++ {
		for x := 21; x < 179; x++ {
			if out.RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("label outline was not drawn")
	}
}

func TestAnnotate_ClipsOffImage(t *testing.T) {
	img := whiteImage(20, 20)
	out := Annotate(img, []Box{
		{Rect: model.Rect{X: -50, Y: -50, Width: 10, Height: 10}},
		{Rect: model.Rect{X: 15, Y: 15, Width: 50, Height: 50}, Label: "edge"},
	}, image.Point{})
	if out.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(15, 15); got != boxColor {
		t.Errorf("clipped box corner = %v", got)
	}
}

func TestAnnotatePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, whiteImage(50, 50)); err != nil {
		t.Fatal(err)
	}
	data, err := AnnotatePNG(buf.Bytes(), []Box{{Rect: model.Rect{X: 5, Y: 5, Width: 10, Height: 10}}}, image.Point{})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := img.At(5, 5).RGBA(); r>>8 != 255 {
		t.Error("annotation missing from re-encoded image")
	}
	if _, g, _, _ := img.At(5, 5).RGBA(); g>>8 != 0 {
		t.Error("annotation missing from re-encoded image")
	}

	if _, err := AnnotatePNG([]byte("not a png"), nil, image.Point{}); err == nil {
		t.Error("expected decode error")
	}
}
