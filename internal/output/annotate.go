package output

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/winium-desktop/internal/model"
)

// Box is one labeled rectangle to draw on a screenshot.
type Box struct {
	Rect  model.Rect
	Label string
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws boxes and their labels on img. Box rectangles are in
// screen pixels; origin is the screen position of the image's top left
// corner.
func Annotate(img image.Image, boxes []Box, origin image.Point) *image.RGBA {
	rgba := toRGBA(img)
	for _, b := range boxes {
		x := b.Rect.X - origin.X + img.Bounds().Min.X
		y := b.Rect.Y - origin.Y + img.Bounds().Min.Y
		drawRectangle(rgba, x, y, x+b.Rect.Width, y+b.Rect.Height, boxColor)
		if b.Label != "" {
			drawTextWithOutline(rgba, b.Label, x+b.Rect.Width/2, y+b.Rect.Height/2)
		}
	}
	return rgba
}

// AnnotatePNG decodes a PNG screenshot, annotates it and encodes it again.
func AnnotatePNG(data []byte, boxes []Box, origin image.Point) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Annotate(img, boxes, origin)); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// drawRectangle outlines x1,y1 to x2,y2, clipped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		if y1 >= r.Min.Y {
			img.Set(x, y1, c)
		}
		if y2-1 < r.Max.Y {
			img.Set(x, y2-1, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if x1 >= r.Min.X {
			img.Set(x1, y, c)
		}
		if x2-1 < r.Max.X {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline centers text on x,y with a dark outline so it reads
// on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	left := x - width/2
	baseline := y + face.Ascent/2

	d := &font.Drawer{Dst: img, Face: face}
	d.Src = image.NewUniform(outlineColor)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(left+dx, baseline+dy)
			d.DrawString(text)
		}
	}
	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(left, baseline)
	d.DrawString(text)
}
