package platformtest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/mj1618/winium-desktop/internal/platform"
)

// Driver is a fake session over a desktop of Nodes. It implements
// platform.Driver.
type Driver struct {
	Desktop *Node

	// FindErr, when set, is returned by every FindAll.
	FindErr error
	// Width and Height size the screenshot; zero means 320x200.
	Width, Height int

	Finds  []string
	Quits  int
	Values map[*Node]string
}

// NewDriver creates a fake session whose desktop holds the given
// top-level windows.
func NewDriver(windows ...*Node) *Driver {
	return &Driver{
		Desktop: New("Pane", "Desktop", windows...),
		Values:  map[*Node]string{},
	}
}

// FindAll implements platform.Driver.
func (d *Driver) FindAll(xpath string) ([]platform.Control, error) {
	d.Finds = append(d.Finds, xpath)
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	return d.Desktop.FindAll(xpath)
}

// SetValue implements platform.Driver.
func (d *Driver) SetValue(c platform.Control, value string) error {
	n, err := node(c)
	if err != nil {
		return err
	}
	n.Value = value
	d.Values[n] = value
	return nil
}

// ScriptClick implements platform.Driver.
func (d *Driver) ScriptClick(c platform.Control) error {
	n, err := node(c)
	if err != nil {
		return err
	}
	n.ScriptClicks++
	n.toggle()
	return nil
}

// Screenshot implements platform.Driver. It returns a blank PNG.
func (d *Driver) Screenshot() ([]byte, error) {
	w, h := d.Width, d.Height
	if w <= 0 || h <= 0 {
		w, h = 320, 200
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Quit implements platform.Driver.
func (d *Driver) Quit() error {
	d.Quits++
	return nil
}

func node(c platform.Control) (*Node, error) {
	n, ok := c.(*Node)
	if !ok {
		return nil, fmt.Errorf("control %T is not a fake node", c)
	}
	return n, nil
}
