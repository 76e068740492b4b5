package desktop

import (
	"fmt"
	"image"

	"github.com/mj1618/winium-desktop/internal/model"
	"github.com/mj1618/winium-desktop/internal/output"
)

// Screenshot captures the screen as PNG. With annotate set, the bounds of
// id and its on-screen descendants are outlined and labeled.
func (s *Session) Screenshot(id model.ElementID, annotate bool) ([]byte, error) {
	data, err := s.driver.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	if !annotate {
		return data, nil
	}
	rects, err := s.Rects(id)
	if err != nil {
		return nil, err
	}
	boxes := make([]output.Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, output.Box{Rect: r, Label: s.Tree.Get(r.Element).Label})
	}
	s.log.Debugf("annotating %d elements", len(boxes))
	return output.AnnotatePNG(data, boxes, image.Point{})
}
