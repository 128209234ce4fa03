package layout

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// DrawGraph renders the node rectangles of a computed layout into a PNG
// file, for eyeballing layouts during development. The image is sized to
// the drawing's extent plus a border.
func DrawGraph(g *Graph, positions map[string]Point, filename string) error {
	const border = 20
	width, height := 0, 0
	for _, node := range g.Nodes {
		pos, ok := positions[node.ID]
		if !ok {
			continue
		}
		width = max(width, int(pos.X+node.Width/2))
		height = max(height, int(pos.Y+node.Height/2))
	}
	img := image.NewRGBA(image.Rect(0, 0, width+border, height+border))
	background := color.White
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.Set(x, y, background)
		}
	}
	nodeColor := color.Black
	for _, node := range g.Nodes {
		pos, ok := positions[node.ID]
		if !ok {
			continue
		}
		left, top := int(pos.X-node.Width/2), int(pos.Y-node.Height/2)
		right, bottom := int(pos.X+node.Width/2), int(pos.Y+node.Height/2)
		for x := left; x <= right; x++ {
			img.Set(x, top, nodeColor)
			img.Set(x, bottom, nodeColor)
		}
		for y := top; y <= bottom; y++ {
			img.Set(left, y, nodeColor)
			img.Set(right, y, nodeColor)
		}
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return errors.Wrap(err, "failed to encode png")
	}
	return nil
}
