package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ArnaudCalmettes/greygrid/imp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
)

// ErrShape is returned when a level grid's cells don't match its dimensions.
var ErrShape = errors.New("level grid has inconsistent shape")

// RenderOptions drives the Grid Renderer.
type RenderOptions struct {
	BlockSize int
	// Steps is the level rendered as full white. Tiles are shaded
	// level*255/Steps.
	Steps     int
	DrawLines bool
	LineColor color.Gray
	// Face used for labels. Defaults to a 7x13 bitmap face.
	Face font.Face
}

// Shade returns the tile intensity for a level.
func Shade(level, steps int) uint8 {
	if steps <= 0 {
		return 0
	}
	v := math.Round(float64(level) * 255 / float64(steps))
	return uint8(math.Max(0, math.Min(255, v)))
}

// Render turns a level grid into two images of size (cols*B)×(rows*B): the
// rendered image, where each block is a uniform tile shaded after its level,
// and the labeled image, where each block's level is printed on white.
// Grid lines are drawn on both last.
func Render(levels *Levels, opts RenderOptions) (rendered, labeled *image.Gray, err error) {
	if opts.BlockSize <= 0 {
		return nil, nil, fmt.Errorf("%w (got %d)", ErrBlockSize, opts.BlockSize)
	}
	if levels.Rows < 0 || levels.Cols < 0 || len(levels.Cells) != levels.Rows*levels.Cols {
		return nil, nil, fmt.Errorf("%w: %d cells for %dx%d", ErrShape, len(levels.Cells), levels.Rows, levels.Cols)
	}

	rendered = Upscale(levels, opts.BlockSize, opts.Steps)
	labeled = Label(levels, opts.BlockSize, opts.Face)

	if opts.DrawLines {
		imp.DrawGrid(rendered, opts.BlockSize, opts.LineColor)
		imp.DrawGrid(labeled, opts.BlockSize, opts.LineColor)
	}
	return rendered, labeled, nil
}

// Upscale shades every level and blows each one up to a blockSize×blockSize tile
// using nearest-neighbor interpolation.
func Upscale(levels *Levels, blockSize, steps int) *image.Gray {
	w, h := levels.Cols*blockSize, levels.Rows*blockSize
	if w == 0 || h == 0 {
		return image.NewGray(image.Rect(0, 0, w, h))
	}

	small := image.NewGray(image.Rect(0, 0, levels.Cols, levels.Rows))
	for i := 0; i < levels.Rows; i++ {
		for j := 0; j < levels.Cols; j++ {
			small.SetGray(j, i, color.Gray{Y: Shade(levels.At(i, j), steps)})
		}
	}
	return imp.ToGray(imaging.Resize(small, w, h, imaging.NearestNeighbor))
}
