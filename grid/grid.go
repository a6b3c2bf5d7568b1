// Package grid turns grayscale images into coarse grids of quantized blocks,
// the way painting-by-numbers templates are made.
//
// The pipeline is: pad, average each block, quantize averages against a set
// of thresholds, then render the levels both as shaded tiles and as printed
// numbers.
package grid

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// Options describes how an image is turned into a grid.
type Options struct {
	Thresholds []float64
	BlockSize  int
	DrawLines  bool
	LineColor  color.Gray
	// FontSize of the labels in points, 0 for the default bitmap face.
	FontSize float64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Thresholds: []float64{50, 100, 200},
		BlockSize:  15,
		DrawLines:  true,
		LineColor:  color.Gray{Y: 0},
	}
}

// Colors returns the number of distinct levels the options can produce.
func (o Options) Colors() int {
	return len(o.Thresholds) + 1
}

// Validate checks the options before any image is processed.
func (o Options) Validate() error {
	if o.BlockSize <= 0 {
		return fmt.Errorf("%w (got %d)", ErrBlockSize, o.BlockSize)
	}
	if o.FontSize < 0 {
		return fmt.Errorf("invalid font size %v", o.FontSize)
	}
	return nil
}

// labelSize picks the label font size. Without an explicit size, blocks too
// small for the bitmap face get a scaled face that fits them.
func (o Options) labelSize() float64 {
	if o.FontSize != 0 || o.BlockSize >= bitmapFaceHeight {
		return o.FontSize
	}
	return float64(max(o.BlockSize-1, 4))
}

// Result holds every intermediate product of Process.
type Result struct {
	Averages *mat.Dense
	Levels   *Levels
	Rendered *image.Gray
	Labeled  *image.Gray
}

// Process runs the whole pipeline on img. Padding is half the block size and
// blocks don't overlap. Blocks larger than the image are rejected with
// ErrBlockTooLarge.
func Process(img *image.Gray, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := opts.BlockSize
	if size := img.Bounds().Size(); b > size.X || b > size.Y {
		return nil, fmt.Errorf("%w: %d > %dx%d", ErrBlockTooLarge, b, size.X, size.Y)
	}

	avg, err := Average(img, b, b/2, b)
	if err != nil {
		return nil, err
	}
	levels := Quantize(avg, opts.Thresholds)

	face, err := LoadFace(opts.labelSize())
	if err != nil {
		return nil, err
	}
	defer face.Close()

	rendered, labeled, err := Render(levels, RenderOptions{
		BlockSize: b,
		Steps:     len(opts.Thresholds),
		DrawLines: opts.DrawLines,
		LineColor: opts.LineColor,
		Face:      face,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Averages: avg,
		Levels:   levels,
		Rendered: rendered,
		Labeled:  labeled,
	}, nil
}
