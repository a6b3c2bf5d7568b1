package imp

import (
	"errors"
	"image"
	"image/color"
)

// ErrBounds is returned when two images that should be the same size aren't.
var ErrBounds = errors.New("src and dst should have the same bounds")

// Normalize adjusts a grayscale image so it spans the whole colorspace.
// Flat images are copied unchanged.
func Normalize(src, dst *image.Gray) error {
	if src.Bounds() != dst.Bounds() {
		return ErrBounds
	}

	var lo uint8 = 255
	var hi uint8 = 0

	rect := src.Bounds()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			val := src.GrayAt(x, y).Y
			lo = min(lo, val)
			hi = max(hi, val)
		}
	}

	span := float32(hi) - float32(lo)

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := src.GrayAt(x, y)
			if span > 0 {
				c.Y = uint8(float32(c.Y-lo)/span*255 + 0.5)
			}
			dst.SetGray(x, y, c)
		}
	}
	return nil
}

// DrawGrid overwrites every row and every column whose index (relative to the
// image origin) is a multiple of step with color c.
func DrawGrid(img *image.Gray, step int, c color.Gray) {
	if step <= 0 {
		return
	}
	rect := img.Bounds()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		rowLine := (y-rect.Min.Y)%step == 0
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if rowLine || (x-rect.Min.X)%step == 0 {
				img.SetGray(x, y, c)
			}
		}
	}
}
