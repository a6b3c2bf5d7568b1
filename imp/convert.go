package imp

import (
	"image"

	"golang.org/x/image/draw"
)

// ToGray converts any image in a grayscale picture of the same size.
// Gray images are returned as is.
func ToGray(src image.Image) *image.Gray {
	if dst, ok := src.(*image.Gray); ok {
		return dst
	}

	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// Pad surrounds src with a border of p black pixels on each side.
// The result always starts at the origin.
func Pad(src *image.Gray, p int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()+2*p, b.Dy()+2*p))
	draw.Draw(dst, b.Sub(b.Min).Add(image.Pt(p, p)), src, b.Min, draw.Src)
	return dst
}
