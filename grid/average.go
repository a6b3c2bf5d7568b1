package grid

import (
	"errors"
	"fmt"
	"image"

	"github.com/ArnaudCalmettes/greygrid/imp"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBlockSize is returned for non-positive block sizes.
	ErrBlockSize = errors.New("block size must be positive")
	// ErrStride is returned for non-positive strides.
	ErrStride = errors.New("stride must be positive")
	// ErrPadding is returned for negative paddings.
	ErrPadding = errors.New("padding can't be negative")
	// ErrBlockTooLarge is returned when not even one block fits in the padded image.
	ErrBlockTooLarge = errors.New("block size exceeds padded image")
)

// Average pads img with padding black pixels on every side, then slides a
// blockSize×blockSize window over it with the given stride and returns the
// mean intensity of each window.
//
// Windows that would run past the padded image are dropped, so the result has
// (paddedRows-blockSize)/stride+1 rows and the analogous number of columns.
func Average(img *image.Gray, blockSize, padding, stride int) (*mat.Dense, error) {
	switch {
	case blockSize <= 0:
		return nil, fmt.Errorf("%w (got %d)", ErrBlockSize, blockSize)
	case stride <= 0:
		return nil, fmt.Errorf("%w (got %d)", ErrStride, stride)
	case padding < 0:
		return nil, fmt.Errorf("%w (got %d)", ErrPadding, padding)
	}

	pimg := imp.Pad(img, padding)
	rows, cols := pimg.Bounds().Dy(), pimg.Bounds().Dx()
	if blockSize > rows || blockSize > cols {
		return nil, fmt.Errorf("%w: %d > %dx%d", ErrBlockTooLarge, blockSize, cols, rows)
	}
	padded := toDense(pimg)

	outRows := (rows-blockSize)/stride + 1
	outCols := (cols-blockSize)/stride + 1
	area := float64(blockSize * blockSize)

	avg := mat.NewDense(outRows, outCols, nil)
	for i := 0; i < outRows; i++ {
		for j := 0; j < outCols; j++ {
			r, c := i*stride, j*stride
			window := padded.Slice(r, r+blockSize, c, c+blockSize)
			avg.Set(i, j, mat.Sum(window)/area)
		}
	}
	return avg, nil
}

// toDense copies the pixels of a grayscale image into a rows×cols matrix.
func toDense(img *image.Gray) *mat.Dense {
	b := img.Bounds()
	data := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			data = append(data, float64(img.GrayAt(x, y).Y))
		}
	}
	return mat.NewDense(b.Dy(), b.Dx(), data)
}
