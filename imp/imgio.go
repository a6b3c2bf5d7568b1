package imp

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// ReadFile reads an image from a file.
func ReadFile(filename string) (image.Image, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("couldn't load %s: %w", filename, err)
	}
	return img, nil
}

// Read reads an image from a io.Reader.
func Read(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}

// Save creates a file and writes an image to it. Image format is decided based
// upon its extension.
func Save(filename string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(filename); err != nil {
		return fmt.Errorf("can't save %s: %w", filename, err)
	}
	return imaging.Save(img, filename, imaging.JPEGQuality(100))
}

// Encode writes an image to w in the named format ("png", "jpg", ...).
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(strings.TrimPrefix(format, "."))
	if err != nil {
		return err
	}
	return imaging.Encode(w, img, f)
}
