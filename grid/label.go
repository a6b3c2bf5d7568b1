package grid

import (
	"fmt"
	"image"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// bitmapFaceHeight is the line height of the default bitmap face.
const bitmapFaceHeight = 13

// LoadFace returns the face used to print levels. A zero size selects the
// 7x13 bitmap face; any other size scales Go Mono to that many points.
//
// Labels are clipped to their block, so a face taller than the block only
// shows partial glyphs. Process switches to a scaled face for such blocks
// unless a size was configured.
func LoadFace(size float64) (font.Face, error) {
	if size == 0 {
		return basicfont.Face7x13, nil
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Label prints the level of every block, centered on the block, in black on a
// white canvas. Blocks holding the grid's highest level are left blank. Text
// is clipped to its own block.
func Label(levels *Levels, blockSize int, face font.Face) *image.Gray {
	canvas := image.NewGray(image.Rect(0, 0, levels.Cols*blockSize, levels.Rows*blockSize))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	if face == nil {
		face = basicfont.Face7x13
	}
	d := &font.Drawer{Src: image.Black, Face: face}
	top := levels.Max()

	for i := 0; i < levels.Rows; i++ {
		for j := 0; j < levels.Cols; j++ {
			v := levels.At(i, j)
			if v == top {
				continue
			}
			block := image.Rect(j*blockSize, i*blockSize, (j+1)*blockSize, (i+1)*blockSize)
			text := strconv.Itoa(v)
			d.Dst = canvas.SubImage(block).(*image.Gray)
			d.Dot = centered(d, text, j*blockSize+blockSize/2, i*blockSize+blockSize/2)
			d.DrawString(text)
		}
	}
	return canvas
}

// centered returns the dot that centers text on (x, y).
func centered(d *font.Drawer, text string, x, y int) fixed.Point26_6 {
	m := d.Face.Metrics()
	return fixed.Point26_6{
		X: fixed.I(x) - d.MeasureString(text)/2,
		Y: fixed.I(y) + (m.Ascent-m.Descent)/2,
	}
}
