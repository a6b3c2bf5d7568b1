package grid

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Levels is a grid of quantized block levels, stored row-major.
type Levels struct {
	Rows, Cols int
	Cells      []int
}

// NewLevels returns an all-zero level grid.
func NewLevels(rows, cols int) *Levels {
	return &Levels{Rows: rows, Cols: cols, Cells: make([]int, rows*cols)}
}

// Dims returns the number of rows and columns of the grid.
func (l *Levels) Dims() (rows, cols int) {
	return l.Rows, l.Cols
}

// At returns the level of block (i, j).
func (l *Levels) At(i, j int) int {
	return l.Cells[i*l.Cols+j]
}

// Set sets the level of block (i, j).
func (l *Levels) Set(i, j, v int) {
	l.Cells[i*l.Cols+j] = v
}

// Max returns the highest level found in the grid, or 0 for an empty grid.
func (l *Levels) Max() int {
	m := 0
	for idx, v := range l.Cells {
		if idx == 0 || v > m {
			m = v
		}
	}
	return m
}

// Histogram counts blocks per level, from 0 to n-1. Levels outside that range
// are ignored.
func (l *Levels) Histogram(n int) []int {
	h := make([]int, n)
	for _, v := range l.Cells {
		if v >= 0 && v < n {
			h[v]++
		}
	}
	return h
}

// Lines formats the grid as one space-separated line per row.
func (l *Levels) Lines() []string {
	lines := make([]string, l.Rows)
	row := make([]string, l.Cols)
	for i := range lines {
		for j := range row {
			row[j] = strconv.Itoa(l.At(i, j))
		}
		lines[i] = strings.Join(row, " ")
	}
	return lines
}

func (l *Levels) String() string {
	return strings.Join(l.Lines(), "\n")
}

// Quantize maps every block average to the number of thresholds it strictly
// exceeds. With thresholds sorted in ascending order the result is monotonic in
// the average. An empty threshold set yields an all-zero grid.
func Quantize(avg mat.Matrix, thresholds []float64) *Levels {
	rows, cols := avg.Dims()
	levels := NewLevels(rows, cols)
	for _, t := range thresholds {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if avg.At(i, j) > t {
					levels.Cells[i*cols+j]++
				}
			}
		}
	}
	return levels
}
