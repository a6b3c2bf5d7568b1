// Package batch runs the grid pipeline on image files.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/ArnaudCalmettes/greygrid/grid"
	"github.com/ArnaudCalmettes/greygrid/imp"
	"golang.org/x/sync/errgroup"
)

// ErrSameOutput is returned when two inputs would be written to the same files.
var ErrSameOutput = errors.New("inputs share an output name")

// A Processor reads images from InputDir and writes grids to OutputDir.
type Processor struct {
	InputDir  string
	OutputDir string
	Options   grid.Options
	// Normalize stretches input contrast before averaging.
	Normalize bool
	// ExportKey also writes a YAML key next to the images.
	ExportKey bool
}

// Output lists what was produced for one input file.
type Output struct {
	Source     string
	ResultPath string
	BasePath   string
	KeyPath    string
	Levels     *grid.Levels
}

// Load reads an image and converts it to grayscale, normalizing it if asked.
func (p *Processor) Load(name string) (*image.Gray, error) {
	img, err := imp.ReadFile(filepath.Join(p.InputDir, name))
	if err != nil {
		return nil, err
	}
	gray := imp.ToGray(img)
	if p.Normalize {
		dst := image.NewGray(gray.Bounds())
		if err := imp.Normalize(gray, dst); err != nil {
			return nil, err
		}
		gray = dst
	}
	return gray, nil
}

// ProcessFile turns a single image into its grid images. Nothing is left in
// the output directory unless every file could be written.
func (p *Processor) ProcessFile(name string) (*Output, error) {
	if err := p.Options.Validate(); err != nil {
		return nil, err
	}
	gray, err := p.Load(name)
	if err != nil {
		return nil, err
	}

	res, err := grid.Process(gray, p.Options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return nil, err
	}

	colors := p.Options.Colors()
	out := &Output{
		Source:     name,
		ResultPath: filepath.Join(p.OutputDir, OutputName(name, colors, RoleResult)),
		BasePath:   filepath.Join(p.OutputDir, OutputName(name, colors, RoleBase)),
		Levels:     res.Levels,
	}
	if err := imp.Save(out.ResultPath, res.Rendered); err != nil {
		return nil, err
	}
	if err := imp.Save(out.BasePath, res.Labeled); err != nil {
		os.Remove(out.ResultPath)
		return nil, err
	}

	if p.ExportKey {
		out.KeyPath = filepath.Join(p.OutputDir, OutputName(name, colors, RoleKey))
		if err := WriteKey(NewKey(name, p.Options, res.Levels), out.KeyPath); err != nil {
			os.Remove(out.ResultPath)
			os.Remove(out.BasePath)
			return nil, err
		}
	}

	log.Printf("Processed %s (%dx%d blocks)", name, res.Levels.Cols, res.Levels.Rows)
	return out, nil
}

// ProcessAll processes every named file with at most workers files in flight.
// Outputs are returned in the order of names. The first failure stops files
// that haven't started yet. Names that would produce the same output files
// are rejected before anything is processed.
func (p *Processor) ProcessAll(ctx context.Context, names []string, workers int) ([]*Output, error) {
	if workers < 1 {
		workers = 1
	}
	seen := make(map[string]string, len(names))
	for _, name := range names {
		base := filepath.Base(name)
		if prev, ok := seen[base]; ok {
			return nil, fmt.Errorf("%w: %s and %s", ErrSameOutput, prev, name)
		}
		seen[base] = name
	}
	outputs := make([]*Output, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := p.ProcessFile(name)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
