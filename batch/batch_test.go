package batch

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ArnaudCalmettes/greygrid/grid"
	"github.com/ArnaudCalmettes/greygrid/imp"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		role   string
		want   string
	}{
		{"diegolau1.jpeg", 4, RoleResult, "4colors_result_diegolau1.jpeg"},
		{"girl_dancing.jpg", 4, RoleBase, "4colors_base_girl_dancing.jpg"},
		{"sub/dir/cat.png", 2, RoleKey, "2colors_grid_cat.yaml"},
	}
	for _, tt := range tests {
		if got := OutputName(tt.name, tt.colors, tt.role); got != tt.want {
			t.Errorf("OutputName(%q, %d, %q) = %q, expected %q", tt.name, tt.colors, tt.role, got, tt.want)
		}
	}
}

func writeGradient(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*img.Stride+x] = uint8(x * 255 / (w - 1))
		}
	}
	if err := imp.Save(filepath.Join(dir, name), img); err != nil {
		t.Fatalf("couldn't write fixture: %v", err)
	}
}

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	opts := grid.DefaultOptions()
	opts.BlockSize = 8
	return &Processor{
		InputDir:  t.TempDir(),
		OutputDir: filepath.Join(t.TempDir(), "processed"),
		Options:   opts,
		ExportKey: true,
	}
}

func TestProcessFile(t *testing.T) {
	p := newProcessor(t)
	writeGradient(t, p.InputDir, "ramp.png", 64, 32)

	out, err := p.ProcessFile("ramp.png")
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if filepath.Base(out.ResultPath) != "4colors_result_ramp.png" || filepath.Base(out.BasePath) != "4colors_base_ramp.png" {
		t.Errorf("Unexpected output paths %s, %s", out.ResultPath, out.BasePath)
	}

	for _, path := range []string{out.ResultPath, out.BasePath} {
		img, err := imp.ReadFile(path)
		if err != nil {
			t.Fatalf("couldn't read %s: %v", path, err)
		}
		want := image.Rect(0, 0, out.Levels.Cols*8, out.Levels.Rows*8)
		if img.Bounds() != want {
			t.Errorf("%s: expected %v, got %v", path, want, img.Bounds())
		}
	}

	key, err := ReadKey(out.KeyPath)
	if err != nil {
		t.Fatalf("ReadKey failed: %v", err)
	}
	if key.Source != "ramp.png" || key.BlockSize != 8 {
		t.Errorf("Unexpected key header %+v", key)
	}
	if !reflect.DeepEqual(key.Grid, out.Levels.Lines()) {
		t.Errorf("Key grid %v doesn't match levels %v", key.Grid, out.Levels.Lines())
	}
	if len(key.Levels) != 4 {
		t.Fatalf("Expected 4 key levels, got %d", len(key.Levels))
	}
	total := 0
	for _, l := range key.Levels {
		total += l.Blocks
	}
	if total != out.Levels.Rows*out.Levels.Cols {
		t.Errorf("Key counts %d blocks, grid has %d", total, out.Levels.Rows*out.Levels.Cols)
	}
	if key.Levels[3].Shade != 255 {
		t.Errorf("Expected the top level to be white, got %d", key.Levels[3].Shade)
	}
}

func TestProcessFileErrors(t *testing.T) {
	p := newProcessor(t)
	if _, err := p.ProcessFile("missing.png"); err == nil {
		t.Error("Expected an error for a missing input")
	}

	writeGradient(t, p.InputDir, "tiny.png", 4, 4)
	p.Options.BlockSize = 32
	if _, err := p.ProcessFile("tiny.png"); err == nil {
		t.Error("Expected an error for an oversized block")
	}
	if _, err := os.Stat(p.OutputDir); err == nil {
		entries, _ := os.ReadDir(p.OutputDir)
		if len(entries) != 0 {
			t.Errorf("Expected no partial output, found %d files", len(entries))
		}
	}
}

func TestProcessFileNormalize(t *testing.T) {
	p := newProcessor(t)
	p.ExportKey = false
	p.Normalize = true

	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 60
		if i%16 >= 8 {
			img.Pix[i] = 70
		}
	}
	if err := imp.Save(filepath.Join(p.InputDir, "dim.png"), img); err != nil {
		t.Fatalf("couldn't write fixture: %v", err)
	}

	gray, err := p.Load("dim.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if gray.GrayAt(0, 0).Y != 0 || gray.GrayAt(15, 0).Y != 255 {
		t.Errorf("Expected contrast to be stretched, got %d and %d", gray.GrayAt(0, 0).Y, gray.GrayAt(15, 0).Y)
	}

	out, err := p.ProcessFile("dim.png")
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if out.KeyPath != "" {
		t.Errorf("Expected no key, got %s", out.KeyPath)
	}
}

func TestProcessAll(t *testing.T) {
	p := newProcessor(t)
	names := []string{"a.png", "b.png", "c.png", "d.png"}
	for i, name := range names {
		writeGradient(t, p.InputDir, name, 32+8*i, 24)
	}

	outputs, err := p.ProcessAll(context.Background(), names, 2)
	if err != nil {
		t.Fatalf("ProcessAll failed: %v", err)
	}
	if len(outputs) != len(names) {
		t.Fatalf("Expected %d outputs, got %d", len(names), len(outputs))
	}
	for i, out := range outputs {
		if out.Source != names[i] {
			t.Errorf("Output %d is for %s, expected %s", i, out.Source, names[i])
		}
	}

	if _, err := p.ProcessAll(context.Background(), []string{"a.png", "nope.png"}, 0); err == nil {
		t.Error("Expected ProcessAll to report the missing file")
	}
}

func TestProcessFileCleansUpOnWriteFailure(t *testing.T) {
	tests := []struct {
		name    string
		blocked string
	}{
		{"base", "4colors_base_ramp.png"},
		{"key", "4colors_grid_ramp.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(t)
			writeGradient(t, p.InputDir, "ramp.png", 32, 16)
			if err := os.MkdirAll(filepath.Join(p.OutputDir, tt.blocked), 0755); err != nil {
				t.Fatalf("couldn't block %s: %v", tt.blocked, err)
			}

			if _, err := p.ProcessFile("ramp.png"); err == nil {
				t.Fatal("Expected an error when an output can't be written")
			}
			for _, name := range []string{"4colors_result_ramp.png", "4colors_base_ramp.png"} {
				if name == tt.blocked {
					continue
				}
				if _, err := os.Stat(filepath.Join(p.OutputDir, name)); !os.IsNotExist(err) {
					t.Errorf("Expected %s to be removed, got %v", name, err)
				}
			}
		})
	}
}

func TestProcessAllSameOutputName(t *testing.T) {
	p := newProcessor(t)
	for _, dir := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(p.InputDir, dir), 0755); err != nil {
			t.Fatal(err)
		}
		writeGradient(t, p.InputDir, filepath.Join(dir, "x.png"), 32, 16)
	}

	_, err := p.ProcessAll(context.Background(), []string{"a/x.png", "b/x.png"}, 2)
	if !errors.Is(err, ErrSameOutput) {
		t.Fatalf("Expected ErrSameOutput, got %v", err)
	}
	if _, err := os.Stat(p.OutputDir); !os.IsNotExist(err) {
		t.Errorf("Expected nothing to be written, got %v", err)
	}
}
