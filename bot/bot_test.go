package bot

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/grid"
	"github.com/ArnaudCalmettes/greygrid/imp"
	"github.com/spf13/viper"
)

func TestGridOptions(t *testing.T) {
	viper.Reset()
	conf.SetDefaults(viper.GetViper())
	defer viper.Reset()

	opts, err := gridOptions(nil)
	if err != nil {
		t.Fatalf("gridOptions failed: %v", err)
	}
	if !reflect.DeepEqual(opts.Thresholds, []float64{50, 100, 200}) {
		t.Errorf("Expected configured thresholds, got %v", opts.Thresholds)
	}

	opts, err = gridOptions([]string{"64", "128"})
	if err != nil {
		t.Fatalf("gridOptions failed: %v", err)
	}
	if !reflect.DeepEqual(opts.Thresholds, []float64{64, 128}) {
		t.Errorf("Expected thresholds from arguments, got %v", opts.Thresholds)
	}

	if _, err := gridOptions([]string{"dark"}); err == nil {
		t.Error("Expected an error for a non numeric threshold")
	}
}

func TestRenderImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 30))
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 256)
	}
	var b bytes.Buffer
	if err := imp.Encode(&b, src, "png"); err != nil {
		t.Fatalf("couldn't encode fixture: %v", err)
	}

	opts := grid.DefaultOptions()
	opts.BlockSize = 10
	files, res, err := renderImage(&b, "photo.jpg", opts, true)
	if err != nil {
		t.Fatalf("renderImage failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if files[0].Name != "4colors_result_photo.png" || files[1].Name != "4colors_base_photo.png" {
		t.Errorf("Unexpected file names %s, %s", files[0].Name, files[1].Name)
	}
	for _, f := range files {
		img, err := imp.Read(f.Reader)
		if err != nil {
			t.Fatalf("%s isn't a valid image: %v", f.Name, err)
		}
		want := image.Rect(0, 0, res.Levels.Cols*10, res.Levels.Rows*10)
		if img.Bounds() != want {
			t.Errorf("%s: expected %v, got %v", f.Name, want, img.Bounds())
		}
	}

	if _, _, err := renderImage(strings.NewReader("not an image"), "x.png", opts, false); err == nil {
		t.Error("Expected an error for undecodable data")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("image data"))
	}))
	defer srv.Close()

	body, err := download(srv.URL + "/ok.png")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	data, err := io.ReadAll(body)
	body.Close()
	if err != nil || string(data) != "image data" {
		t.Errorf("Expected the served body, got %q (%v)", data, err)
	}

	if _, err := download(srv.URL + "/gone.png"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("Expected a 404 error, got %v", err)
	}
}
