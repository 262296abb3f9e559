package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chromata/chromata/internal/colour"
)

// writePNG encodes img into a temp file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLoad(t *testing.T) {
	path := writePNG(t, solidImage(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Load() bounds = %v, want 4x4", b)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "not-an-image.png")
	if err := os.WriteFile(notImage, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.png")},
		{"directory", dir},
		{"undecodable file", notImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Errorf("Load(%q) error = nil, want error", tt.path)
			}
		})
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"wide image scales to bound", 400, 200, 200, 100},
		{"tall image scales to bound", 100, 400, 50, 200},
		{"within bound unchanged", 150, 100, 150, 100},
		{"exactly at bound unchanged", 200, 200, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Downscale(src, MaxEdge)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Downscale(%dx%d) = %dx%d, want %dx%d", tt.w, tt.h, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDownscaleReturnsSmallImageUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	if got := Downscale(src, MaxEdge); got != image.Image(src) {
		t.Error("Downscale of an in-bound image returned a new image, want the original")
	}
}

func TestSamplesFiltersTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255}) // opaque: kept
	img.Set(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 100}) // mostly transparent: dropped
	img.Set(2, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 200}) // partially transparent: kept

	pixels := Samples(img)
	if len(pixels) != 2 {
		t.Fatalf("Samples() returned %d pixels, want 2", len(pixels))
	}

	// Unpremultiplication must restore the stored colour for the
	// partially transparent sample.
	want := colour.Pixel{R: 200, G: 100, B: 50}
	for i, px := range pixels {
		if px != want {
			t.Errorf("pixel %d = %+v, want %+v", i, px, want)
		}
	}
}

func TestPixels(t *testing.T) {
	// A 300x300 solid image downscales to 200x200 before sampling.
	path := writePNG(t, solidImage(300, 300, color.NRGBA{R: 30, G: 60, B: 90, A: 255}))

	pixels, err := Pixels(path)
	if err != nil {
		t.Fatalf("Pixels() error = %v", err)
	}
	if want := MaxEdge * MaxEdge; len(pixels) != want {
		t.Fatalf("Pixels() returned %d samples, want %d", len(pixels), want)
	}
	want := colour.Pixel{R: 30, G: 60, B: 90}
	for _, px := range pixels {
		if px != want {
			t.Fatalf("sample = %+v, want %+v", px, want)
		}
	}
}
