// Package image provides the pixel source for palette extraction: loading,
// downscaling, and sampling images into alpha-filtered RGB pixel lists.
package image

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/chromata/chromata/internal/colour"
)

// MaxEdge is the longest-edge bound applied before sampling. Keeping the
// working image at or below this size keeps a full palette-to-tokens run
// well under an interactive frame budget.
const MaxEdge = 200

// minAlpha is the 8-bit alpha floor below which a sample is dropped.
// Mostly-transparent pixels carry colour values that were never visible.
const minAlpha = 128

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// Downscale scales an image so its longest edge is at most maxEdge pixels,
// preserving aspect ratio. Images already within the bound are returned
// unchanged.
func Downscale(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	longest := max(width, height)
	if longest <= maxEdge || longest == 0 {
		return img
	}

	scale := float64(maxEdge) / float64(longest)
	dstW := max(int(float64(width)*scale), 1)
	dstH := max(int(float64(height)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Samples converts an image into the flat pixel list consumed by the
// palette assembler. Pixels with alpha below 128 are excluded here so the
// colour pipeline never sees them.
func Samples(img image.Image) []colour.Pixel {
	bounds := img.Bounds()
	pixels := make([]colour.Pixel, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a>>8 < minAlpha {
				continue
			}
			// RGBA() returns alpha-premultiplied channels; undo the
			// premultiplication so partially transparent pixels keep
			// their true colour.
			if a > 0 && a < 0xffff {
				r = r * 0xffff / a
				g = g * 0xffff / a
				b = b * 0xffff / a
			}
			pixels = append(pixels, colour.Pixel{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			})
		}
	}
	return pixels
}

// Pixels loads, downscales, and samples an image in one step.
func Pixels(path string) ([]colour.Pixel, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Samples(Downscale(img, MaxEdge)), nil
}
