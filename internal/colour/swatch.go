package colour

import (
	"fmt"
	"image/color"
)

// Pixel is a single RGB sample from an image. The pixel source filters
// alpha upstream: samples with alpha < 128 never reach this package.
type Pixel struct {
	R, G, B uint8
}

// RGB returns the pixel as an RGB value.
func (p Pixel) RGB() RGB {
	return RGB{R: p.R, G: p.G, B: p.B}
}

// PixelFromColor converts a color.Color to a Pixel, discarding alpha.
func PixelFromColor(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Swatch is one representative colour with its pixel population and class
// flags. Populations are merged during deduplication; once a palette is
// finalised its swatches are treated as immutable.
type Swatch struct {
	R            uint8 `json:"r"`
	G            uint8 `json:"g"`
	B            uint8 `json:"b"`
	Population   int   `json:"population"`
	IsVibrant    bool  `json:"isVibrant,omitempty"`
	IsBrandColor bool  `json:"isBrandColor,omitempty"`
}

// RGB returns the swatch colour as an RGB value.
func (s Swatch) RGB() RGB {
	return RGB{R: s.R, G: s.G, B: s.B}
}

// Hex returns the swatch colour as a hex string.
func (s Swatch) Hex() string {
	return s.RGB().Hex()
}

// String returns a human-readable representation of the swatch.
func (s Swatch) String() string {
	return fmt.Sprintf("%s pop=%d vibrant=%t brand=%t", s.Hex(), s.Population, s.IsVibrant, s.IsBrandColor)
}

// AnalyzedColor is a read-only derived view of a Swatch with its hex
// string and HSL/WCAG metrics precomputed. It is recomputed on demand from
// the swatch it wraps, never cached across pipeline stages, so a merge can
// never leave a stale analysis behind.
type AnalyzedColor struct {
	Swatch

	Hex        string  `json:"hex"`
	Luminance  float64 `json:"luminance"`
	Saturation float64 `json:"saturation"`
	Hue        float64 `json:"hue"`
}

// Analyze derives the read-only metric view of a swatch.
func Analyze(s Swatch) AnalyzedColor {
	rgb := s.RGB()
	h, sat, _ := HSL(rgb)
	return AnalyzedColor{
		Swatch:     s,
		Hex:        rgb.Hex(),
		Luminance:  Luminance(rgb),
		Saturation: sat,
		Hue:        h,
	}
}

// AnalyzePalette derives the metric view for every swatch in a palette.
func AnalyzePalette(palette []Swatch) []AnalyzedColor {
	analyzed := make([]AnalyzedColor, len(palette))
	for i, s := range palette {
		analyzed[i] = Analyze(s)
	}
	return analyzed
}
