// Package colour implements the palette extraction and token derivation
// pipeline: median-cut quantisation, perceptual deduplication, accent
// recovery, and WCAG-validated design-token selection.
package colour

import (
	"fmt"
	"math"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses a hex colour string of the form "#rrggbb" (the hash is
// optional). Returns an error for anything else; callers that hold a user
// lock treat a parse failure as "no lock" rather than a fatal condition.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", s)
	}
	var rgb RGB
	if _, err := fmt.Sscanf(strings.ToLower(h), "%02x%02x%02x", &rgb.R, &rgb.G, &rgb.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return rgb, nil
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.1.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance
func Luminance(rgb RGB) float64 {
	rf := gammaCorrect(float64(rgb.R) / 255.0)
	gf := gammaCorrect(float64(rgb.G) / 255.0)
	bf := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according
// to WCAG 2.1. Returns a value between 1 and 21, where 21 is maximum
// contrast (black vs white). Symmetric in its arguments.
// https://www.w3.org/TR/WCAG21/#dfn-contrast-ratio
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// HSL converts a colour to HSL space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func HSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Saturation.
	if delta == 0 {
		s = 0
		h = 0
		return
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue.
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return
}

// Saturation returns the HSL saturation of a colour (0-1).
func Saturation(rgb RGB) float64 {
	_, s, _ := HSL(rgb)
	return s
}

// HueDistance calculates the angular distance between two hues on the
// colour wheel. Returns a value between 0 and 180 degrees (shortest path
// around the wheel, handling wraparound).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// HueSimilar reports whether two hues are within threshold degrees of each
// other on the colour wheel.
func HueSimilar(h1, h2, threshold float64) bool {
	return HueDistance(h1, h2) < threshold
}

// Distance calculates the redmean-weighted Euclidean distance between two
// colours in RGB space. The channel weights are derived from the mean red
// value of the pair, which approximates perceptual difference far better
// than a plain Euclidean distance at negligible cost.
// https://en.wikipedia.org/wiki/Color_difference#sRGB
func Distance(c1, c2 RGB) float64 {
	rMean := (float64(c1.R) + float64(c2.R)) / 2.0
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)

	wr := 2.0 + rMean/256.0
	wb := 2.0 + (255.0-rMean)/256.0

	return math.Sqrt(wr*dr*dr + 4.0*dg*dg + wb*db*db)
}
