package colour

import "sort"

// Accent recovery rescans the ORIGINAL pixel list, not the quantised
// palette: median cut averages buckets, and averaging is exactly what
// dilutes small saturated regions out of existence. Two passes run with
// different thresholds — the vibrant pass catches broad accent regions,
// the brand pass targets tiny, highly saturated elements (buttons, icons)
// regardless of how few pixels they occupy.

// Vibrant pass thresholds.
const (
	vibrantSliceDegrees  = 20.0
	vibrantMinSaturation = 0.25
	vibrantMinLightness  = 0.10
	vibrantMaxLightness  = 0.90
	vibrantMinSlicePixels = 5
	vibrantMinDistance   = 35.0
	vibrantHueThreshold  = 25.0
	vibrantKeepSaturation = 0.35
)

// Brand pass thresholds.
const (
	brandMinSaturation  = 0.45
	brandMinLightness   = 0.12
	brandMaxLightness   = 0.88
	brandTopPixels      = 3
	brandMinDistance    = 30.0
	brandHueThreshold   = 20.0
	brandKeepSaturation = 0.40
)

// hslPixel is a pixel with its HSL metrics, computed once per pass.
type hslPixel struct {
	px Pixel
	h  float64
	s  float64
	l  float64
}

// VibrantCandidates recovers saturated accent colours by bucketing pixels
// into 18 hue slices of 20 degrees each. A slice survives with at least 5
// admitted pixels; its candidate is the average of the most saturated
// pixels in the slice (the top 5% of the slice, minimum 5 pixels), tagged
// vibrant with the full slice count as population.
//
// A candidate is discarded when it sits within distance 35 of an existing
// palette entry, when an existing entry within 25 degrees of hue is
// already at 85% of the candidate's saturation, or when the averaged
// result is no longer saturated enough to matter.
func VibrantCandidates(pixels []Pixel, palette []Swatch) []Swatch {
	slices := make([][]hslPixel, 18)
	for _, px := range pixels {
		h, s, l := HSL(px.RGB())
		if s < vibrantMinSaturation || l < vibrantMinLightness || l > vibrantMaxLightness {
			continue
		}
		idx := int(h / vibrantSliceDegrees)
		if idx > 17 {
			idx = 17 // h == 360 wraps into the last slice
		}
		slices[idx] = append(slices[idx], hslPixel{px: px, h: h, s: s, l: l})
	}

	existing := AnalyzePalette(palette)

	var candidates []Swatch
	for _, slice := range slices {
		if len(slice) < vibrantMinSlicePixels {
			continue
		}

		sort.Slice(slice, func(i, j int) bool { return slice[i].s > slice[j].s })

		top := len(slice) / 20
		if top < vibrantMinSlicePixels {
			top = vibrantMinSlicePixels
		}
		if top > len(slice) {
			top = len(slice)
		}

		candidate := averagePixels(slice[:top], len(slice))
		candidate.IsVibrant = true

		if accepted(candidate, existing, vibrantMinDistance, vibrantHueThreshold, 0.85, vibrantKeepSaturation) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// brandHueRanges are fixed [from, to) hue ranges for the brand pass. Green
// and blue span wider arcs than the warm hues because perceived hue
// families are not evenly distributed around the wheel.
var brandHueRanges = [][2]float64{
	{0, 30},    // red
	{30, 60},   // orange
	{60, 90},   // yellow
	{90, 180},  // green
	{180, 270}, // blue
	{270, 330}, // purple
	{330, 360}, // red wrap
}

// BrandCandidates recovers small, highly saturated brand colours. Pixels
// are partitioned into 7 fixed hue ranges; each non-empty range averages
// its top-3 most saturated pixels into a candidate tagged vibrant and
// brand. The pass is population-blind by design: a 20-pixel logo survives
// it just as well as a full-bleed accent region.
func BrandCandidates(pixels []Pixel, palette []Swatch) []Swatch {
	ranges := make([][]hslPixel, len(brandHueRanges))
	for _, px := range pixels {
		h, s, l := HSL(px.RGB())
		if s < brandMinSaturation || l < brandMinLightness || l > brandMaxLightness {
			continue
		}
		for i, r := range brandHueRanges {
			if h >= r[0] && h < r[1] {
				ranges[i] = append(ranges[i], hslPixel{px: px, h: h, s: s, l: l})
				break
			}
		}
	}

	existing := AnalyzePalette(palette)

	var candidates []Swatch
	for _, rng := range ranges {
		if len(rng) == 0 {
			continue
		}

		sort.Slice(rng, func(i, j int) bool { return rng[i].s > rng[j].s })

		top := brandTopPixels
		if top > len(rng) {
			top = len(rng)
		}

		candidate := averagePixels(rng[:top], len(rng))
		candidate.IsVibrant = true
		candidate.IsBrandColor = true

		if accepted(candidate, existing, brandMinDistance, brandHueThreshold, 1.0, brandKeepSaturation) {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}

// averagePixels averages the given pixels into a swatch with the supplied
// population (the full slice/range count, not just the averaged subset).
func averagePixels(px []hslPixel, population int) Swatch {
	var sumR, sumG, sumB int
	for _, p := range px {
		sumR += int(p.px.R)
		sumG += int(p.px.G)
		sumB += int(p.px.B)
	}
	n := len(px)
	return Swatch{
		R:          uint8((sumR + n/2) / n),
		G:          uint8((sumG + n/2) / n),
		B:          uint8((sumB + n/2) / n),
		Population: population,
	}
}

// accepted applies the shared candidate filters: not too close to an
// existing entry, not hue-redundant with an already saturated entry, and
// still saturated after averaging.
func accepted(candidate Swatch, existing []AnalyzedColor, minDistance, hueThreshold, satRatio, keepSaturation float64) bool {
	a := Analyze(candidate)
	for _, e := range existing {
		if Distance(candidate.RGB(), e.Swatch.RGB()) < minDistance {
			return false
		}
		if HueSimilar(a.Hue, e.Hue, hueThreshold) && e.Saturation >= a.Saturation*satRatio {
			return false
		}
	}
	return a.Saturation > keepSaturation
}
