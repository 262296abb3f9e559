package colour

import "sort"

// Palette assembly constants.
const (
	quantizeTargetColors = 20
	maxPaletteSize       = 16

	// Dedup thresholds per pipeline stage. The initial 30 removes only
	// true near-duplicates from the raw quantised set; the looser 45/40
	// after each accent pass stop a flood of almost-identical accent
	// variants.
	dedupQuantized = 30.0
	dedupVibrant   = 45.0
	dedupBrand     = 40.0

	// Ranking boosts keep recovered accents from being buried by large
	// neutral regions.
	boostBrand   = 2.5
	boostVibrant = 2.0
)

// AssemblePalette runs the full extraction pipeline over a pixel list and
// returns the final ordered palette of at most 16 swatches.
//
// Each stage is a pure []Swatch → []Swatch function:
//
//	quantize(pixels, 20) → dedup(30) → +vibrant → dedup(45) → +brand → dedup(40) → rank → truncate(16)
//
// Both accent passes rescan the raw pixels but validate their candidates
// against the palette as it stands at that stage.
func AssemblePalette(pixels []Pixel) []Swatch {
	palette := Dedup(Quantize(pixels, quantizeTargetColors), dedupQuantized)

	palette = append(palette, VibrantCandidates(pixels, palette)...)
	palette = Dedup(palette, dedupVibrant)

	palette = append(palette, BrandCandidates(pixels, palette)...)
	palette = Dedup(palette, dedupBrand)

	return rankAndTruncate(palette, maxPaletteSize)
}

// rankAndTruncate orders swatches by class-boosted population and keeps
// the first limit entries.
func rankAndTruncate(palette []Swatch, limit int) []Swatch {
	ranked := make([]Swatch, len(palette))
	copy(ranked, palette)

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankScore(ranked[i]) > rankScore(ranked[j])
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func rankScore(s Swatch) float64 {
	boost := 1.0
	switch {
	case s.IsBrandColor:
		boost = boostBrand
	case s.IsVibrant:
		boost = boostVibrant
	}
	return float64(s.Population) * boost
}
