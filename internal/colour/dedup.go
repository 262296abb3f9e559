package colour

// Dedup merges near-duplicate swatches using perceptual distance.
//
// Each incoming swatch is compared against the output built so far and
// merged into the CLOSEST existing swatch within threshold distance; only
// when no swatch is that close is it appended as new. Classification and
// merge target are the same nearest-match computation, so the result does
// not depend on scan order for correctness.
//
// When two swatches merge, the more saturated of the pair keeps its RGB
// identity and the populations are summed. Population-weighted averaging
// would wash out rare saturated brand colours, so saturation wins colour
// identity while population is conserved for ranking. Class flags survive
// a merge in either direction.
func Dedup(swatches []Swatch, threshold float64) []Swatch {
	out := make([]Swatch, 0, len(swatches))

	for _, sw := range swatches {
		nearest := -1
		nearestDist := threshold
		for i, existing := range out {
			if d := Distance(sw.RGB(), existing.RGB()); d < nearestDist {
				nearestDist = d
				nearest = i
			}
		}

		if nearest == -1 {
			out = append(out, sw)
			continue
		}

		existing := &out[nearest]
		if Saturation(sw.RGB()) > Saturation(existing.RGB()) {
			// Saturation wins the tie: the new colour replaces the
			// existing identity but inherits the combined population.
			merged := sw
			merged.Population += existing.Population
			merged.IsVibrant = merged.IsVibrant || existing.IsVibrant
			merged.IsBrandColor = merged.IsBrandColor || existing.IsBrandColor
			*existing = merged
		} else {
			existing.Population += sw.Population
			existing.IsVibrant = existing.IsVibrant || sw.IsVibrant
			existing.IsBrandColor = existing.IsBrandColor || sw.IsBrandColor
		}
	}

	return out
}
