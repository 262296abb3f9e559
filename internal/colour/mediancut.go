package colour

import "sort"

// Quantize reduces a pixel list to at most k representative swatches using
// median-cut quantisation.
//
// The algorithm starts with a single bucket holding every pixel and
// repeatedly splits the bucket with the LARGEST pixel count along its
// widest colour channel at the midpoint index, until k buckets exist or no
// bucket has more than one pixel. Always splitting the largest bucket (not
// round-robin) yields detail proportional to population.
//
// Each final bucket becomes a swatch whose RGB is the arithmetic mean of
// its pixels (rounded to nearest) and whose population is the bucket size,
// so the returned populations always sum to len(pixels).
func Quantize(pixels []Pixel, k int) []Swatch {
	if len(pixels) == 0 || k < 1 {
		return nil
	}

	initial := make([]Pixel, len(pixels))
	copy(initial, pixels)

	buckets := [][]Pixel{initial}
	for len(buckets) < k {
		// Pick the largest bucket that can still be split. A bucket of
		// identical pixels has no channel range and stays whole, so a
		// single repeated colour quantises to exactly one swatch.
		largest := -1
		for i, b := range buckets {
			if splittable(b) && (largest == -1 || len(b) > len(buckets[largest])) {
				largest = i
			}
		}
		if largest == -1 {
			break
		}

		b := buckets[largest]
		sortByWidestChannel(b)
		mid := len(b) / 2

		buckets[largest] = b[:mid]
		buckets = append(buckets, b[mid:])
	}

	swatches := make([]Swatch, 0, len(buckets))
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		swatches = append(swatches, bucketMean(b))
	}
	return swatches
}

// splittable reports whether a bucket has more than one pixel and a
// nonzero range on at least one channel.
func splittable(b []Pixel) bool {
	if len(b) < 2 {
		return false
	}
	first := b[0]
	for _, p := range b[1:] {
		if p != first {
			return true
		}
	}
	return false
}

// sortByWidestChannel sorts a bucket along the channel with the largest
// value range.
func sortByWidestChannel(b []Pixel) {
	minR, maxR := b[0].R, b[0].R
	minG, maxG := b[0].G, b[0].G
	minB, maxB := b[0].B, b[0].B
	for _, p := range b[1:] {
		minR = min(minR, p.R)
		maxR = max(maxR, p.R)
		minG = min(minG, p.G)
		maxG = max(maxG, p.G)
		minB = min(minB, p.B)
		maxB = max(maxB, p.B)
	}

	rangeR := maxR - minR
	rangeG := maxG - minG
	rangeB := maxB - minB

	switch {
	case rangeR >= rangeG && rangeR >= rangeB:
		sort.Slice(b, func(i, j int) bool { return b[i].R < b[j].R })
	case rangeG >= rangeB:
		sort.Slice(b, func(i, j int) bool { return b[i].G < b[j].G })
	default:
		sort.Slice(b, func(i, j int) bool { return b[i].B < b[j].B })
	}
}

// bucketMean averages a bucket of pixels into a single swatch.
func bucketMean(b []Pixel) Swatch {
	var sumR, sumG, sumB int
	for _, p := range b {
		sumR += int(p.R)
		sumG += int(p.G)
		sumB += int(p.B)
	}
	n := len(b)
	return Swatch{
		R:          uint8((sumR + n/2) / n),
		G:          uint8((sumG + n/2) / n),
		B:          uint8((sumB + n/2) / n),
		Population: n,
	}
}
