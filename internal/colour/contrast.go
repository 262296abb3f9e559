package colour

// WCAG contrast thresholds used throughout token derivation.
const (
	// ContrastAA is the WCAG AA minimum for normal text.
	ContrastAA = 4.5
	// ContrastLarge is the relaxed WCAG minimum for large or secondary text.
	ContrastLarge = 3.0
	// ContrastMuted is the floor applied to muted text. It sits above the
	// legal minimum so secondary copy stays comfortably readable.
	ContrastMuted = 5.5
)

// EnsureContrast is the single reusable contrast-guarantee contract shared
// by heading, text, and muted-text selection.
//
// It returns candidate when it parses and reaches minRatio against bg.
// Otherwise it returns the first of the two ordered fallbacks that
// reaches minRatio, and when neither does, whichever fallback has the
// higher ratio. The result is therefore always a valid hex string, even
// when candidate is empty or malformed.
func EnsureContrast(candidate string, bg RGB, minRatio float64, fallbacks [2]string) string {
	if rgb, err := ParseHex(candidate); err == nil {
		if ContrastRatio(rgb, bg) >= minRatio {
			return candidate
		}
	}

	best := fallbacks[0]
	bestRatio := 0.0
	for _, fb := range fallbacks {
		rgb, err := ParseHex(fb)
		if err != nil {
			continue
		}
		ratio := ContrastRatio(rgb, bg)
		if ratio >= minRatio {
			return fb
		}
		if ratio > bestRatio {
			bestRatio = ratio
			best = fb
		}
	}
	return best
}
