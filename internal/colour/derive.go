package colour

import (
	"math"
	"sort"
)

// DeriveTokens derives the light and dark token sets from an assembled
// palette plus the session locks. The palette and locks are treated as an
// immutable snapshot for the duration of the call; the caller re-invokes
// derivation after any lock mutation.
//
// Light mode is always derived first because dark mode's primary selection
// may fall back to reusing light's result. No stage ever leaves a token
// empty: every filter failure cascades to a deterministic fallback
// constant, so the result is complete even for a monochrome or empty
// palette.
func DeriveTokens(palette []Swatch, locks Locks) Themes {
	analyzed := AnalyzePalette(palette)

	light := newDerivation(analyzed, lightMode, locks)
	light.run(nil)

	dark := newDerivation(analyzed, darkMode, locks)
	dark.run(light)

	return Themes{Light: light.set, Dark: dark.set}
}

// derivation is the per-theme state machine. Stages run sequentially;
// each depends on the previous (surface needs bg, text needs surface,
// muted needs text, and so on).
type derivation struct {
	m        modeConfig
	analyzed []AnalyzedColor
	locks    Locks

	set TokenSet

	bgRGB      RGB
	surfaceRGB RGB
	bgLocked   bool

	headingLum float64
	textLum    float64

	primaryFromPalette bool
	primaryLocked      bool
}

func newDerivation(analyzed []AnalyzedColor, m modeConfig, locks Locks) *derivation {
	return &derivation{m: m, analyzed: analyzed, locks: locks}
}

func (d *derivation) run(light *derivation) {
	d.selectBg()
	d.selectSurface()
	d.selectBorder()
	d.selectTextPair()
	d.selectMutedText()
	d.revalidateBg()
	d.selectPrimary(light)
	d.selectOnPrimary()
}

// bestCandidate returns the highest-scoring analyzed colour admitted by
// the filter, or ok=false when nothing survives.
func bestCandidate(analyzed []AnalyzedColor, admit func(AnalyzedColor) bool, score func(AnalyzedColor) float64) (AnalyzedColor, bool) {
	best := AnalyzedColor{}
	bestScore := math.Inf(-1)
	found := false
	for _, c := range analyzed {
		if !admit(c) {
			continue
		}
		if s := score(c); s > bestScore {
			bestScore = s
			best = c
			found = true
		}
	}
	return best, found
}

// selectBg picks the page background: a near-extreme, desaturated colour.
// A lock is honoured verbatim and exempts the background from the later
// re-validation swap.
func (d *derivation) selectBg() {
	lockVal := d.locks.LightBg
	if d.m.dark {
		lockVal = d.locks.DarkBg
	}
	if rgb, ok := resolveLock(lockVal); ok {
		d.bgRGB = rgb
		d.set.Bg = rgb.Hex()
		d.bgLocked = true
		return
	}

	admit := func(c AnalyzedColor) bool {
		if d.m.dark {
			return c.Luminance < 0.06 && c.Saturation < 0.20
		}
		return c.Luminance > 0.75 && c.Saturation < 0.20
	}
	score := func(c AnalyzedColor) float64 {
		extremeness := c.Luminance
		if d.m.dark {
			extremeness = 1 - c.Luminance
		}
		return extremeness + math.Log(float64(c.Population)+1)/10
	}

	if c, ok := bestCandidate(d.analyzed, admit, score); ok {
		d.bgRGB = c.Swatch.RGB()
		d.set.Bg = c.Hex
		return
	}
	d.set.Bg = d.m.fallbackBg
	d.bgRGB, _ = ParseHex(d.m.fallbackBg)
}

// selectSurface picks the card/panel colour one step beyond the
// background: lighter than bg in light mode, slightly lifted off bg but
// still nearly black in dark mode.
func (d *derivation) selectSurface() {
	bgLum := Luminance(d.bgRGB)

	admit := func(c AnalyzedColor) bool {
		if c.Hex == d.set.Bg {
			return false
		}
		if d.m.dark {
			return c.Luminance > bgLum && c.Luminance < 0.05 && c.Saturation < 0.15
		}
		return c.Luminance > 0.85 && c.Saturation < 0.12
	}
	score := func(c AnalyzedColor) float64 { return c.Luminance }

	if c, ok := bestCandidate(d.analyzed, admit, score); ok {
		d.set.Surface = c.Hex
	} else {
		d.set.Surface = d.m.fallbackSurface
	}
	if d.set.Surface == d.set.Bg {
		d.set.Surface = d.m.fallbackSurface
	}
	d.surfaceRGB, _ = ParseHex(d.set.Surface)
}

// selectBorder picks a hairline colour from a luminance band between the
// surface and the mode's cutoff, preferring the middle of the band.
func (d *derivation) selectBorder() {
	lo, hi, maxSat := 0.5, 0.95, 0.15
	if d.m.dark {
		lo, hi, maxSat = Luminance(d.surfaceRGB), 0.35, 0.20
	}
	mid := (lo + hi) / 2

	admit := func(c AnalyzedColor) bool {
		if c.Hex == d.set.Bg || c.Hex == d.set.Surface {
			return false
		}
		return c.Luminance > lo && c.Luminance < hi && c.Saturation < maxSat
	}
	score := func(c AnalyzedColor) float64 { return -math.Abs(c.Luminance - mid) }

	if c, ok := bestCandidate(d.analyzed, admit, score); ok {
		d.set.Border = c.Hex
	} else {
		d.set.Border = d.m.fallbackBorder
	}
}

// selectTextPair picks heading and text from desaturated palette colours
// with AA contrast against the surface. The score favours the luminance
// extreme opposite the surface (darker in light mode, lighter in dark)
// and penalises saturation twice over; the top two distinct survivors
// become heading and text. Both then pass the contrast-guarantee step
// independently, so AA holds unconditionally even via fallback.
func (d *derivation) selectTextPair() {
	type scored struct {
		c     AnalyzedColor
		score float64
	}
	var candidates []scored
	for _, c := range d.analyzed {
		if c.Saturation > 0.25 {
			continue
		}
		if ContrastRatio(c.Swatch.RGB(), d.surfaceRGB) < ContrastAA {
			continue
		}
		s := (1 - c.Luminance) - 2*c.Saturation
		if d.m.dark {
			s = c.Luminance - 2*c.Saturation
		}
		candidates = append(candidates, scored{c: c, score: s})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	headingHex, textHex := "", ""
	if len(candidates) > 0 {
		headingHex = candidates[0].c.Hex
		for _, sc := range candidates[1:] {
			if sc.c.Hex != headingHex {
				textHex = sc.c.Hex
				break
			}
		}
	}

	heading := EnsureContrast(headingHex, d.surfaceRGB, ContrastAA, d.m.textFallbacks)
	text := EnsureContrast(textHex, d.surfaceRGB, ContrastAA, d.m.textFallbacks)

	// Keep the expected luminance ordering: heading is the stronger
	// (more extreme) of the pair in both modes.
	hLum := hexLuminance(heading)
	tLum := hexLuminance(text)
	if (!d.m.dark && hLum > tLum) || (d.m.dark && hLum < tLum) {
		heading, text = text, heading
		hLum, tLum = tLum, hLum
	}

	if heading == text {
		heading, text = d.m.forcedHeading, d.m.forcedText
		hLum, tLum = hexLuminance(heading), hexLuminance(text)
	}

	d.set.Heading = heading
	d.set.Text = text
	d.headingLum = hLum
	d.textLum = tLum
}

// selectMutedText picks secondary copy: desaturated, contrast against the
// surface inside a mode-specific window, luminance sitting between the
// text and the surface. Guaranteed at 5.5 rather than the legal 4.5.
func (d *derivation) selectMutedText() {
	window := [2]float64{4, 7}
	target := 0.4
	if d.m.dark {
		window = [2]float64{4, 10}
		target = 0.5
	}

	surfaceLum := Luminance(d.surfaceRGB)
	lumLo := math.Min(d.textLum, surfaceLum)
	lumHi := math.Max(d.textLum, surfaceLum)

	admit := func(c AnalyzedColor) bool {
		if c.Hex == d.set.Heading || c.Hex == d.set.Text {
			return false
		}
		if c.Saturation > 0.25 {
			return false
		}
		ratio := ContrastRatio(c.Swatch.RGB(), d.surfaceRGB)
		if ratio < window[0] || ratio >= window[1] {
			return false
		}
		return c.Luminance > lumLo && c.Luminance < lumHi
	}
	score := func(c AnalyzedColor) float64 {
		return -math.Abs(c.Luminance-target) - c.Saturation
	}

	candidateHex := ""
	if c, ok := bestCandidate(d.analyzed, admit, score); ok {
		candidateHex = c.Hex
	}
	d.set.MutedText = EnsureContrast(candidateHex, d.surfaceRGB, ContrastMuted, d.m.mutedFallbacks)
}

// revalidateBg rechecks the background against the text tokens chosen
// after it. Heading and text require AA, muted text the relaxed 3.0. When
// an unlocked background fails, the FULL analyzed palette is searched for
// a replacement in the correct luminance extreme, preferring the most
// extreme; failing that the fallback constant is restored.
func (d *derivation) revalidateBg() {
	if d.bgLocked {
		return
	}
	if d.bgCompatible(d.bgRGB) {
		return
	}

	admit := func(c AnalyzedColor) bool {
		if d.m.dark {
			if c.Luminance >= 0.25 {
				return false
			}
		} else if c.Luminance <= 0.60 {
			return false
		}
		return d.bgCompatible(c.Swatch.RGB())
	}
	score := func(c AnalyzedColor) float64 {
		if d.m.dark {
			return 1 - c.Luminance
		}
		return c.Luminance
	}

	if c, ok := bestCandidate(d.analyzed, admit, score); ok {
		d.bgRGB = c.Swatch.RGB()
		d.set.Bg = c.Hex
		return
	}
	d.set.Bg = d.m.fallbackBg
	d.bgRGB, _ = ParseHex(d.m.fallbackBg)
}

func (d *derivation) bgCompatible(bg RGB) bool {
	heading, _ := ParseHex(d.set.Heading)
	text, _ := ParseHex(d.set.Text)
	muted, _ := ParseHex(d.set.MutedText)
	return ContrastRatio(bg, heading) >= ContrastAA &&
		ContrastRatio(bg, text) >= ContrastAA &&
		ContrastRatio(bg, muted) >= ContrastLarge
}

// primaryStrategy is one stage of the primary fallback cascade: an
// admission predicate tried in order until one yields candidates. The
// cascade is a data-driven table rather than nested branching so the
// fallback order is testable on its own.
type primaryStrategy struct {
	name  string
	admit func(c AnalyzedColor, contrast float64) bool
}

// selectPrimary picks the brand accent. Light is passed for dark mode's
// reuse stage and is nil when deriving light itself.
func (d *derivation) selectPrimary(light *derivation) {
	if rgb, ok := resolveLock(d.locks.Primary); ok {
		d.set.Primary = rgb.Hex()
		d.primaryLocked = true
		return
	}

	used := map[string]bool{d.set.Heading: true, d.set.Text: true, d.set.MutedText: true}

	lumLo, lumHi := 0.15, 0.85
	if d.m.dark {
		lumLo, lumHi = 0.20, 0.80
	}

	strategies := []primaryStrategy{
		{
			name: "saturated",
			admit: func(c AnalyzedColor, contrast float64) bool {
				return !used[c.Hex] && c.Saturation >= 0.20 && contrast >= 2.5
			},
		},
		{
			name: "relaxed-saturation",
			admit: func(c AnalyzedColor, contrast float64) bool {
				return !used[c.Hex] && c.Saturation >= 0.15 && contrast >= 2.5 &&
					c.Luminance > lumLo && c.Luminance < lumHi
			},
		},
		{
			name: "relaxed-contrast",
			admit: func(c AnalyzedColor, contrast float64) bool {
				return !used[c.Hex] && c.Saturation >= 0.15 && contrast >= 2.0 &&
					c.Luminance > lumLo && c.Luminance < lumHi
			},
		},
	}

	for _, strategy := range strategies {
		admit := func(c AnalyzedColor) bool {
			return strategy.admit(c, ContrastRatio(c.Swatch.RGB(), d.surfaceRGB))
		}
		score := func(c AnalyzedColor) float64 {
			return d.primaryScore(c, ContrastRatio(c.Swatch.RGB(), d.surfaceRGB))
		}
		if c, ok := bestCandidate(d.analyzed, admit, score); ok {
			d.set.Primary = c.Hex
			d.primaryFromPalette = true
			d.applyBrandFidelity(c)
			return
		}
	}

	// Dark mode may reuse light's palette-derived primary when it still
	// clears the accent floor against the dark surface. A light primary
	// that was itself a fallback constant is not reused; dark gets its
	// own constant instead.
	if d.m.dark && light != nil && light.primaryFromPalette {
		if rgb, err := ParseHex(light.set.Primary); err == nil {
			if ContrastRatio(rgb, d.surfaceRGB) >= 2.5 {
				d.set.Primary = light.set.Primary
				d.primaryFromPalette = true
				return
			}
		}
	}

	d.set.Primary = d.m.fallbackPrimary
}

// primaryScore favours saturated, mid-luminance, well-populated colours
// with workable surface contrast, with a flat bonus for recovered accents.
func (d *derivation) primaryScore(c AnalyzedColor, contrast float64) float64 {
	score := 4 * c.Saturation
	if c.IsVibrant {
		score += 2.5
	}
	score += 1 - math.Abs(c.Luminance-0.45)
	score += math.Log(float64(c.Population)+1) / 12
	score += math.Min(contrast/10, 0.5)
	return score - d.modePenalty(c.Luminance)
}

// modePenalty punishes luminance beyond mode-appropriate extremes. Light
// mode is asymmetric: near-black primaries read as text rather than
// brand, so the dark end is punished harder. Dark mode punishes both
// extremes roughly symmetrically around the 0.45 sweet spot.
func (d *derivation) modePenalty(lum float64) float64 {
	if d.m.dark {
		switch {
		case lum > 0.75:
			return (lum - 0.75) * 7
		case lum < 0.15:
			return (0.15 - lum) * 7
		default:
			return 0
		}
	}
	switch {
	case lum > 0.75:
		return (lum - 0.75) * 6
	case lum < 0.20:
		return (0.20 - lum) * 8
	default:
		return 0
	}
}

// applyBrandFidelity substitutes a same-hue, noticeably more saturated
// palette variant for a primary that was not recovered by an accent pass.
// The quantizer's averaging desaturates brand colours; this pass undoes
// that when the palette still holds a truer variant.
func (d *derivation) applyBrandFidelity(chosen AnalyzedColor) {
	if chosen.IsVibrant {
		return
	}

	best := AnalyzedColor{}
	found := false
	for _, c := range d.analyzed {
		if c.Hex == chosen.Hex {
			continue
		}
		if !HueSimilar(c.Hue, chosen.Hue, 20) {
			continue
		}
		if c.Saturation < chosen.Saturation*1.2 {
			continue
		}
		if ContrastRatio(c.Swatch.RGB(), d.surfaceRGB) < ContrastLarge {
			continue
		}
		if !found || c.Saturation > best.Saturation {
			best = c
			found = true
		}
	}
	if found {
		d.set.Primary = best.Hex
	}
}

// selectOnPrimary picks the text colour used on top of the primary. White
// wins when it reaches AA; black is the second choice. In light mode a
// primary that supports neither may itself be substituted for a palette
// alternative that does — unless the user locked it, in which case the
// lock is honoured and the better of white/black is used. Dark mode never
// substitutes; it simply takes the higher-contrast of the two.
func (d *derivation) selectOnPrimary() {
	white := RGB{R: 255, G: 255, B: 255}
	black := RGB{}

	primary, _ := ParseHex(d.set.Primary)
	cw := ContrastRatio(primary, white)
	cb := ContrastRatio(primary, black)

	switch {
	case cw >= ContrastAA:
		d.set.OnPrimary = "#ffffff"
	case cb >= ContrastAA:
		d.set.OnPrimary = "#000000"
	case !d.m.dark && !d.primaryLocked:
		admit := func(c AnalyzedColor) bool {
			if c.Saturation <= 0.2 {
				return false
			}
			rgb := c.Swatch.RGB()
			return ContrastRatio(rgb, white) >= ContrastAA || ContrastRatio(rgb, black) >= ContrastAA
		}
		score := func(c AnalyzedColor) float64 {
			return d.primaryScore(c, ContrastRatio(c.Swatch.RGB(), d.surfaceRGB))
		}
		if c, ok := bestCandidate(d.analyzed, admit, score); ok {
			d.set.Primary = c.Hex
			if ContrastRatio(c.Swatch.RGB(), white) >= ContrastAA {
				d.set.OnPrimary = "#ffffff"
			} else {
				d.set.OnPrimary = "#000000"
			}
			return
		}
		d.set.Primary = lightMode.fallbackPrimary
		d.set.OnPrimary = "#ffffff"
	default:
		if cw >= cb {
			d.set.OnPrimary = "#ffffff"
		} else {
			d.set.OnPrimary = "#000000"
		}
	}
}

// hexLuminance is a convenience for hexes this package produced itself.
func hexLuminance(hex string) float64 {
	rgb, _ := ParseHex(hex)
	return Luminance(rgb)
}
