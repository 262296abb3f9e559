package colour

import "testing"

func repeatPixel(p Pixel, n int) []Pixel {
	out := make([]Pixel, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// greyRamp returns n desaturated pixels spread across a mid-grey band.
func greyRamp(n int) []Pixel {
	out := make([]Pixel, n)
	for i := range out {
		v := uint8(180 + i%41)
		out[i] = Pixel{R: v, G: v, B: v}
	}
	return out
}

func TestVibrantCandidatesRecoversAccent(t *testing.T) {
	pixels := append(greyRamp(200), repeatPixel(Pixel{R: 200, G: 50, B: 50}, 8)...)

	got := VibrantCandidates(pixels, nil)
	if len(got) != 1 {
		t.Fatalf("VibrantCandidates returned %d candidates, want 1", len(got))
	}

	c := got[0]
	if !c.IsVibrant {
		t.Error("candidate not tagged vibrant")
	}
	if c.IsBrandColor {
		t.Error("vibrant pass must not tag candidates as brand")
	}
	if c.Population != 8 {
		t.Errorf("candidate population = %d, want the full slice count 8", c.Population)
	}
	if want := (Swatch{R: 200, G: 50, B: 50, Population: 8, IsVibrant: true}); c != want {
		t.Errorf("candidate = %+v, want %+v", c, want)
	}
}

func TestVibrantCandidatesIgnoresTinyRegions(t *testing.T) {
	// Four saturated pixels sit below the five-pixel slice minimum.
	pixels := append(greyRamp(200), repeatPixel(Pixel{R: 200, G: 50, B: 50}, 4)...)

	if got := VibrantCandidates(pixels, nil); len(got) != 0 {
		t.Errorf("VibrantCandidates returned %d candidates, want 0", len(got))
	}
}

func TestVibrantCandidatesRejectsNearPaletteEntry(t *testing.T) {
	pixels := repeatPixel(Pixel{R: 200, G: 50, B: 50}, 20)
	palette := []Swatch{{R: 200, G: 50, B: 50, Population: 100}}

	if got := VibrantCandidates(pixels, palette); len(got) != 0 {
		t.Errorf("VibrantCandidates returned %d candidates despite identical palette entry, want 0", len(got))
	}
}

func TestVibrantCandidatesRejectsHueRedundant(t *testing.T) {
	// The palette already holds a distant but hue-similar red at higher
	// saturation, so the candidate adds nothing.
	pixels := repeatPixel(Pixel{R: 200, G: 80, B: 80}, 20)
	palette := []Swatch{{R: 255, G: 0, B: 0, Population: 100}}

	if got := VibrantCandidates(pixels, palette); len(got) != 0 {
		t.Errorf("VibrantCandidates returned %d candidates despite hue-redundant entry, want 0", len(got))
	}
}

func TestBrandCandidatesIsPopulationBlind(t *testing.T) {
	// Two pixels of a highly saturated red among thousands of greys: far
	// below any population threshold, still recovered by the brand pass.
	pixels := append(greyRamp(5000), repeatPixel(Pixel{R: 220, G: 30, B: 40}, 2)...)

	got := BrandCandidates(pixels, nil)
	if len(got) != 1 {
		t.Fatalf("BrandCandidates returned %d candidates, want 1", len(got))
	}

	c := got[0]
	if !c.IsBrandColor || !c.IsVibrant {
		t.Errorf("candidate flags = vibrant:%t brand:%t, want both true", c.IsVibrant, c.IsBrandColor)
	}
	if c.Population != 2 {
		t.Errorf("candidate population = %d, want 2", c.Population)
	}
	if got, want := c.Hex(), "#dc1e28"; got != want {
		t.Errorf("candidate colour = %s, want %s", got, want)
	}
	if sat := Saturation(c.RGB()); sat <= 0.40 {
		t.Errorf("candidate saturation = %f, want > 0.40", sat)
	}
}

func TestBrandCandidatesIgnoresDesaturated(t *testing.T) {
	if got := BrandCandidates(greyRamp(5000), nil); len(got) != 0 {
		t.Errorf("BrandCandidates returned %d candidates from greys, want 0", len(got))
	}
}

func TestBrandCandidatesRejectsNearPaletteEntry(t *testing.T) {
	pixels := repeatPixel(Pixel{R: 220, G: 30, B: 40}, 10)
	palette := []Swatch{{R: 220, G: 30, B: 40, Population: 50}}

	if got := BrandCandidates(pixels, palette); len(got) != 0 {
		t.Errorf("BrandCandidates returned %d candidates despite identical palette entry, want 0", len(got))
	}
}
