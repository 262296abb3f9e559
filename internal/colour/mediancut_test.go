package colour

import "testing"

func TestQuantizePopulationConservation(t *testing.T) {
	pixels := make([]Pixel, 0, 1000)
	for i := 0; i < 1000; i++ {
		pixels = append(pixels, Pixel{
			R: uint8(i % 256),
			G: uint8((i * 7) % 256),
			B: uint8((i * 13) % 256),
		})
	}

	for _, k := range []int{1, 2, 5, 16, 20} {
		swatches := Quantize(pixels, k)
		if len(swatches) < 1 || len(swatches) > k {
			t.Errorf("Quantize(k=%d) returned %d swatches, want 1..%d", k, len(swatches), k)
		}
		total := 0
		for _, s := range swatches {
			if s.Population < 1 {
				t.Errorf("Quantize(k=%d) produced swatch with population %d", k, s.Population)
			}
			total += s.Population
		}
		if total != len(pixels) {
			t.Errorf("Quantize(k=%d) populations sum to %d, want %d", k, total, len(pixels))
		}
	}
}

func TestQuantizeSingleColour(t *testing.T) {
	pixels := make([]Pixel, 500)
	for i := range pixels {
		pixels[i] = Pixel{R: 128, G: 128, B: 128}
	}

	swatches := Quantize(pixels, 20)
	if len(swatches) != 1 {
		t.Fatalf("Quantize(single colour, k=20) returned %d swatches, want 1", len(swatches))
	}
	want := Swatch{R: 128, G: 128, B: 128, Population: 500}
	if swatches[0] != want {
		t.Errorf("Quantize(single colour) = %+v, want %+v", swatches[0], want)
	}
}

func TestQuantizeTwoColours(t *testing.T) {
	var pixels []Pixel
	for i := 0; i < 300; i++ {
		pixels = append(pixels, Pixel{R: 10, G: 10, B: 10})
	}
	for i := 0; i < 100; i++ {
		pixels = append(pixels, Pixel{R: 240, G: 240, B: 240})
	}

	swatches := Quantize(pixels, 2)
	if len(swatches) != 2 {
		t.Fatalf("Quantize returned %d swatches, want 2", len(swatches))
	}

	byHex := map[string]int{}
	for _, s := range swatches {
		byHex[s.Hex()] = s.Population
	}
	if byHex["#0a0a0a"] != 300 {
		t.Errorf("dark swatch population = %d, want 300", byHex["#0a0a0a"])
	}
	if byHex["#f0f0f0"] != 100 {
		t.Errorf("light swatch population = %d, want 100", byHex["#f0f0f0"])
	}
}

func TestQuantizeStopsAtDistinctColours(t *testing.T) {
	// Three distinct colours cannot be split into more than three buckets
	// no matter how large k is.
	var pixels []Pixel
	for i := 0; i < 50; i++ {
		pixels = append(pixels,
			Pixel{R: 255},
			Pixel{G: 255},
			Pixel{B: 255},
		)
	}

	swatches := Quantize(pixels, 16)
	if len(swatches) != 3 {
		t.Fatalf("Quantize returned %d swatches, want 3", len(swatches))
	}
	for _, s := range swatches {
		if s.Population != 50 {
			t.Errorf("swatch %s population = %d, want 50", s.Hex(), s.Population)
		}
	}
}

func TestQuantizeDegenerateInputs(t *testing.T) {
	if got := Quantize(nil, 16); got != nil {
		t.Errorf("Quantize(nil, 16) = %v, want nil", got)
	}
	if got := Quantize([]Pixel{{R: 1}}, 0); got != nil {
		t.Errorf("Quantize(pixels, 0) = %v, want nil", got)
	}

	one := Quantize([]Pixel{{R: 9, G: 8, B: 7}}, 16)
	if len(one) != 1 || one[0].Population != 1 {
		t.Errorf("Quantize(one pixel) = %v, want single swatch with population 1", one)
	}
}
