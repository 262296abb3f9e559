package colour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDedup(t *testing.T) {
	tests := []struct {
		name      string
		swatches  []Swatch
		threshold float64
		want      []Swatch
	}{
		{
			name:      "empty input",
			swatches:  nil,
			threshold: 30,
			want:      []Swatch{},
		},
		{
			name: "distant colours stay separate",
			swatches: []Swatch{
				{R: 255, Population: 10},
				{G: 255, Population: 20},
			},
			threshold: 30,
			want: []Swatch{
				{R: 255, Population: 10},
				{G: 255, Population: 20},
			},
		},
		{
			name: "more saturated newcomer takes over identity",
			swatches: []Swatch{
				{R: 128, G: 100, B: 100, Population: 10},
				{R: 135, G: 95, B: 100, Population: 2},
			},
			threshold: 30,
			want: []Swatch{
				{R: 135, G: 95, B: 100, Population: 12},
			},
		},
		{
			name: "less saturated newcomer only adds population",
			swatches: []Swatch{
				{R: 135, G: 95, B: 100, Population: 2},
				{R: 128, G: 100, B: 100, Population: 10},
			},
			threshold: 30,
			want: []Swatch{
				{R: 135, G: 95, B: 100, Population: 12},
			},
		},
		{
			name: "class flags survive merge in both directions",
			swatches: []Swatch{
				{R: 128, G: 100, B: 100, Population: 10, IsVibrant: true},
				{R: 135, G: 95, B: 100, Population: 2, IsBrandColor: true},
			},
			threshold: 30,
			want: []Swatch{
				{R: 135, G: 95, B: 100, Population: 12, IsVibrant: true, IsBrandColor: true},
			},
		},
		{
			name: "merges into the closest match, not the first",
			swatches: []Swatch{
				{R: 100, G: 100, B: 100, Population: 5},
				{R: 120, G: 120, B: 120, Population: 5},
				{R: 118, G: 118, B: 118, Population: 1},
			},
			threshold: 20,
			want: []Swatch{
				{R: 100, G: 100, B: 100, Population: 5},
				{R: 120, G: 120, B: 120, Population: 6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedup(tt.swatches, tt.threshold)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Dedup() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDedupIdempotent(t *testing.T) {
	swatches := []Swatch{
		{R: 10, G: 10, B: 10, Population: 100},
		{R: 12, G: 12, B: 12, Population: 50},
		{R: 200, G: 30, B: 30, Population: 7},
		{R: 205, G: 32, B: 28, Population: 3},
		{R: 240, G: 240, B: 240, Population: 400},
	}

	once := Dedup(swatches, 30)
	twice := Dedup(once, 30)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Dedup not idempotent on its own output (-once +twice):\n%s", diff)
	}
}

func TestDedupConservesPopulation(t *testing.T) {
	swatches := []Swatch{
		{R: 10, G: 10, B: 10, Population: 100},
		{R: 12, G: 12, B: 12, Population: 50},
		{R: 200, G: 30, B: 30, Population: 7},
		{R: 205, G: 32, B: 28, Population: 3},
		{R: 240, G: 240, B: 240, Population: 400},
	}

	total := 0
	for _, s := range swatches {
		total += s.Population
	}

	got := Dedup(swatches, 30)
	sum := 0
	for _, s := range got {
		sum += s.Population
	}
	if sum != total {
		t.Errorf("Dedup populations sum to %d, want %d", sum, total)
	}
	if len(got) >= len(swatches) {
		t.Errorf("Dedup returned %d swatches from %d, want fewer", len(got), len(swatches))
	}
}
