package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chromata/chromata/internal/colour"
)

func testThemes() colour.Themes {
	return colour.Themes{
		Light: colour.TokenSet{
			Bg:        "#f7f7f7",
			Surface:   "#ffffff",
			Border:    "#e0e0e0",
			Text:      "#333333",
			Heading:   "#111111",
			MutedText: "#555555",
			Primary:   "#0071e3",
			OnPrimary: "#ffffff",
		},
		Dark: colour.TokenSet{
			Bg:        "#0b0b0b",
			Surface:   "#141414",
			Border:    "#2a2a2a",
			Text:      "#d4d4d4",
			Heading:   "#f5f5f5",
			MutedText: "#b0b0b5",
			Primary:   "#409cff",
			OnPrimary: "#000000",
		},
	}
}

func TestCSSMediaQuery(t *testing.T) {
	out, err := CSS(testThemes(), "")
	if err != nil {
		t.Fatalf("CSS() error = %v", err)
	}

	for _, want := range []string{
		":root {",
		"@media (prefers-color-scheme: dark)",
		"--bg: #f7f7f7;",
		"--muted-text: #555555;",
		"--on-primary: #ffffff;",
		"--bg: #0b0b0b;",
		"--primary: #409cff;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSS output missing %q:\n%s", want, out)
		}
	}

	// The light block must precede the dark block.
	if strings.Index(out, "#f7f7f7") > strings.Index(out, "#0b0b0b") {
		t.Error("dark block rendered before light block")
	}
}

func TestCSSClassSelector(t *testing.T) {
	out, err := CSS(testThemes(), ".dark")
	if err != nil {
		t.Fatalf("CSS() error = %v", err)
	}

	if !strings.Contains(out, ".dark {") {
		t.Errorf("CSS output missing class selector block:\n%s", out)
	}
	if strings.Contains(out, "@media") {
		t.Errorf("CSS output contains a media query despite class selector:\n%s", out)
	}
	if !strings.Contains(out, "--on-primary: #000000;") {
		t.Errorf("CSS output missing dark on-primary declaration:\n%s", out)
	}
}

func TestCSSExplicitMediaSelector(t *testing.T) {
	out, err := CSS(testThemes(), "@media (prefers-color-scheme: dark)")
	if err != nil {
		t.Fatalf("CSS() error = %v", err)
	}
	if !strings.Contains(out, "@media (prefers-color-scheme: dark)") {
		t.Errorf("CSS output missing media query:\n%s", out)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	themes := testThemes()

	out, err := JSON(themes)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("JSON output missing trailing newline")
	}

	var decoded colour.Themes
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Unmarshal(JSON output) error = %v", err)
	}
	if diff := cmp.Diff(themes, decoded); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}

	// The wire format uses camelCase token names.
	for _, key := range []string{`"light"`, `"dark"`, `"mutedText"`, `"onPrimary"`} {
		if !strings.Contains(out, key) {
			t.Errorf("JSON output missing key %s", key)
		}
	}
}

func TestDeclarationsOrder(t *testing.T) {
	decls := declarations(testThemes().Light)

	wantNames := []string{"bg", "surface", "border", "text", "heading", "muted-text", "primary", "on-primary"}
	if len(decls) != len(wantNames) {
		t.Fatalf("declarations returned %d entries, want %d", len(decls), len(wantNames))
	}
	for i, want := range wantNames {
		if decls[i].Name != want {
			t.Errorf("declarations[%d].Name = %q, want %q", i, decls[i].Name, want)
		}
	}
}

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bg", "bg"},
		{"mutedText", "muted-text"},
		{"onPrimary", "on-primary"},
		{"surface", "surface"},
	}
	for _, tt := range tests {
		if got := kebabCase(tt.in); got != tt.want {
			t.Errorf("kebabCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
