package colour

import "strings"

// TokenSet is one theme's worth of semantic design tokens. Every field is
// always a valid hex string: each selection stage cascades to a fallback
// constant, so even an empty palette produces a complete set.
type TokenSet struct {
	Bg        string `json:"bg"`
	Surface   string `json:"surface"`
	Border    string `json:"border"`
	Text      string `json:"text"`
	Heading   string `json:"heading"`
	MutedText string `json:"mutedText"`
	Primary   string `json:"primary"`
	OnPrimary string `json:"onPrimary"`
}

// TokenNames returns the eight canonical token names in their canonical
// order. Exporters rely on this order; the textual syntax is theirs.
func TokenNames() []string {
	return []string{"bg", "surface", "border", "text", "heading", "mutedText", "primary", "onPrimary"}
}

// Values returns the token values in canonical order, parallel to
// TokenNames.
func (t TokenSet) Values() []string {
	return []string{t.Bg, t.Surface, t.Border, t.Text, t.Heading, t.MutedText, t.Primary, t.OnPrimary}
}

// Themes pairs the light and dark token sets derived from one palette.
type Themes struct {
	Light TokenSet `json:"light"`
	Dark  TokenSet `json:"dark"`
}

// Locks carries the optional user-pinned token values. A set value is
// honoured verbatim for its slot when it parses as a hex colour and is
// ignored otherwise; the empty string means unlocked. Locks are
// session-scoped: they survive re-derivation for the same palette and
// reset when a new image is processed.
type Locks struct {
	Primary string `json:"lockedPrimary,omitempty"`
	LightBg string `json:"lockedLightBg,omitempty"`
	DarkBg  string `json:"lockedDarkBg,omitempty"`
}

// TogglePrimary sets the primary lock, or clears it when hex matches the
// current lock (the click-to-lock, click-again-to-unlock contract).
func (l *Locks) TogglePrimary(hex string) { toggleLock(&l.Primary, hex) }

// ToggleLightBg sets or clears the light background lock.
func (l *Locks) ToggleLightBg(hex string) { toggleLock(&l.LightBg, hex) }

// ToggleDarkBg sets or clears the dark background lock.
func (l *Locks) ToggleDarkBg(hex string) { toggleLock(&l.DarkBg, hex) }

func toggleLock(slot *string, hex string) {
	if *slot != "" && strings.EqualFold(*slot, hex) {
		*slot = ""
		return
	}
	*slot = strings.ToLower(hex)
}

// resolveLock parses a lock value. ok is false for unset or unparseable
// locks; an unparseable lock falls through to algorithmic selection
// rather than failing derivation.
func resolveLock(value string) (RGB, bool) {
	if value == "" {
		return RGB{}, false
	}
	rgb, err := ParseHex(value)
	if err != nil {
		return RGB{}, false
	}
	return rgb, true
}

// modeConfig holds the per-theme constants for token derivation. The
// fallback cascade guarantees TokenSet completeness for degenerate
// palettes, so every constant here must itself satisfy the contrast rules
// against the mode's fallback surface.
type modeConfig struct {
	dark bool

	fallbackBg      string
	fallbackSurface string
	fallbackBorder  string
	fallbackPrimary string

	// Ordered fallback pairs for the contrast-guarantee step.
	textFallbacks  [2]string
	mutedFallbacks [2]string

	// Forced pair applied when heading and text collapse to the same hex.
	forcedHeading string
	forcedText    string
}

var lightMode = modeConfig{
	dark:            false,
	fallbackBg:      "#f7f7f7",
	fallbackSurface: "#ffffff",
	fallbackBorder:  "#e0e0e0",
	fallbackPrimary: "#0071e3",
	textFallbacks:   [2]string{"#1d1d1f", "#000000"},
	mutedFallbacks:  [2]string{"#555555", "#3c3c43"},
	forcedHeading:   "#111111",
	forcedText:      "#333333",
}

var darkMode = modeConfig{
	dark:            true,
	fallbackBg:      "#0b0b0b",
	fallbackSurface: "#141414",
	fallbackBorder:  "#2a2a2a",
	fallbackPrimary: "#409cff",
	textFallbacks:   [2]string{"#f5f5f7", "#ffffff"},
	mutedFallbacks:  [2]string{"#b0b0b5", "#d1d1d6"},
	forcedHeading:   "#f5f5f5",
	forcedText:      "#d4d4d4",
}
