package cli

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/chromata/chromata/internal/colour"
	"github.com/chromata/chromata/internal/export"
	"github.com/chromata/chromata/internal/image"
	"github.com/chromata/chromata/internal/store"
)

var (
	tokensFormat       string
	tokensOutput       string
	tokensDarkSelector string
	tokensSaveName     string
	tokensStorePath    string
	tokensLockPrimary  string
	tokensLockLightBg  string
	tokensLockDarkBg   string
)

// tokensCmd represents the tokens command.
var tokensCmd = &cobra.Command{
	Use:   "tokens <image>",
	Short: "Derive light and dark design tokens from an image",
	Long: `Derive the eight semantic design tokens (bg, surface, border, text,
heading, muted text, primary, on-primary) for a light and a dark theme
from an image's palette.

Every heading/text token is guaranteed at least 4.5:1 contrast against
its surface, falling back to safe constants when the palette cannot
satisfy the thresholds. Individual tokens can be pinned with lock flags;
a locked value is honoured verbatim for that slot.

Examples:
  # Derive tokens and print CSS custom properties
  chromata tokens wallpaper.jpg

  # Scope the dark block to a class instead of a media query
  chromata tokens --dark-selector ".dark" wallpaper.jpg

  # Pin the primary token
  chromata tokens --lock-primary "#ff0000" wallpaper.jpg

  # Derive and save the palette for later
  chromata tokens --save "holiday wallpaper" wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "css", "output format (css, json, table)")
	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", "", "output file (default: stdout)")
	tokensCmd.Flags().StringVar(&tokensDarkSelector, "dark-selector", "", "CSS selector for the dark block (default: prefers-color-scheme media query)")
	tokensCmd.Flags().StringVar(&tokensSaveName, "save", "", "save the palette and tokens under this name")
	tokensCmd.Flags().StringVar(&tokensStorePath, "store", "", "path to the palette store (default: user config dir)")
	tokensCmd.Flags().StringVar(&tokensLockPrimary, "lock-primary", "", "pin the primary token to a hex colour (both themes)")
	tokensCmd.Flags().StringVar(&tokensLockLightBg, "lock-light-bg", "", "pin the light theme background to a hex colour")
	tokensCmd.Flags().StringVar(&tokensLockDarkBg, "lock-dark-bg", "", "pin the dark theme background to a hex colour")
}

func runTokens(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	pixels, err := image.Pixels(args[0])
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image sampled", "path", args[0], "pixels", len(pixels))

	palette := colour.AssemblePalette(pixels)
	logger.Debug("palette assembled", "swatches", len(palette))

	locks := lockFlags(logger)
	themes := colour.DeriveTokens(palette, locks)

	if tokensSaveName != "" {
		if err := savePalette(cmd, palette, themes); err != nil {
			return err
		}
	}

	output, err := formatTokens(themes, tokensFormat, tokensDarkSelector)
	if err != nil {
		return err
	}
	return writeOutput(tokensOutput, output)
}

// lockFlags builds the lock snapshot from the lock flags. Unparseable
// values are warned about and ignored, falling through to algorithmic
// selection.
func lockFlags(logger hclog.Logger) colour.Locks {
	locks := colour.Locks{}
	for _, lock := range []struct {
		value string
		slot  *string
		flag  string
	}{
		{tokensLockPrimary, &locks.Primary, "lock-primary"},
		{tokensLockLightBg, &locks.LightBg, "lock-light-bg"},
		{tokensLockDarkBg, &locks.DarkBg, "lock-dark-bg"},
	} {
		if lock.value == "" {
			continue
		}
		if _, err := colour.ParseHex(lock.value); err != nil {
			logger.Warn("ignoring unparseable lock", "flag", lock.flag, "value", lock.value)
			continue
		}
		*lock.slot = strings.ToLower(lock.value)
	}
	return locks
}

func savePalette(cmd *cobra.Command, palette []colour.Swatch, themes colour.Themes) error {
	path := tokensStorePath
	if path == "" {
		var err error
		if path, err = defaultStorePath(); err != nil {
			return err
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open palette store: %w", err)
	}
	defer s.Close()

	rec, err := s.Save(cmd.Context(), tokensSaveName, palette, themes)
	if err != nil {
		return fmt.Errorf("failed to save palette: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved palette %s (%s)\n", rec.Name, rec.ID)
	return nil
}

// formatTokens renders a theme pair in the requested format.
func formatTokens(themes colour.Themes, format, darkSelector string) (string, error) {
	switch format {
	case "css":
		return export.CSS(themes, darkSelector)
	case "json":
		return export.JSON(themes)
	case "table":
		return tokensTable(themes, stdoutIsTerminal()), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: css, json, table)", format)
	}
}

// tokensTable renders both token sets side by side, with colour previews
// on interactive terminals.
func tokensTable(themes colour.Themes, preview bool) string {
	names := colour.TokenNames()
	light := themes.Light.Values()
	dark := themes.Dark.Values()

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-22s %s\n", "token", "light", "dark")
	for i, name := range names {
		fmt.Fprintf(&b, "%-12s ", name)
		writeTokenCell(&b, light[i], preview)
		b.WriteString("  ")
		writeTokenCell(&b, dark[i], preview)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeTokenCell(b *strings.Builder, hex string, preview bool) {
	if preview {
		if rgb, err := colour.ParseHex(hex); err == nil {
			b.WriteString(colour.Preview(rgb, 4))
			b.WriteByte(' ')
		}
	}
	fmt.Fprintf(b, "%-9s", hex)
}
