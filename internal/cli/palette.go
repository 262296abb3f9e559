package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chromata/chromata/internal/colour"
	"github.com/chromata/chromata/internal/image"
)

var (
	paletteFormat  string
	palettePreview bool
)

// paletteCmd represents the palette command.
var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Extract the ranked colour palette from an image",
	Long: `Extract the ranked colour palette from an image.

The pipeline quantises the image with median cut, merges near-duplicate
colours, and runs two accent-recovery passes over the raw pixels so small
saturated regions (logos, buttons) survive the averaging. The result is
an ordered palette of at most 16 swatches.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract a palette
  chromata palette wallpaper.jpg

  # Extract with colour previews
  chromata palette --preview wallpaper.png

  # Palette as JSON
  chromata palette --format json wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	paletteCmd.Flags().BoolVar(&palettePreview, "preview", false, "show colour previews in terminal")
}

func runPalette(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	pixels, err := image.Pixels(args[0])
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image sampled", "path", args[0], "pixels", len(pixels))

	palette := colour.AssemblePalette(pixels)
	logger.Debug("palette assembled", "swatches", len(palette))

	output, err := formatPalette(palette, paletteFormat, palettePreview && stdoutIsTerminal())
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

// formatPalette renders a palette in the requested format.
func formatPalette(palette []colour.Swatch, format string, preview bool) (string, error) {
	switch format {
	case "hex", "rgb":
		var b strings.Builder
		for _, sw := range palette {
			if preview {
				b.WriteString(colour.Preview(sw.RGB(), 8))
				b.WriteString("  ")
			}
			if format == "rgb" {
				b.WriteString(sw.RGB().String())
			} else {
				b.WriteString(sw.Hex())
			}
			fmt.Fprintf(&b, "  pop=%d", sw.Population)
			if sw.IsBrandColor {
				b.WriteString("  brand")
			} else if sw.IsVibrant {
				b.WriteString("  vibrant")
			}
			b.WriteByte('\n')
		}
		return b.String(), nil
	case "json":
		out, err := json.MarshalIndent(colour.AnalyzePalette(palette), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode palette: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}
