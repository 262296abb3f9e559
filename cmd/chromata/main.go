// Chromata - a design-token palette generator
//
// Chromata extracts colour palettes from images and derives
// WCAG-validated light and dark design-system tokens from them.
package main

import (
	"os"

	"github.com/chromata/chromata/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
