// Package cli provides the command-line interface for Chromata.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chromata/chromata/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chromata",
	Short: "A design-token palette generator",
	Long: `Chromata extracts a colour palette from an image and derives eight
semantic design tokens per theme (light and dark), each pair validated
against WCAG contrast thresholds.

Point it at a screenshot or brand asset and it produces a self-consistent
set of CSS custom properties, recovering saturated accent colours that
plain quantisation would average away.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(historyCmd)
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

// newLogger builds the command logger honouring --verbose and --quiet.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "chromata",
		Level:  level,
		Output: os.Stderr,
	})
}

// stdoutIsTerminal reports whether stdout is a tty. ANSI colour previews
// are only emitted for interactive runs.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// defaultStorePath returns the default location of the saved-palette
// database.
func defaultStorePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(configDir, "chromata", "palettes.db"), nil
}

// writeOutput writes rendered output to a file or stdout.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
