package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chromata/chromata/internal/colour"
	"github.com/chromata/chromata/internal/store"
)

var (
	historyStorePath   string
	historyShowFormat  string
	historyDarkSel     string
	historyLockPrimary string
)

// historyCmd represents the history command group.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved palettes",
	Long: `Manage saved palettes.

At most five palettes are retained; saving a sixth evicts the oldest.
"show" re-derives tokens from the stored palette, so a saved palette is a
full re-entry point into the pipeline without re-quantising the image.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved palettes",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-derive and print tokens from a saved palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyStorePath, "store", "", "path to the palette store (default: user config dir)")
	historyShowCmd.Flags().StringVarP(&historyShowFormat, "format", "f", "table", "output format (css, json, table)")
	historyShowCmd.Flags().StringVar(&historyDarkSel, "dark-selector", "", "CSS selector for the dark block")
	historyShowCmd.Flags().StringVar(&historyLockPrimary, "lock-primary", "", "pin the primary token to a hex colour")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func openStore() (*store.Store, error) {
	path := historyStorePath
	if path == "" {
		var err error
		if path, err = defaultStorePath(); err != nil {
			return nil, err
		}
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette store: %w", err)
	}
	return s, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no saved palettes")
		return nil
	}

	preview := stdoutIsTerminal()
	for _, rec := range records {
		fmt.Printf("%-36s  %-19s  %-20s", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Name)
		if preview {
			var b strings.Builder
			for _, sw := range rec.Palette {
				b.WriteString(colour.Preview(sw.RGB(), 2))
			}
			fmt.Printf("  %s", b.String())
		}
		fmt.Println()
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	// A stored palette re-enters token derivation exactly like a freshly
	// assembled one.
	locks := colour.Locks{}
	if historyLockPrimary != "" {
		if _, err := colour.ParseHex(historyLockPrimary); err != nil {
			logger.Warn("ignoring unparseable lock", "flag", "lock-primary", "value", historyLockPrimary)
		} else {
			locks.Primary = strings.ToLower(historyLockPrimary)
		}
	}
	themes := colour.DeriveTokens(rec.Palette, locks)

	output, err := formatTokens(themes, historyShowFormat, historyDarkSel)
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "deleted %s\n", args[0])
	return nil
}
