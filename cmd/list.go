package cmd

import (
	"fmt"

	"github.com/theirongolddev/xpense/internal/cli"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the saved expenses and their total",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	store, found, err := backend.Load()
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	out := cmd.OutOrStdout()
	sum, ok := store.List()
	if !ok {
		if !found {
			fmt.Fprintf(out, "  No expense file at %s\n", backend.Path())
		}
		fmt.Fprintln(out, "  You don't have any expenses recorded.")
		return nil
	}

	fmt.Fprint(out, cli.RenderExpenses(sum, settings.Display.Currency))
	fmt.Fprintln(out, cli.RenderMuted(fmt.Sprintf("  %s in %s",
		cli.Plural(len(sum.Lines), "description", "descriptions"), backend.Path())))
	return nil
}
