package cmd

import (
	"fmt"

	"github.com/theirongolddev/xpense/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and prune expenses in a full-screen view",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	store, _, err := backend.Load()
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	// Force TrueColor so theme colours survive piping through the alt screen.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(store, backend, settings.Display.Currency, logger)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if a, ok := final.(tui.App); ok && a.Dirty() {
		logger.Warn("exited with unsaved changes", "path", backend.Path())
	}
	return nil
}
