package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/persist"
	"github.com/theirongolddev/xpense/internal/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	// Setup must work even when the current config fails validation.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(".env")
	},
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	// Only the file layer is edited; env and flags stay overrides.
	cfg, err := config.LoadFile()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	save := true

	form := newSetupForm(&cfg, &save)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "  Setup cancelled; nothing was written.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}
	if !save {
		fmt.Fprintln(cmd.OutOrStdout(), "  Nothing was written.")
		return nil
	}

	cfg.Storage.Path = strings.TrimSpace(cfg.Storage.Path)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.Path())
	fmt.Fprintln(out, "  Run `xpense setup` anytime to reconfigure.")
	fmt.Fprintln(out)
	return nil
}

func newSetupForm(cfg *config.Config, save *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to xpense!").
				Description("Choose where expenses are kept and how they are shown."),
			huh.NewInput().
				Title("Expense file").
				Description("A .db, .sqlite or .sqlite3 extension selects SQLite.").
				Value(&cfg.Storage.Path).
				Validate(validatePath),
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("Infer from file extension", ""),
					huh.NewOption("JSON", string(persist.KindJSON)),
					huh.NewOption("SQLite", string(persist.KindSQLite)),
				).
				Value(&cfg.Storage.Backend),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&cfg.Display.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions()...).
				Value(&cfg.Display.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&cfg.Log.Level),
			huh.NewConfirm().
				Title("Save configuration?").
				Affirmative("Save").
				Negative("Discard").
				Value(save),
		),
	)
}

func themeOptions() []huh.Option[string] {
	return huh.NewOptions(theme.Names()...)
}

func validatePath(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("path must not be empty")
	}
	return nil
}
