package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/log"
	"github.com/theirongolddev/xpense/internal/menu"
	"github.com/theirongolddev/xpense/internal/persist"
	"github.com/theirongolddev/xpense/internal/theme"

	"github.com/spf13/cobra"
)

var (
	flagFile    string
	flagBackend string
	flagVerbose bool
	flagQuiet   bool
)

// Resolved by loadSettings before any command runs.
var (
	settings config.Config
	logger   = log.Discard()
)

var rootCmd = &cobra.Command{
	Use:               "xpense",
	Short:             "Interactive expense tracker",
	Long:              "Record, review and remove expenses from an interactive menu.\nExpenses are kept in a local JSON or SQLite file.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runMenu,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Expense data file (default from config, else expenses.json)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: json or sqlite (default: infer from file extension)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// loadSettings layers .env, the config file, XPENSE_* variables and flags, in
// that order, and configures logging and the theme from the result.
func loadSettings(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg := log.DefaultConfig()
	logCfg.Level, _ = log.ParseLevel(cfg.Log.Level)
	logger = log.New(logCfg)
	log.SetDefault(logger)
	theme.SetActive(cfg.Display.Theme)

	settings = cfg
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Storage.Path = flagFile
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
	switch {
	case flagVerbose:
		cfg.Log.Level = "debug"
	case flagQuiet:
		cfg.Log.Level = "error"
	}
}

// openBackend opens the configured expense file.
func openBackend() (persist.Backend, error) {
	kind, err := persist.ParseKind(settings.Storage.Backend)
	if err != nil {
		return nil, err
	}
	return persist.Open(kind, settings.Storage.Path, logger)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle("Welcome to the Expense Tracker!"))

	m, err := menu.Load(backend, cmd.InOrStdin(), out, menu.Options{
		Currency: settings.Display.Currency,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return m.Run(cmd.Context())
}
