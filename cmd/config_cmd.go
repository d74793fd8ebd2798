// Package cmd implements the xpense CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/persist"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// setting is one row of the effective configuration.
type setting struct {
	name     string
	value    string
	fromFile string
	def      string
	env      string
	flag     string
}

func runConfig(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return err
	}
	def := config.DefaultConfig()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	backend := settings.Storage.Backend
	if backend == "" {
		backend = string(persist.InferKind(settings.Storage.Path)) + " (inferred)"
	}

	rows := []setting{
		{"storage.path", settings.Storage.Path, fileCfg.Storage.Path, def.Storage.Path, "XPENSE_FILE", "file"},
		{"storage.backend", backend, fileCfg.Storage.Backend, def.Storage.Backend, "XPENSE_BACKEND", "backend"},
		{"display.currency", settings.Display.Currency, fileCfg.Display.Currency, def.Display.Currency, "XPENSE_CURRENCY", ""},
		{"display.theme", settings.Display.Theme, fileCfg.Display.Theme, def.Display.Theme, "XPENSE_THEME", ""},
		{"log.level", settings.Log.Level, fileCfg.Log.Level, def.Log.Level, "XPENSE_LOG_LEVEL", ""},
	}

	table := cli.Table{
		Headers:    []string{"Setting", "Value", "Source"},
		AlignRight: []bool{false, false, false},
	}
	for _, s := range rows {
		table.Rows = append(table.Rows, []string{s.name, s.value, s.source(cmd)})
	}
	fmt.Fprint(out, cli.RenderTable(table))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Run `xpense setup` to reconfigure.")
	return nil
}

// source reports which layer produced the effective value.
func (s setting) source(cmd *cobra.Command) string {
	if s.flag != "" && cmd.Flags().Changed(s.flag) {
		return "flag --" + s.flag
	}
	if s.name == "log.level" && (flagVerbose || flagQuiet) {
		return "flag"
	}
	if v, ok := os.LookupEnv(s.env); ok && v != "" {
		return "env " + s.env
	}
	if s.fromFile != s.def {
		return "config file"
	}
	return "default"
}
