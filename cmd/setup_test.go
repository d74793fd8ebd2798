package cmd

import (
	"testing"

	"github.com/theirongolddev/xpense/internal/config"
	"github.com/theirongolddev/xpense/internal/theme"

	"github.com/charmbracelet/huh"
)

func TestSetupForm_Builds(t *testing.T) {
	cfg := config.DefaultConfig()
	save := true

	form := newSetupForm(&cfg, &save)
	if form == nil {
		t.Fatal("newSetupForm returned nil")
	}
	if form.State != huh.StateNormal {
		t.Errorf("State = %v, want normal before running", form.State)
	}
}

func TestThemeOptions_CoverAllThemes(t *testing.T) {
	opts := themeOptions()
	if len(opts) != len(theme.All) {
		t.Fatalf("got %d theme options, want %d", len(opts), len(theme.All))
	}
	for i, th := range theme.All {
		if opts[i].Value != th.Name || opts[i].Key != th.Name {
			t.Errorf("option %d = (%q, %q), want %q", i, opts[i].Key, opts[i].Value, th.Name)
		}
	}
}

func TestValidatePath(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		if err := validatePath(in); err == nil {
			t.Errorf("validatePath(%q) accepted a blank path", in)
		}
	}
	for _, in := range []string{"expenses.json", "/data/spend.db"} {
		if err := validatePath(in); err != nil {
			t.Errorf("validatePath(%q) = %v", in, err)
		}
	}
}
