// Package theme defines the colour palettes used by the menu tables and the
// dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme assigns a colour to each role used in xpense output.
type Theme struct {
	Name        string
	Surface     lipgloss.Color // selected row background
	Border      lipgloss.Color
	TextDim     lipgloss.Color // table rules, hints
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color // headers, active states
	Money       lipgloss.Color // amounts and totals
	Warn        lipgloss.Color // recoverable errors, unsaved marker
	Error       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Surface:     lipgloss.Color("#282726"),
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Money:       lipgloss.Color("#879A39"),
	Warn:        lipgloss.Color("#DA702C"),
	Error:       lipgloss.Color("#D14D41"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Surface:     lipgloss.Color("#45475A"),
	Border:      lipgloss.Color("#585B70"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	TextPrimary: lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Money:       lipgloss.Color("#A6E3A1"),
	Warn:        lipgloss.Color("#FAB387"),
	Error:       lipgloss.Color("#F38BA8"),
}

// Terminal uses ANSI 16 colours only.
var Terminal = Theme{
	Name:        "terminal",
	Surface:     lipgloss.Color("8"),
	Border:      lipgloss.Color("8"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Money:       lipgloss.Color("2"),
	Warn:        lipgloss.Color("3"),
	Error:       lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// Names lists the available theme names.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
