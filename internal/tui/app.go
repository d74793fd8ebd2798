// Package tui provides the interactive Bubble Tea expense browser.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/log"
	"github.com/theirongolddev/xpense/internal/persist"
	"github.com/theirongolddev/xpense/internal/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 50
	maxContentWidth  = 100

	// Rows taken by the title, total, status and help lines.
	chromeHeight     = 8
	minContentHeight = 3

	numWidth    = 4
	countWidth  = 7
	amountWidth = 14
)

// App is the root Bubble Tea model.
type App struct {
	store    *expense.Store
	backend  persist.Backend
	currency string
	log      *log.Logger

	table table.Model

	// UI state
	width       int
	height      int
	showHelp    bool
	confirmQuit bool
	dirty       bool
	status      string
	statusErr   bool
}

// NewApp creates a browser over store. Saves go to backend.
func NewApp(store *expense.Store, backend persist.Backend, currency string, logger *log.Logger) App {
	if logger == nil {
		logger = log.Discard()
	}
	if currency == "" {
		currency = "$"
	}
	a := App{
		store:    store,
		backend:  backend,
		currency: currency,
		log:      logger.WithComponent("tui"),
		table: table.New(
			table.WithColumns(columns(maxContentWidth)),
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	a.table.SetStyles(tableStyles())
	a.refreshRows()
	return a
}

// Dirty reports whether the store changed since the last save.
func (a App) Dirty() bool { return a.dirty }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetColumns(columns(a.contentWidth()))
		a.table.SetHeight(max(a.height-chromeHeight, minContentHeight))
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Unsaved-changes prompt intercepts all keys
		if a.confirmQuit {
			a.confirmQuit = false
			if key == "y" || key == "Y" {
				a.log.Warn("quit with unsaved changes")
				return a, tea.Quit
			}
			a.setStatus("Quit cancelled", false)
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q", "esc":
			if a.dirty {
				a.confirmQuit = true
				return a, nil
			}
			return a, tea.Quit
		case "x", "delete":
			a.deleteSelected()
			return a, nil
		case "w":
			a.save()
			return a, nil
		}

		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) deleteSelected() {
	row := a.table.SelectedRow()
	if row == nil {
		a.setStatus("Nothing to delete", true)
		return
	}
	desc := row[1]
	// Set with no amounts deletes the key, including a description named "c".
	if err := a.store.Set(desc, nil); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.dirty = true
	a.log.Debug("removed expense", "description", desc)
	a.refreshRows()
	a.setStatus(fmt.Sprintf("Removed '%s'", desc), false)
}

func (a *App) save() {
	if err := a.backend.Save(a.store); err != nil {
		a.log.Error("save failed", "path", a.backend.Path(), "err", err)
		a.setStatus("Save failed: "+err.Error(), true)
		return
	}
	a.dirty = false
	a.setStatus("Saved to "+a.backend.Path(), false)
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// refreshRows rebuilds the table from the store, one row per description.
func (a *App) refreshRows() {
	sum, _ := a.store.List()
	rows := make([]table.Row, 0, len(sum.Lines))
	for i, line := range sum.Lines {
		var subtotal float64
		for _, v := range line.Amounts {
			subtotal += v
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			line.Description,
			strconv.Itoa(len(line.Amounts)),
			cli.FormatAmount(a.currency, subtotal),
		})
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) {
		a.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// columns sizes the description column to fill the content width.
func columns(width int) []table.Column {
	desc := width - numWidth - countWidth - amountWidth - 8
	if desc < 12 {
		desc = 12
	}
	return []table.Column{
		{Title: "#", Width: numWidth},
		{Title: "Description", Width: desc},
		{Title: "Entries", Width: countWidth},
		{Title: "Subtotal", Width: amountWidth},
	}
}

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)
	return s
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	return fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  xpense needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Money).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Expenses"))
	if a.dirty {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Warn).Render("  [modified]"))
	}
	b.WriteString("\n\n")

	if a.store.Len() == 0 {
		b.WriteString(labelStyle.Render("  You don't have any expenses recorded."))
		b.WriteString("\n")
	} else {
		b.WriteString(a.table.View())
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "  %s %s  %s\n",
			labelStyle.Render("Total"),
			moneyStyle.Render(cli.FormatAmount(a.currency, a.store.Total())),
			labelStyle.Render("("+cli.Plural(a.entryCount(), "entry", "entries")+")"))
	}
	b.WriteString("\n")

	switch {
	case a.confirmQuit:
		b.WriteString(lipgloss.NewStyle().Foreground(t.Warn).Bold(true).
			Render("  Unsaved changes. Quit anyway? (y/N)"))
	case a.status != "":
		style := lipgloss.NewStyle().Foreground(t.Money)
		if a.statusErr {
			style = lipgloss.NewStyle().Foreground(t.Error)
		}
		b.WriteString(style.Render("  " + a.status))
	}
	b.WriteString("\n")

	b.WriteString(renderStatusBar(cw, a.backend.Path(), a.dirty))
	return b.String()
}

func (a App) entryCount() int {
	n := 0
	for _, d := range a.store.Descriptions() {
		amounts, _ := a.store.Amounts(d)
		n += len(amounts)
	}
	return n
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"j k", "Move selection"},
		{"g G", "First / last row"},
		{"x", "Delete selected description"},
		{"w", "Save"},
		{"q", "Quit"},
		{"?", "Toggle help"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}
