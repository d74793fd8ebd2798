package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/theme"
)

// Separator is a row marker that renders as a horizontal rule.
const Separator = "---"

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// AlignRight marks right-aligned columns. When nil every column after the
	// first is right-aligned.
	AlignRight []bool
}

func (t Table) rightAligned(col int) bool {
	if t.AlignRight == nil {
		return col > 0
	}
	return col < len(t.AlignRight) && t.AlignRight[col]
}

type styleSet struct {
	title, header, value, muted, money, dim, warn, bad lipgloss.Style
}

// current builds styles from the active theme, so a theme switch applies to
// the next render.
func current() styleSet {
	th := theme.Active
	return styleSet{
		title:  lipgloss.NewStyle().Bold(true).Foreground(th.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		value:  lipgloss.NewStyle().Foreground(th.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(th.TextMuted),
		money:  lipgloss.NewStyle().Foreground(th.Money),
		dim:    lipgloss.NewStyle().Foreground(th.TextDim),
		warn:   lipgloss.NewStyle().Foreground(th.Warn),
		bad:    lipgloss.NewStyle().Foreground(th.Error),
	}
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(40).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(current().title.Render(title))
}

// RenderHeading renders a bold accent line, used for menu titles.
func RenderHeading(s string) string { return current().header.Render(s) }

// RenderMuted renders secondary text such as hints.
func RenderMuted(s string) string { return current().muted.Render(s) }

// RenderSuccess renders a confirmation message.
func RenderSuccess(s string) string { return current().money.Render(s) }

// RenderWarning renders a recoverable problem.
func RenderWarning(s string) string { return current().warn.Render(s) }

// RenderError renders an error message.
func RenderError(s string) string { return current().bad.Render(s) }

// RenderTable renders a bordered table with headers and rows.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	st := current()
	headerStyle, valueStyle, dimStyle := st.header, st.value, st.dim

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	pad := func(col int, cell string) string {
		gap := widths[col] - lipgloss.Width(cell)
		if gap < 0 {
			gap = 0
		}
		if t.rightAligned(col) {
			return " " + strings.Repeat(" ", gap) + cell + " "
		}
		return " " + cell + strings.Repeat(" ", gap) + " "
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(i, h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(i, cell)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// ExpenseRows builds table rows for a summary: one row per amount, numbered
// per description, followed by a separator and the total.
func ExpenseRows(sum expense.Summary, currency string) [][]string {
	rows := make([][]string, 0, sum.Count()+2)
	for i, line := range sum.Lines {
		for j, a := range line.Amounts {
			num, desc := "", ""
			if j == 0 {
				num, desc = strconv.Itoa(i+1)+".", line.Description
			}
			rows = append(rows, []string{num, desc, FormatAmount(currency, a)})
		}
	}
	rows = append(rows, []string{Separator})
	rows = append(rows, []string{"", "Total", FormatAmount(currency, sum.Total)})
	return rows
}

// RenderExpenses renders the full expense listing with its total.
func RenderExpenses(sum expense.Summary, currency string) string {
	return RenderTable(Table{
		Title:      fmt.Sprintf("Your Current Expenses (%s)", Plural(sum.Count(), "entry", "entries")),
		Headers:    []string{"#", "Description", "Amount"},
		Rows:       ExpenseRows(sum, currency),
		AlignRight: []bool{true, false, true},
	})
}
