package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/persist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(t *testing.T) (App, persist.Backend) {
	t.Helper()
	store := expense.NewStore()
	for _, e := range []struct{ desc, amount string }{
		{"coffee", "3.5"},
		{"coffee", "4"},
		{"rent", "1200"},
	} {
		if _, err := store.Add(e.desc, e.amount); err != nil {
			t.Fatal(err)
		}
	}
	backend, err := persist.Open(persist.KindJSON, filepath.Join(t.TempDir(), "expenses.json"), nil)
	if err != nil {
		t.Fatal(err)
	}
	a := NewApp(store, backend, "$", nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(App), backend
}

func press(t *testing.T, a App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestView_ListsDescriptionsAndTotal(t *testing.T) {
	a, _ := newTestApp(t)
	view := a.View()

	for _, want := range []string{"coffee", "rent", "$7.50", "$1,200.00", "$1,207.50", "3 entries"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDeleteSelected(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "down")
	a, _ = press(t, a, "x")

	if _, ok := a.store.Amounts("rent"); ok {
		t.Error("rent still present after delete")
	}
	if _, ok := a.store.Amounts("coffee"); !ok {
		t.Error("coffee removed instead of the selected row")
	}
	if !a.Dirty() {
		t.Error("app not marked dirty after delete")
	}
	if !strings.Contains(a.View(), "Removed 'rent'") {
		t.Error("missing removal status")
	}
}

func TestDeleteLastRowThenEmpty(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = press(t, a, "x")
	a, _ = press(t, a, "x")
	a, _ = press(t, a, "x")

	if a.store.Len() != 0 {
		t.Fatalf("store has %d descriptions, want 0", a.store.Len())
	}
	if !strings.Contains(a.View(), "Nothing to delete") {
		t.Error("missing empty delete status")
	}
}

func TestSaveWritesFile(t *testing.T) {
	a, backend := newTestApp(t)
	a, _ = press(t, a, "x")
	a, _ = press(t, a, "w")

	if a.Dirty() {
		t.Error("still dirty after save")
	}
	got, found, err := backend.Load()
	if err != nil || !found {
		t.Fatalf("reload: found=%v err=%v", found, err)
	}
	if got.Len() != 1 {
		t.Errorf("saved %d descriptions, want 1", got.Len())
	}
}

func TestQuit(t *testing.T) {
	t.Run("clean quits immediately", func(t *testing.T) {
		a, _ := newTestApp(t)
		if _, cmd := press(t, a, "q"); !isQuit(cmd) {
			t.Error("q did not quit a clean session")
		}
	})

	t.Run("dirty asks first", func(t *testing.T) {
		a, backend := newTestApp(t)
		a, _ = press(t, a, "x")

		a, cmd := press(t, a, "q")
		if isQuit(cmd) {
			t.Fatal("quit without confirmation while dirty")
		}
		if !strings.Contains(a.View(), "Quit anyway?") {
			t.Error("missing unsaved prompt")
		}

		a, cmd = press(t, a, "n")
		if isQuit(cmd) {
			t.Fatal("declined prompt still quit")
		}

		a, _ = press(t, a, "q")
		if _, cmd = press(t, a, "y"); !isQuit(cmd) {
			t.Error("confirmed prompt did not quit")
		}
		if _, err := os.Stat(backend.Path()); !os.IsNotExist(err) {
			t.Error("quit without saving wrote the data file")
		}
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		a, _ := newTestApp(t)
		a, _ = press(t, a, "x")
		if _, cmd := press(t, a, "ctrl+c"); !isQuit(cmd) {
			t.Error("ctrl+c did not quit")
		}
	})
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.View(), "Terminal too narrow") {
		t.Error("narrow terminal not reported")
	}
}

func TestStatusBarFitsWidth(t *testing.T) {
	bar := renderStatusBar(60, "/very/long/path/to/some/nested/expenses/file.json", true)
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
}
