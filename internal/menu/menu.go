// Package menu runs the interactive expense menu: a read-choice, dispatch,
// repeat loop over a single expense store.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/xpense/internal/cli"
	"github.com/theirongolddev/xpense/internal/expense"
	"github.com/theirongolddev/xpense/internal/log"
	"github.com/theirongolddev/xpense/internal/persist"
)

// ErrInvalidMenuChoice is reported for non-integer or out-of-range choices.
var ErrInvalidMenuChoice = errors.New("invalid menu choice")

// State is the menu loop state.
type State int

const (
	// Running reads and dispatches one command per step.
	Running State = iota
	// Terminated is reached only through a confirmed quit or closed input.
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

// Choice is a menu action number.
type Choice int

// Menu actions, numbered as shown to the user.
const (
	ChoiceAdd Choice = iota + 1
	ChoiceView
	ChoiceRemove
	ChoiceSaveQuit
)

var choiceLabels = []struct {
	choice Choice
	label  string
}{
	{ChoiceAdd, "Add an Expense"},
	{ChoiceView, "View Expenses"},
	{ChoiceRemove, "Remove an Expense"},
	{ChoiceSaveQuit, "Save & Quit"},
}

// ParseChoice reads a menu selection.
func ParseChoice(s string) (Choice, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number between 1 and 4", ErrInvalidMenuChoice, s)
	}
	if n < int(ChoiceAdd) || n > int(ChoiceSaveQuit) {
		return 0, fmt.Errorf("%w: %d is not between 1 and 4", ErrInvalidMenuChoice, n)
	}
	return Choice(n), nil
}

// Options tune menu output.
type Options struct {
	Currency string
	Logger   *log.Logger
}

// Menu owns the store for the length of an interactive session.
type Menu struct {
	store    *expense.Store
	backend  persist.Backend
	in       *bufio.Reader
	out      io.Writer
	currency string
	log      *log.Logger

	state State
	dirty bool
}

// New returns a menu over an already loaded store.
func New(store *expense.Store, backend persist.Backend, in io.Reader, out io.Writer, opts Options) *Menu {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	return &Menu{
		store:    store,
		backend:  backend,
		in:       bufio.NewReader(in),
		out:      out,
		currency: opts.Currency,
		log:      opts.Logger.WithComponent("menu"),
		state:    Running,
	}
}

// Load restores the store from backend and returns a menu over it. A missing
// data file starts an empty store; a corrupt one is returned as an error.
func Load(backend persist.Backend, in io.Reader, out io.Writer, opts Options) (*Menu, error) {
	store, found, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	m := New(store, backend, in, out, opts)
	if found {
		m.println(cli.RenderMuted("Previous expenses loaded successfully!"))
	} else {
		m.println(cli.RenderMuted("No previous expense records found. Starting fresh!"))
	}
	return m, nil
}

// State returns the current loop state.
func (m *Menu) State() State { return m.state }

// Store returns the store the menu operates on.
func (m *Menu) Store() *expense.Store { return m.store }

// Run steps the menu until the user quits, the context is cancelled, or the
// input is exhausted. Closed input ends the loop without saving.
func (m *Menu) Run(ctx context.Context) error {
	for m.state == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := m.Step()
		if errors.Is(err, io.EOF) {
			m.state = Terminated
			msg := "Input closed; exiting without saving."
			if m.dirty {
				msg = "Input closed; unsaved changes were discarded."
			}
			m.println()
			m.println(cli.RenderWarning(msg))
			m.log.Warn("input closed before quit", "unsaved", m.dirty)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
	return nil
}

// Step runs one loop iteration. User errors are printed and swallowed; only
// input failures (including io.EOF) are returned.
func (m *Menu) Step() error {
	if m.state == Terminated {
		return nil
	}

	m.printMenu()
	line, err := m.prompt("Enter your choice (1-4): ")
	if err != nil {
		return err
	}

	choice, err := ParseChoice(line)
	if err != nil {
		m.printError(err)
		return nil
	}
	m.log.Debug("dispatch", "choice", int(choice))

	switch choice {
	case ChoiceAdd:
		return m.add()
	case ChoiceView:
		m.view()
		return nil
	case ChoiceRemove:
		return m.remove()
	case ChoiceSaveQuit:
		return m.saveAndQuit()
	}
	return nil
}

func (m *Menu) printMenu() {
	m.println()
	m.println(cli.RenderHeading("--- Expense Tracker Menu ---"))
	for _, c := range choiceLabels {
		m.printf("%d. %s\n", c.choice, c.label)
	}
}

func (m *Menu) add() error {
	raw, err := m.prompt("Enter the expense description: ")
	if err != nil {
		return err
	}
	if _, err := expense.NormalizeDescription(raw); err != nil {
		m.printError(err)
		return nil
	}

	amount, err := m.prompt("Enter the price of the expense: ")
	if err != nil {
		return err
	}
	e, err := m.store.Add(raw, amount)
	if err != nil {
		m.printError(err)
		return nil
	}

	m.dirty = true
	m.log.Debug("added expense", "description", e.Description, "amount", e.Amount)
	m.println(cli.RenderSuccess(fmt.Sprintf("Expense '%s' of %s has been added!",
		e.Description, cli.FormatAmount(m.currency, e.Amount))))
	return nil
}

func (m *Menu) view() {
	sum, ok := m.store.List()
	if !ok {
		m.println()
		m.println("You don't have any expenses recorded.")
		return
	}
	m.println()
	m.print(cli.RenderExpenses(sum, m.currency))
}

func (m *Menu) remove() error {
	if m.store.Len() == 0 {
		m.println()
		m.println("There are no expenses to remove!")
		return nil
	}

	input, err := m.prompt("\nEnter the expense you want to remove (or type 'C' to clear all): ")
	if err != nil {
		return err
	}

	outcome, err := m.store.Remove(input, m.confirm("Are you sure you want to clear your entire expense list? (Y/N): "))
	switch {
	case errors.Is(err, io.EOF):
		return err
	case errors.Is(err, expense.ErrNotFound):
		m.printError(err)
		if s, ok := m.store.Suggest(input); ok {
			m.println(cli.RenderMuted(fmt.Sprintf("Did you mean '%s'?", s)))
		}
		return nil
	case err != nil:
		m.printError(err)
		return nil
	}

	switch outcome {
	case expense.Cleared:
		m.dirty = true
		m.log.Debug("cleared all expenses")
		m.println(cli.RenderSuccess("All expenses have been cleared!"))
	case expense.Cancelled:
		m.println("Returning to the menu...")
	case expense.Removed:
		m.dirty = true
		desc, _ := expense.NormalizeDescription(input)
		m.log.Debug("removed expense", "description", desc)
		m.println(cli.RenderSuccess(fmt.Sprintf("'%s' has been removed from your list!", desc)))
	case expense.NothingToRemove:
		m.println("There are no expenses to remove!")
	}
	return nil
}

func (m *Menu) saveAndQuit() error {
	if err := m.backend.Save(m.store); err != nil {
		m.log.Error("save failed", "path", m.backend.Path(), "err", err)
		m.printError(fmt.Errorf("saving expenses: %w", err))
		return nil
	}
	m.dirty = false
	m.println(cli.RenderSuccess("Expenses saved successfully!"))

	answer, err := m.prompt("Are you sure you want to quit? (Y/N): ")
	if err != nil {
		return err
	}
	if !expense.IsAffirmative(answer) {
		m.println("Returning to the menu...")
		return nil
	}

	m.state = Terminated
	m.println("Thank you for using the Expense Tracker! Goodbye!")
	return nil
}

func (m *Menu) confirm(question string) expense.ConfirmFunc {
	return func() (bool, error) {
		answer, err := m.prompt(question)
		if err != nil {
			return false, err
		}
		return expense.IsAffirmative(answer), nil
	}
}

// prompt prints label and reads one line. A final line without a newline is
// returned normally; io.EOF is returned only when nothing was read.
func (m *Menu) prompt(label string) (string, error) {
	m.print(label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *Menu) printError(err error) {
	m.println(cli.RenderError("Error: " + err.Error()))
}

func (m *Menu) print(a ...any) {
	_, _ = fmt.Fprint(m.out, a...)
}

func (m *Menu) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(m.out, format, a...)
}

func (m *Menu) println(a ...any) {
	_, _ = fmt.Fprintln(m.out, a...)
}
