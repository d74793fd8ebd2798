// Package expense holds the in-memory expense store: descriptions mapped to the
// amounts recorded under them, in the order they were first seen.
package expense

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ClearAllDirective is the remove input that asks to empty the whole store.
const ClearAllDirective = "c"

// Entry is a single recorded amount.
type Entry struct {
	Description string
	Amount      float64
}

// Line is one description with every amount recorded under it.
type Line struct {
	Description string
	Amounts     []float64
}

// Summary is the full store contents plus the grand total.
type Summary struct {
	Lines []Line
	Total float64
}

// Count returns the number of individual amounts in the summary.
func (s Summary) Count() int {
	n := 0
	for _, l := range s.Lines {
		n += len(l.Amounts)
	}
	return n
}

// RemoveOutcome reports what a Remove call did.
type RemoveOutcome int

const (
	// NothingToRemove means the store was already empty.
	NothingToRemove RemoveOutcome = iota
	// Removed means one description and all its amounts were deleted.
	Removed
	// Cleared means the clear-all directive was confirmed.
	Cleared
	// Cancelled means the clear-all directive was declined.
	Cancelled
)

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func() (bool, error)

// Store maps normalized descriptions to their amounts. The zero value is not
// usable; create one with NewStore. A Store is not safe for concurrent use.
type Store struct {
	order   []string
	amounts map[string][]float64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{amounts: make(map[string][]float64)}
}

// Add validates and records one expense.
func (s *Store) Add(description, amount string) (Entry, error) {
	desc, err := NormalizeDescription(description)
	if err != nil {
		return Entry{}, err
	}
	v, err := ParseAmount(amount)
	if err != nil {
		return Entry{}, err
	}
	s.append(desc, v)
	return Entry{Description: desc, Amount: v}, nil
}

// Set replaces the amounts stored under description. An empty amounts slice
// deletes the description. Used when restoring persisted data.
func (s *Store) Set(description string, amounts []float64) error {
	desc, err := NormalizeDescription(description)
	if err != nil {
		return err
	}
	for _, a := range amounts {
		if err := checkAmount(a); err != nil {
			return err
		}
	}
	if len(amounts) == 0 {
		s.delete(desc)
		return nil
	}
	if _, ok := s.amounts[desc]; !ok {
		s.order = append(s.order, desc)
	}
	s.amounts[desc] = slices.Clone(amounts)
	return nil
}

// List returns every description with its amounts and the grand total.
// The boolean is false when there is nothing recorded.
func (s *Store) List() (Summary, bool) {
	if len(s.order) == 0 {
		return Summary{}, false
	}
	sum := Summary{Lines: make([]Line, 0, len(s.order))}
	for _, d := range s.order {
		amounts := s.amounts[d]
		sum.Lines = append(sum.Lines, Line{Description: d, Amounts: slices.Clone(amounts)})
		for _, a := range amounts {
			sum.Total += a
		}
	}
	return sum, true
}

// Remove deletes a description, or clears the store when input is the
// clear-all directive and confirm answers yes.
func (s *Store) Remove(input string, confirm ConfirmFunc) (RemoveOutcome, error) {
	if len(s.order) == 0 {
		return NothingToRemove, nil
	}

	target := normalize(input)
	if target == ClearAllDirective {
		if confirm == nil {
			return Cancelled, nil
		}
		ok, err := confirm()
		if err != nil {
			return Cancelled, err
		}
		if !ok {
			return Cancelled, nil
		}
		s.Clear()
		return Cleared, nil
	}

	desc, err := NormalizeDescription(target)
	if err != nil {
		return NothingToRemove, err
	}
	if _, ok := s.amounts[desc]; !ok {
		return NothingToRemove, notFound(desc)
	}
	s.delete(desc)
	return Removed, nil
}

// Clear drops every description.
func (s *Store) Clear() {
	s.order = nil
	s.amounts = make(map[string][]float64)
}

// Len returns the number of descriptions.
func (s *Store) Len() int {
	return len(s.order)
}

// Total returns the sum of every recorded amount.
func (s *Store) Total() float64 {
	var total float64
	for _, d := range s.order {
		for _, a := range s.amounts[d] {
			total += a
		}
	}
	return total
}

// Descriptions returns the descriptions in insertion order.
func (s *Store) Descriptions() []string {
	return slices.Clone(s.order)
}

// Amounts returns a copy of the amounts recorded under description.
func (s *Store) Amounts(description string) ([]float64, bool) {
	a, ok := s.amounts[normalize(description)]
	if !ok {
		return nil, false
	}
	return slices.Clone(a), true
}

// Equal reports whether both stores hold the same descriptions, in the same
// order, with the same amount sequences.
func (s *Store) Equal(o *Store) bool {
	if !slices.Equal(s.order, o.order) {
		return false
	}
	for _, d := range s.order {
		if !slices.Equal(s.amounts[d], o.amounts[d]) {
			return false
		}
	}
	return true
}

// Suggest returns the recorded description closest to input, if one is
// within a few edits of it.
func (s *Store) Suggest(input string) (string, bool) {
	target := normalize(input)
	if target == "" {
		return "", false
	}

	maxDist := len([]rune(target)) / 3
	if maxDist < 2 {
		maxDist = 2
	}

	best, bestDist := "", maxDist+1
	for _, d := range s.order {
		dist := levenshtein.ComputeDistance(target, d)
		if dist > 0 && dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, best != ""
}

func (s *Store) append(desc string, amount float64) {
	if _, ok := s.amounts[desc]; !ok {
		s.order = append(s.order, desc)
	}
	s.amounts[desc] = append(s.amounts[desc], amount)
}

func (s *Store) delete(desc string) {
	if _, ok := s.amounts[desc]; !ok {
		return
	}
	delete(s.amounts, desc)
	s.order = slices.DeleteFunc(s.order, func(d string) bool { return d == desc })
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
