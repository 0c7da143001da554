// Package split is the cost-allocation engine: given a structured receipt
// and a list of people, it computes each person's subtotal, discount, tax and
// total share under either explicit item assignment or percentage shares.
//
// A Session carries all state explicitly. Every recompute is a pure function
// of (receipt, people, assignments/percentages, modes), so recomputing on
// every input change needs no coordination and independent sessions can run
// in parallel tests.
package split

import (
	"fmt"
	"sort"

	"splitbill/src/pkg/receipt"
)

// Mode selects how the subtotal is allocated.
type Mode string

const (
	// ModeByItem splits each item's price evenly among its assignees.
	ModeByItem Mode = "by-item"

	// ModePercentage splits the receipt subtotal by fixed percentage shares.
	ModePercentage Mode = "percentage"
)

/*
ParseMode validates a mode string from user input. Unknown values are an
error, never a silent fallback to item mode.
*/
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeByItem, ModePercentage:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("unknown split mode %q, expected %q or %q", value, ModeByItem, ModePercentage)
	}
}

// TaxSplit selects how tax is allocated.
type TaxSplit string

const (
	// TaxSplitEqual divides tax evenly across everyone.
	TaxSplitEqual TaxSplit = "equal"

	// TaxSplitAssigned puts the full tax on one designated person.
	TaxSplitAssigned TaxSplit = "assigned"
)

// ParseTaxSplit validates a tax-split string from user input.
func ParseTaxSplit(value string) (TaxSplit, error) {
	switch TaxSplit(value) {
	case TaxSplitEqual, TaxSplitAssigned:
		return TaxSplit(value), nil
	default:
		return "", fmt.Errorf("unknown tax split %q, expected %q or %q", value, TaxSplitEqual, TaxSplitAssigned)
	}
}

// Phase is the allocation session lifecycle.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseEditing    Phase = "editing"
	PhaseValidating Phase = "validating"
	PhaseFinalized  Phase = "finalized"
)

// PercentageTolerance is how far from 100 the percentage sum may drift and
// still finalize.
const PercentageTolerance = 0.001

// Session is one allocation session over one receipt.
type Session struct {
	Receipt receipt.Receipt
	People  []string

	// Assignments maps item index to the person indices sharing that item.
	// Only meaningful in ModeByItem.
	Assignments map[int][]int

	// Percentages holds one share per person, expected to sum to 100.
	// Only meaningful in ModePercentage.
	Percentages []float64

	Mode     Mode
	TaxSplit TaxSplit

	// TaxPayer is the person index bearing full tax under TaxSplitAssigned.
	TaxPayer int

	phase Phase
}

/*
NewSession starts an allocation session in the editing phase. Every item is
initially assigned to the first person, and percentages start as an equal
split, both matching how a fresh receipt is presented for editing.
*/
func NewSession(r receipt.Receipt, people []string) *Session {
	session := &Session{
		Receipt:  r,
		People:   append([]string(nil), people...),
		Mode:     ModeByItem,
		TaxSplit: TaxSplitEqual,
		phase:    PhaseLoading,
	}

	session.Assignments = make(map[int][]int, len(r.Items))
	if len(people) > 0 {
		for index := range r.Items {
			session.Assignments[index] = []int{0}
		}
	}
	session.Percentages = normalizePercentages(len(people))
	session.phase = PhaseEditing

	return session
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

/*
SetMode switches the allocation mode. Changing the mode always returns the
session to editing: a finalized split is never silently mutated into a
different one.
*/
func (s *Session) SetMode(mode Mode) {
	s.Mode = mode
	s.phase = PhaseEditing
}

// SetTaxSplit switches the tax mode and returns the session to editing.
func (s *Session) SetTaxSplit(taxSplit TaxSplit, taxPayer int) {
	s.TaxSplit = taxSplit
	s.TaxPayer = taxPayer
	if s.TaxPayer >= len(s.People) {
		s.TaxPayer = len(s.People) - 1
	}
	if s.TaxPayer < 0 {
		s.TaxPayer = 0
	}
	s.phase = PhaseEditing
}

/*
AddPerson appends a person. Percentages are re-normalized to an equal split,
since the old vector no longer matches the list shape.
*/
func (s *Session) AddPerson(name string) {
	s.People = append(s.People, name)
	s.Percentages = normalizePercentages(len(s.People))
	s.phase = PhaseEditing
}

/*
RemovePerson deletes the person at index and renumbers every data structure
keyed by person index in the same step: assignment entries referencing the
removed person disappear, higher indices shift down by one, percentages are
re-normalized, and the tax payer is clamped back into range.
*/
func (s *Session) RemovePerson(index int) {
	if index < 0 || index >= len(s.People) {
		return
	}

	s.People = append(s.People[:index], s.People[index+1:]...)

	renumbered := make(map[int][]int, len(s.Assignments))
	for itemIndex, assignees := range s.Assignments {
		var kept []int
		for _, person := range assignees {
			if person == index {
				continue
			}
			if person > index {
				person--
			}
			kept = append(kept, person)
		}
		renumbered[itemIndex] = kept
	}
	s.Assignments = renumbered

	s.Percentages = normalizePercentages(len(s.People))
	if s.TaxPayer >= len(s.People) {
		s.TaxPayer = len(s.People) - 1
		if s.TaxPayer < 0 {
			s.TaxPayer = 0
		}
	}
	s.phase = PhaseEditing
}

// RenamePerson changes a person's display name. Names are labels only, so
// this does not reset anything.
func (s *Session) RenamePerson(index int, name string) {
	if index < 0 || index >= len(s.People) {
		return
	}
	s.People[index] = name
}

/*
ToggleAssignment adds or removes a person from an item's assignee set.
*/
func (s *Session) ToggleAssignment(itemIndex int, personIndex int) {
	if itemIndex < 0 || itemIndex >= len(s.Receipt.Items) {
		return
	}
	if personIndex < 0 || personIndex >= len(s.People) {
		return
	}

	current := s.Assignments[itemIndex]
	for position, person := range current {
		if person == personIndex {
			s.Assignments[itemIndex] = append(current[:position], current[position+1:]...)
			s.phase = PhaseEditing
			return
		}
	}
	s.Assignments[itemIndex] = append(current, personIndex)
	sort.Ints(s.Assignments[itemIndex])
	s.phase = PhaseEditing
}

// IsAssigned reports whether the person is currently in the item's
// assignee set.
func (s *Session) IsAssigned(itemIndex int, personIndex int) bool {
	for _, person := range s.Assignments[itemIndex] {
		if person == personIndex {
			return true
		}
	}
	return false
}

/*
SetPercentage sets one person's share, clamped to [0, 100] and rounded to 2
decimals.
*/
func (s *Session) SetPercentage(personIndex int, percentage float64) {
	if personIndex < 0 || personIndex >= len(s.Percentages) {
		return
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	s.Percentages[personIndex] = receipt.Round2(percentage)
	s.phase = PhaseEditing
}

/*
UnassignedItems lists the item indices with an empty assignee set. Such items
contribute to nobody's subtotal and block finalization in item mode.
*/
func (s *Session) UnassignedItems() []int {
	var unassigned []int
	for index := range s.Receipt.Items {
		if len(s.Assignments[index]) == 0 {
			unassigned = append(unassigned, index)
		}
	}
	return unassigned
}

/*
normalizePercentages builds an equal split summing to exactly 100: every
entry gets round2(100/n) and the last entry absorbs the rounding remainder.
*/
func normalizePercentages(count int) []float64 {
	if count <= 0 {
		return nil
	}

	base := receipt.Round2(100 / float64(count))
	percentages := make([]float64, count)
	sum := 0.0
	for index := range percentages {
		percentages[index] = base
		sum += base
	}

	diff := receipt.Round2(100 - sum)
	percentages[count-1] = receipt.Round2(percentages[count-1] + diff)

	return percentages
}
