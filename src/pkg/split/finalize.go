package split

import (
	"fmt"
	"math"
	"strings"
)

/*
InvariantViolation reports why a session cannot finalize. It is a queryable
guard result, never a panic or an error value thrown through the stack: the
caller checks it before allowing the transition and shows the specifics.
*/
type InvariantViolation struct {
	// UnassignedItems holds the blocking item indices in item mode.
	UnassignedItems []int

	// PercentageSum is the offending sum in percentage mode.
	PercentageSum float64

	Reason string
}

func (v *InvariantViolation) String() string {
	return v.Reason
}

// PersonShare is one person's finalized slice of the bill.
type PersonShare struct {
	Name     string  `json:"name"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Summary is the finalized, shareable outcome of a session.
type Summary struct {
	Shares   []PersonShare `json:"shares"`
	Currency string        `json:"currency"`
	Mode     Mode          `json:"mode"`
}

/*
CanFinalize checks the finalization guard without touching any state.

Item mode requires every item to have at least one assignee; percentage mode
requires the shares to sum to 100 within PercentageTolerance. The violation
names exactly what is unmet.
*/
func (s *Session) CanFinalize() (bool, *InvariantViolation) {
	if len(s.People) == 0 {
		return false, &InvariantViolation{Reason: "no people to split between"}
	}

	if s.Mode == ModeByItem {
		unassigned := s.UnassignedItems()
		if len(unassigned) > 0 {
			names := make([]string, 0, len(unassigned))
			for _, index := range unassigned {
				names = append(names, fmt.Sprintf("#%d %s", index+1, s.Receipt.Items[index].Name))
			}
			return false, &InvariantViolation{
				UnassignedItems: unassigned,
				Reason:          "unassigned items: " + strings.Join(names, ", "),
			}
		}
		return true, nil
	}

	sum := 0.0
	for _, percentage := range s.Percentages {
		sum += percentage
	}
	if math.Abs(sum-100) > PercentageTolerance {
		return false, &InvariantViolation{
			PercentageSum: sum,
			Reason:        fmt.Sprintf("percentages sum to %.3f, expected 100", sum),
		}
	}

	return true, nil
}

/*
Finalize validates the session and, when the guard passes, computes the
summary and moves the session to its terminal finalized phase. On a
violation nothing is mutated and the session stays editable.
*/
func (s *Session) Finalize() (*Summary, *InvariantViolation) {
	s.phase = PhaseValidating
	ok, violation := s.CanFinalize()
	if !ok {
		s.phase = PhaseEditing
		return nil, violation
	}

	subtotals := s.PerPersonSubtotal()
	discounts := s.PerPersonDiscount()
	taxes := s.PerPersonTax()
	totals := s.PerPersonTotal()

	summary := &Summary{
		Currency: string(s.Receipt.Currency),
		Mode:     s.Mode,
		Shares:   make([]PersonShare, len(s.People)),
	}
	for index, name := range s.People {
		summary.Shares[index] = PersonShare{
			Name:     name,
			Subtotal: subtotals[index],
			Discount: discounts[index],
			Tax:      taxes[index],
			Total:    totals[index],
		}
	}

	s.phase = PhaseFinalized
	return summary, nil
}
