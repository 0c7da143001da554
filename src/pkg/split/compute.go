package split

import "splitbill/src/pkg/receipt"

/*
PerPersonSubtotal computes each person's subtotal share.

Item mode: every item with assignees contributes price/len(assignees) to each
of them; quantity never weights the split, price already being the full line
price. Unassigned items contribute to nobody (they separately block
finalization). Percentage mode: each share is round2(pct/100 * subtotal).
*/
func (s *Session) PerPersonSubtotal() []float64 {
	shares := make([]float64, len(s.People))

	if s.Mode == ModePercentage {
		for index, percentage := range s.Percentages {
			if index < len(shares) {
				shares[index] = receipt.Round2(percentage / 100 * s.Receipt.Subtotal)
			}
		}
		return shares
	}

	for itemIndex, item := range s.Receipt.Items {
		assignees := s.Assignments[itemIndex]
		if len(assignees) == 0 {
			continue
		}
		perPerson := item.Price / float64(len(assignees))
		for _, person := range assignees {
			if person >= 0 && person < len(shares) {
				shares[person] += perPerson
			}
		}
	}
	for index := range shares {
		shares[index] = receipt.Round2(shares[index])
	}

	return shares
}

/*
PerPersonDiscount distributes the discount proportionally to each person's
share of the assigned subtotal: discount is a percentage benefit on what a
person actually consumed, not a flat fee. When nothing is assigned yet the
discount falls back to an even split; a zero discount or an empty person
list yields all zeros.
*/
func (s *Session) PerPersonDiscount() []float64 {
	shares := make([]float64, len(s.People))
	if s.Receipt.Discount == 0 || len(s.People) == 0 {
		return shares
	}

	subtotals := s.PerPersonSubtotal()
	assignedTotal := 0.0
	for _, subtotal := range subtotals {
		assignedTotal += subtotal
	}

	if assignedTotal == 0 {
		even := receipt.Round2(s.Receipt.Discount / float64(len(s.People)))
		for index := range shares {
			shares[index] = even
		}
		return shares
	}

	for index, subtotal := range subtotals {
		shares[index] = receipt.Round2(subtotal / assignedTotal * s.Receipt.Discount)
	}

	return shares
}

/*
PerPersonTax computes each person's tax share: an even round2(tax/n) split,
or the full rounded tax on the designated payer with zero for everyone else.
*/
func (s *Session) PerPersonTax() []float64 {
	shares := make([]float64, len(s.People))
	if s.Receipt.Tax == 0 || len(s.People) == 0 {
		return shares
	}

	if s.TaxSplit == TaxSplitEqual {
		even := receipt.Round2(s.Receipt.Tax / float64(len(s.People)))
		for index := range shares {
			shares[index] = even
		}
		return shares
	}

	payer := s.TaxPayer
	if payer < 0 || payer >= len(s.People) {
		payer = 0
	}
	shares[payer] = receipt.Round2(s.Receipt.Tax)

	return shares
}

/*
PerPersonTotal combines the stage results: round2(subtotal - discount + tax)
per person. Each stage is rounded before combining because each is shown to
the user on its own; the sum of displayed parts must equal the displayed
total. The flip side — the totals summed across people can drift a cent from
the receipt total — is accepted, not reconciled.
*/
func (s *Session) PerPersonTotal() []float64 {
	subtotals := s.PerPersonSubtotal()
	discounts := s.PerPersonDiscount()
	taxes := s.PerPersonTax()

	totals := make([]float64, len(s.People))
	for index := range totals {
		totals[index] = receipt.Round2(subtotals[index] - discounts[index] + taxes[index])
	}

	return totals
}
