package split

import (
	"math"
	"testing"

	"splitbill/src/pkg/receipt"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func twoPersonReceipt() receipt.Receipt {
	return receipt.Receipt{
		Items: []receipt.Item{
			{Name: "Nasi Goreng", Quantity: 1, Price: 25000},
			{Name: "Es Teh", Quantity: 1, Price: 5000},
			{Name: "Roti", Quantity: 2, Price: 20000},
		},
		Subtotal: 50000,
		Discount: 5000,
		Tax:      4500,
		Total:    49500,
		Currency: receipt.CurrencyIDR,
	}
}

func TestPerPersonSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
		want  []float64
	}{
		{
			name: "item mode with a shared item",
			setup: func(s *Session) {
				// item 0 -> Andi, item 1 -> Budi, item 2 shared
				s.ToggleAssignment(1, 0) // remove default Andi
				s.ToggleAssignment(1, 1)
				s.ToggleAssignment(2, 1) // Roti now Andi+Budi
			},
			want: []float64{35000, 15000},
		},
		{
			name: "item mode default assigns everything to the first person",
			setup: func(s *Session) {
			},
			want: []float64{50000, 0},
		},
		{
			name: "percentage mode 60/40",
			setup: func(s *Session) {
				s.SetMode(ModePercentage)
				s.SetPercentage(0, 60)
				s.SetPercentage(1, 40)
			},
			want: []float64{30000, 20000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
			tt.setup(session)

			got := session.PerPersonSubtotal()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(got), len(tt.want))
			}
			for index := range got {
				if !almostEqual(got[index], tt.want[index]) {
					t.Errorf("share[%d] = %v, want %v", index, got[index], tt.want[index])
				}
			}
		})
	}
}

func TestPerPersonSubtotalUnevenShareRounding(t *testing.T) {
	r := receipt.Receipt{
		Items: []receipt.Item{
			{Name: "Pizza", Quantity: 1, Price: 100},
		},
		Subtotal: 100,
		Total:    100,
		Currency: receipt.CurrencyUSD,
	}
	session := NewSession(r, []string{"A", "B", "C"})
	session.ToggleAssignment(0, 1)
	session.ToggleAssignment(0, 2)

	got := session.PerPersonSubtotal()
	for index, share := range got {
		if !almostEqual(share, 33.33) {
			t.Errorf("share[%d] = %v, want 33.33", index, share)
		}
	}
}

func TestPerPersonDiscount(t *testing.T) {
	t.Run("proportional to subtotal share", func(t *testing.T) {
		r := receipt.Receipt{
			Items: []receipt.Item{
				{Name: "Steak", Quantity: 1, Price: 200},
				{Name: "Soup", Quantity: 1, Price: 100},
			},
			Subtotal: 300,
			Discount: 30,
			Total:    270,
			Currency: receipt.CurrencyUSD,
		}
		session := NewSession(r, []string{"A", "B"})
		session.ToggleAssignment(1, 0)
		session.ToggleAssignment(1, 1) // Soup -> B only

		got := session.PerPersonDiscount()
		if !almostEqual(got[0], 20) || !almostEqual(got[1], 10) {
			t.Errorf("discounts = %v, want [20 10]", got)
		}
	})

	t.Run("even fallback when nothing is assigned", func(t *testing.T) {
		r := twoPersonReceipt()
		session := NewSession(r, []string{"A", "B"})
		// strip every default assignment
		for itemIndex := range r.Items {
			session.ToggleAssignment(itemIndex, 0)
		}

		got := session.PerPersonDiscount()
		if !almostEqual(got[0], 2500) || !almostEqual(got[1], 2500) {
			t.Errorf("discounts = %v, want even [2500 2500]", got)
		}
	})

	t.Run("zero discount yields zeros", func(t *testing.T) {
		r := twoPersonReceipt()
		r.Discount = 0
		session := NewSession(r, []string{"A", "B"})

		for _, share := range session.PerPersonDiscount() {
			if share != 0 {
				t.Errorf("expected zero discount share, got %v", share)
			}
		}
	})
}

func TestPerPersonTax(t *testing.T) {
	t.Run("equal split", func(t *testing.T) {
		session := NewSession(twoPersonReceipt(), []string{"A", "B"})

		got := session.PerPersonTax()
		if !almostEqual(got[0], 2250) || !almostEqual(got[1], 2250) {
			t.Errorf("taxes = %v, want [2250 2250]", got)
		}
	})

	t.Run("assigned to one payer", func(t *testing.T) {
		session := NewSession(twoPersonReceipt(), []string{"A", "B"})
		session.SetTaxSplit(TaxSplitAssigned, 1)

		got := session.PerPersonTax()
		if !almostEqual(got[0], 0) || !almostEqual(got[1], 4500) {
			t.Errorf("taxes = %v, want [0 4500]", got)
		}
	})

	t.Run("three-way equal split rounds each share", func(t *testing.T) {
		r := receipt.Receipt{
			Items:    []receipt.Item{{Name: "Meal", Quantity: 1, Price: 300}},
			Subtotal: 300,
			Tax:      100,
			Total:    400,
			Currency: receipt.CurrencyUSD,
		}
		session := NewSession(r, []string{"A", "B", "C"})

		for index, share := range session.PerPersonTax() {
			if !almostEqual(share, 33.33) {
				t.Errorf("tax[%d] = %v, want 33.33", index, share)
			}
		}
	})
}

func TestPerPersonTotal(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.ToggleAssignment(1, 0)
	session.ToggleAssignment(1, 1)
	session.ToggleAssignment(2, 1)

	got := session.PerPersonTotal()
	// subtotal [35000 15000], discount [3500 1500], tax [2250 2250]
	if !almostEqual(got[0], 33750) || !almostEqual(got[1], 15750) {
		t.Errorf("totals = %v, want [33750 15750]", got)
	}
}

func TestSubtotalConservation(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.ToggleAssignment(1, 0)
	session.ToggleAssignment(1, 1)
	session.ToggleAssignment(2, 1)

	sum := 0.0
	for _, share := range session.PerPersonSubtotal() {
		sum += share
	}
	if !almostEqual(sum, session.Receipt.Subtotal) {
		t.Errorf("subtotal shares sum to %v, want %v", sum, session.Receipt.Subtotal)
	}
}
