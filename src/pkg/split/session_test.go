package split

import (
	"strings"
	"testing"

	"splitbill/src/pkg/receipt"
)

func TestNewSessionDefaults(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})

	if session.Phase() != PhaseEditing {
		t.Errorf("phase = %v, want %v", session.Phase(), PhaseEditing)
	}
	if session.Mode != ModeByItem {
		t.Errorf("mode = %v, want %v", session.Mode, ModeByItem)
	}
	for itemIndex := range session.Receipt.Items {
		if !session.IsAssigned(itemIndex, 0) {
			t.Errorf("item %d not assigned to the first person by default", itemIndex)
		}
	}

	sum := 0.0
	for _, percentage := range session.Percentages {
		sum += percentage
	}
	if sum != 100 {
		t.Errorf("default percentages sum to %v, want exactly 100", sum)
	}
}

func TestNormalizePercentagesSumToExactly100(t *testing.T) {
	for _, count := range []int{1, 2, 3, 6, 7} {
		percentages := normalizePercentages(count)

		sum := 0.0
		for _, percentage := range percentages {
			sum += percentage
		}
		if receipt.Round2(sum) != 100 {
			t.Errorf("count=%d: percentages sum to %v, want 100", count, sum)
		}
	}
}

func TestToggleAssignment(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})

	session.ToggleAssignment(0, 1)
	if !session.IsAssigned(0, 1) {
		t.Error("toggle on did not assign")
	}
	session.ToggleAssignment(0, 1)
	if session.IsAssigned(0, 1) {
		t.Error("toggle off did not unassign")
	}

	// out-of-range indexes are ignored
	session.ToggleAssignment(99, 0)
	session.ToggleAssignment(0, 99)
}

func TestRemovePersonRenumbers(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi", "Citra"})
	// item 0: Andi+Citra, item 1: Budi, item 2: Citra
	session.ToggleAssignment(0, 2)
	session.ToggleAssignment(1, 0)
	session.ToggleAssignment(1, 1)
	session.ToggleAssignment(2, 0)
	session.ToggleAssignment(2, 2)

	session.RemovePerson(1) // drop Budi

	if len(session.People) != 2 || session.People[1] != "Citra" {
		t.Fatalf("people = %v, want [Andi Citra]", session.People)
	}
	// Citra was index 2, must now be index 1 everywhere
	if !session.IsAssigned(0, 0) || !session.IsAssigned(0, 1) {
		t.Errorf("item 0 assignments = %v, want [0 1]", session.Assignments[0])
	}
	if len(session.Assignments[1]) != 0 {
		t.Errorf("item 1 assignments = %v, want empty after removing its only assignee", session.Assignments[1])
	}
	if !session.IsAssigned(2, 1) || session.IsAssigned(2, 0) {
		t.Errorf("item 2 assignments = %v, want [1]", session.Assignments[2])
	}

	sum := 0.0
	for _, percentage := range session.Percentages {
		sum += percentage
	}
	if sum != 100 {
		t.Errorf("percentages after removal sum to %v, want 100", sum)
	}
}

func TestRemovePersonClampsTaxPayer(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.SetTaxSplit(TaxSplitAssigned, 1)

	session.RemovePerson(1)

	if session.TaxPayer != 0 {
		t.Errorf("tax payer = %d, want clamped to 0", session.TaxPayer)
	}
}

func TestFinalizeBlocksOnUnassignedItem(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.ToggleAssignment(1, 0) // Es Teh now has nobody

	summary, violation := session.Finalize()
	if summary != nil {
		t.Fatal("expected no summary for a blocked finalize")
	}
	if violation == nil {
		t.Fatal("expected a violation")
	}
	if len(violation.UnassignedItems) != 1 || violation.UnassignedItems[0] != 1 {
		t.Errorf("unassigned items = %v, want [1]", violation.UnassignedItems)
	}
	if !strings.Contains(violation.Reason, "#2 Es Teh") {
		t.Errorf("reason %q does not name the blocking item", violation.Reason)
	}
	if session.Phase() != PhaseEditing {
		t.Errorf("phase = %v, want back to %v", session.Phase(), PhaseEditing)
	}
}

func TestFinalizeBlocksOnBadPercentageSum(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.SetMode(ModePercentage)
	session.SetPercentage(0, 60)
	session.SetPercentage(1, 30)

	summary, violation := session.Finalize()
	if summary != nil {
		t.Fatal("expected no summary for a blocked finalize")
	}
	if violation == nil || violation.PercentageSum != 90 {
		t.Fatalf("violation = %+v, want percentage sum 90", violation)
	}
}

func TestFinalizeSummary(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.ToggleAssignment(1, 0)
	session.ToggleAssignment(1, 1)
	session.ToggleAssignment(2, 1)

	summary, violation := session.Finalize()
	if violation != nil {
		t.Fatalf("unexpected violation: %v", violation)
	}
	if session.Phase() != PhaseFinalized {
		t.Errorf("phase = %v, want %v", session.Phase(), PhaseFinalized)
	}
	if summary.Currency != "IDR" || summary.Mode != ModeByItem {
		t.Errorf("summary header = %s/%s, want IDR/by-item", summary.Currency, summary.Mode)
	}
	if len(summary.Shares) != 2 {
		t.Fatalf("got %d shares, want 2", len(summary.Shares))
	}

	andi := summary.Shares[0]
	if andi.Name != "Andi" || !almostEqual(andi.Subtotal, 35000) || !almostEqual(andi.Discount, 3500) ||
		!almostEqual(andi.Tax, 2250) || !almostEqual(andi.Total, 33750) {
		t.Errorf("Andi share = %+v", andi)
	}
	budi := summary.Shares[1]
	if budi.Name != "Budi" || !almostEqual(budi.Total, 15750) {
		t.Errorf("Budi share = %+v", budi)
	}
}

func TestSetPercentageClamps(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.SetMode(ModePercentage)

	session.SetPercentage(0, -5)
	if session.Percentages[0] != 0 {
		t.Errorf("negative percentage = %v, want clamped to 0", session.Percentages[0])
	}
	session.SetPercentage(0, 150)
	if session.Percentages[0] != 100 {
		t.Errorf("oversized percentage = %v, want clamped to 100", session.Percentages[0])
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		value   string
		want    Mode
		wantErr bool
	}{
		{value: "by-item", want: ModeByItem},
		{value: "percentage", want: ModePercentage},
		{value: "", wantErr: true},
		{value: "By-Item", wantErr: true},
		{value: "items", wantErr: true},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) accepted an unknown mode", tt.value)
			}
			continue
		}
		if err != nil || mode != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", tt.value, mode, err, tt.want)
		}
	}
}

func TestParseTaxSplit(t *testing.T) {
	tests := []struct {
		value   string
		want    TaxSplit
		wantErr bool
	}{
		{value: "equal", want: TaxSplitEqual},
		{value: "assigned", want: TaxSplitAssigned},
		{value: "", wantErr: true},
		{value: "payer", wantErr: true},
	}

	for _, tt := range tests {
		taxSplit, err := ParseTaxSplit(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTaxSplit(%q) accepted an unknown value", tt.value)
			}
			continue
		}
		if err != nil || taxSplit != tt.want {
			t.Errorf("ParseTaxSplit(%q) = %v, %v, want %v", tt.value, taxSplit, err, tt.want)
		}
	}
}
