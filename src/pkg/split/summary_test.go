package split

import (
	"strings"
	"testing"
)

func TestShareText(t *testing.T) {
	session := NewSession(twoPersonReceipt(), []string{"Andi", "Budi"})
	session.ToggleAssignment(1, 0)
	session.ToggleAssignment(1, 1)
	session.ToggleAssignment(2, 1)

	summary, violation := session.Finalize()
	if violation != nil {
		t.Fatalf("unexpected violation: %v", violation)
	}

	text := summary.ShareText(session.Receipt)

	for _, want := range []string{
		"Split Bill",
		"Subtotal: Rp50.000",
		"Discount: -Rp5.000",
		"Tax: Rp4.500",
		"Total: Rp49.500",
		"Andi: Rp33.750",
		"Budi: Rp15.750",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("share text missing %q:\n%s", want, text)
		}
	}
}
