package split

import (
	"fmt"
	"strings"

	"splitbill/src/pkg/receipt"
)

/*
ShareText renders the finalized summary as plain text suitable for pasting
into a chat message or an email body.
*/
func (summary *Summary) ShareText(r receipt.Receipt) string {
	currency := r.Currency

	var b strings.Builder
	b.WriteString("Split Bill\n")
	b.WriteString(fmt.Sprintf("Subtotal: %s\n", currency.Format(r.Subtotal)))
	if r.Discount != 0 {
		b.WriteString(fmt.Sprintf("Discount: -%s\n", currency.Format(r.Discount)))
	}
	if r.Tax != 0 {
		b.WriteString(fmt.Sprintf("Tax: %s\n", currency.Format(r.Tax)))
	}
	b.WriteString(fmt.Sprintf("Total: %s\n", currency.Format(r.Total)))
	b.WriteString("\n")

	for _, share := range summary.Shares {
		b.WriteString(fmt.Sprintf("%s: %s", share.Name, currency.Format(share.Total)))
		details := []string{fmt.Sprintf("items %s", currency.Format(share.Subtotal))}
		if share.Discount != 0 {
			details = append(details, fmt.Sprintf("discount -%s", currency.Format(share.Discount)))
		}
		if share.Tax != 0 {
			details = append(details, fmt.Sprintf("tax %s", currency.Format(share.Tax)))
		}
		b.WriteString(" (" + strings.Join(details, ", ") + ")\n")
	}

	return b.String()
}
