package receipt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, -10.56, Round2(-10.555)) // half away from zero
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 33.33, Round2(100.0/3))
}

func TestRecalculate(t *testing.T) {
	r := Receipt{Subtotal: 50000, Discount: 5000, Tax: 4500, Total: 999}
	r.Recalculate()
	assert.Equal(t, 49500.0, r.Total)
}

func TestItemEditsRefreshDerivedFields(t *testing.T) {
	r := Receipt{Currency: CurrencyIDR}

	r.AddItem(Item{Name: "Nasi Goreng", Price: 25000})
	r.AddItem(Item{Name: "Es Teh", Quantity: 2, Price: 10000})
	assert.Equal(t, 1.0, r.Items[0].Quantity) // quantity defaulted
	assert.Equal(t, 35000.0, r.Subtotal)
	assert.Equal(t, 35000.0, r.Total)

	r.SetTax(3500)
	assert.Equal(t, 38500.0, r.Total)

	r.UpdateItem(0, Item{Name: "Nasi Goreng Spesial", Quantity: 1, Price: 30000})
	assert.Equal(t, 40000.0, r.Subtotal)
	assert.Equal(t, 43500.0, r.Total)

	r.RemoveItem(1)
	assert.Equal(t, 30000.0, r.Subtotal)
	assert.Equal(t, 33500.0, r.Total)

	r.SetDiscount(500)
	assert.Equal(t, 33000.0, r.Total)

	// out-of-range edits are ignored
	r.UpdateItem(5, Item{Name: "x", Price: 1})
	r.RemoveItem(-1)
	assert.Len(t, r.Items, 1)
}

func TestCurrencyFormat(t *testing.T) {
	tests := []struct {
		currency Currency
		amount   float64
		want     string
	}{
		{CurrencyIDR, 50000, "Rp50.000"},
		{CurrencyIDR, 1234567, "Rp1.234.567"},
		{CurrencyIDR, 0, "Rp0"},
		{CurrencyUSD, 1234.5, "$1,234.50"},
		{CurrencyGBP, 0.99, "£0.99"},
		{CurrencyMYR, 12, "RM12.00"},
		{CurrencyCNY, 9999.999, "¥10,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.currency.Format(tt.amount), "formatting %v %s", tt.amount, tt.currency)
	}
}

func TestCurrencyValidation(t *testing.T) {
	assert.True(t, Currency("IDR").IsValid())
	assert.True(t, Currency("usd").IsValid()) // case-insensitive
	assert.False(t, Currency("EUR").IsValid())
	assert.False(t, Currency("").IsValid())

	// EUR has a display symbol even though the schema rejects it
	assert.Equal(t, "€", Currency("EUR").Symbol())
	// unknown codes fall back to the code itself
	assert.Equal(t, "XYZ", Currency("XYZ").Symbol())
}

func TestNormalizeOCRText(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeOCRText("  a\n\tb   c  "))
	assert.Equal(t, "", NormalizeOCRText("   \n\t  "))

	long := make([]byte, MaxOCRTextLength+500)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, NormalizeOCRText(string(long)), MaxOCRTextLength)
}

func TestNormalizeOCRTextCapsOnRuneBoundary(t *testing.T) {
	// every rune is 2 bytes, so a byte-offset cut would land mid-rune
	long := strings.Repeat("é", MaxOCRTextLength+500)

	capped := NormalizeOCRText(long)
	assert.Equal(t, MaxOCRTextLength, utf8.RuneCountInString(capped))
	assert.True(t, utf8.ValidString(capped))
}
