package receipt

import (
	"fmt"
	"math"
	"strings"
)

// Currency is the enumerated receipt currency. EUR deliberately appears only
// in the display symbol map below: the parsing schema does not accept it, but
// a manually entered receipt may still want the symbol rendered.
type Currency string

const (
	CurrencyIDR Currency = "IDR"
	CurrencyUSD Currency = "USD"
	CurrencyCNY Currency = "CNY"
	CurrencyMYR Currency = "MYR"
	CurrencyGBP Currency = "GBP"
)

// validCurrencies is the set accepted from the parsing service.
var validCurrencies = map[Currency]bool{
	CurrencyIDR: true,
	CurrencyUSD: true,
	CurrencyCNY: true,
	CurrencyMYR: true,
	CurrencyGBP: true,
}

// currencySymbols is display-only and intentionally wider than the enum.
var currencySymbols = map[Currency]string{
	CurrencyIDR: "Rp",
	CurrencyUSD: "$",
	CurrencyCNY: "¥",
	CurrencyMYR: "RM",
	CurrencyGBP: "£",
	"EUR":       "€",
}

// CurrencyCodes lists the accepted currency codes in declaration order,
// for embedding into the extraction schema enum.
func CurrencyCodes() []string {
	return []string{
		string(CurrencyIDR), string(CurrencyUSD), string(CurrencyCNY),
		string(CurrencyMYR), string(CurrencyGBP),
	}
}

// IsValid reports whether the currency is accepted by the receipt schema.
func (c Currency) IsValid() bool {
	return validCurrencies[Currency(strings.ToUpper(string(c)))]
}

// Symbol returns the display symbol, falling back to the code itself.
func (c Currency) Symbol() string {
	code := Currency(strings.ToUpper(string(c)))
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return string(c)
}

/*
Format renders a money amount with the currency symbol. IDR is formatted with
zero decimal places and "." thousands grouping; every other currency gets
exactly two decimals.
*/
func (c Currency) Format(amount float64) string {
	if Currency(strings.ToUpper(string(c))) == CurrencyIDR {
		return c.Symbol() + groupThousands(int64(math.Round(amount)), ".")
	}
	rounded := Round2(amount)
	whole := int64(math.Abs(rounded))
	frac := int64(math.Round((math.Abs(rounded) - float64(whole)) * 100))
	if frac == 100 { // carry after rounding
		whole++
		frac = 0
	}
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%02d", c.Symbol(), sign, groupThousands(whole, ","), frac)
}

func groupThousands(value int64, separator string) string {
	digits := fmt.Sprintf("%d", value)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, separator)
}
