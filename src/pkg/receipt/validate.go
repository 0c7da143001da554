package receipt

import (
	"encoding/json"
	"fmt"
	"strings"
)

/*
ValidationError describes a schema violation in a payload returned by the
parsing service. Path points at the offending field so the caller can report
exactly what could not be trusted. Re-sending the same input will not help,
which is what distinguishes it from a transport failure.
*/
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid receipt payload at %s: %s", e.Path, e.Reason)
}

// wirePayload mirrors the parsing-service response. Optional money fields are
// pointers here and nowhere else; ParsePayload defaults them before the
// Receipt leaves this package.
type wirePayload struct {
	Items    []wireItem `json:"items"`
	Subtotal *float64   `json:"subtotal"`
	Discount *float64   `json:"discount"`
	Tax      *float64   `json:"tax"`
	Total    *float64   `json:"total"`
	Currency *string    `json:"currency"`
}

type wireItem struct {
	Name     *string  `json:"name"`
	Quantity *float64 `json:"quantity"`
	Price    *float64 `json:"price"`
}

/*
ParsePayload decodes and validates a parsing-service response body against
the receipt schema. Required fields must be present with the right types,
currency must be in the enum, quantities and prices must not be negative.
Nothing is silently coerced: a broken payload is rejected whole.

The returned Receipt has Discount and Tax defaulted to 0 when absent, item
quantities defaulted to 1, and Total re-derived from the parts.
*/
func ParsePayload(body []byte) (parsed Receipt, e *ValidationError) {
	var wire wirePayload
	if err := json.Unmarshal(body, &wire); err != nil {
		return parsed, &ValidationError{Path: "$", Reason: "not a JSON object: " + err.Error()}
	}

	if wire.Items == nil {
		return parsed, &ValidationError{Path: "items", Reason: "missing required field"}
	}
	if wire.Subtotal == nil {
		return parsed, &ValidationError{Path: "subtotal", Reason: "missing required field"}
	}
	if wire.Total == nil {
		return parsed, &ValidationError{Path: "total", Reason: "missing required field"}
	}
	if wire.Currency == nil {
		return parsed, &ValidationError{Path: "currency", Reason: "missing required field"}
	}

	if *wire.Subtotal < 0 {
		return parsed, &ValidationError{Path: "subtotal", Reason: "must not be negative"}
	}
	if *wire.Total < 0 {
		return parsed, &ValidationError{Path: "total", Reason: "must not be negative"}
	}
	if wire.Discount != nil && *wire.Discount < 0 {
		return parsed, &ValidationError{Path: "discount", Reason: "must not be negative"}
	}
	if wire.Tax != nil && *wire.Tax < 0 {
		return parsed, &ValidationError{Path: "tax", Reason: "must not be negative"}
	}

	currency := Currency(strings.ToUpper(strings.TrimSpace(*wire.Currency)))
	if !currency.IsValid() {
		return parsed, &ValidationError{
			Path:   "currency",
			Reason: fmt.Sprintf("%q is not one of IDR, USD, CNY, MYR, GBP", *wire.Currency),
		}
	}

	items := make([]Item, 0, len(wire.Items))
	for index, raw := range wire.Items {
		path := fmt.Sprintf("items[%d]", index)
		if raw.Name == nil || strings.TrimSpace(*raw.Name) == "" {
			return parsed, &ValidationError{Path: path + ".name", Reason: "missing or empty"}
		}
		if raw.Price == nil {
			return parsed, &ValidationError{Path: path + ".price", Reason: "missing required field"}
		}
		if *raw.Price < 0 {
			return parsed, &ValidationError{Path: path + ".price", Reason: "must not be negative"}
		}

		quantity := 1.0
		if raw.Quantity != nil {
			if *raw.Quantity < 0 {
				return parsed, &ValidationError{Path: path + ".quantity", Reason: "must not be negative"}
			}
			quantity = *raw.Quantity
			if quantity == 0 {
				quantity = 1
			}
		}

		items = append(items, Item{
			Name:     strings.TrimSpace(*raw.Name),
			Quantity: quantity,
			Price:    *raw.Price,
		})
	}

	parsed = Receipt{
		Items:    items,
		Subtotal: *wire.Subtotal,
		Currency: currency,
	}
	if wire.Discount != nil {
		parsed.Discount = *wire.Discount
	}
	if wire.Tax != nil {
		parsed.Tax = *wire.Tax
	}
	parsed.Recalculate()

	return parsed, nil
}
