// Package receipt holds the structured receipt model shared by the whole
// pipeline: the OCR/parsing side produces it, the split engine consumes it.
package receipt

import "math"

// Item is one line on the receipt. Price is the total line price, not the
// unit price.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// Receipt is a fully structured receipt. Discount and Tax are always carried
// as plain values here; nullable wire fields are defaulted to 0 at the
// parsing boundary and never travel as nil through the pipeline.
type Receipt struct {
	Items    []Item   `json:"items"`
	Subtotal float64  `json:"subtotal"`
	Discount float64  `json:"discount"`
	Tax      float64  `json:"tax"`
	Total    float64  `json:"total"`
	Currency Currency `json:"currency"`
}

/*
Round2 rounds a money value to 2 decimal places, half away from zero. Every
arithmetic step that can introduce float drift rounds through this before the
value is carried further.
*/
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

/*
Recalculate re-derives Total from Subtotal, Discount and Tax. Callers must
invoke it after every mutation; the stored Total is never trusted over the
derivation.
*/
func (r *Receipt) Recalculate() {
	r.Total = Round2(r.Subtotal - r.Discount + r.Tax)
}

/*
ItemsTotal sums the line prices of all items, rounded to 2 decimals.
*/
func (r *Receipt) ItemsTotal() float64 {
	sum := 0.0
	for _, item := range r.Items {
		sum += item.Price
	}
	return Round2(sum)
}

/*
AddItem appends an item (quantity defaults to 1 when not positive), refreshes
Subtotal from the item list and re-derives Total.
*/
func (r *Receipt) AddItem(item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	r.Items = append(r.Items, item)
	r.Subtotal = r.ItemsTotal()
	r.Recalculate()
}

/*
UpdateItem replaces the item at index and refreshes the derived fields.
Out-of-range indices are ignored.
*/
func (r *Receipt) UpdateItem(index int, item Item) {
	if index < 0 || index >= len(r.Items) {
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	r.Items[index] = item
	r.Subtotal = r.ItemsTotal()
	r.Recalculate()
}

/*
RemoveItem deletes the item at index and refreshes the derived fields.
Out-of-range indices are ignored.
*/
func (r *Receipt) RemoveItem(index int) {
	if index < 0 || index >= len(r.Items) {
		return
	}
	r.Items = append(r.Items[:index], r.Items[index+1:]...)
	r.Subtotal = r.ItemsTotal()
	r.Recalculate()
}

// SetDiscount updates the discount and re-derives Total.
func (r *Receipt) SetDiscount(discount float64) {
	r.Discount = discount
	r.Recalculate()
}

// SetTax updates the tax and re-derives Total.
func (r *Receipt) SetTax(tax float64) {
	r.Tax = tax
	r.Recalculate()
}
