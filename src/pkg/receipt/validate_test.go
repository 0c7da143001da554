package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadValid(t *testing.T) {
	body := []byte(`{
		"items": [
			{"name": "Nasi Goreng", "quantity": 2, "price": 50000},
			{"name": "Es Teh", "price": 5000}
		],
		"subtotal": 55000,
		"tax": 5500,
		"total": 60500,
		"currency": "IDR"
	}`)

	parsed, e := ParsePayload(body)
	require.Nil(t, e)

	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "Nasi Goreng", parsed.Items[0].Name)
	assert.Equal(t, 2.0, parsed.Items[0].Quantity)
	// missing quantity defaults to 1
	assert.Equal(t, 1.0, parsed.Items[1].Quantity)
	// missing discount defaults to 0
	assert.Equal(t, 0.0, parsed.Discount)
	assert.Equal(t, CurrencyIDR, parsed.Currency)
	// total is re-derived from the parts
	assert.Equal(t, 60500.0, parsed.Total)
}

func TestParsePayloadRejects(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath string
	}{
		{
			name:     "not json",
			body:     `{{`,
			wantPath: "$",
		},
		{
			name:     "missing items",
			body:     `{"subtotal": 10, "total": 10, "currency": "USD"}`,
			wantPath: "items",
		},
		{
			name:     "missing subtotal",
			body:     `{"items": [], "total": 10, "currency": "USD"}`,
			wantPath: "subtotal",
		},
		{
			name:     "missing total",
			body:     `{"items": [], "subtotal": 10, "currency": "USD"}`,
			wantPath: "total",
		},
		{
			name:     "missing currency",
			body:     `{"items": [], "subtotal": 10, "total": 10}`,
			wantPath: "currency",
		},
		{
			name:     "unknown currency",
			body:     `{"items": [], "subtotal": 10, "total": 10, "currency": "EUR"}`,
			wantPath: "currency",
		},
		{
			name:     "item without name",
			body:     `{"items": [{"price": 5}], "subtotal": 5, "total": 5, "currency": "USD"}`,
			wantPath: "items[0].name",
		},
		{
			name:     "item without price",
			body:     `{"items": [{"name": "Tea"}], "subtotal": 5, "total": 5, "currency": "USD"}`,
			wantPath: "items[0].price",
		},
		{
			name:     "negative price",
			body:     `{"items": [{"name": "Tea", "price": -5}], "subtotal": 5, "total": 5, "currency": "USD"}`,
			wantPath: "items[0].price",
		},
		{
			name:     "negative subtotal",
			body:     `{"items": [], "subtotal": -10, "total": 10, "currency": "USD"}`,
			wantPath: "subtotal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, e := ParsePayload([]byte(tt.body))
			require.NotNil(t, e)
			assert.Equal(t, tt.wantPath, e.Path)
		})
	}
}
