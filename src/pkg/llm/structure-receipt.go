// Package llm turns noisy OCR text of a shopping receipt into a structured
// receipt payload via the OpenAI Responses API with a strict JSON schema.
package llm

import (
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/openai"
	"splitbill/src/pkg/receipt"
)

// ReceiptExtraction is the model's answer, shaped exactly like the
// parse-receipt wire payload so it can be re-marshalled and validated with
// receipt.ParsePayload without translation.
type ReceiptExtraction struct {
	Items    []ExtractedItem `json:"items"`
	Subtotal float64         `json:"subtotal"`
	Discount *float64        `json:"discount"`
	Tax      *float64        `json:"tax"`
	Total    float64         `json:"total"`
	Currency string          `json:"currency"`
}

type ExtractedItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

/*
StructureReceipt sends cleaned OCR text to the model and returns the parsed
extraction plus run metadata.

Behavior:
  - The OCR text must already be normalized (receipt.NormalizeOCRText); this
    function does not trim or cap it again.
  - The model is instructed to extract line items, subtotal, discount, tax,
    total and currency, defaulting quantity to 1 and making best-effort
    estimates for unclear values.
  - Output is constrained by a strict JSON schema, so the response always
    unmarshals into ReceiptExtraction; semantic validation (negative prices,
    currency enum) stays with receipt.ParsePayload.
*/
func StructureReceipt(ocrText string) (extraction ReceiptExtraction, meta *openai.LLMRunMetadata, e *xerr.Error) {
	tl.Log(
		tl.Notice, palette.BlueBold, "%s with %s model %s, reasoning effort is %s",
		"Structuring receipt from OCR text", "OpenAI", Cfg.Model, Cfg.ReasoningEffort,
	)

	instructions := `
You are an assistant that is expert at reading and extracting data from
shopping receipts. Receipts are usually Indonesian, but may be in other
languages. You receive noisy OCR text of a single receipt.

Extract:
- The list of items: item name, quantity, and the total price for that line.
- The overall subtotal (before tax and discount).
- The discount, if any (0 when there is none).
- The tax, if any (0 when there is none).
- The grand total (after discount and tax).
- The currency used.

Rules:
- If a value is unclear, make your best estimate from the surrounding text.
- If a quantity is not written, assume quantity = 1.
- Prices on Indonesian receipts often use "." as a thousands separator and
  have no cents; "12.500" means twelve thousand five hundred.
- Do NOT invent items that are not implied by the text.
`

	developerMessage := `
Return only a single JSON object matching the provided schema.
Do not include any commentary outside the JSON.
`

	userMessage := "OCR text of the receipt:\n" + ocrText

	schemaProperties := map[string]any{
		"items": map[string]any{
			"type":        "array",
			"description": "List of line items on the receipt.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{
						"type":        "string",
						"description": "Name of the product or dish.",
					},
					"quantity": map[string]any{
						"type":        "number",
						"description": "Quantity of the item (1 if not explicitly given).",
					},
					"price": map[string]any{
						"type":        "number",
						"description": "Total price for this line.",
					},
				},
				"additionalProperties": false,
				"required":             []string{"name", "quantity", "price"},
			},
		},
		"subtotal": map[string]any{
			"type":        "number",
			"description": "Subtotal before tax and discount.",
		},
		"discount": map[string]any{
			"type":        []string{"number", "null"},
			"description": "Discount if present, 0 or null if none.",
		},
		"tax": map[string]any{
			"type":        []string{"number", "null"},
			"description": "Tax if present, 0 or null if none.",
		},
		"total": map[string]any{
			"type":        "number",
			"description": "Grand total after discount and tax.",
		},
		"currency": map[string]any{
			"type":        "string",
			"description": "Currency code used on the receipt.",
			"enum":        receipt.CurrencyCodes(),
		},
	}

	extraction, meta, e = openai.UseChatGPTResponsesAPI[ReceiptExtraction](
		Cfg.Model, openai.Effort(Cfg.ReasoningEffort),
		instructions, developerMessage, userMessage,
		"receipt_extraction", schemaProperties,
		Cfg.MaxOutputTokens,
	)
	if e != nil {
		return extraction, meta, e
	}

	tl.Log(
		tl.Info1, palette.Green, "%s %v items, total %v %s",
		"Extracted receipt with", len(extraction.Items), extraction.Total, extraction.Currency,
	)
	return extraction, meta, nil
}
