package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitbill/src/pkg/util"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		result     Result
		wantValid  bool
		wantStatus string
	}{
		{
			name:       "valid receipt text",
			result:     Result{Text: "WARUNG MAKAN SEDERHANA\nNasi Goreng 25.000\nTotal 25.000"},
			wantValid:  true,
			wantStatus: StatusValid,
		},
		{
			name:       "19 chars is below the length floor",
			result:     Result{Text: "line one\nline 12345"},
			wantValid:  false,
			wantStatus: StatusTooShort,
		},
		{
			name:       "exactly 20 chars passes the length check",
			result:     Result{Text: "line one x\nline 123x"},
			wantValid:  true,
			wantStatus: StatusValid,
		},
		{
			// 19 runes but 37 bytes: byte counting would let it past the
			// length check.
			name:       "length is counted in runes, not bytes",
			result:     Result{Text: "ééééééééé\nééééééééé"},
			wantValid:  false,
			wantStatus: StatusTooShort,
		},
		{
			name:       "single line is rejected",
			result:     Result{Text: "one long single line with 12.500 in it"},
			wantValid:  false,
			wantStatus: StatusTooFewLines,
		},
		{
			name:       "no numeric token",
			result:     Result{Text: "just some words here\nand some more words"},
			wantValid:  false,
			wantStatus: StatusNoNumbers,
		},
		{
			name:       "price-like token counts as numeric",
			result:     Result{Text: "Nasi Goreng 12.500 here\nTerima kasih banyak"},
			wantValid:  true,
			wantStatus: StatusValid,
		},
		{
			name: "low confidence",
			result: Result{
				Text:           "WARUNG MAKAN SEDERHANA\nNasi Goreng 25.000",
				MeanConfidence: util.Ptr(49.9),
			},
			wantValid:  false,
			wantStatus: StatusLowConfidence,
		},
		{
			name: "confidence at the threshold passes",
			result: Result{
				Text:           "WARUNG MAKAN SEDERHANA\nNasi Goreng 25.000",
				MeanConfidence: util.Ptr(50.0),
			},
			wantValid:  true,
			wantStatus: StatusValid,
		},
		{
			name:       "missing confidence does not fail the gate",
			result:     Result{Text: "WARUNG MAKAN SEDERHANA\nNasi Goreng 25.000"},
			wantValid:  true,
			wantStatus: StatusValid,
		},
		{
			name:       "empty text",
			result:     Result{Text: "   \n  "},
			wantValid:  false,
			wantStatus: StatusTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Assess(tt.result)
			assert.Equal(t, tt.wantValid, report.Valid)
			assert.Equal(t, tt.wantStatus, report.Status)
		})
	}
}

func TestAssessReportCounts(t *testing.T) {
	report := Assess(Result{Text: "  first line 100\nsecond line\n\nthird  "})
	assert.Equal(t, 3, report.LineCount)
	assert.Equal(t, len("first line 100\nsecond line\n\nthird"), report.TextLength)
}
