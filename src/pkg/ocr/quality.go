package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Quality gate thresholds. Named so they can be tuned and tested
// independently instead of living inline.
const (
	// MinTextLength is the minimum trimmed text length of a usable scan.
	MinTextLength = 20

	// MinLineCount is the minimum number of non-empty lines.
	MinLineCount = 2

	// MinConfidence is the minimum acceptable confidence (0-100 scale) when
	// the engine reported one at all.
	MinConfidence = 50.0
)

// Rejection status labels.
const (
	StatusValid         = "valid"
	StatusTooShort      = "too-short"
	StatusTooFewLines   = "too-few-lines"
	StatusNoNumbers     = "no-numeric-token"
	StatusLowConfidence = "low-confidence"
)

// numericToken approximates "looks like it contains prices": a decimal-like
// number or a run of at least two digits.
var numericToken = regexp.MustCompile(`\d{1,3}[.,]?\d{0,2}|\d{2,}`)

/*
Report is the quality gate verdict on an OCR result. An invalid report is a
designed outcome, not an error: the caller is expected to block progression
and offer re-capture or manual entry instead of passing garbage downstream.
*/
type Report struct {
	Valid  bool   `json:"valid"`
	Status string `json:"status"`

	TextLength int      `json:"text_length"`
	LineCount  int      `json:"line_count"`
	Confidence *float64 `json:"confidence,omitempty"`
}

/*
Assess runs the heuristic quality gate over an OCR result. All conditions
must pass: enough text, at least two non-empty lines, at least one numeric
token, and — only when the engine reported a confidence at all — a confidence
of at least MinConfidence. Unknown confidence does not fail the gate.
*/
func Assess(result Result) Report {
	trimmed := strings.TrimSpace(result.Text)
	// Length is in characters, not bytes: multi-byte runes in OCR output must
	// not inflate the count.
	textLength := utf8.RuneCountInString(trimmed)

	lineCount := 0
	for _, line := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(line) != "" {
			lineCount++
		}
	}

	report := Report{
		Status:     StatusValid,
		TextLength: textLength,
		LineCount:  lineCount,
		Confidence: result.MeanConfidence,
	}

	switch {
	case textLength < MinTextLength:
		report.Status = StatusTooShort
	case lineCount < MinLineCount:
		report.Status = StatusTooFewLines
	case !numericToken.MatchString(trimmed):
		report.Status = StatusNoNumbers
	case result.MeanConfidence != nil && *result.MeanConfidence < MinConfidence:
		report.Status = StatusLowConfidence
	}

	report.Valid = report.Status == StatusValid
	if report.Valid {
		tl.Log(tl.Info1, palette.Green, "OCR quality gate passed (%d chars, %d lines)", report.TextLength, report.LineCount)
	} else {
		tl.Log(tl.Warning, palette.PurpleBold, "OCR quality gate rejected the scan: '%s'", report.Status)
	}

	return report
}
