package receipt

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxOCRTextLength caps the OCR text sent to the parsing service, bounding
// request size and cost.
const MaxOCRTextLength = 16000

var whitespaceRun = regexp.MustCompile(`\s+`)

/*
NormalizeOCRText collapses whitespace runs to single spaces, trims, and caps
the result at MaxOCRTextLength characters. This is the exact form the parsing
gateway sends over the wire.
*/
func NormalizeOCRText(ocrText string) string {
	collapsed := whitespaceRun.ReplaceAllString(ocrText, " ")
	collapsed = strings.TrimSpace(collapsed)
	// Cap in characters, on a rune boundary: a byte slice could cut a
	// multi-byte rune in half and send invalid UTF-8 over the wire.
	if utf8.RuneCountInString(collapsed) > MaxOCRTextLength {
		collapsed = string([]rune(collapsed)[:MaxOCRTextLength])
	}
	return collapsed
}
