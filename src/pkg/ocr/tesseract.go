// Package ocr drives the Tesseract engine on preprocessed receipt images and
// decides whether the recognized text is usable.
package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// FallbackLanguages is tried in order when none of the requested language
// resource files exist under the tessdata path.
var FallbackLanguages = []string{"ind", "eng"}

/*
EngineError means the OCR engine itself failed: missing binary, broken
resource setup, or a recognition fault. This is an operational failure and
must never be confused with a quality rejection of otherwise valid output.
*/
type EngineError struct {
	Stage string
	Err   error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ocr engine failure at %s: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Result is the raw OCR output before any quality judgement.
type Result struct {
	Text string `json:"text"`

	// MeanConfidence is the average of all word-level confidences on a
	// 0-100 scale, nil when the engine reported none.
	MeanConfidence *float64 `json:"mean_confidence,omitempty"`

	// Languages is the resolved language string actually handed to the
	// engine, after resource verification and fallback.
	Languages string `json:"languages"`
}

/*
Recognize runs Tesseract on the image at imagePath.

languages is an ordered list of ISO-639 codes; they are joined with "+" for
the engine. Before invoking, the traineddata file of every requested language
is checked under tessdataPath: requested languages without resources are
dropped, and if none survive the FallbackLanguages are tried in order. Only
when nothing at all is available does the original request go through so the
engine's own error surfaces.

Engine parameters are tuned for receipts: page segmentation mode 6 (single
uniform block of text), preserved interword spacing, LSTM-only recognition
(the engine default on Tesseract 4+).
*/
func Recognize(imagePath string, languages []string, tessdataPath string) (result Result, engineErr *EngineError) {
	resolved := resolveLanguages(languages, tessdataPath)
	tl.Log(tl.Info1, palette.Cyan, "Running OCR on '%s' with languages '%s'", imagePath, resolved)

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if strings.TrimSpace(tessdataPath) != "" {
		if err := client.SetTessdataPrefix(tessdataPath); err != nil {
			return result, &EngineError{Stage: "SetTessdataPrefix", Err: err}
		}
	}

	if err := client.SetLanguage(strings.Split(resolved, "+")...); err != nil {
		return result, &EngineError{Stage: "SetLanguage", Err: err}
	}

	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return result, &EngineError{Stage: "SetVariable(preserve_interword_spaces)", Err: err}
	}

	// Matches CLI `--psm 6`: a receipt is one uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return result, &EngineError{Stage: "SetPageSegMode", Err: err}
	}

	if err := client.SetImage(imagePath); err != nil {
		return result, &EngineError{Stage: "SetImage", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return result, &EngineError{Stage: "Text", Err: err}
	}

	result = Result{Text: text, Languages: resolved}

	// Word boxes carry per-word confidence. Their absence is not fatal; the
	// quality gate treats unknown confidence as unknown, not as zero.
	boxes, boxErr := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if boxErr == nil && len(boxes) > 0 {
		sum := 0.0
		for _, box := range boxes {
			sum += box.Confidence
		}
		mean := sum / float64(len(boxes))
		result.MeanConfidence = &mean
	}

	tl.Log(
		tl.Info1, palette.Green, "OCR completed for '%s' (text length %d, words %d)",
		imagePath, len(text), len(boxes),
	)

	return result, nil
}

/*
resolveLanguages verifies traineddata availability and applies the fallback
order. The returned string is "+"-joined and never empty.
*/
func resolveLanguages(languages []string, tessdataPath string) string {
	requested := make([]string, 0, len(languages))
	for _, lang := range languages {
		trimmed := strings.TrimSpace(lang)
		if trimmed != "" {
			requested = append(requested, trimmed)
		}
	}
	if len(requested) == 0 {
		requested = []string{"eng"}
	}

	if strings.TrimSpace(tessdataPath) == "" {
		return strings.Join(requested, "+")
	}

	var available []string
	for _, lang := range requested {
		if traineddataExists(tessdataPath, lang) {
			available = append(available, lang)
		} else {
			tl.Log(tl.Warning, palette.YellowDim, "Language '%s' has no traineddata under '%s'", lang, tessdataPath)
		}
	}
	if len(available) > 0 {
		return strings.Join(available, "+")
	}

	for _, fallback := range FallbackLanguages {
		if traineddataExists(tessdataPath, fallback) {
			tl.Log(tl.Warning, palette.Yellow, "Falling back to language '%s'", fallback)
			return fallback
		}
	}

	// Nothing available; hand the original request to the engine and let its
	// own error surface.
	return strings.Join(requested, "+")
}

func traineddataExists(tessdataPath string, language string) bool {
	info, err := os.Stat(filepath.Join(tessdataPath, language+".traineddata"))
	return err == nil && !info.IsDir()
}

/*
SplitLanguages parses a "+"-joined engine language string back into the
ordered code list, dropping empty segments.
*/
func SplitLanguages(joined string) []string {
	var languages []string
	for _, lang := range strings.Split(joined, "+") {
		trimmed := strings.TrimSpace(lang)
		if trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}
