// Package gateway is the client-side boundary to the remote receipt
// structuring service: it ships normalized OCR text out and validates the
// structured receipt coming back.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/receipt"
)

/*
GatewayError is a transport-level failure: the service was unreachable or
answered non-2xx. Retryable in principle; the status code and the opaque
response body travel along so the caller can decide retry vs. abandon. It
is deliberately a different class from receipt.ValidationError — a schema
violation cannot be fixed by re-sending the same input.
*/
type GatewayError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse service unreachable: %v", e.Err)
	}
	return fmt.Sprintf("parse service returned status %d: %s", e.StatusCode, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type parseRequest struct {
	OCRText string `json:"ocrText"`
}

/*
ParseReceipt sends OCR text to the structuring service and returns the
validated receipt.

The text is normalized first (whitespace collapsed, trimmed, capped) so the
request stays bounded. The response body is schema-validated; a payload
missing required fields or breaking type/enum constraints is rejected loudly
as a receipt.ValidationError rather than coerced.
*/
func ParseReceipt(ocrText string) (parsed receipt.Receipt, gatewayErr *GatewayError, validationErr *receipt.ValidationError) {
	normalized := receipt.NormalizeOCRText(ocrText)

	tl.Log(
		tl.Info, palette.Blue, "%s %d chars of OCR text to '%s'",
		"Sending", len(normalized), Cfg.URL,
	)

	payload, marshalErr := json.Marshal(parseRequest{OCRText: normalized})
	if marshalErr != nil {
		return parsed, &GatewayError{Err: marshalErr}, nil
	}

	request, requestErr := http.NewRequest(http.MethodPost, Cfg.URL, bytes.NewReader(payload))
	if requestErr != nil {
		return parsed, &GatewayError{Err: requestErr}, nil
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept-Encoding", "gzip, deflate, br")
	if strings.TrimSpace(Cfg.BearerToken) != "" {
		request.Header.Set("Authorization", "Bearer "+Cfg.BearerToken)
	}

	client := &http.Client{Timeout: time.Duration(Cfg.TimeoutSeconds) * time.Second}
	response, httpErr := client.Do(request)
	if httpErr != nil {
		return parsed, &GatewayError{Err: httpErr}, nil
	}
	defer func() {
		_ = response.Body.Close()
	}()

	body, bodyErr := readBody(response, Cfg.URL)
	if bodyErr != nil {
		return parsed, &GatewayError{StatusCode: response.StatusCode, Err: bodyErr}, nil
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		tl.Log(
			tl.Warning, palette.YellowBold, "Parse service answered status %d for %d chars of OCR text",
			response.StatusCode, len(normalized),
		)
		return parsed, &GatewayError{StatusCode: response.StatusCode, Body: string(body)}, nil
	}

	parsed, validationErr = receipt.ParsePayload(body)
	if validationErr != nil {
		tl.Log(tl.Warning, palette.PurpleBold, "Parse service payload failed validation: '%s'", validationErr)
		return parsed, nil, validationErr
	}

	tl.Log(
		tl.Info1, palette.Green, "Parsed receipt with %d items, total %s",
		len(parsed.Items), parsed.Currency.Format(parsed.Total),
	)

	return parsed, nil, nil
}
