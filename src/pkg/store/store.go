// Package store persists scan-session state between command runs: the
// captured image, the OCR text, the parsed receipt and the last computed
// split. Each value is overwritten whole; there is no history.
package store

import (
	"github.com/tuumbleweed/xerr"
)

// Well-known session keys. The extension doubles as a content-type hint for
// the S3 backend.
const (
	KeyCapturedImage = "captured-image.png"
	KeyOCRResult     = "ocr-result.txt"
	KeyParsedReceipt = "parsed-receipt.json"
	KeyLastSplit     = "last-split.json"
)

// Store is a flat key-value blob store. Put replaces the previous value
// unconditionally, Get reports found=false for a key that was never written.
type Store interface {
	Put(key string, data []byte) (e *xerr.Error)
	Get(key string) (data []byte, found bool, e *xerr.Error)
	Delete(key string) (e *xerr.Error)
}

/*
New builds the store selected by the "store" config section: a local
directory store by default, or an S3-backed one when backend is "s3".
*/
func New() (s Store, e *xerr.Error) {
	switch Cfg.Backend {
	case "s3":
		return newS3Store(Cfg.Bucket, Cfg.Region, Cfg.Prefix)
	default:
		return newDirStore(Cfg.Dir)
	}
}
