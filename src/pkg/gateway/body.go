package gateway

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
readBody reads an HTTP response body, transparently handling gzip, deflate
and brotli content encodings. urlStr is only for log context.
*/
func readBody(response *http.Response, urlStr string) (body []byte, err error) {
	var reader io.Reader
	contentEncoding := response.Header.Get("Content-Encoding")

	tl.Log(tl.Verbose5, palette.BlueDim, "Reading body (content encoding is '%s') for '%s'", contentEncoding, urlStr)
	switch contentEncoding {
	case "gzip":
		gzipReader, gzipErr := gzip.NewReader(response.Body)
		if gzipErr != nil {
			return nil, gzipErr
		}
		defer gzipReader.Close()
		reader = gzipReader
	case "deflate":
		flateReader := flate.NewReader(response.Body)
		defer flateReader.Close()
		reader = flateReader
	case "br":
		// brotli readers need no Close
		reader = brotli.NewReader(response.Body)
	case "", "none":
		reader = response.Body
	default:
		reader = response.Body
		tl.Log(tl.Warning, palette.YellowDim, "Unsupported %s: '%s'", "Content-Encoding", contentEncoding)
	}

	body, err = io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	tl.Log(tl.Verbose6, palette.GreenDim, "Got body length %d (content encoding is '%s') for '%s'", len(body), contentEncoding, urlStr)

	return body, nil
}
