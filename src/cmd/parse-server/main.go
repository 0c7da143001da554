package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/config"
	echomw "splitbill/src/pkg/echo-middleware"
	"splitbill/src/pkg/llm"
	"splitbill/src/pkg/receipt"
)

/*
main starts the receipt parsing service.

POST /api/parse-receipt takes {"ocrText": "..."} and returns the structured
receipt JSON produced by the model. The scan pipeline talks to this service
through the gateway package.
*/
func main() {
	config.CheckIfEnvVarsPresent("OPENAI_API_KEY", echomw.EnvParseBearerToken)

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	flag.Parse()
	config.InitializeConfig(*configPath)

	echomw.UptdateRateLimits(echomw.Cfg.MiddlewareRateLimit, echomw.Cfg.MiddlewareBurst)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(echomw.RouteAccessLoggerMiddleware)
	e.Use(echomw.RateLimiterMiddleware)

	api := e.Group("/api", echomw.RequireBearerToken)
	api.POST("/parse-receipt", handleParseReceipt)

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "%s on '%s'", "Starting parse server", address)

	startErr := e.Start(address)
	xerr.QuitIfError(startErr, "Parse server stopped")
}

type parseRequest struct {
	OCRText string `json:"ocrText"`
}

func handleParseReceipt(c echo.Context) error {
	var request parseRequest
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "OCR text is required",
		})
	}

	cleaned := receipt.NormalizeOCRText(request.OCRText)
	if cleaned == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "OCR text is required",
		})
	}

	extraction, meta, e := llm.StructureReceipt(cleaned)
	if e != nil {
		tl.Log(tl.Error, palette.RedBold, "Failed to structure receipt: '%s'", e)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to parse receipt",
		})
	}
	if meta != nil {
		tl.Log(
			tl.Detailed, palette.CyanDim, "Run '%s' used %v tokens in %vms",
			meta.ResponseID, meta.TokensTotal, meta.Elapsed,
		)
	}

	return c.JSON(http.StatusOK, extraction)
}
