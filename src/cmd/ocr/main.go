package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/config"
	"splitbill/src/pkg/ocr"
	"splitbill/src/pkg/util"
)

/*
main runs the image processing and OCR flow for a single receipt photo,
without the parsing or splitting steps. Useful for tuning preprocessing
and tesseract settings.

If any fatal error occurs, it will be logged and the program will exit
with a non-zero status code.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	imagePath := flag.String("image", "", "Path to the receipt image to process.")
	outputDirPath := flag.String("out", "./out", "Directory where processed images and OCR text will be stored.")
	language := flag.String("language", "ind+eng", "Language of the receipt. ind, eng, ind+eng etc. \"tesseract --list-langs\", \"apt install tesseract-ocr-ind\"")

	// Parse and initialize config.
	flag.Parse()
	util.RequiredFlag(imagePath, "image")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	// Build year-month suffix like "september-2006".
	currentTime := time.Now()
	monthName := strings.ToLower(currentTime.Month().String())
	yearValue := currentTime.Year()
	yearMonthDirName := fmt.Sprintf("%s-%04d", monthName, yearValue)

	// Final output directory: base out dir + "month-year".
	finalOutputDirPath := filepath.Join(*outputDirPath, yearMonthDirName)

	// Log basic startup information.
	tl.Log(
		tl.Notice, palette.BlueBold, "%s OCR entrypoint. Config path: '%s'",
		"Running", *configPath,
	)
	tl.Log(
		tl.Info1, palette.Cyan, "%s '%s'",
		"Using output directory", finalOutputDirPath,
	)

	// Run the main processing flow.
	artifacts, e := ocr.ProcessImage(context.Background(), *imagePath, finalOutputDirPath, *language)
	e.QuitIf(xerr.ErrorTypeError)

	if !artifacts.Report.Valid {
		tl.Log(
			tl.Warning, palette.PurpleBold, "OCR quality gate rejected the scan: '%s'",
			artifacts.Report.Status,
		)
		tl.Log(tl.Warning1, palette.PurpleBold, "%s", "Try taking a photo again")
	}

	tl.Log(tl.Notice1, palette.GreenBold, "%s. Results stored in '%s'", "OCR run completed", artifacts.RunDirPath)
}
