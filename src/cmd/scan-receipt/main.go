package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/config"
	"splitbill/src/pkg/gateway"
	"splitbill/src/pkg/ocr"
	"splitbill/src/pkg/store"
	"splitbill/src/pkg/util"
)

/*
main runs the full receipt scan pipeline.

-image can be:
  - a single image file (.jpg/.jpeg/.png)
  - a directory containing images (.jpg/.jpeg/.png)

For each image:
 1. preprocess + OCR into an output run directory
 2. check the OCR quality gate; a rejected scan is skipped
 3. send the OCR text to the parsing service
 4. save parsed-receipt.json into the same run directory

The last successful scan is also written to the session store so the
split-bill entrypoint can pick it up without a path.
*/
func main() {
	config.CheckIfEnvVarsPresent()

	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	imagePath := flag.String("image", "", "Path to a receipt image OR a directory with images (.jpg/.jpeg/.png).")
	outputDirPath := flag.String("out", "./out", "Directory where processed images, OCR text and parsed receipts will be stored.")
	language := flag.String("language", "ind+eng", "Language of the receipt. ind, eng, ind+eng etc. \"tesseract --list-langs\", \"apt install tesseract-ocr-ind\"")

	flag.Parse()
	util.RequiredFlag(imagePath, "image")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	// Build year-month suffix like "september-2006".
	currentTime := time.Now()
	monthName := strings.ToLower(currentTime.Month().String())
	yearValue := currentTime.Year()
	yearMonthDirName := fmt.Sprintf("%s-%04d", monthName, yearValue)

	finalOutputDirPath := filepath.Join(*outputDirPath, yearMonthDirName)

	tl.Log(
		tl.Notice, palette.BlueBold, "%s entrypoint. Config path: '%s'",
		"Running full receipt scan pipeline", *configPath,
	)
	tl.Log(
		tl.Info1, palette.Cyan, "%s '%s'",
		"Using output directory", finalOutputDirPath,
	)

	sessionStore, e := store.New()
	e.QuitIf("error")

	imagesToProcess, e := resolveImagesToProcess(*imagePath)
	e.QuitIf("error")

	if len(imagesToProcess) == 0 {
		tl.Log(
			tl.Warning, palette.PurpleBold, "No .jpg/.jpeg/.png files found at: '%s'",
			*imagePath,
		)
		os.Exit(0)
	}

	if len(imagesToProcess) > 1 {
		tl.Log(
			tl.Notice1, palette.GreenBold, "Found '%d' images to process",
			len(imagesToProcess),
		)
	}

	processedCount := 0
	skippedCount := 0

	for _, imgPath := range imagesToProcess {
		tl.Log(tl.Notice, palette.BlueBold, "%s '%s'", "Processing image", imgPath)

		runDirPath, e := processOneImage(imgPath, finalOutputDirPath, *language, sessionStore)
		if e != nil {
			skippedCount++
			tl.Log(
				tl.Error, palette.RedBold, "Failed processing '%s': '%s'",
				imgPath, e,
			)
			continue
		}

		processedCount++
		tl.Log(
			tl.Notice1, palette.GreenBold, "%s. Results stored in '%s'",
			"Scan+parse completed", runDirPath,
		)
	}

	tl.Log(
		tl.Notice, palette.GreenBold, "Done. Processed: '%v', skipped: '%v'",
		processedCount, skippedCount,
	)
}

func resolveImagesToProcess(inputPath string) (images []string, e *xerr.Error) {
	trimmed := strings.TrimSpace(inputPath)
	if trimmed == "" {
		err := fmt.Errorf("input path is empty")
		e = xerr.NewError(err, "missing -image input", inputPath)
		return
	}

	info, statErr := os.Stat(trimmed)
	if statErr != nil {
		e = xerr.NewError(statErr, "stat -image input path", trimmed)
		return
	}

	if info.IsDir() {
		return listImagesInDir(trimmed)
	}

	// File path
	ext := strings.ToLower(filepath.Ext(trimmed))
	if !isAllowedImageExt(ext) {
		err := fmt.Errorf("unsupported image extension: %s", ext)
		e = xerr.NewError(err, "input file is not .jpg/.jpeg/.png", trimmed)
		return
	}

	return []string{trimmed}, nil
}

func listImagesInDir(dirPath string) (images []string, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read directory", dirPath)
		return
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !isAllowedImageExt(ext) {
			continue
		}

		images = append(images, filepath.Join(dirPath, ent.Name()))
	}

	sort.Strings(images)
	return
}

func isAllowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

func processOneImage(imagePath string, finalOutputDirPath string, language string, sessionStore store.Store) (runDirPath string, e *xerr.Error) {
	// 1) Preprocess + OCR via the scan worker
	artifacts, e := ocr.ProcessImage(context.Background(), imagePath, finalOutputDirPath, language)
	if e != nil {
		return "", e
	}
	runDirPath = artifacts.RunDirPath

	// 2) Quality gate. In batch mode, don't kill the whole run; just skip this image.
	if !artifacts.Report.Valid {
		tl.Log(
			tl.Warning, palette.PurpleBold, "OCR quality gate rejected the scan: '%s'",
			artifacts.Report.Status,
		)
		tl.Log(tl.Warning1, palette.PurpleBold, "%s", "Try taking a photo again")
		err := fmt.Errorf("scan rejected: %s", artifacts.Report.Status)
		e = xerr.NewError(err, "OCR output failed the quality gate", runDirPath)
		return "", e
	}

	// 3) Parse OCR text into a structured receipt via the parsing service
	parsed, gatewayErr, validationErr := gateway.ParseReceipt(artifacts.Result.Text)
	if gatewayErr != nil {
		e = xerr.NewError(gatewayErr, "parsing service request failed", runDirPath)
		return "", e
	}
	if validationErr != nil {
		e = xerr.NewError(validationErr, "parsing service returned an invalid receipt", runDirPath)
		return "", e
	}

	// 4) Save parsed-receipt.json next to the OCR artifacts
	parsedPath := filepath.Join(runDirPath, "parsed-receipt.json")

	jsonBytes, marshalErr := json.MarshalIndent(parsed, "", "  ")
	if marshalErr != nil {
		e = xerr.NewError(marshalErr, "marshal parsed receipt to JSON", runDirPath)
		return "", e
	}

	writeErr := os.WriteFile(parsedPath, jsonBytes, 0o644)
	if writeErr != nil {
		e = xerr.NewError(writeErr, "write parsed-receipt.json file", parsedPath)
		return "", e
	}

	tl.LogJSON(tl.Verbose, palette.CyanDim, "ParsedReceipt", parsed)
	tl.Log(
		tl.Info, palette.Green, "%s to '%s'",
		"Saved parsed receipt", parsedPath,
	)

	// 5) Update the session store (last scan wins). A failed scan never gets
	// this far, so earlier good data is never overwritten by garbage.
	imageBytes, readErr := os.ReadFile(imagePath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read captured image for the session store", imagePath)
		return "", e
	}
	if e := sessionStore.Put(store.KeyCapturedImage, imageBytes); e != nil {
		return "", e
	}
	if e := sessionStore.Put(store.KeyOCRResult, []byte(artifacts.Result.Text)); e != nil {
		return "", e
	}
	if e := sessionStore.Put(store.KeyParsedReceipt, jsonBytes); e != nil {
		return "", e
	}

	return runDirPath, nil
}
