package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"splitbill/src/pkg/preprocess"
)

// RunArtifacts lists what a pipeline run left on disk, plus the outputs the
// caller usually wants in memory.
type RunArtifacts struct {
	RunDirPath string
	Result     Result
	Report     Report
}

// pipelineScanner is shared by all ProcessImage calls so at most one scan is
// in flight per process.
var pipelineScanner Scanner

/*
ProcessImage runs the full image-to-text pipeline for one receipt photo.

Steps:
 1. Validate the input image path.
 2. Create a per-run directory (timestamp-named) under the output root.
 3. Copy the original image in as orig.<ext>.
 4. Hand the image to the scan worker: normalize (bounded resize), deskew and
    contrast-enhance, saving each stage (normalized.png, deskewed.png,
    clean.png), then run OCR on clean.png and the quality gate. Worker
    progress is logged as it arrives.
 5. Save ocr.txt and quality.json from the worker outcome.

A quality rejection is reported in the returned artifacts, not as an error:
the caller decides whether to block, re-capture or fall back to manual entry.
*/
func ProcessImage(ctx context.Context, imagePath string, outputDirPath string, language string) (artifacts RunArtifacts, e *xerr.Error) {
	e = validateImagePath(imagePath)
	if e != nil {
		return artifacts, e
	}

	normalizedOutputDirPath := strings.TrimSpace(outputDirPath)
	if normalizedOutputDirPath == "" {
		normalizedOutputDirPath = "./out"
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s image pipeline for '%s' into root '%s'",
		"Starting", imagePath, normalizedOutputDirPath,
	)

	e = ensureOutputDirectory(normalizedOutputDirPath)
	if e != nil {
		return artifacts, e
	}

	// Per-run directory named by timestamp, e.g. ./out/2025-11-26_16-35-31
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	artifacts.RunDirPath = filepath.Join(normalizedOutputDirPath, timestamp)

	e = ensureOutputDirectory(artifacts.RunDirPath)
	if e != nil {
		return artifacts, e
	}

	originalExt := strings.ToLower(filepath.Ext(imagePath))
	if originalExt == "" {
		originalExt = ".jpg"
	}

	originalOutPath := filepath.Join(artifacts.RunDirPath, "orig"+originalExt)
	ocrOutPath := filepath.Join(artifacts.RunDirPath, "ocr.txt")
	qualityOutPath := filepath.Join(artifacts.RunDirPath, "quality.json")

	e = copyOriginalImage(imagePath, originalOutPath)
	if e != nil {
		return artifacts, e
	}

	var stageSaveErr *xerr.Error
	progress, outcome := pipelineScanner.Scan(ctx, ScanRequest{
		ImagePath:    imagePath,
		Languages:    SplitLanguages(language),
		TessdataPath: Cfg.TessdataPath,
		MaxDimension: Cfg.MaxDimension,
		WorkDir:      artifacts.RunDirPath,
		StageSink: func(stage string, img image.Image) {
			if stageSaveErr != nil {
				return
			}
			stageSaveErr = saveStageImage(filepath.Join(artifacts.RunDirPath, stage+".png"), img)
		},
	})

	for event := range progress {
		tl.Log(
			tl.Detailed, palette.CyanDim, "Scan progress '%v%%': '%s'",
			event.Percent, event.Status,
		)
	}
	scan := <-outcome

	if stageSaveErr != nil {
		return artifacts, stageSaveErr
	}

	if scan.Err != nil {
		var loadErr *preprocess.ImageLoadError
		if errors.As(scan.Err, &loadErr) {
			e = xerr.NewError(scan.Err, "decode input image", imagePath)
		} else {
			e = xerr.NewError(scan.Err, "run OCR on prepared image", imagePath)
		}
		return artifacts, e
	}

	artifacts.Result = scan.Result
	artifacts.Report = scan.Report

	e = saveOcrTextToFile(ocrOutPath, artifacts.Result.Text)
	if e != nil {
		return artifacts, e
	}

	e = saveJSONToFile(qualityOutPath, artifacts.Report)
	if e != nil {
		return artifacts, e
	}

	tl.Log(
		tl.Info1, palette.Green, "Finished pipeline for '%s'. Run dir: '%s', quality: '%s'",
		imagePath, artifacts.RunDirPath, artifacts.Report.Status,
	)

	return artifacts, e
}

/*
validateImagePath ensures the image path is not empty. Existence and
decodability are checked by the load step.
*/
func validateImagePath(imagePath string) (e *xerr.Error) {
	if imagePath == "" {
		err := fmt.Errorf("image path flag '-image' is empty")
		e = xerr.NewError(err, "no input image path provided", imagePath)
		tl.Log(
			tl.Important, palette.PurpleBold, "Exiting early: '%s'",
			"no input image (-image) provided",
		)
	}
	return
}
