package ocr

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImageRejectsUndecodableInput(t *testing.T) {
	dir := t.TempDir()
	badPath := filepath.Join(dir, "not-an-image.png")
	require.NoError(t, os.WriteFile(badPath, []byte("plain text, no pixels"), 0o644))

	artifacts, e := ProcessImage(context.Background(), badPath, filepath.Join(dir, "out"), "eng")
	require.NotNil(t, e)

	// the run directory and the original copy exist even for a failed run
	require.NotEmpty(t, artifacts.RunDirPath)
	assert.FileExists(t, filepath.Join(artifacts.RunDirPath, "orig.png"))
}

func TestProcessImageRequiresAPath(t *testing.T) {
	_, e := ProcessImage(context.Background(), "", t.TempDir(), "eng")
	require.NotNil(t, e)
}
