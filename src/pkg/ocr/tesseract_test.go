package ocr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTraineddata(t *testing.T, dir string, languages ...string) {
	t.Helper()
	for _, language := range languages {
		path := filepath.Join(dir, language+".traineddata")
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	}
}

func TestResolveLanguages(t *testing.T) {
	tessdata := t.TempDir()
	writeTraineddata(t, tessdata, "ind", "eng")

	t.Run("all requested languages available", func(t *testing.T) {
		assert.Equal(t, "ind+eng", resolveLanguages([]string{"ind", "eng"}, tessdata))
	})

	t.Run("unavailable language is dropped", func(t *testing.T) {
		assert.Equal(t, "eng", resolveLanguages([]string{"fra", "eng"}, tessdata))
	})

	t.Run("nothing requested survives, fallback kicks in", func(t *testing.T) {
		assert.Equal(t, "ind", resolveLanguages([]string{"fra", "deu"}, tessdata))
	})

	t.Run("empty request defaults to eng", func(t *testing.T) {
		assert.Equal(t, "eng", resolveLanguages(nil, tessdata))
	})

	t.Run("no tessdata path passes the request through", func(t *testing.T) {
		assert.Equal(t, "fra+deu", resolveLanguages([]string{"fra", "deu"}, ""))
	})

	t.Run("empty tessdata dir hands the original request to the engine", func(t *testing.T) {
		empty := t.TempDir()
		assert.Equal(t, "fra", resolveLanguages([]string{"fra"}, empty))
	})

	t.Run("whitespace entries are trimmed and dropped", func(t *testing.T) {
		assert.Equal(t, "ind", resolveLanguages([]string{" ind ", "  "}, tessdata))
	})
}

func TestSplitLanguages(t *testing.T) {
	assert.Equal(t, []string{"ind", "eng"}, SplitLanguages("ind+eng"))
	assert.Equal(t, []string{"eng"}, SplitLanguages("eng"))
	assert.Equal(t, []string{"ind", "eng"}, SplitLanguages(" ind + eng "))
	assert.Nil(t, SplitLanguages(""))
	assert.Nil(t, SplitLanguages("++"))
}
