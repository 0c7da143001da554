package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStoreRoundTrip(t *testing.T) {
	dirStore, e := newDirStore(t.TempDir())
	require.Nil(t, e)

	// unknown key reads as not found, not as an error
	_, found, e := dirStore.Get(KeyParsedReceipt)
	require.Nil(t, e)
	assert.False(t, found)

	require.Nil(t, dirStore.Put(KeyParsedReceipt, []byte(`{"total": 1}`)))

	data, found, e := dirStore.Get(KeyParsedReceipt)
	require.Nil(t, e)
	require.True(t, found)
	assert.Equal(t, `{"total": 1}`, string(data))

	// put overwrites whole
	require.Nil(t, dirStore.Put(KeyParsedReceipt, []byte(`{"total": 2}`)))
	data, _, e = dirStore.Get(KeyParsedReceipt)
	require.Nil(t, e)
	assert.Equal(t, `{"total": 2}`, string(data))

	require.Nil(t, dirStore.Delete(KeyParsedReceipt))
	_, found, e = dirStore.Get(KeyParsedReceipt)
	require.Nil(t, e)
	assert.False(t, found)

	// deleting a missing key is not an error
	require.Nil(t, dirStore.Delete(KeyParsedReceipt))
}

func TestDirStoreKeepsCapturedImageBytes(t *testing.T) {
	dirStore, e := newDirStore(t.TempDir())
	require.Nil(t, e)

	// binary payload, not JSON: image bytes must survive untouched
	imageBytes := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF, 0x10}
	require.Nil(t, dirStore.Put(KeyCapturedImage, imageBytes))

	data, found, e := dirStore.Get(KeyCapturedImage)
	require.Nil(t, e)
	require.True(t, found)
	assert.Equal(t, imageBytes, data)
}

func TestDirStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "session")
	dirStore, e := newDirStore(dir)
	require.Nil(t, e)

	require.Nil(t, dirStore.Put(KeyOCRResult, []byte("text")))
	data, found, e := dirStore.Get(KeyOCRResult)
	require.Nil(t, e)
	require.True(t, found)
	assert.Equal(t, "text", string(data))
}
