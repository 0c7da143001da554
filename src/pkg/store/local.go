package store

import (
	"os"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

// DirStore keeps each session value as a file under a single directory.
type DirStore struct {
	dir string
}

func newDirStore(dir string) (s *DirStore, e *xerr.Error) {
	if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
		return nil, xerr.NewError(mkdirErr, "Unable to create store directory", dir)
	}
	tl.Log(tl.Verbose, palette.CyanDim, "Session store is %s at '%s'", "local directory", dir)
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Put(key string, data []byte) (e *xerr.Error) {
	path := filepath.Join(s.dir, key)
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return xerr.NewError(writeErr, "Unable to write session value", path)
	}
	tl.Log(tl.Verbose, palette.GreenDim, "Stored %v bytes at '%s'", len(data), path)
	return nil
}

func (s *DirStore) Get(key string) (data []byte, found bool, e *xerr.Error) {
	path := filepath.Join(s.dir, key)
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, false, nil
		}
		return nil, false, xerr.NewError(readErr, "Unable to read session value", path)
	}
	return data, true, nil
}

func (s *DirStore) Delete(key string) (e *xerr.Error) {
	path := filepath.Join(s.dir, key)
	if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
		return xerr.NewError(removeErr, "Unable to delete session value", path)
	}
	return nil
}
