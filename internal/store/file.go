package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileMedium stores one JSON file per key in a directory. Writes go through a
// temp file and a rename so a reader never sees a half-written payload.
type FileMedium struct {
	dir string
	mu  sync.Mutex
}

// NewFileMedium creates the directory if needed.
func NewFileMedium(dir string) (*FileMedium, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

// fileNameReplacer escapes every special character, '_' included, into a
// distinct two-byte code so different keys never share a file.
var fileNameReplacer = strings.NewReplacer(
	"_", "_u",
	":", "__",
	"/", "_s",
	"\\", "_b",
	" ", "_w",
)

func (f *FileMedium) path(key string) string {
	return filepath.Join(f.dir, fileNameReplacer.Replace(key)+".json")
}

func (f *FileMedium) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record file: %w", err)
	}
	return data, nil
}

func (f *FileMedium) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := f.path(key)

	f.mu.Lock()
	defer f.mu.Unlock()

	tmpFile, err := os.CreateTemp(f.dir, filepath.Base(target)+".tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if _, err := tmpFile.Write(value); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), target); err != nil {
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}

func (f *FileMedium) Close() error {
	return nil
}
