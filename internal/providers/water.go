package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/i474232898/archipelago-data-aggregation/internal/logger"
	"github.com/i474232898/archipelago-data-aggregation/internal/water"
)

// WaterCutsFetcher loads the water-cut schedule, either from the upstream or
// from a local JSON file when one is configured.
type WaterCutsFetcher struct {
	up   *upstream
	file *WaterFileSource
}

func NewWaterCutsFetcher(opts Options, file *WaterFileSource) *WaterCutsFetcher {
	return &WaterCutsFetcher{up: newUpstream("water-cuts", opts), file: file}
}

func (f *WaterCutsFetcher) Fetch(ctx context.Context, _ string) (water.Map, error) {
	var raw water.Map
	if f.file != nil {
		m, err := f.file.Read()
		if err != nil {
			return nil, err
		}
		raw = m
	} else if err := f.up.getJSON(ctx, PathWaterCuts, nil, &raw); err != nil {
		return nil, err
	}

	return normalizeKeyed(raw, func(_ string, c water.Commune) water.Commune {
		c.Commune = strings.TrimSpace(c.Commune)
		return c
	}), nil
}

// WaterFileSource reads the water-cut schedule from a JSON file maintained by
// hand or by an external job.
type WaterFileSource struct {
	path string
	dir  string
	base string

	mu sync.Mutex
}

func NewWaterFileSource(path string) *WaterFileSource {
	return &WaterFileSource{
		path: path,
		dir:  filepath.Dir(path),
		base: filepath.Base(path),
	}
}

// Path returns the watched file.
func (s *WaterFileSource) Path() string { return s.path }

// Read decodes the file.
func (s *WaterFileSource) Read() (water.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read water schedule: %w", err)
	}
	var m water.Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode water schedule: %w", err)
	}
	return m, nil
}

// Watch calls onChange after the file is written, created, or replaced. Bursts
// of events within 200ms collapse into one call. The watch stops when ctx ends.
func (s *WaterFileSource) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so atomic replaces are seen.
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir: %w", err)
	}

	log := logger.WithComponent("water-file")

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != s.base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("watcher error: %v", err)
			}
		}
	}()

	return nil
}
