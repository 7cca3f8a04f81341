// SourceCache provides memory-mapped read access to scanned source files.
//
// During a scan every file is read exactly once, so the cache is short-lived:
// created at scan start, closed after aggregation. Mapping instead of copying
// keeps large repositories cheap — only accessed pages are paged into RAM —
// and mmap failures fall back to os.ReadFile transparently.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// mappedSource is one mapped (or fallback-loaded) file.
type mappedSource struct {
	data mmap.MMap
	file *os.File
}

// SourceCache maps source files on first access and keeps them mapped until
// Close. Safe for concurrent use.
type SourceCache struct {
	mu       sync.RWMutex
	sources  map[string]*mappedSource
	fallback map[string][]byte
	logger   *slog.Logger

	hits     int64
	misses   int64
	mmapFail int64
}

// NewSourceCache creates an empty cache. A nil logger falls back to slog.Default().
func NewSourceCache(logger *slog.Logger) *SourceCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceCache{
		sources:  make(map[string]*mappedSource),
		fallback: make(map[string][]byte),
		logger:   logger,
	}
}

// Read returns the full content of filePath, mapping it on first access.
// The returned slice is valid until Close; callers must not retain it past
// the cache lifetime.
func (sc *SourceCache) Read(filePath string) ([]byte, error) {
	sc.mu.RLock()
	if ms, ok := sc.sources[filePath]; ok {
		sc.mu.RUnlock()
		sc.recordHit()
		return ms.data, nil
	}
	if data, ok := sc.fallback[filePath]; ok {
		sc.mu.RUnlock()
		sc.recordHit()
		return data, nil
	}
	sc.mu.RUnlock()

	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Double-check: another goroutine may have loaded it while we waited.
	if ms, ok := sc.sources[filePath]; ok {
		sc.hits++
		return ms.data, nil
	}
	if data, ok := sc.fallback[filePath]; ok {
		sc.hits++
		return data, nil
	}
	sc.misses++

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat %q: %w", filePath, err)
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		sc.fallback[filePath] = []byte{}
		return []byte{}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		sc.logger.Warn("mmap failed, using fallback read",
			"file", filePath, "size", stat.Size(), "error", err)
		sc.mmapFail++
		file.Close()

		raw, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap and fallback read failed for %q: %w", filePath, readErr)
		}
		sc.fallback[filePath] = raw
		return raw, nil
	}

	sc.sources[filePath] = &mappedSource{data: data, file: file}
	return data, nil
}

// Size returns the number of cached files.
func (sc *SourceCache) Size() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.sources) + len(sc.fallback)
}

// Close unmaps all files and releases file descriptors. The cache is empty
// and reusable afterwards.
func (sc *SourceCache) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var firstErr error
	for path, ms := range sc.sources {
		if err := ms.data.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %q: %w", path, err)
		}
		if err := ms.file.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %q: %w", path, err)
		}
	}
	sc.sources = make(map[string]*mappedSource)
	sc.fallback = make(map[string][]byte)

	sc.logger.Debug("source cache closed",
		"hits", sc.hits, "misses", sc.misses, "mmap_failures", sc.mmapFail)
	return firstErr
}

func (sc *SourceCache) recordHit() {
	sc.mu.Lock()
	sc.hits++
	sc.mu.Unlock()
}
