package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/report"
)

// Watcher re-runs the scan whenever watched source files change.
//
// Rapid change bursts are debounced so one save storm triggers one scan.
type Watcher struct {
	runner   *Runner
	rootDir  string
	emit     func(*report.Report)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration

	timerMu sync.Mutex
	timer   *time.Timer

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewWatcher creates a Watcher that calls emit with each fresh report.
func NewWatcher(runner *Runner, rootDir string, emit func(*report.Report), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		runner:   runner,
		rootDir:  rootDir,
		emit:     emit,
		logger:   logger,
		watcher:  fsw,
		debounce: 300 * time.Millisecond,
		stopChan: make(chan struct{}),
	}, nil
}

// Start runs an initial scan, registers watches on the directory tree,
// and begins the event loop in a background goroutine.
func (w *Watcher) Start() error {
	rep, err := w.runner.Scan(w.rootDir, false)
	if err != nil {
		return err
	}
	w.emit(rep)

	err = filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error.
		}
		if !info.IsDir() {
			return nil
		}
		if base := filepath.Base(path); strings.HasPrefix(base, ".") && path != w.rootDir {
			return filepath.SkipDir
		}
		if base := filepath.Base(path); base == "node_modules" || base == "dist" {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.logger.Info("watching for changes", "root", w.rootDir)
	go w.eventLoop()
	return nil
}

// Stop ends the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.scheduleRescan()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant filters events down to create/write/remove/rename of files
// with a target extension.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, want := range w.runner.cfg.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// scheduleRescan resets the debounce timer; the scan fires once the
// burst goes quiet.
func (w *Watcher) scheduleRescan() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopChan:
			return
		default:
		}
		rep, err := w.runner.Scan(w.rootDir, false)
		if err != nil {
			w.logger.Error("rescan failed", "error", err)
			return
		}
		w.emit(rep)
	})
}
