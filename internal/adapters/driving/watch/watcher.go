// Package watch parses and stores reports dropped into an inbox directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driving"
	"github.com/custodia-labs/dashreport/internal/logger"
)

// DefaultDebounce coalesces the create and write events of one copy.
const DefaultDebounce = 500 * time.Millisecond

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("watch: report service is required")

// Result is the outcome of parsing one file.
type Result struct {
	Path   string
	Report *domain.Report
	Err    error
}

// Config configures a Watcher.
type Config struct {
	// Dir is the directory to watch. Subdirectories are not watched.
	Dir string

	// Debounce is how long a file must be quiet before it is parsed.
	// Zero uses DefaultDebounce.
	Debounce time.Duration

	// InitialScan parses files already present when Run starts.
	InitialScan bool

	// OnResult is called after each file is parsed. May be nil.
	OnResult func(Result)
}

// Watcher parses supported files as they appear in a directory.
// Files are parsed one at a time from the Run goroutine.
type Watcher struct {
	reports driving.ReportService
	cfg     Config
	exts    map[string]struct{}
}

// NewWatcher creates a new watcher.
func NewWatcher(reports driving.ReportService, cfg Config) (*Watcher, error) {
	if reports == nil {
		return nil, ErrMissingReportService
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required: %w", domain.ErrInvalidInput)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	exts := make(map[string]struct{})
	for _, ext := range reports.SupportedExtensions() {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &Watcher{reports: reports, cfg: cfg, exts: exts}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory: %w", w.cfg.Dir, domain.ErrInvalidInput)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	logger.Info("watching %s", w.cfg.Dir)

	pending := make(map[string]struct{})
	if w.cfg.InitialScan {
		existing, err := w.scan()
		if err != nil {
			return err
		}
		for _, p := range existing {
			pending[p] = struct{}{}
		}
	}

	timer := time.NewTimer(w.cfg.Debounce)
	if len(pending) == 0 {
		stopTimer(timer)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.supported(ev.Name) || !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) {
				continue
			}
			logger.Debug("watch event %s %s", ev.Op, ev.Name)
			pending[ev.Name] = struct{}{}
			stopTimer(timer)
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-timer.C:
			w.flush(ctx, pending)
		}
	}
}

// flush parses every pending path in name order and empties the set.
func (w *Watcher) flush(ctx context.Context, pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
		delete(pending, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, p)
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		// Removed or renamed before the debounce elapsed.
		return
	}

	report, err := w.reports.ParseFile(ctx, path, driving.ParseOptions{Save: true})
	if err != nil {
		logger.Warn("parse %s: %v", path, err)
	} else {
		logger.Info("stored %s as %s", filepath.Base(path), report.ID)
	}

	if w.cfg.OnResult != nil {
		w.cfg.OnResult(Result{Path: path, Report: report, Err: err})
	}
}

func (w *Watcher) scan() ([]string, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", w.cfg.Dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !w.supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(w.cfg.Dir, e.Name()))
	}
	return paths, nil
}

func (w *Watcher) supported(name string) bool {
	_, ok := w.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// stopTimer stops t and drains a pending tick without blocking.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
