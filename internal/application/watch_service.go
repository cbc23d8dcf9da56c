package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/pomlint/pomlint/internal/domain"
)

// WatchService re-validates descriptors as they change on disk. The loop is
// a blocking poll: each iteration waits for a change event with a timeout,
// then re-validates only the changed descriptor. Duplicate events for one
// modification are suppressed by comparing last-known modification times,
// not by time-based debouncing.
type WatchService struct {
	validate *ValidateService
	scanner  domain.DescriptorScanner
	logger   hclog.Logger

	running      atomic.Bool
	lastModified map[string]time.Time
}

// PollTimeout bounds each iteration's wait so the running flag is checked
// regularly; cancellation is cooperative.
const PollTimeout = time.Second

// NewWatchService creates a WatchService.
func NewWatchService(validate *ValidateService, scanner domain.DescriptorScanner, logger hclog.Logger) *WatchService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &WatchService{
		validate:     validate,
		scanner:      scanner,
		logger:       logger,
		lastModified: make(map[string]time.Time),
	}
}

// Stop requests the watch loop to exit; the loop observes the flag on its
// next iteration.
func (s *WatchService) Stop() {
	s.running.Store(false)
}

// Watch validates all descriptors under root once, then blocks re-validating
// changed descriptors until Stop is called. onResult receives every
// validation outcome, including the initial pass.
func (s *WatchService) Watch(root string, opts ValidateOptions, onResult func(FileResult)) error {
	s.running.Store(true)

	paths, err := s.scanner.Discover(root, opts.Recursive)
	if err != nil {
		return fmt.Errorf("initial discovery: %w", err)
	}

	for _, path := range paths {
		s.revalidate(path, opts, onResult)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			s.logger.Warn("cannot watch directory", "dir", filepath.Dir(path), "error", err)
		}
	}
	s.logger.Info("watching for descriptor changes", "root", root, "descriptors", len(paths))

	for s.running.Load() {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(event, opts, onResult)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watch error", "error", err)
		case <-time.After(PollTimeout):
			// fall through to re-check the running flag
		}
	}

	s.logger.Info("watch loop stopped")
	return nil
}

func (s *WatchService) handleEvent(event fsnotify.Event, opts ValidateOptions, onResult func(FileResult)) {
	if filepath.Base(event.Name) != domain.DescriptorFileName {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if last, seen := s.lastModified[event.Name]; seen && !info.ModTime().After(last) {
		// duplicate event for a modification already validated
		return
	}
	s.lastModified[event.Name] = info.ModTime()

	s.logger.Debug("descriptor changed", "path", event.Name, "op", strings.ToLower(event.Op.String()))
	s.revalidate(event.Name, opts, onResult)
}

func (s *WatchService) revalidate(path string, opts ValidateOptions, onResult func(FileResult)) {
	if info, err := os.Stat(path); err == nil {
		s.lastModified[path] = info.ModTime()
	}

	file, err := s.validate.ValidateFile(path, opts)
	if err != nil {
		s.logger.Error("validation failed", "path", path, "error", err)
		return
	}
	if onResult != nil {
		onResult(*file)
	}
}
