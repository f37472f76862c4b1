package classifier

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/twlf/activity-tracker/internal/util"
)

// excludedTitles are OS-shell boilerplate window titles never worth logging.
var excludedTitles = []string{
	"program manager",
	"system tray",
	"overflow window",
	"action center",
	"start menu",
	"task switching",
}

// ProcessExcluder decides whether a process should be excluded from logging.
type ProcessExcluder interface {
	Excluded(processName string) bool
}

// RefreshMode controls when the exclusion file is re-read.
type RefreshMode string

const (
	// RefreshAlways re-reads the file on every check, so edits take effect
	// without restart. Call frequency is a few times per second at most.
	RefreshAlways RefreshMode = "always"
	// RefreshTTL caches the list and re-reads after the TTL elapses.
	RefreshTTL RefreshMode = "ttl"
	// RefreshWatch reloads on file change notifications.
	RefreshWatch RefreshMode = "watch"
)

// ExclusionList is a file-backed process exclusion predicate. The file holds
// one process name per line, matched case-insensitively.
type ExclusionList struct {
	path string
	mode RefreshMode
	ttl  time.Duration

	mu       sync.RWMutex
	procs    map[string]struct{}
	loadedAt time.Time

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewExclusionList creates an exclusion list for the given file. A missing
// file is treated as an empty list, not an error.
func NewExclusionList(path string, mode RefreshMode, ttl time.Duration) (*ExclusionList, error) {
	if mode == "" {
		mode = RefreshAlways
	}
	e := &ExclusionList{
		path:  path,
		mode:  mode,
		ttl:   ttl,
		procs: make(map[string]struct{}),
		done:  make(chan struct{}),
	}
	e.reload()

	if mode == RefreshWatch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		// Watch the directory: the file itself may not exist yet, and
		// editors replace files by rename.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			return nil, err
		}
		e.watcher = watcher
		go e.processEvents()
	}

	return e, nil
}

// Excluded reports whether the process name is on the exclusion list.
func (e *ExclusionList) Excluded(processName string) bool {
	switch e.mode {
	case RefreshAlways:
		e.reload()
	case RefreshTTL:
		e.mu.RLock()
		stale := time.Since(e.loadedAt) > e.ttl
		e.mu.RUnlock()
		if stale {
			e.reload()
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.procs[strings.ToLower(processName)]
	return ok
}

// Close stops the file watcher, if any.
func (e *ExclusionList) Close() error {
	if e.watcher == nil {
		return nil
	}
	close(e.done)
	return e.watcher.Close()
}

func (e *ExclusionList) reload() {
	procs := make(map[string]struct{})

	file, err := os.Open(e.path)
	if err == nil {
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if line != "" {
				procs[line] = struct{}{}
			}
		}
		file.Close()
	}

	e.mu.Lock()
	e.procs = procs
	e.loadedAt = time.Now()
	e.mu.Unlock()
}

func (e *ExclusionList) processEvents() {
	for {
		select {
		case <-e.done:
			return
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) == filepath.Clean(e.path) {
				e.reload()
			}
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Exclusion list watch error: " + err.Error())
		}
	}
}

// ShouldExclude reports whether a window should be excluded from logging,
// either because its process is on the exclusion list or because its title
// matches OS-shell boilerplate.
func ShouldExclude(excl ProcessExcluder, processName, windowTitle string) bool {
	if excl != nil && excl.Excluded(processName) {
		return true
	}
	title := strings.ToLower(windowTitle)
	for _, pattern := range excludedTitles {
		if strings.Contains(title, pattern) {
			return true
		}
	}
	return false
}
