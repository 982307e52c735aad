package api

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/amterp/squares/internal/config"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the burst of events a single atomic rewrite produces.
const debounceWindow = 100 * time.Millisecond

// StoreChangeType indicates what happened to a watched file.
type StoreChangeType string

const (
	StoreChangeWritten StoreChangeType = "written"
	StoreChangeRemoved StoreChangeType = "removed"
)

// StoreChangeKind indicates which watched file changed.
type StoreChangeKind string

const (
	StoreChangeKindSquares StoreChangeKind = "squares"
	StoreChangeKindConfig  StoreChangeKind = "config"
	StoreChangeKindUnknown StoreChangeKind = "unknown"
)

// StoreChange is emitted when the square store or config file changes on disk,
// whether by this process or another (e.g. `squares add` while serving).
type StoreChange struct {
	Type StoreChangeType `json:"type"`
	Kind StoreChangeKind `json:"kind"`
	Path string          `json:"path"`
}

// StoreChangeSubscriber receives store change notifications.
type StoreChangeSubscriber interface {
	OnStoreChange(change StoreChange)
}

// DataWatcher watches the data directory and notifies subscribers.
type DataWatcher struct {
	watcher     *fsnotify.Watcher
	dataDir     string
	logger      *log.Logger
	mu          sync.RWMutex
	subscribers []StoreChangeSubscriber
	pending     map[StoreChangeKind]*time.Timer
	pendingMu   sync.Mutex
	stopCh      chan struct{}
	stopped     bool
	running     bool
}

// NewDataWatcher creates a watcher for dataDir. Call Start to begin watching.
func NewDataWatcher(dataDir string, logger *log.Logger) (*DataWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &DataWatcher{
		watcher: watcher,
		dataDir: dataDir,
		logger:  logger.With("component", "watcher"),
		pending: make(map[StoreChangeKind]*time.Timer),
		stopCh:  make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber.
func (dw *DataWatcher) Subscribe(sub StoreChangeSubscriber) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dw.subscribers = append(dw.subscribers, sub)
}

// Start begins watching. The data directory must already exist.
func (dw *DataWatcher) Start() error {
	dw.mu.Lock()
	if dw.running {
		dw.mu.Unlock()
		return nil
	}
	if dw.stopped {
		dw.mu.Unlock()
		return fmt.Errorf("data watcher cannot be restarted after stop")
	}
	dw.running = true
	dw.mu.Unlock()

	// The directory, not the file: atomic rewrites replace the file's inode.
	if err := dw.watcher.Add(dw.dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dw.dataDir, err)
	}

	go dw.run()
	return nil
}

// Stop stops watching. Pending notifications are dropped.
func (dw *DataWatcher) Stop() error {
	dw.mu.Lock()
	if !dw.running || dw.stopped {
		dw.mu.Unlock()
		return nil
	}
	dw.running = false
	dw.stopped = true
	dw.mu.Unlock()

	dw.pendingMu.Lock()
	for kind, timer := range dw.pending {
		timer.Stop()
		delete(dw.pending, kind)
	}
	dw.pendingMu.Unlock()

	close(dw.stopCh)
	return dw.watcher.Close()
}

func (dw *DataWatcher) run() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handleEvent(event)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.logger.Warn("Watch error", "err", err)

		case <-dw.stopCh:
			return
		}
	}
}

func (dw *DataWatcher) handleEvent(event fsnotify.Event) {
	change := dw.classify(event)
	if change.Kind == StoreChangeKindUnknown {
		return
	}

	// Keyed by kind so the last event of a burst wins.
	dw.pendingMu.Lock()
	defer dw.pendingMu.Unlock()
	if timer, exists := dw.pending[change.Kind]; exists {
		timer.Stop()
	}
	dw.pending[change.Kind] = time.AfterFunc(debounceWindow, func() {
		dw.pendingMu.Lock()
		delete(dw.pending, change.Kind)
		dw.pendingMu.Unlock()
		dw.emit(change)
	})
}

func (dw *DataWatcher) emit(change StoreChange) {
	dw.mu.RLock()
	if dw.stopped {
		dw.mu.RUnlock()
		return
	}
	subs := make([]StoreChangeSubscriber, len(dw.subscribers))
	copy(subs, dw.subscribers)
	dw.mu.RUnlock()

	dw.logger.Debug("Store changed", "kind", change.Kind, "type", change.Type)
	for _, sub := range subs {
		sub.OnStoreChange(change)
	}
}

func (dw *DataWatcher) classify(event fsnotify.Event) StoreChange {
	unknown := StoreChange{Kind: StoreChangeKindUnknown}

	base := filepath.Base(event.Name)
	// Temp files from atomic writes are hidden; editors leave backups ending in ~.
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return unknown
	}

	change := StoreChange{Path: base}
	switch base {
	case config.SquaresFileName:
		change.Kind = StoreChangeKindSquares
	case config.ConfigFileName:
		change.Kind = StoreChangeKindConfig
	default:
		return unknown
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		change.Type = StoreChangeWritten
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		change.Type = StoreChangeRemoved
	default:
		return unknown
	}
	return change
}
