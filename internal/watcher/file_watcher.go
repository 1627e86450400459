package watcher

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 300 * time.Millisecond

// fileWatcher implements FileWatcher interface.
type fileWatcher struct {
	watcher       *fsnotify.Watcher
	files         map[string]bool      // Absolute paths to report
	debounceTime  time.Duration        // Quiet period before firing callback
	callback      func(files []string) // Callback to invoke with changed files
	logger        *zap.Logger
	ctx           context.Context    // Context for lifecycle management
	cancel        context.CancelFunc // Cancel function for internal context
	accumulated   map[string]bool    // Accumulated file changes
	accumulatedMu sync.Mutex         // Protects accumulated map
	debounceTimer *time.Timer        // Current debounce timer
	timerMu       sync.Mutex         // Protects debounce timer
	stopOnce      sync.Once          // Ensures Stop() is idempotent
	doneCh        chan struct{}      // Signals watch goroutine has finished
}

// NewFileWatcher creates a watcher for an exact set of files. The parent
// directories are watched rather than the files themselves, so editors that
// save by writing a new file and renaming it over the old one are still seen.
func NewFileWatcher(files []string, logger *zap.Logger) (FileWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &fileWatcher{
		watcher:      watcher,
		files:        make(map[string]bool),
		debounceTime: DefaultDebounce,
		logger:       logger,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	return fw, nil
}

// Start begins watching for file changes.
func (fw *fileWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	fw.ctx, fw.cancel = context.WithCancel(ctx)

	go fw.watch()
	return nil
}

// Stop stops the file watcher.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()

			// Wait for goroutine to finish (only if Start() was called)
			<-fw.doneCh
		} else {
			// Never started, close doneCh manually
			close(fw.doneCh)
		}

		err = fw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (fw *fileWatcher) watch() {
	defer close(fw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-fw.ctx.Done():
			fw.stopDebounceTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("input changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))

			fw.accumulatedMu.Lock()
			fw.accumulated[filepath.Clean(event.Name)] = true
			fw.accumulatedMu.Unlock()

			fw.resetDebounceTimer(fireCh)

		case <-fireCh:
			fw.flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// flush fires the callback with the accumulated files, sorted.
func (fw *fileWatcher) flush() {
	fw.accumulatedMu.Lock()
	if len(fw.accumulated) == 0 {
		fw.accumulatedMu.Unlock()
		return
	}

	files := make([]string, 0, len(fw.accumulated))
	for file := range fw.accumulated {
		files = append(files, file)
	}
	fw.accumulated = make(map[string]bool)
	fw.accumulatedMu.Unlock()

	sort.Strings(files)
	if fw.callback != nil {
		fw.callback(files)
	}
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (fw *fileWatcher) resetDebounceTimer(fireCh chan struct{}) {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

// stopDebounceTimer stops the debounce timer if it exists.
func (fw *fileWatcher) stopDebounceTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
		fw.debounceTimer = nil
	}
}

// shouldProcessEvent checks if an event touches one of the watched files.
func (fw *fileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Only care about WRITE, CREATE, and REMOVE events
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}

	return fw.files[filepath.Clean(event.Name)]
}
