package daemon

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/bezel/internal/config"
)

// DefaultSettleDelay is how long the watcher waits after the last file event
// before reloading. Editors often write a file in several steps.
const DefaultSettleDelay = 150 * time.Millisecond

// ConfigWatcher watches the config file for changes and validates new configs.
// An invalid file never replaces the current config.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	// Path to watch
	configPath string

	// Current valid config
	currentConfig *config.Config

	settleDelay time.Duration
	settle      *time.Timer

	// Callbacks
	onReloadCallback func(newConfig *config.Config)
	onErrorCallback  func(err error)

	watcher *fsnotify.Watcher
	doneCh  chan struct{}

	running bool
}

// NewConfigWatcher creates a ConfigWatcher for path. An empty path uses the
// default config location.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigWatcher{
		logger:      logger,
		configPath:  path,
		settleDelay: DefaultSettleDelay,
	}, nil
}

// Path returns the watched file.
func (w *ConfigWatcher) Path() string {
	return w.configPath
}

// SetSettleDelay sets how long to wait for a burst of writes to finish.
func (w *ConfigWatcher) SetSettleDelay(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settleDelay = d
}

// SetReloadCallback sets the callback to invoke when config is successfully reloaded.
// It runs on the watcher goroutine.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback to invoke when a changed file fails to
// load or validate.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching the config file. The containing directory is watched
// so that atomic replaces and late file creation are seen.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.configPath)); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.currentConfig = initialConfig
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop(ctx, watcher, w.doneCh)

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops watching the config file.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	if w.settle != nil {
		w.settle.Stop()
		w.settle = nil
	}
	_ = w.watcher.Close()
	done := w.doneCh
	w.mu.Unlock()

	<-done
	w.logger.Debug("config watcher stopped")
}

// GetCurrentConfig returns the current valid configuration.
func (w *ConfigWatcher) GetCurrentConfig() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

func (w *ConfigWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	filename := filepath.Base(w.configPath)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// scheduleReload coalesces a burst of events into one reload.
func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if w.settle != nil {
		w.settle.Stop()
	}
	w.settle = time.AfterFunc(w.settleDelay, w.reload)
}

func (w *ConfigWatcher) reload() {
	w.logger.Debug("config file changed, reloading", "path", w.configPath)

	newConfig, err := config.Load(w.configPath)

	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	onReload, onError := w.onReloadCallback, w.onErrorCallback
	if err == nil {
		w.currentConfig = newConfig
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("config reload failed, keeping current config", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.logger.Info("config reloaded", "path", w.configPath)
	if onReload != nil {
		onReload(newConfig)
	}
}

// ErrWatcherStopped is returned by Reload on a stopped watcher.
var ErrWatcherStopped = errors.New("config watcher is not running")

// Reload forces an immediate reload, e.g. on SIGHUP.
func (w *ConfigWatcher) Reload() error {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()
	if !running {
		return ErrWatcherStopped
	}
	w.reload()
	return nil
}
