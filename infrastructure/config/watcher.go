package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the configuration file when it changes on disk and
// notifies a callback with the fresh configuration
type Watcher struct {
	path     string
	onChange func(*Config)
	logger   *zap.Logger
	fs       *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given config file. If path is empty
// the watcher is a no-op.
func NewWatcher(path string, onChange func(*Config), logger *zap.Logger) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		logger:   logger,
	}
	if path == "" {
		return w, nil
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(path); err != nil {
		fs.Close()
		return nil, err
	}
	w.fs = fs
	return w, nil
}

// Run watches until the context is cancelled
func (w *Watcher) Run(ctx context.Context) {
	if w.fs == nil {
		return
	}
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig()
			if err != nil {
				w.logger.Warn("config reload failed, keeping previous configuration",
					zap.String("file", w.path),
					zap.Error(err))
				continue
			}
			w.logger.Info("configuration reloaded", zap.String("file", w.path))
			w.onChange(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", zap.Error(err))
		}
	}
}
