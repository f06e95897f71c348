package persistence

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// StoreWatcher observes the backing store file and logs when it is
// modified outside the process's own writes. The store is treated as
// exclusively owned by the process, but nothing guards it: a transaction
// snapshot taken before an external write is silently stale. The watcher
// makes that hazard observable without pretending to prevent it.
type StoreWatcher struct {
	path          string
	inTransaction func() bool
	logger        *zap.Logger
	watcher       *fsnotify.Watcher
}

// NewStoreWatcher creates a watcher over the backing file. inTransaction
// reports whether a transaction currently holds a working snapshot.
func NewStoreWatcher(path string, inTransaction func() bool, logger *zap.Logger) *StoreWatcher {
	return &StoreWatcher{
		path:          path,
		inTransaction: inTransaction,
		logger:        logger,
	}
}

// Start begins watching until the context is cancelled. It returns an
// error only if the watch cannot be established.
func (w *StoreWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	go w.run(ctx)
	return nil
}

func (w *StoreWatcher) run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.inTransaction != nil && w.inTransaction() {
				w.logger.Warn("backing store changed beneath an active transaction; the working snapshot is stale",
					zap.String("path", w.path),
					zap.String("op", event.Op.String()),
				)
			} else {
				w.logger.Debug("backing store changed",
					zap.String("path", w.path),
					zap.String("op", event.Op.String()),
				)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", zap.Error(err))
		}
	}
}
