package watcher

import (
	"context"

	"go.uber.org/zap"
)

// WatchCoordinator routes debounced input changes to a Regenerator.
type WatchCoordinator struct {
	files  FileWatcher
	regen  Regenerator
	logger *zap.Logger
	ctx    context.Context
}

// NewWatchCoordinator creates a new watch coordinator.
func NewWatchCoordinator(files FileWatcher, regen Regenerator, logger *zap.Logger) *WatchCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatchCoordinator{
		files:  files,
		regen:  regen,
		logger: logger,
	}
}

// Start begins watching and regenerating. Blocks until context is cancelled.
func (c *WatchCoordinator) Start(ctx context.Context) error {
	c.ctx = ctx

	if err := c.files.Start(ctx, c.handleFileChange); err != nil {
		c.cleanup()
		return err
	}

	<-ctx.Done()
	c.cleanup()
	return ctx.Err()
}

// cleanup stops the file watcher.
func (c *WatchCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		c.logger.Warn("file watcher stop failed", zap.Error(err))
	}
}

// handleFileChange regenerates after a batch of input changes. A failed
// regeneration is logged and the previous output is left in place.
func (c *WatchCoordinator) handleFileChange(files []string) {
	if len(files) == 0 {
		return
	}

	c.logger.Info("inputs changed, regenerating", zap.Strings("files", files))

	if err := c.regen.Regenerate(c.ctx, files); err != nil {
		c.logger.Error("regeneration failed", zap.Error(err))
		return
	}
}
