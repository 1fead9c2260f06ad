package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"studyflow/internal/logger"
)

// New creates a Watcher on inputDir. Events are handled one at a time:
// the pipeline state file is shared across lessons, so concurrent
// processing of two transcripts is not safe.
func New(inputDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
	}, nil
}
