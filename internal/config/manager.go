package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"

	"shift-scheduler/internal/core"
)

// Manager loads the raw input record and applies environment-variable
// overrides, adapted from the teacher's ConfigManager.Load pipeline
// (loadFromFiles -> applyEnvironmentVariables) but scoped to a single
// required file rather than a layered preset chain.
type Manager struct {
	logger *core.Logger
}

// NewManager returns a Manager that logs through the given logger.
func NewManager(logger *core.Logger) *Manager {
	return &Manager{logger: logger}
}

// Load reads and decodes path, then applies any matching environment
// variable overrides to the global scalar parameters.
func (m *Manager) Load(path string) (*Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewConfigError(path, "cannot read configuration file: %v", err)
	}

	var schema Schema
	if err := yaml.Unmarshal(content, &schema); err != nil {
		return nil, core.NewConfigError(path, "invalid YAML: %v", err)
	}

	if err := env.Parse(&schema); err != nil {
		return nil, core.NewConfigError(path, "invalid environment variable override: %v", err)
	}

	m.logger.Debug("loaded configuration from %s", path)
	return &schema, nil
}

// Watch invokes onChange whenever path is written to on disk, until stop is
// closed. Each invocation re-runs the full pipeline from a freshly loaded
// file; it never resumes partial search state (see SPEC_FULL.md's ambient
// stack section on --watch).
func (m *Manager) Watch(path string, stop <-chan struct{}, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					m.logger.Info("configuration changed, re-solving: %s", event.Name)
					onChange()
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.logger.Error("watch error: %v", werr)
			case <-stop:
				return
			}
		}
	}()

	return nil
}
