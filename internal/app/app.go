// Package app implements the application layer for bidsapp.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/bidsapp/internal/adapters/telemetry"
	"go.trai.ch/bidsapp/internal/core/ports"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.DigestStore
	tracer       ports.Tracer
	watcher      ports.Watcher
	now          func() time.Time
	shutdown     func(context.Context) error
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.DigestStore,
	tracer ports.Tracer,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		tracer:       tracer,
		watcher:      watcher,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to timestamp recorded digests.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Settings are the process-wide options read from flags and the environment.
type Settings struct {
	// JSON switches the logger to JSON output.
	JSON bool
	// Trace exports spans to TraceOutput.
	Trace       bool
	TraceOutput io.Writer
}

// jsonSwitcher is implemented by loggers that can change their output format.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Configure applies settings. It is called once before any command runs.
func (a *App) Configure(s Settings) error {
	if s.JSON {
		if sw, ok := a.logger.(jsonSwitcher); ok {
			sw.SetJSON(true)
		}
	}

	if s.Trace {
		w := s.TraceOutput
		if w == nil {
			w = os.Stderr
		}
		shutdown, err := telemetry.Setup(w)
		if err != nil {
			return err
		}
		a.shutdown = shutdown
	}
	return nil
}

// Close flushes exported spans.
func (a *App) Close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	err := a.shutdown(ctx)
	a.shutdown = nil
	return err
}

// resolveFile returns file or, when empty, the declaration file above the working directory.
func (a *App) resolveFile(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return a.configLoader.Discover(cwd)
}
