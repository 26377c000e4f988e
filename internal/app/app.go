package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/outliner/internal/config"
	"github.com/dshills/outliner/internal/config/watcher"
	"github.com/dshills/outliner/internal/editor"
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/input/key"
	"github.com/dshills/outliner/internal/renderer"
)

// Options configures New.
type Options struct {
	// ConfigPath is the TOML file to load. Empty uses defaults and the
	// environment only.
	ConfigPath string

	// DotEnvPath is an optional .env file.
	DotEnvPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// Config is used instead of loading when non-nil.
	Config *config.Config

	// Logger is used instead of building one from the config when non-nil.
	Logger *Logger
}

// Application owns one document and everything that edits and renders it.
//
// Key handling and every tree access happen on the caller's goroutine.
// Config reloads arrive on the watcher goroutine and are applied before
// the next key.
type Application struct {
	opts Options
	cfg  *config.Config
	log  *Logger

	bus      *event.Bus
	tree     *block.Tree
	renderer *renderer.Renderer
	editor   *editor.Controller

	stops   []func()
	watcher *watcher.Watcher

	mu      sync.Mutex
	pending *config.Config
	closed  bool
}

// New loads the configuration and builds the application.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		var loadOpts []config.Option
		if opts.ConfigPath != "" {
			loadOpts = append(loadOpts, config.WithFile(opts.ConfigPath))
		}
		if opts.DotEnvPath != "" {
			loadOpts = append(loadOpts, config.WithDotEnv(opts.DotEnvPath))
		}
		loaded, err := config.Load(loadOpts...)
		if err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if opts.LogLevel != "" {
		cfg = cfg.Clone()
		cfg.Logging.Level = opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	log := opts.Logger
	if log == nil {
		log = NewLogger(LoggerConfigFrom(cfg.Logging))
	}

	a := &Application{opts: opts, cfg: cfg, log: log}
	a.bus = event.NewBus(event.WithErrorHandler(func(err error) {
		a.log.WithComponent("bus").Error("handler failed", "error", err)
	}))
	a.tree = block.NewTree()
	a.renderer = renderer.New(a.tree)
	a.editor = editor.New(a.tree, a.renderer,
		editor.WithOptions(editorOptions(cfg)),
		editor.WithBus(a.bus),
		editor.WithLogger(log.WithComponent("editor")),
	)
	if err := a.subscribe(); err != nil {
		a.renderer.Close()
		return nil, &InitError{Component: "subscriptions", Err: err}
	}
	a.log.Debug("application ready", "config", opts.ConfigPath, "indent_width", cfg.Editor.IndentWidth)
	return a, nil
}

func editorOptions(cfg *config.Config) editor.Options {
	return editor.Options{
		IndentWidth:   cfg.Editor.IndentWidth,
		PromptTrigger: cfg.Editor.Trigger(),
	}
}

// Config returns the active configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *Logger { return a.log }

// Bus returns the event bus.
func (a *Application) Bus() *event.Bus { return a.bus }

// Tree returns the document tree.
func (a *Application) Tree() *block.Tree { return a.tree }

// Renderer returns the headless renderer.
func (a *Application) Renderer() *renderer.Renderer { return a.renderer }

// Editor returns the editing controller.
func (a *Application) Editor() *editor.Controller { return a.editor }

// HandleKey applies any pending config reload and handles ev.
func (a *Application) HandleKey(ctx context.Context, ev key.Event) error {
	if a.isClosed() {
		return ErrClosed
	}
	a.applyPending(ctx)
	if err := a.editor.HandleKey(ctx, ev); err != nil {
		return NewOperationError("key", ev.String(), err)
	}
	return nil
}

// Keys parses and handles each key spec.
func (a *Application) Keys(ctx context.Context, specs ...string) error {
	for _, spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			return NewOperationError("key", spec, err)
		}
		if err := a.HandleKey(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Type handles each rune of s as a key press.
func (a *Application) Type(ctx context.Context, s string) error {
	for _, r := range s {
		if err := a.HandleKey(ctx, key.NewRuneEvent(r, 0)); err != nil {
			return err
		}
	}
	return nil
}

// Dump returns the document as YAML.
func (a *Application) Dump() ([]byte, error) {
	out, err := a.tree.Snapshot().YAML()
	if err != nil {
		return nil, NewOperationError("dump", "", err)
	}
	return out, nil
}

// Close stops the config watcher and the subscriptions.
func (a *Application) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.closed = true
	w := a.watcher
	a.mu.Unlock()

	var err error
	if w != nil {
		err = w.Close()
	}
	for i := len(a.stops) - 1; i >= 0; i-- {
		a.stops[i]()
	}
	a.renderer.Close()
	a.bus.Close()
	if cerr := a.log.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close logger: %w", cerr)
	}
	return err
}

func (a *Application) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
