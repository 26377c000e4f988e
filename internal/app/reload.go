package app

import (
	"context"

	"github.com/dshills/outliner/internal/config"
	"github.com/dshills/outliner/internal/config/watcher"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/event/topic"
)

// WatchConfig reloads the config file whenever it changes. It is a no-op
// without a config path.
func (a *Application) WatchConfig() error {
	if a.opts.ConfigPath == "" {
		return nil
	}
	log := a.log.WithComponent("config")
	w, err := watcher.New(a.opts.ConfigPath, watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error", "error", err)
	}))
	if err != nil {
		return NewOperationError("watch", a.opts.ConfigPath, err)
	}
	w.OnChange(func(ev watcher.Event) {
		log.Debug("config changed", "path", ev.Path, "op", ev.Op.String())
		if ev.Op == watcher.OpRemove {
			return
		}
		_ = a.Reload(context.Background())
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		_ = w.Close()
		return ErrClosed
	}
	a.watcher = w
	return nil
}

// Reload loads the config file again and stages it. The staged config
// takes effect before the next key. An invalid file is reported on the bus
// and the current config stays active.
func (a *Application) Reload(ctx context.Context) error {
	var opts []config.Option
	if a.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(a.opts.ConfigPath))
	}
	if a.opts.DotEnvPath != "" {
		opts = append(opts, config.WithDotEnv(a.opts.DotEnvPath))
	}
	cfg, err := config.Load(opts...)
	if err == nil && a.opts.LogLevel != "" {
		cfg.Logging.Level = a.opts.LogLevel
	}
	if err != nil {
		a.log.Warn("config rejected", "path", a.opts.ConfigPath, "error", err)
		publish(ctx, a, events.TopicConfigValidationError,
			events.ConfigValidationError{Path: a.opts.ConfigPath, Error: err.Error()})
		return NewOperationError("reload", a.opts.ConfigPath, err)
	}

	a.mu.Lock()
	a.pending = cfg
	a.mu.Unlock()
	return nil
}

// applyPending swaps in a staged config.
func (a *Application) applyPending(ctx context.Context) {
	a.mu.Lock()
	cfg := a.pending
	a.pending = nil
	a.mu.Unlock()
	if cfg == nil {
		return
	}

	a.cfg = cfg
	a.editor.SetOptions(editorOptions(cfg))
	a.log.SetLevel(ParseLogLevel(cfg.Logging.Level))
	a.log.Info("config reloaded", "path", a.opts.ConfigPath)
	publish(ctx, a, events.TopicConfigReloaded, events.ConfigReloaded{Path: a.opts.ConfigPath})
}

func publish[T any](ctx context.Context, a *Application, t topic.Topic, payload T) {
	if err := a.bus.Publish(ctx, event.NewEvent(t, payload, "app")); err != nil {
		a.log.Debug("publish failed", "topic", t.String(), "error", err)
	}
}
