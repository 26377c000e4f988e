package config

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/outliner/internal/config/loader"
)

// Config is the complete outliner configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Logging  LoggingConfig  `toml:"logging"`
	Terminal TerminalConfig `toml:"terminal"`
}

// EditorConfig configures the editing controller.
type EditorConfig struct {
	// IndentWidth is the number of columns per nesting level.
	IndentWidth int `toml:"indent_width" validate:"min=1,max=16"`

	// PromptTrigger is the single character that opens the command prompt.
	PromptTrigger string `toml:"prompt_trigger" validate:"required,trigger"`
}

// Trigger returns PromptTrigger as a rune.
func (e EditorConfig) Trigger() rune {
	r, _ := utf8.DecodeRuneInString(e.PromptTrigger)
	return r
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level      string `toml:"level" validate:"oneof=debug info warn error"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" validate:"min=0"`
	MaxBackups int    `toml:"max_backups" validate:"min=0"`
	JSON       bool   `toml:"json"`
}

// TerminalConfig configures the terminal front-end.
type TerminalConfig struct {
	Mouse      bool `toml:"mouse"`
	ShowBlocks bool `toml:"show_blocks"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			IndentWidth:   3,
			PromptTrigger: "/",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	file    string
	dotenv  string
	prefix  string
	fs      loader.FileSystem
	useEnv  bool
	sources []loader.Loader
}

// WithFile reads the TOML file at path. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithDotEnv reads the .env file at path. A missing file is not an error.
func WithDotEnv(path string) Option {
	return func(o *options) { o.dotenv = path }
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithoutEnv skips the process environment.
func WithoutEnv() Option {
	return func(o *options) { o.useEnv = false }
}

// WithFS reads files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithSource adds a loader applied after the environment.
func WithSource(l loader.Loader) Option {
	return func(o *options) { o.sources = append(o.sources, l) }
}

// Load builds a Config from the defaults and the configured layers.
func Load(opts ...Option) (*Config, error) {
	o := options{prefix: loader.DefaultPrefix, fs: loader.OSFS{}, useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	var sources []loader.Loader
	if o.file != "" {
		sources = append(sources, loader.NewTOMLLoaderWithFS(o.fs, o.file))
	}
	if o.dotenv != "" {
		sources = append(sources, loader.NewDotEnvLoader(o.dotenv, o.prefix))
	}
	if o.useEnv {
		sources = append(sources, loader.NewEnvLoader(o.prefix))
	}
	sources = append(sources, o.sources...)

	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a merged layer map onto c. Settings absent from the map
// keep their current values.
func (c *Config) apply(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode merged config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var sm *toml.StrictMissingError
		if errors.As(err, &sm) {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, sm.String())
		}
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return nil
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
