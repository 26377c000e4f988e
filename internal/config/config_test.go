package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Editor.IndentWidth)
	assert.Equal(t, '/', cfg.Editor.Trigger())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "outliner.toml", `
[editor]
indent_width = 4

[logging]
level = "debug"
`)
	cfg, err := Load(WithFile(path), WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Editor.IndentWidth)
	assert.Equal(t, "/", cfg.Editor.PromptTrigger)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(WithFile(filepath.Join(t.TempDir(), "none.toml")), WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, "outliner.toml", "[editor]\nindent_width = 4\n")
	dotenv := writeFile(t, ".env", "OUTLINER_EDITOR_INDENT_WIDTH=5\nOUTLINER_TERMINAL_MOUSE=true\n")
	t.Setenv("OUTLINER_EDITOR_INDENT_WIDTH", "6")

	cfg, err := Load(WithFile(path), WithDotEnv(dotenv))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Editor.IndentWidth)
	assert.True(t, cfg.Terminal.Mouse)
}

func TestLoadUnknownSetting(t *testing.T) {
	path := writeFile(t, "outliner.toml", "[editor]\ntab_size = 4\n")
	_, err := Load(WithFile(path), WithoutEnv())
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestLoadTypeMismatch(t *testing.T) {
	path := writeFile(t, "outliner.toml", "[editor]\nindent_width = \"wide\"\n")
	_, err := Load(WithFile(path), WithoutEnv())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"zero indent", func(c *Config) { c.Editor.IndentWidth = 0 }, "editor.indent_width"},
		{"huge indent", func(c *Config) { c.Editor.IndentWidth = 99 }, "editor.indent_width"},
		{"empty trigger", func(c *Config) { c.Editor.PromptTrigger = "" }, "editor.prompt_trigger"},
		{"long trigger", func(c *Config) { c.Editor.PromptTrigger = "//" }, "editor.prompt_trigger"},
		{"space trigger", func(c *Config) { c.Editor.PromptTrigger = " " }, "editor.prompt_trigger"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"negative size", func(c *Config) { c.Logging.MaxSizeMB = -1 }, "logging.max_size_mb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Fields)
			assert.Equal(t, tt.path, ve.Fields[0].Path)
			assert.Contains(t, ve.Error(), tt.path)
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeFile(t, "outliner.toml", "[editor]\nindent_width = 0\n")
	_, err := Load(WithFile(path), WithoutEnv())
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestClone(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	c.Editor.IndentWidth = 8
	assert.Equal(t, 3, cfg.Editor.IndentWidth)
}
