package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPrefix is the prefix of environment variables read into the
// configuration.
const DefaultPrefix = "OUTLINER_"

// EnvLoader maps prefixed environment variables to settings.
// OUTLINER_EDITOR_INDENT_WIDTH sets editor.indent_width.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		mapping: map[string]string{
			prefix + "LOG_LEVEL": "logging.level",
			prefix + "LOG_FILE":  "logging.file",
		},
		environ: os.Environ,
	}
}

// AddMapping maps an environment variable to a dot-separated setting.
func (l *EnvLoader) AddMapping(env, path string) {
	l.mapping[env] = path
}

// Load reads the matching variables.
func (l *EnvLoader) Load() (map[string]any, error) {
	return l.load(l.environ()), nil
}

func (l *EnvLoader) load(environ []string) map[string]any {
	out := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(out, strings.Split(path, "."), parseValue(value))
	}
	return out
}

// envToPath converts PREFIX_SECTION_SOME_NAME to section.some_name.
func (l *EnvLoader) envToPath(name string) string {
	section, setting, ok := strings.Cut(strings.TrimPrefix(name, l.prefix), "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return strings.ToLower(section) + "." + strings.ToLower(setting)
}

// parseValue converts an environment string to a bool, integer, float or
// string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// DotEnvLoader reads prefixed variables from a .env file without touching
// the process environment.
type DotEnvLoader struct {
	path string
	env  *EnvLoader
}

// NewDotEnvLoader creates a loader for the .env file at path.
func NewDotEnvLoader(path, prefix string) *DotEnvLoader {
	return &DotEnvLoader{path: path, env: NewEnvLoader(prefix)}
}

// Load parses the file. A missing file yields nil, nil.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	vars, err := godotenv.Read(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", l.path, err)
	}
	environ := make([]string, 0, len(vars))
	for k, v := range vars {
		environ = append(environ, k+"="+v)
	}
	return l.env.load(environ), nil
}
