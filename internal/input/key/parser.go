package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification.
//
// Supported formats:
//   - Single character: "a", "/", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - Prefix modifiers: "S-Tab", "C-a"
//   - Plus modifiers: "Shift+Tab", "Ctrl+a"
//   - Bracketed: "<S-Tab>", "<CR>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
	}

	sep := "-"
	if strings.Contains(spec, "+") && len(spec) > 1 {
		sep = "+"
	}
	var mods Modifier
	name := spec
	if utf8.RuneCountInString(spec) > 1 {
		parts := strings.Split(spec, sep)
		// A trailing separator is the key itself, as in "C--".
		if parts[len(parts)-1] == "" && len(parts) > 1 {
			parts = append(parts[:len(parts)-2], sep)
		}
		name = parts[len(parts)-1]
		for _, p := range parts[:len(parts)-1] {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
			}
			mods = mods.With(mod)
		}
	}
	return parseKey(name, mods, spec)
}

func parseKey(name string, mods Modifier, spec string) (Event, error) {
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.EqualFold(name, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
