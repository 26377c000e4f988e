package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS).
	ModMeta
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// ShortString returns the compact prefix form, e.g. "C-S".
func (m Modifier) ShortString() string {
	var parts []string
	for _, p := range modOrder {
		if m.Has(p.mod) {
			parts = append(parts, p.short)
		}
	}
	return strings.Join(parts, "-")
}

var modOrder = []struct {
	mod   Modifier
	short string
}{
	{ModCtrl, "C"},
	{ModAlt, "A"},
	{ModMeta, "M"},
	{ModShift, "S"},
}

// ModifierFromName parses a single modifier name or abbreviation.
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shift", "s":
		return ModShift
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "option", "opt", "a":
		return ModAlt
	case "meta", "cmd", "command", "super", "m", "d":
		return ModMeta
	}
	return ModNone
}
