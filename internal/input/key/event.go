package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for a printable character without Ctrl, Alt or
// Meta. Such events insert text.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Shifted reports whether Shift is held.
func (e Event) Shifted() bool {
	return e.Modifiers.Has(ModShift)
}

// String returns the form Parse accepts, e.g. "S-Tab", "C-a", "/".
// Shift is folded into character keys.
func (e Event) String() string {
	mods := e.Modifiers
	if e.IsRune() {
		mods &^= ModShift
	}

	var name string
	switch {
	case e.IsRune() && e.Rune == ' ':
		name = "Space"
	case e.IsRune():
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}

	if mods == ModNone {
		return name
	}
	var b strings.Builder
	b.WriteString(mods.ShortString())
	b.WriteByte('-')
	b.WriteString(name)
	return b.String()
}
