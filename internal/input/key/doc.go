// Package key defines the keyboard events the editing controller consumes.
//
// Front-ends translate their native events into Event values; scripts and
// tests build them from text with Parse:
//
//	Parse("Enter")      // KeyEnter
//	Parse("S-Tab")      // KeyTab with ModShift
//	Parse("Shift+Tab")  // same
//	Parse("<C-a>")      // rune 'a' with ModCtrl
//	Parse("/")          // rune '/'
package key
