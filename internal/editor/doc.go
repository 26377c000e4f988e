// Package editor implements the editing controller: the key-driven
// structural operations of the outline editor.
//
// Each key event is handled to completion before HandleKey returns. An
// operation mutates the block tree, forces the host to re-render
// synchronously, and only then places the caret in the new DOM:
//
//	structural edit -> Host.Flush -> caret placement
//
// Keys:
//
//	Enter         split: new line after the current one
//	Tab           indent under the previous sibling
//	Shift+Tab     outdent; following siblings become children
//	Backspace     delete a character, or merge/promote at offset 0
//	Up, Down      vertical navigation with indent compensation and
//	              a remembered intent column
//	Left, Right   move one unit, crossing line ends
//	/             open the command prompt
//
// Missing neighbours make an operation a no-op. Invariant violations, such
// as a block without a render target, abort the key with an error and are
// never swallowed.
package editor
