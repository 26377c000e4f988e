// Package caret translates between linear caret offsets and positions in a
// rendered DOM subtree.
//
// A block's rendered subtree is flattened into an ordered list of segments,
// one per text node, each covering [Start, End] of the linear offset space.
// Offsets are counted in runes. Every element that is followed by another
// contributing sibling consumes one extra unit after its content, a virtual
// separator, so nested widgets and line boundaries count as one logical
// character. An element without text contributes an empty segment, which
// lets the caret land inside empty option slots.
//
//	<div>ab<span>cd</span>ef</div>
//
//	"ab"  [0, 2]
//	"cd"  [2, 4]   separator at 4..5
//	"ef"  [5, 7]
//
// Locate maps a DOM position to an offset and Place maps an offset back to
// a DOM position. For every offset k in [0, Length(root)],
// Locate(root, Place(root, k)) == k.
//
// Vertical Movement:
//
// Moving between lines at different nesting depths compensates for the
// indentation each level adds (IndentUnits * unit width). Intent keeps the
// remembered column across vertical moves through shorter lines until a
// horizontal move or a text edit resets it.
package caret
