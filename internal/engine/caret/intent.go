package caret

import "github.com/dshills/outliner/internal/engine/block"

// IndentUnits returns the nesting depth of b below the root. Top-level
// lines are at depth 0.
func IndentUnits(b *block.Block) int {
	return b.Depth()
}

// Intent is the remembered caret column for vertical movement. The column
// is measured with indentation added, so it survives moves between lines
// at different depths.
type Intent struct {
	column int
	active bool
}

// Active reports whether a column is remembered.
func (i Intent) Active() bool { return i.active }

// Column returns the remembered column. It is meaningless unless Active.
func (i Intent) Column() int { return i.column }

// Remember stores column as the intended position.
func (i *Intent) Remember(column int) {
	i.column = column
	i.active = true
}

// Reset forgets the remembered column.
func (i *Intent) Reset() {
	i.column = 0
	i.active = false
}

// Step describes one vertical move between two lines.
type Step struct {
	From       int // caret offset in the source line
	FromIndent int // indent units of the source line
	ToLen      int // linear length of the destination line
	ToIndent   int // indent units of the destination line
	Width      int // columns per indent unit
}

// Vertical returns the caret offset in the destination line and updates
// the intent. When the source column does not fit, the caret lands at the
// end of the destination and the column is remembered; later moves aim for
// the remembered column until Reset.
func (i *Intent) Vertical(s Step) int {
	from := s.From + s.FromIndent*s.Width
	shift := s.ToIndent * s.Width
	limit := s.ToLen + shift

	switch {
	case i.active:
		return clamp(min(i.column, limit)-shift, 0, s.ToLen)
	case from > limit:
		i.Remember(from)
		return s.ToLen
	default:
		return clamp(from-shift, 0, s.ToLen)
	}
}
