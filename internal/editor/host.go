package editor

import (
	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// Host is the rendering boundary the controller drives. It owns the DOM,
// the render target registry and the selection.
type Host interface {
	// Flush re-renders synchronously so render targets match the tree.
	Flush()

	// Target returns the render target of a block, or nil.
	Target(id block.ID) *html.Node

	// BlockAt returns the block whose render target encloses n.
	BlockAt(n *html.Node) *block.Block

	// Selection returns the collapsed selection.
	Selection() caret.Position

	// Select collapses the selection to p.
	Select(p caret.Position)

	// InsertText types s at the selection.
	InsertText(s string)

	// DeleteBackward removes the character before the selection and
	// reports whether there was one.
	DeleteBackward() bool

	// InsertNode inserts n at the selection.
	InsertNode(n *html.Node)

	// RemoveNode detaches n and joins the text around it.
	RemoveNode(n *html.Node)

	// MergeContent appends the content of from to into and returns the
	// join point.
	MergeContent(from, into block.ID) caret.Position
}

// Logger is the structured logging the controller needs. Arguments are
// alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
