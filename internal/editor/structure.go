package editor

import (
	"context"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// Split inserts a new empty line after b and moves the caret to its start.
func (c *Controller) Split(ctx context.Context, b *block.Block) {
	siblings := b.Parent().Children()
	n := siblings.InsertAfter(b, siblings.MustCreate(block.KindLine))
	c.intent.Reset()
	c.place(ctx, n, 0, reasonEdit)
	c.edited(ctx, opSplit, n)
}

// Indent makes b the last child of its previous sibling. It is a no-op
// for the first sibling.
func (c *Controller) Indent(ctx context.Context, b *block.Block) {
	prev := b.Prev()
	if prev == nil {
		return
	}
	off := c.Offset(b)
	b.List().DeleteBlock(b)
	prev.Children().AddToEnd(b)
	c.place(ctx, b, off, reasonEdit)
	c.edited(ctx, opIndent, b)
}

// Outdent moves b after its parent line. The siblings that followed b
// become b's last children, in order. It is a no-op at the top level.
func (c *Controller) Outdent(ctx context.Context, b *block.Block) {
	parent := b.Parent()
	if !parent.IsLine() {
		return
	}
	off := c.Offset(b)
	siblings := parent.Children()
	for f := b.Next(); f != nil; {
		next := f.Next()
		siblings.DeleteBlock(f)
		b.Children().AddToEnd(f)
		f = next
	}
	siblings.DeleteBlock(b)
	parent.Parent().Children().InsertAfter(parent, b)
	c.place(ctx, b, off, reasonEdit)
	c.edited(ctx, opOutdent, b)
}

// Backspace deletes the character before the caret. At offset 0 the last
// child of a line is promoted after its parent; any other line is merged
// into the line visually above it.
func (c *Controller) Backspace(ctx context.Context, b *block.Block) {
	sel := c.host.Selection()
	if c.Offset(b) > 0 || c.host.BlockAt(sel.Node) != b {
		if c.host.DeleteBackward() {
			c.intent.Reset()
			c.edited(ctx, opText, b)
		}
		return
	}

	parent := b.Parent()
	if parent.IsLine() && parent.Children().Tail() == b {
		parent.Children().DeleteBlock(b)
		parent.Parent().Children().InsertAfter(parent, b)
		c.intent.Reset()
		c.place(ctx, b, 0, reasonEdit)
		c.edited(ctx, opPromote, b)
		return
	}

	var into *block.Block
	switch prev := b.Prev(); {
	case prev != nil:
		into = prev.LastDescendant()
	case parent.IsLine():
		into = parent
	default:
		return
	}
	c.merge(ctx, b, into)
}

// merge appends b's content and widgets to into, lifts b's children into
// b's place and discards b.
func (c *Controller) merge(ctx context.Context, b, into *block.Block) {
	c.target(into)
	c.target(b)
	join := c.host.MergeContent(b.ID(), into.ID())

	for w := b.Inline().Head(); w != nil; w = b.Inline().Head() {
		b.Inline().DeleteBlock(w)
		into.Inline().AddToEnd(w)
	}

	siblings := b.List()
	anchor := b
	for ch := b.Children().Head(); ch != nil; ch = b.Children().Head() {
		b.Children().DeleteBlock(ch)
		siblings.InsertAfter(anchor, ch)
		anchor = ch
	}
	siblings.DeleteBlock(b)
	c.tree.Discard(b)

	c.host.Flush()
	off := caret.Locate(c.target(into), join)
	c.intent.Reset()
	c.place(ctx, into, off, reasonEdit)
	c.edited(ctx, opMerge, into)
}
