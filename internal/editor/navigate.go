package editor

import (
	"context"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// MoveUp moves the caret to the line visually above b.
func (c *Controller) MoveUp(ctx context.Context, b *block.Block) {
	c.moveVertical(ctx, b, prevVisual(b))
}

// MoveDown moves the caret to the line visually below b.
func (c *Controller) MoveDown(ctx context.Context, b *block.Block) {
	c.moveVertical(ctx, b, nextVisual(b))
}

func (c *Controller) moveVertical(ctx context.Context, b, dest *block.Block) {
	if dest == nil {
		return
	}
	to := c.intent.Vertical(caret.Step{
		From:       c.Offset(b),
		FromIndent: caret.IndentUnits(b),
		ToLen:      caret.Length(c.target(dest)),
		ToIndent:   caret.IndentUnits(dest),
		Width:      c.opts.IndentWidth,
	})
	c.place(ctx, dest, to, reasonVertical)
}

// moveHorizontal moves the caret by delta units, crossing to the end of
// the previous line or the start of the next one at the edges.
func (c *Controller) moveHorizontal(ctx context.Context, b *block.Block, delta int) {
	c.intent.Reset()
	off := c.Offset(b) + delta
	switch {
	case off < 0:
		if p := prevVisual(b); p != nil {
			c.place(ctx, p, caret.Length(c.target(p)), reasonHorizontal)
		}
	case off > caret.Length(c.target(b)):
		if n := nextVisual(b); n != nil {
			c.place(ctx, n, 0, reasonHorizontal)
		}
	default:
		c.place(ctx, b, off, reasonHorizontal)
	}
}

// nextVisual returns the line rendered below b: its first child, its next
// sibling, or the next sibling of the nearest ancestor that has one.
func nextVisual(b *block.Block) *block.Block {
	if h := b.Children().Head(); h != nil {
		return h
	}
	for cur := b; cur.IsLine(); cur = cur.Parent() {
		if n := cur.Next(); n != nil {
			return n
		}
	}
	return nil
}

// prevVisual returns the line rendered above b: the deepest last
// descendant of its previous sibling, or its parent line.
func prevVisual(b *block.Block) *block.Block {
	if p := b.Prev(); p != nil {
		return p.LastDescendant()
	}
	if p := b.Parent(); p.IsLine() {
		return p
	}
	return nil
}
