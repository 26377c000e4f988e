package renderer

import (
	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// Selection returns the collapsed document selection.
func (r *Renderer) Selection() caret.Position {
	return r.sel
}

// Select collapses the selection to p.
func (r *Renderer) Select(p caret.Position) {
	r.sel = p
}

// InsertText inserts s at the selection and moves the selection after it.
// A selection on an element gets a new text node at that child index.
func (r *Renderer) InsertText(s string) {
	p := r.sel
	if p.Node == nil || s == "" {
		return
	}
	if p.Node.Type == html.TextNode {
		off := min(max(p.Offset, 0), runeLen(p.Node.Data))
		p.Node.Data = splice(p.Node.Data, off, off, s)
		r.sel = caret.Position{Node: p.Node, Offset: off + runeLen(s)}
	} else {
		t := textNode(s)
		insertAt(p.Node, p.Offset, t)
		r.sel = caret.Position{Node: t, Offset: runeLen(s)}
	}
	r.syncAt(r.sel.Node)
}

// DeleteBackward removes the character before the selection inside the
// enclosing render target. It returns false when there is none: at the
// start of the target, or right after a structural boundary.
func (r *Renderer) DeleteBackward() bool {
	if r.sel.Node == nil {
		return false
	}
	id, ok := r.registry.Enclosing(r.sel.Node)
	if !ok {
		return false
	}
	root := r.registry.Target(id)
	k := caret.Locate(root, r.sel)
	if k == 0 {
		return false
	}
	q := caret.Place(root, k)
	if q.Node.Type != html.TextNode || q.Offset == 0 {
		return false
	}
	q.Node.Data = splice(q.Node.Data, q.Offset-1, q.Offset, "")
	r.sel = caret.Position{Node: q.Node, Offset: q.Offset - 1}
	r.syncAt(q.Node)
	return true
}

// InsertNode inserts n at the selection, splitting a text node when the
// selection is inside one. The selection is left unchanged.
func (r *Renderer) InsertNode(n *html.Node) {
	p := r.sel
	switch {
	case p.Node == nil:
		return
	case p.Node.Type == html.TextNode:
		off := min(max(p.Offset, 0), runeLen(p.Node.Data))
		rest := splice(p.Node.Data, 0, off, "")
		p.Node.Data = splice(p.Node.Data, off, runeLen(p.Node.Data), "")
		insertAfter(p.Node, n)
		if rest != "" {
			insertAfter(n, textNode(rest))
		}
	default:
		insertAt(p.Node, p.Offset, n)
	}
	r.syncAt(n)
}

// RemoveNode detaches n and joins the text nodes it separated. A selection
// inside the second half of a join follows the text.
func (r *Renderer) RemoveNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	prev := n.PrevSibling
	parent.RemoveChild(n)
	if prev != nil && prev.Type == html.TextNode {
		r.joinText(prev)
	}
	r.syncAt(parent)
}

// joinText merges the text siblings following t into t.
func (r *Renderer) joinText(t *html.Node) {
	for next := t.NextSibling; next != nil && next.Type == html.TextNode; next = t.NextSibling {
		if r.sel.Node == next {
			r.sel = caret.Position{Node: t, Offset: runeLen(t.Data) + r.sel.Offset}
		}
		t.Data += next.Data
		t.Parent.RemoveChild(next)
	}
}

// MergeContent moves the typed content of from to the end of into's
// content, ahead of into's widgets, and returns the join point.
func (r *Renderer) MergeContent(from, into block.ID) caret.Position {
	src, dst := r.registry.Target(from), r.registry.Target(into)
	if src == nil || dst == nil {
		return caret.Position{}
	}

	// Widgets sit after the typed content; merged nodes go before them.
	var anchor *html.Node
	for c := dst.FirstChild; c != nil; c = c.NextSibling {
		if _, ok := r.registry.Owner(c); ok {
			anchor = c
			break
		}
	}
	var join caret.Position
	last := dst.LastChild
	if anchor != nil {
		last = anchor.PrevSibling
	}
	if last != nil && last.Type == html.TextNode {
		join = caret.Position{Node: last, Offset: runeLen(last.Data)}
	}

	var first *html.Node
	for c := src.FirstChild; c != nil; {
		next := c.NextSibling
		if _, ok := r.registry.Owner(c); !ok {
			src.RemoveChild(c)
			dst.InsertBefore(c, anchor)
			if first == nil {
				first = c
			}
		}
		c = next
	}
	if join.Node == nil {
		switch {
		case first != nil && first.Type == html.TextNode:
			join = caret.Position{Node: first}
		case first != nil:
			join = caret.Position{Node: dst, Offset: childIndex(dst, first)}
		default:
			join = caret.Position{Node: dst, Offset: childIndex(dst, anchor)}
		}
	}
	if join.Node.Type == html.TextNode {
		r.joinText(join.Node)
	}
	r.syncAt(src)
	r.syncAt(dst)
	return join
}

// childIndex returns the index of n among the children of parent, or the
// child count when n is nil.
func childIndex(parent, n *html.Node) int {
	i := 0
	for c := parent.FirstChild; c != nil && c != n; c = c.NextSibling {
		i++
	}
	return i
}
