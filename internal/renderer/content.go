package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// ErrNotMounted indicates a block without a render target.
var ErrNotMounted = errors.New("block is not mounted")

// Separator is drawn for each structural boundary unit in Display.
const Separator = "│"

// SyncContent mirrors the rendered content of id onto the block: markup
// without widgets for lines, text for inline leaves. Inline containers
// have no mirror of their own.
func (r *Renderer) SyncContent(id block.ID) error {
	b := r.tree.Lookup(id)
	el := r.registry.Target(id)
	if b == nil || el == nil {
		return fmt.Errorf("sync %s: %w", id.Short(), ErrNotMounted)
	}
	switch b.Kind().Class() {
	case block.ClassLine:
		markup, err := r.markup(el)
		if err != nil {
			return fmt.Errorf("sync %s: %w", id.Short(), err)
		}
		return r.tree.ApplyContent(id, markup)
	case block.ClassInlineLeaf:
		return r.tree.ApplyContent(id, textContent(el))
	}
	return nil
}

// syncAt mirrors the block enclosing n. Nodes outside any target are
// ignored.
func (r *Renderer) syncAt(n *html.Node) {
	if id, ok := r.registry.Enclosing(n); ok {
		_ = r.SyncContent(id)
	}
}

// markup renders the children of el, skipping mounted widgets.
func (r *Renderer) markup(el *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if _, ok := r.registry.Owner(c); ok {
			continue
		}
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Display returns the text of id's render target as it lines up with
// linear caret offsets: one rune per offset unit, with Separator drawn for
// each structural boundary.
func (r *Renderer) Display(id block.ID) string {
	el := r.registry.Target(id)
	if el == nil {
		return ""
	}
	var b strings.Builder
	end := 0
	for _, s := range caret.Flatten(el) {
		if s.Start > end {
			b.WriteString(strings.Repeat(Separator, s.Start-end))
		}
		if s.Node.Type == html.TextNode {
			b.WriteString(s.Node.Data)
		}
		end = s.End
	}
	return b.String()
}

// Line is one visual line of the outline.
type Line struct {
	ID    block.ID
	Depth int
	Text  string
}

// Lines lists the visual lines in document order.
func (r *Renderer) Lines() []Line {
	var out []Line
	for _, b := range r.tree.Lines() {
		out = append(out, Line{ID: b.ID(), Depth: b.Depth(), Text: r.Display(b.ID())})
	}
	return out
}

// CaretLine returns the index into Lines of the line holding the selection
// and the linear caret offset within it, or -1.
func (r *Renderer) CaretLine() (index, offset int) {
	b := r.BlockAt(r.sel.Node)
	if b == nil {
		return -1, 0
	}
	if !b.IsLine() {
		b = b.LineParent()
	}
	for i, l := range r.tree.Lines() {
		if l == b {
			return i, caret.Locate(r.registry.Target(b.ID()), r.sel)
		}
	}
	return -1, 0
}
