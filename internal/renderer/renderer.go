package renderer

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/engine/caret"
)

// mount is the DOM owned by one mounted block.
type mount struct {
	outer   *html.Node // element placed in the parent container
	target  *html.Node // registered render target
	kids    *html.Node // children container, lines only
	cleanup func()
}

// Renderer is the headless DOM renderer for a block tree.
type Renderer struct {
	tree     *block.Tree
	registry *Registry
	doc      *html.Node
	mounts   map[block.ID]*mount
	sel      caret.Position
	dirty    bool
	frames   int
	stop     func()
}

// New renders tree and starts observing it.
func New(tree *block.Tree) *Renderer {
	r := &Renderer{
		tree:     tree,
		registry: NewRegistry(),
		doc:      element(atom.Div, ClassOutline),
		mounts:   make(map[block.ID]*mount),
		dirty:    true,
	}
	r.stop = tree.Observe(r.observe)
	r.Flush()
	return r
}

// Close stops observing the tree.
func (r *Renderer) Close() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

func (r *Renderer) observe(c block.Change) {
	if c.Kind.Structural() {
		r.dirty = true
	}
}

// Tree returns the rendered tree.
func (r *Renderer) Tree() *block.Tree { return r.tree }

// Registry returns the render target registry.
func (r *Renderer) Registry() *Registry { return r.registry }

// Document returns the outline container element.
func (r *Renderer) Document() *html.Node { return r.doc }

// Frames returns how many reconciliations have run.
func (r *Renderer) Frames() int { return r.frames }

// Dirty reports whether structural changes are waiting for Flush.
func (r *Renderer) Dirty() bool { return r.dirty }

// Flush reconciles the DOM with the tree if anything changed since the
// last flush. After Flush returns every attached block has a render target
// and detached blocks have none.
func (r *Renderer) Flush() {
	if !r.dirty {
		return
	}
	r.dirty = false

	seen := make(map[block.ID]bool, len(r.mounts))
	r.placeLines(r.tree.Root().Children(), r.doc, seen)
	for id, m := range r.mounts {
		if !seen[id] {
			r.unmount(id, m)
		}
	}
	r.frames++
}

// placeLines makes container hold exactly the lines of l, in order.
func (r *Renderer) placeLines(l *block.List, container *html.Node, seen map[block.ID]bool) {
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}
	for b := range l.All() {
		m := r.mountFor(b)
		seen[b.ID()] = true
		detach(m.outer)
		container.AppendChild(m.outer)
		r.placeInline(b.Inline(), m.target, seen)
		r.placeLines(b.Children(), m.kids, seen)
	}
}

// placeInline appends the widgets of l to target after its own content.
// Text and markup typed into target stay where they are.
func (r *Renderer) placeInline(l *block.List, target *html.Node, seen map[block.ID]bool) {
	if l == nil {
		return
	}
	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		if _, ok := r.registry.Owner(c); ok {
			target.RemoveChild(c)
		}
		c = next
	}
	for b := range l.All() {
		m := r.mountFor(b)
		seen[b.ID()] = true
		detach(m.outer)
		target.AppendChild(m.outer)
		r.placeInline(b.Inline(), m.target, seen)
	}
}

func (r *Renderer) mountFor(b *block.Block) *mount {
	if m, ok := r.mounts[b.ID()]; ok {
		return m
	}
	m := &mount{}
	switch b.Kind().Class() {
	case block.ClassLine:
		m.outer = element(atom.Div, ClassLine)
		m.target = element(atom.Div, ClassContent)
		m.kids = element(atom.Div, ClassChildren)
		m.outer.AppendChild(m.target)
		m.outer.AppendChild(m.kids)
		parseInto(m.target, b.HTML())
	case block.ClassInlineContainer:
		m.outer = element(atom.Span, b.Kind().String())
		m.target = m.outer
	case block.ClassInlineLeaf:
		m.outer = element(atom.Span, b.Kind().String())
		m.target = m.outer
		if b.Content() != "" {
			m.target.AppendChild(textNode(b.Content()))
		}
	default:
		panic(&block.InvariantError{Op: "mount", Block: b.ID(), Msg: "cannot render " + b.Kind().String()})
	}
	setAttr(m.target, AttrBlock, b.ID().String())
	m.cleanup = r.registry.RegisterRenderTarget(b)(m.target)
	r.mounts[b.ID()] = m
	return m
}

func (r *Renderer) unmount(id block.ID, m *mount) {
	m.cleanup()
	detach(m.outer)
	delete(r.mounts, id)
}

// Target returns the render target of id, or nil when it is not mounted.
func (r *Renderer) Target(id block.ID) *html.Node {
	return r.registry.Target(id)
}

// BlockAt returns the block whose render target encloses n.
func (r *Renderer) BlockAt(n *html.Node) *block.Block {
	id, ok := r.registry.Enclosing(n)
	if !ok {
		return nil
	}
	return r.tree.Lookup(id)
}

// HTML serialises the whole document.
func (r *Renderer) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, r.doc); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}
