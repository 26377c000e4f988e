package block

import "fmt"

// Tree is the arena that owns every block of one document and the single
// root block.
type Tree struct {
	blocks    map[ID]*Block
	root      *Block
	observers observers
}

// NewTree creates a document with an empty root.
func NewTree() *Tree {
	t := &Tree{blocks: make(map[ID]*Block)}
	t.root = t.alloc(KindRoot, NilID)
	return t
}

// Root returns the document root.
func (t *Tree) Root() *Block { return t.root }

// Lookup returns the block with the given ID, or nil.
func (t *Tree) Lookup(id ID) *Block { return t.get(id) }

// Size returns the number of blocks in the arena, including detached ones.
func (t *Tree) Size() int { return len(t.blocks) }

// Observe registers fn for changes to every list in the tree and returns a
// function that removes it. Tree observers run after list observers.
func (t *Tree) Observe(fn Observer) (cancel func()) {
	return t.observers.add(fn)
}

// NewLine allocates a detached line whose parent is the root.
func (t *Tree) NewLine() *Block {
	return t.root.children.MustCreate(KindLine)
}

// ApplyContent mirrors rendered content onto a block: markup for lines and
// text for inline leaves. It is the entry point the rendering boundary calls
// after it observes a DOM text change.
func (t *Tree) ApplyContent(id ID, value string) error {
	b := t.get(id)
	if b == nil {
		return fmt.Errorf("apply content %s: %w", id.Short(), ErrNotFound)
	}
	switch b.kind.Class() {
	case ClassLine:
		b.html = value
	case ClassInlineLeaf:
		b.content = value
	default:
		return fmt.Errorf("apply content %s: %w: %s has no content mirror", id.Short(), ErrInvalidKind, b.kind)
	}
	return nil
}

// Discard removes a detached block and its descendants from the arena.
// The block must not be a member of any list.
func (t *Tree) Discard(b *Block) {
	invariant(b.member == nil, "Discard", b.id, "block is still a member of "+memberName(b))
	invariant(b != t.root, "Discard", b.id, "cannot discard the root")
	t.forget(b)
}

func (t *Tree) forget(b *Block) {
	for _, l := range []*List{b.children, b.inline} {
		if l == nil {
			continue
		}
		for c := range l.All() {
			t.forget(c)
		}
	}
	delete(t.blocks, b.id)
}

// Walk visits every attached block depth-first: a block, then its inline
// blocks, then its children. Returning false stops the walk.
func (t *Tree) Walk(fn func(b *Block) bool) {
	t.walk(t.root, fn)
}

func (t *Tree) walk(b *Block, fn func(*Block) bool) bool {
	if !fn(b) {
		return false
	}
	for _, l := range []*List{b.inline, b.children} {
		if l == nil {
			continue
		}
		for c := range l.All() {
			if !t.walk(c, fn) {
				return false
			}
		}
	}
	return true
}

// Verify checks every list reachable from the root. See List.Verify.
func (t *Tree) Verify() error {
	var err error
	t.Walk(func(b *Block) bool {
		for _, l := range []*List{b.inline, b.children} {
			if l == nil {
				continue
			}
			if err = l.Verify(); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

// Lines returns the line blocks in visual (pre-order) order.
func (t *Tree) Lines() []*Block {
	var out []*Block
	t.Walk(func(b *Block) bool {
		if b.IsLine() {
			out = append(out, b)
		}
		return true
	})
	return out
}

func (t *Tree) alloc(kind Kind, parent ID) *Block {
	b := newBlock(t, kind, parent)
	t.blocks[b.id] = b
	return b
}

func (t *Tree) get(id ID) *Block {
	if id.IsNil() {
		return nil
	}
	return t.blocks[id]
}
