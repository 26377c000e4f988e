package block

import "github.com/google/uuid"

// ID is a process-unique block identifier. IDs are never reused.
type ID uuid.UUID

// NilID is the zero ID, used for absent links.
var NilID ID

func newID() ID {
	return ID(uuid.New())
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first eight hex digits, for logs.
func (id ID) Short() string {
	return id.String()[:8]
}

// IsNil reports whether the ID is the zero ID.
func (id ID) IsNil() bool {
	return id == NilID
}

// ParseID parses the canonical string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, err
	}
	return ID(u), nil
}

// Block is a node of the document tree.
//
// Links to neighbours are stored as IDs and resolved through the tree, so a
// Block never holds a pointer to another Block.
type Block struct {
	tree *Tree
	id   ID
	kind Kind

	next   ID
	prev   ID
	parent ID

	// member is the list this block currently belongs to, nil when detached.
	member *List

	children *List
	inline   *List

	// html mirrors the rendered markup of a line; content mirrors the text
	// of an inline leaf. Both are written by the rendering boundary only.
	html    string
	content string
}

func newBlock(t *Tree, kind Kind, parent ID) *Block {
	b := &Block{
		tree:   t,
		id:     newID(),
		kind:   kind,
		parent: parent,
	}
	if kind.HasChildren() {
		b.children = newList(t, b, RoleChildren)
	}
	if kind.HasInline() {
		b.inline = newList(t, b, RoleInline)
	}
	return b
}

// ID returns the block identifier.
func (b *Block) ID() ID { return b.id }

// Kind returns the block variant.
func (b *Block) Kind() Kind { return b.kind }

// Tree returns the tree that allocated the block.
func (b *Block) Tree() *Tree { return b.tree }

// IsLine reports whether b is a line block. Safe on a nil receiver.
func (b *Block) IsLine() bool { return b != nil && b.kind == KindLine }

// IsRoot reports whether b is the document root. Safe on a nil receiver.
func (b *Block) IsRoot() bool { return b != nil && b.kind == KindRoot }

// Next returns the following sibling, or nil at the end of the list.
func (b *Block) Next() *Block { return b.tree.get(b.next) }

// Prev returns the preceding sibling, or nil at the start of the list.
func (b *Block) Prev() *Block { return b.tree.get(b.prev) }

// Parent returns the block whose list this block was last inserted into.
// The parent survives deletion until the block is inserted elsewhere.
func (b *Block) Parent() *Block { return b.tree.get(b.parent) }

// List returns the list the block is currently a member of, or nil.
func (b *Block) List() *List { return b.member }

// Attached reports whether the block is a member of a list.
func (b *Block) Attached() bool { return b.member != nil }

// Children returns the nested line list. Nil for inline blocks.
func (b *Block) Children() *List { return b.children }

// Inline returns the inline list. Nil for the root and inline leaves.
func (b *Block) Inline() *List { return b.inline }

// HTML returns the mirrored markup of a line block.
func (b *Block) HTML() string { return b.html }

// Content returns the mirrored text of an inline leaf.
func (b *Block) Content() string { return b.content }

// SetHTML replaces the markup mirror. Only line blocks carry markup.
func (b *Block) SetHTML(html string) {
	invariant(b.kind == KindLine, "SetHTML", b.id, "markup mirror on "+b.kind.String())
	b.html = html
}

// SetContent replaces the text mirror. Only inline leaves carry content.
func (b *Block) SetContent(text string) {
	invariant(b.kind.Class() == ClassInlineLeaf, "SetContent", b.id, "content mirror on "+b.kind.String())
	b.content = text
}

// Depth returns the number of ancestor line blocks.
func (b *Block) Depth() int {
	depth := 0
	for p := b.Parent(); p.IsLine(); p = p.Parent() {
		depth++
	}
	return depth
}

// LineParent returns the nearest enclosing line block, or nil.
func (b *Block) LineParent() *Block {
	p := b.Parent()
	for p != nil && !p.IsLine() {
		p = p.Parent()
	}
	return p
}

// LastDescendant follows children tails down to the deepest last line.
// Returns b itself when it has no children.
func (b *Block) LastDescendant() *Block {
	cur := b
	for cur.children != nil {
		tail := cur.children.Tail()
		if tail == nil {
			break
		}
		cur = tail
	}
	return cur
}

func (b *Block) String() string {
	return b.kind.String() + ":" + b.id.Short()
}

// contains reports whether id is b itself or one of b's descendants, by
// walking id's parent chain. The walk stops at a detached block, whose
// parent link is stale.
func (b *Block) contains(id ID) bool {
	for cur := b.tree.get(id); cur != nil; cur = cur.Parent() {
		if cur.id == b.id {
			return true
		}
		if cur.parent.IsNil() || (cur.member == nil && !cur.IsRoot()) {
			break
		}
	}
	return false
}
