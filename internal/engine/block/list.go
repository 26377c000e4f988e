package block

import (
	"fmt"
	"iter"
)

// List is an intrusive doubly-linked chain of sibling blocks owned by one
// block. The zero value is not usable; lists are created with their owner.
type List struct {
	tree  *Tree
	owner ID
	kind  Kind // kind of the owner
	role  Role

	head ID
	tail ID

	observers observers
}

func newList(t *Tree, owner *Block, role Role) *List {
	return &List{
		tree:  t,
		owner: owner.id,
		kind:  owner.kind,
		role:  role,
	}
}

// Owner returns the block that owns the list.
func (l *List) Owner() *Block { return l.tree.get(l.owner) }

// Role returns whether this is a children or inline list.
func (l *List) Role() Role { return l.role }

// Head returns the first member, or nil if the list is empty.
func (l *List) Head() *Block { return l.tree.get(l.head) }

// Tail returns the last member, or nil if the list is empty.
func (l *List) Tail() *Block { return l.tree.get(l.tail) }

// Empty reports whether the list has no members.
func (l *List) Empty() bool { return l.head.IsNil() }

// Observe registers fn for changes to this list and returns a function
// that removes it.
func (l *List) Observe(fn Observer) (cancel func()) {
	return l.observers.add(fn)
}

// AddToEnd appends b to the list and returns it.
func (l *List) AddToEnd(b *Block) *Block {
	l.checkInsert("AddToEnd", b)
	if l.head.IsNil() {
		l.head, l.tail = b.id, b.id
		b.next, b.prev = NilID, NilID
	} else {
		invariant(b.id != l.tail, "AddToEnd", b.id, "cannot be the same tail block")
		tail := l.Tail()
		invariant(tail != nil, "AddToEnd", b.id, "no tail block")
		b.prev = tail.id
		b.next = NilID
		tail.next = b.id
		l.tail = b.id
	}
	l.adopt(b)
	l.emit(Change{Kind: ChangeAddedToEnd, Block: b, List: l})
	return b
}

// AddToStart prepends b to the list and returns it.
func (l *List) AddToStart(b *Block) *Block {
	l.checkInsert("AddToStart", b)
	if l.head.IsNil() {
		l.head, l.tail = b.id, b.id
		b.next, b.prev = NilID, NilID
	} else {
		invariant(b.id != l.head, "AddToStart", b.id, "cannot be the same head block")
		head := l.Head()
		b.next = head.id
		b.prev = NilID
		head.prev = b.id
		l.head = b.id
	}
	l.adopt(b)
	l.emit(Change{Kind: ChangeAddedToStart, Block: b, List: l})
	return b
}

// InsertAfter splices n immediately after anchor and returns n.
func (l *List) InsertAfter(anchor, n *Block) *Block {
	invariant(anchor != n, "InsertAfter", n.id, "cannot be the same block")
	invariant(anchor.member == l, "InsertAfter", anchor.id, "anchor is not a member of this list")
	l.checkInsert("InsertAfter", n)

	next := anchor.Next()
	n.next = anchor.next
	if next != nil {
		next.prev = n.id
	}
	if anchor.id == l.tail {
		l.tail = n.id
	}
	anchor.next = n.id
	n.prev = anchor.id
	l.adopt(n)
	l.emit(Change{Kind: ChangeInsertedAfter, Block: n, Anchor: anchor, List: l})
	return n
}

// InsertBefore splices n immediately before anchor and returns n. When
// anchor is the head, n becomes the new head.
func (l *List) InsertBefore(anchor, n *Block) *Block {
	invariant(anchor != n, "InsertBefore", n.id, "cannot be the same block")
	invariant(anchor.member == l, "InsertBefore", anchor.id, "anchor is not a member of this list")
	l.checkInsert("InsertBefore", n)

	prev := anchor.Prev()
	if prev != nil {
		prev.next = n.id
	} else {
		invariant(anchor.id == l.head, "InsertBefore", anchor.id, "no prev block")
		l.head = n.id
	}
	n.prev = anchor.prev
	n.next = anchor.id
	anchor.prev = n.id
	l.adopt(n)
	l.emit(Change{Kind: ChangeInsertedBefore, Block: n, Anchor: anchor, List: l})
	return n
}

// DeleteBlock unsplices b and returns it. The block's next/prev links are
// cleared; its parent is kept until it is inserted into another list.
func (l *List) DeleteBlock(b *Block) *Block {
	invariant(b.member == l, "DeleteBlock", b.id, "not a member of this list")

	prev := b.Prev()
	next := b.Next()
	if prev != nil {
		prev.next = b.next
	}
	if next != nil {
		next.prev = b.prev
	}
	if b.id == l.tail {
		l.tail = b.prev
	}
	if b.id == l.head {
		l.head = b.next
	}
	b.next, b.prev = NilID, NilID
	b.member = nil
	l.emit(Change{Kind: ChangeDeleted, Block: b, List: l})
	return b
}

// CreateBlock allocates a detached block of the given kind whose parent is
// the list owner. It does not insert the block.
func (l *List) CreateBlock(kind Kind) (*Block, error) {
	if !l.role.accepts(l.kind, kind) {
		return nil, &KindError{Kind: kind, Role: l.role}
	}
	b := l.tree.alloc(kind, l.owner)
	l.emit(Change{Kind: ChangeCreated, Block: b, List: l})
	return b, nil
}

// MustCreate is like CreateBlock but panics on an invalid kind.
func (l *List) MustCreate(kind Kind) *Block {
	b, err := l.CreateBlock(kind)
	if err != nil {
		panic(err)
	}
	return b
}

// All returns an iterator over the members from head to tail.
//
// The iterator is lazy: it follows next links as it goes and takes no
// snapshot. Mutating the list during iteration has undefined effect on the
// remainder of that pass.
func (l *List) All() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for b := l.Head(); b != nil; b = b.Next() {
			if !yield(b) {
				return
			}
		}
	}
}

// Slice returns the members in order.
func (l *List) Slice() []*Block {
	var out []*Block
	for b := range l.All() {
		out = append(out, b)
	}
	return out
}

// Len counts the members.
func (l *List) Len() int {
	n := 0
	for range l.All() {
		n++
	}
	return n
}

// Index returns the position of b in the list, or -1.
func (l *List) Index(b *Block) int {
	i := 0
	for m := range l.All() {
		if m == b {
			return i
		}
		i++
	}
	return -1
}

// Verify walks the list and checks the list invariants: head/tail are both
// set or both unset, end links are nil, prev links mirror next links, every
// member belongs to this list with the owner as parent, and no block is
// visited twice. The walk is bounded by the tree size.
func (l *List) Verify() error {
	if l.head.IsNil() != l.tail.IsNil() {
		return fmt.Errorf("%w: head/tail mismatch in %s", ErrBrokenLink, l)
	}
	if l.head.IsNil() {
		return nil
	}
	head, tail := l.Head(), l.Tail()
	if head == nil || tail == nil {
		return fmt.Errorf("%w: dangling head/tail in %s", ErrBrokenLink, l)
	}
	if !head.prev.IsNil() {
		return fmt.Errorf("%w: head %s has prev", ErrBrokenLink, head)
	}
	if !tail.next.IsNil() {
		return fmt.Errorf("%w: tail %s has next", ErrBrokenLink, tail)
	}

	seen := make(map[ID]struct{})
	limit := l.tree.Size() + 1
	var prev *Block
	for b := head; b != nil; b = b.Next() {
		if _, dup := seen[b.id]; dup {
			return fmt.Errorf("%w: %s revisited in %s", ErrCycle, b, l)
		}
		if len(seen) >= limit {
			return fmt.Errorf("%w: walk exceeded %d in %s", ErrCycle, limit, l)
		}
		seen[b.id] = struct{}{}

		if b.member != l {
			return fmt.Errorf("%w: %s not a member of %s", ErrBrokenLink, b, l)
		}
		if b.parent != l.owner {
			return fmt.Errorf("%w: %s parent is not the list owner", ErrBrokenLink, b)
		}
		if prev != nil && b.prev != prev.id {
			return fmt.Errorf("%w: %s prev does not mirror next", ErrBrokenLink, b)
		}
		if b.next.IsNil() && b.id != l.tail {
			return fmt.Errorf("%w: walk ended at %s before tail", ErrBrokenLink, b)
		}
		prev = b
	}
	return nil
}

func (l *List) String() string {
	return fmt.Sprintf("%s/%s:%s", l.kind, l.role, l.owner.Short())
}

// checkInsert rejects blocks that are already linked somewhere or that the
// list cannot hold.
func (l *List) checkInsert(op string, b *Block) {
	invariant(b.tree == l.tree, op, b.id, "block belongs to another tree")
	invariant(b.member == nil, op, b.id, "block is already a member of "+memberName(b))
	invariant(!b.contains(l.owner), op, b.id, "block cannot contain itself or an ancestor")
	invariant(l.role.accepts(l.kind, b.kind), op, b.id, b.kind.String()+" not allowed in "+l.String())
}

// adopt records membership and sets the parent to the list owner.
func (l *List) adopt(b *Block) {
	b.member = l
	b.parent = l.owner
}

func (l *List) emit(c Change) {
	l.observers.notify(c)
	l.tree.observers.notify(c)
}

func memberName(b *Block) string {
	if b.member == nil {
		return "nothing"
	}
	return b.member.String()
}
