package block

import "fmt"

// ChangeKind enumerates the structural changes a List reports.
type ChangeKind uint8

const (
	ChangeAddedToEnd ChangeKind = iota
	ChangeAddedToStart
	ChangeInsertedAfter
	ChangeInsertedBefore
	ChangeDeleted
	ChangeCreated
)

// String returns the change name without the topic prefix.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAddedToEnd:
		return "added-to-end"
	case ChangeAddedToStart:
		return "added-to-start"
	case ChangeInsertedAfter:
		return "inserted-after"
	case ChangeInsertedBefore:
		return "inserted-before"
	case ChangeDeleted:
		return "deleted"
	case ChangeCreated:
		return "created"
	default:
		return fmt.Sprintf("ChangeKind(%d)", k)
	}
}

// Topic returns the event topic name for the change, e.g. "block.deleted".
func (k ChangeKind) Topic() string {
	return "block." + k.String()
}

// Structural reports whether the change altered list membership.
// Creation does not; the new block is not yet a member of any list.
func (k ChangeKind) Structural() bool {
	return k != ChangeCreated
}

// Change describes one mutation of a List.
type Change struct {
	Kind ChangeKind

	// Block is the affected block: the added, inserted, deleted or created one.
	Block *Block

	// Anchor is the existing sibling for InsertedAfter/InsertedBefore.
	Anchor *Block

	// List is the list that changed.
	List *List
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s in %s", c.Kind, c.Block, c.List)
}

// Observer receives list changes. Observers run synchronously after the
// mutation completes and must not mutate the list they observe.
type Observer func(Change)

type observerEntry struct {
	id uint64
	fn Observer
}

// observers is a callback list with stable removal.
type observers struct {
	nextID  uint64
	entries []observerEntry
}

func (o *observers) add(fn Observer) func() {
	o.nextID++
	id := o.nextID
	o.entries = append(o.entries, observerEntry{id: id, fn: fn})
	return func() {
		for i, e := range o.entries {
			if e.id == id {
				o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
				return
			}
		}
	}
}

func (o *observers) notify(c Change) {
	// Removal reallocates, so the captured slice is stable while observers
	// unsubscribe during notification.
	entries := o.entries
	for _, e := range entries {
		e.fn(c)
	}
}
