package block

import (
	"errors"
	"fmt"
)

// Errors returned by block operations.
var (
	// ErrInvalidKind indicates a block kind that cannot be created in a list.
	ErrInvalidKind = errors.New("invalid kind")

	// ErrNotFound indicates an ID that is not in the tree.
	ErrNotFound = errors.New("block not found")

	// ErrCycle indicates a list whose next links revisit a block.
	ErrCycle = errors.New("cycle detected")

	// ErrBrokenLink indicates inconsistent next/prev/parent links.
	ErrBrokenLink = errors.New("broken link")

	// ErrInvariant is matched by every *InvariantError.
	ErrInvariant = errors.New("invariant violation")
)

// InvariantError describes a structural misuse of a List or Tree.
// It is raised with panic and is never returned from a healthy operation.
type InvariantError struct {
	Op    string // Operation name (e.g., "AddToEnd", "InsertAfter")
	Block ID     // Block being manipulated
	Msg   string // What went wrong
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("block: %s %s: %s", e.Op, e.Block.Short(), e.Msg)
}

// Is allows errors.Is to match InvariantError with ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// KindError reports a CreateBlock request the list cannot satisfy.
type KindError struct {
	Kind Kind
	Role Role
}

func (e *KindError) Error() string {
	return fmt.Sprintf("block: %v: cannot create %s in %s list", ErrInvalidKind, e.Kind, e.Role)
}

// Unwrap returns ErrInvalidKind.
func (e *KindError) Unwrap() error {
	return ErrInvalidKind
}

// invariant panics with an InvariantError when cond is false.
func invariant(cond bool, op string, id ID, msg string) {
	if !cond {
		panic(&InvariantError{Op: op, Block: id, Msg: msg})
	}
}
