package renderer

import (
	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
)

// Mount binds a rendered element to a block and returns the function that
// undoes the binding.
type Mount func(el *html.Node) (cleanup func())

// Registry maps blocks to the elements that currently render them. It is
// the only place a block's render target is recorded; callers look the
// target up per operation and never keep it.
type Registry struct {
	targets map[block.ID]*html.Node
	owners  map[*html.Node]block.ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[block.ID]*html.Node),
		owners:  make(map[*html.Node]block.ID),
	}
}

// RegisterRenderTarget returns the Mount for b. A block is mounted at most
// once at a time; mounting it again before cleanup panics with a
// *block.InvariantError. Cleanup may be called more than once.
func (r *Registry) RegisterRenderTarget(b *block.Block) Mount {
	id := b.ID()
	return func(el *html.Node) func() {
		if _, ok := r.targets[id]; ok {
			panic(&block.InvariantError{Op: "RegisterRenderTarget", Block: id, Msg: "block is already mounted"})
		}
		r.targets[id] = el
		r.owners[el] = id
		return func() {
			if r.targets[id] == el {
				delete(r.targets, id)
			}
			if r.owners[el] == id {
				delete(r.owners, el)
			}
		}
	}
}

// Target returns the element rendering id, or nil when unmounted.
func (r *Registry) Target(id block.ID) *html.Node {
	return r.targets[id]
}

// Owner returns the block rendered by el itself.
func (r *Registry) Owner(el *html.Node) (block.ID, bool) {
	id, ok := r.owners[el]
	return id, ok
}

// Enclosing walks up from n to the nearest registered element and returns
// its block ID.
func (r *Registry) Enclosing(n *html.Node) (block.ID, bool) {
	for ; n != nil; n = n.Parent {
		if id, ok := r.owners[n]; ok {
			return id, true
		}
	}
	return block.NilID, false
}

// Len returns the number of mounted blocks.
func (r *Registry) Len() int {
	return len(r.targets)
}
