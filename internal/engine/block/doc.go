// Package block provides the hierarchical block document model used by the
// outline editor.
//
// A document is a tree of blocks:
//
//   - Root: the single document root, owning the top-level lines
//   - Line: a paragraph node owning nested lines (indentation) and inline widgets
//   - InlineOption: an inline container embedded in a line's text
//   - Option / Text: inline leaves carrying a content mirror
//
// Sibling Lists:
//
// Every non-leaf block owns one or two List values. A List is an intrusive
// doubly-linked sibling chain: the head/tail and each member's next/prev
// links are stored as IDs and resolved through the owning Tree, which acts
// as an arena of all blocks ever created for the document.
//
// A block is a member of at most one List at a time. Inserting a block sets
// its parent to the list owner. Deleting a block clears its next/prev links
// but keeps the parent, so callers may delete a block and re-insert it
// elsewhere:
//
//	tree := block.NewTree()
//	top := tree.Root().Children()
//
//	a, _ := top.CreateBlock(block.KindLine)
//	b, _ := top.CreateBlock(block.KindLine)
//	top.AddToEnd(a)
//	top.AddToEnd(b)
//
//	top.DeleteBlock(b)
//	a.Children().AddToEnd(b) // b.Parent() == a
//
// Change Notification:
//
// Every mutation fires a Change to the list's observers and then to the
// tree-wide observers. Renderers subscribe with Tree.Observe and re-sync the
// DOM after each change.
//
// Failure Semantics:
//
// Structural misuse (self insertion, double insertion, deleting a block that
// is not a member) indicates a programming error upstream. Such conditions
// panic with *InvariantError before the list is modified. CreateBlock returns
// ErrInvalidKind for kinds the list cannot contain.
//
// Thread Safety:
//
// Tree and List are not safe for concurrent use. All mutations are expected
// to run on the single goroutine that handles input events.
package block
