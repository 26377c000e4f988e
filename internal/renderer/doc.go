// Package renderer is the rendering boundary of the outline editor.
//
// It keeps a DOM, built from golang.org/x/net/html nodes, in step with a
// block.Tree. The renderer observes the tree, marks itself dirty on every
// structural change and reconciles the DOM on Flush. Each block gets one
// element per mount, registered with the Registry as its render target:
//
//	<div class="outline">
//	  <div class="line">
//	    <div class="content" data-block="…">text<span class="inline-option" …>…</span></div>
//	    <div class="children">…nested lines…</div>
//	  </div>
//	</div>
//
// Existing elements are moved, never rebuilt, so typed text and the
// selection survive indent, outdent and merges. Text edits made through
// the renderer (InsertText, DeleteBackward, MergeContent, RemoveNode) are
// mirrored back onto the tree immediately with Tree.ApplyContent.
//
// The renderer is not safe for concurrent use. Front-ends and the editing
// controller share it from one goroutine.
package renderer
