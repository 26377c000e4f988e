package caret

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Position is a DOM caret position: a node and an offset inside it. For
// text nodes the offset counts runes; for elements it is a child index.
type Position struct {
	Node   *html.Node
	Offset int
}

// IsZero reports whether the position has no node.
func (p Position) IsZero() bool {
	return p.Node == nil
}

func (p Position) String() string {
	if p.Node == nil {
		return "<none>"
	}
	if p.Node.Type == html.TextNode {
		return fmt.Sprintf("%q@%d", p.Node.Data, p.Offset)
	}
	return fmt.Sprintf("<%s>@%d", p.Node.Data, p.Offset)
}

// Segment is one flattened text-bearing node and its linear range.
type Segment struct {
	Node  *html.Node
	Start int
	End   int
}

// Len returns the number of units the segment covers.
func (s Segment) Len() int {
	return s.End - s.Start
}

// TextLen returns the rune length of a text node's data.
func TextLen(n *html.Node) int {
	return utf8.RuneCountInString(n.Data)
}

// Flatten walks the subtree under root depth-first and returns its segments
// in document order. Root itself contributes no segment.
func Flatten(root *html.Node) []Segment {
	if root == nil {
		return nil
	}
	segs, _ := flatten(root, 0, nil)
	return segs
}

func flatten(n *html.Node, off int, out []Segment) ([]Segment, int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			l := TextLen(c)
			out = append(out, Segment{Node: c, Start: off, End: off + l})
			off += l
		case html.ElementNode:
			before := len(out)
			out, off = flatten(c, off, out)
			if len(out) == before {
				out = append(out, Segment{Node: c, Start: off, End: off})
			}
			if nextContributing(c) != nil {
				off++
			}
		}
	}
	return out, off
}

// nextContributing returns the next sibling that flattens to a segment.
func nextContributing(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.TextNode || s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Length returns the linear length of the subtree under root.
func Length(root *html.Node) int {
	segs := Flatten(root)
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].End
}

// Locate converts a DOM position inside root to a linear offset. A position
// on an element inside root resolves to the start of the child at that
// index, or to the end of the element's content. Positions outside root
// collapse to 0.
func Locate(root *html.Node, pos Position) int {
	if pos.Node == nil {
		return 0
	}
	segs := Flatten(root)
	for _, s := range segs {
		if s.Node == pos.Node {
			return s.Start + clamp(pos.Offset, 0, s.Len())
		}
	}
	if pos.Node.Type != html.ElementNode || !within(root, pos.Node) {
		return 0
	}

	// Element position: find the first segment at or after the indexed child.
	child := childAt(pos.Node, pos.Offset)
	last := -1
	for _, s := range segs {
		if child != nil && within(child, s.Node) {
			return s.Start
		}
		if within(pos.Node, s.Node) {
			last = s.End
		}
	}
	if last < 0 {
		return 0
	}
	return last
}

// Place converts a linear offset to a DOM position inside root. The offset
// is clamped to [0, Length(root)]. When root has no text-bearing nodes the
// position is root itself at offset 0.
func Place(root *html.Node, offset int) Position {
	segs := Flatten(root)
	if len(segs) == 0 {
		return Position{Node: root}
	}
	offset = clamp(offset, 0, segs[len(segs)-1].End)
	for _, s := range segs {
		if offset >= s.Start && offset <= s.End {
			return Position{Node: s.Node, Offset: offset - s.Start}
		}
	}
	// Unreachable: consecutive segments are at most one separator apart.
	last := segs[len(segs)-1]
	return Position{Node: last.Node, Offset: last.Len()}
}

// Clamp limits offset to the valid range for root.
func Clamp(root *html.Node, offset int) int {
	return clamp(offset, 0, Length(root))
}

// within reports whether n is root or one of its descendants.
func within(root, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func childAt(n *html.Node, index int) *html.Node {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if i == index {
			return c
		}
		i++
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
