package renderer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names and attributes on rendered elements.
const (
	ClassOutline  = "outline"
	ClassLine     = "line"
	ClassContent  = "content"
	ClassChildren = "children"

	// AttrBlock holds the ID of the block an element renders.
	AttrBlock = "data-block"
)

func element(tag atom.Atom, class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag.String(),
		DataAtom: tag,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attr returns the value of an attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// insertAt inserts n before the child at index, or appends.
func insertAt(parent *html.Node, index int, n *html.Node) {
	i := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if i == index {
			parent.InsertBefore(n, c)
			return
		}
		i++
	}
	parent.AppendChild(n)
}

func insertAfter(ref, n *html.Node) {
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// splice returns s with runes [from, to) replaced by insert.
func splice(s string, from, to int, insert string) string {
	r := []rune(s)
	from = min(max(from, 0), len(r))
	to = min(max(to, from), len(r))
	return string(r[:from]) + insert + string(r[to:])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// textContent concatenates all text under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.TextNode {
			b.WriteString(x.Data)
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// parseInto appends the nodes of an HTML fragment to parent. Markup that
// fails to parse is kept as literal text.
func parseInto(parent *html.Node, markup string) {
	if markup == "" {
		return
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		parent.AppendChild(textNode(markup))
		return
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}
