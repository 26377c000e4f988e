package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/renderer"
)

type fixture struct {
	t    *testing.T
	ctx  context.Context
	tree *block.Tree
	r    *renderer.Renderer
	c    *Controller
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	tree := block.NewTree()
	r := renderer.New(tree)
	t.Cleanup(r.Close)
	return &fixture{t: t, ctx: context.Background(), tree: tree, r: r, c: New(tree, r, opts...)}
}

func (f *fixture) line(markup string) *block.Block {
	b := f.tree.Root().Children().AddToEnd(f.tree.NewLine())
	b.SetHTML(markup)
	return b
}

func (f *fixture) child(parent *block.Block, markup string) *block.Block {
	l := parent.Children()
	b := l.AddToEnd(l.MustCreate(block.KindLine))
	b.SetHTML(markup)
	return b
}

func (f *fixture) focus(b *block.Block, offset int) {
	f.t.Helper()
	require.NoError(f.t, f.c.Focus(f.ctx, b, offset))
}

func (f *fixture) keys(specs ...string) {
	f.t.Helper()
	require.NoError(f.t, f.c.Keys(f.ctx, specs...))
}

// at returns the current line and caret offset.
func (f *fixture) at() (*block.Block, int) {
	b := f.c.Current()
	require.NotNil(f.t, b)
	return b, f.c.Offset(b)
}

func ids(l *block.List) []block.ID {
	var out []block.ID
	for b := range l.All() {
		out = append(out, b.ID())
	}
	return out
}

func TestTypingIntoEmptyDocument(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.Type(f.ctx, "hi"))

	top := f.tree.Root().Children()
	require.Equal(t, 1, top.Len())
	assert.Equal(t, "hi", top.Head().HTML())
	b, off := f.at()
	assert.Same(t, top.Head(), b)
	assert.Equal(t, 2, off)
}

func TestFocusWithoutCaretGoesToLastLine(t *testing.T) {
	f := newFixture(t)
	f.line("a")
	b := f.line("bc")
	c := f.child(b, "def")

	f.keys("x")
	cur, off := f.at()
	assert.Same(t, c, cur)
	assert.Equal(t, 4, off)
	assert.Equal(t, "defx", c.HTML())
}

func TestSplit(t *testing.T) {
	f := newFixture(t)
	a := f.line("abc")
	b := f.line("z")
	f.focus(a, 3)

	f.keys("Enter")
	top := f.tree.Root().Children()
	require.Equal(t, 3, top.Len())
	n := a.Next()
	assert.Same(t, b, n.Next())

	cur, off := f.at()
	assert.Same(t, n, cur)
	assert.Equal(t, 0, off)

	f.keys("x")
	assert.Equal(t, "x", n.HTML())
	assert.Equal(t, "abc", a.HTML())
	require.NoError(t, f.tree.Verify())
}

func TestSplitNestedStaysAtLevel(t *testing.T) {
	f := newFixture(t)
	a := f.line("a")
	b := f.child(a, "b")
	f.focus(b, 1)

	f.keys("Enter")
	require.Equal(t, 2, a.Children().Len())
	cur, _ := f.at()
	assert.Same(t, a, cur.Parent())
}

func TestIndent(t *testing.T) {
	f := newFixture(t)
	a := f.line("alpha")
	b := f.line("beta")
	f.focus(b, 2)

	f.keys("Tab")
	assert.Equal(t, []block.ID{a.ID()}, ids(f.tree.Root().Children()))
	assert.Equal(t, []block.ID{b.ID()}, ids(a.Children()))
	cur, off := f.at()
	assert.Same(t, b, cur)
	assert.Equal(t, 2, off)

	// First sibling has nothing to indent under.
	f.keys("Tab")
	assert.Same(t, a, b.Parent())
	require.NoError(t, f.tree.Verify())
}

func TestIndentLastChild(t *testing.T) {
	f := newFixture(t)
	a := f.line("a")
	b := f.line("b")
	c := f.line("c")
	d := f.child(b, "d")
	f.focus(c, 0)

	f.keys("Tab")
	assert.Equal(t, []block.ID{d.ID(), c.ID()}, ids(b.Children()))
	assert.Equal(t, []block.ID{a.ID(), b.ID()}, ids(f.tree.Root().Children()))
}

func TestOutdentAdoptsFollowingSiblings(t *testing.T) {
	f := newFixture(t)
	a := f.line("A")
	b := f.line("B")
	c := f.line("C")

	f.focus(b, 0)
	f.keys("Tab")
	f.focus(c, 0)
	f.keys("Tab")
	require.Equal(t, []block.ID{a.ID()}, ids(f.tree.Root().Children()))
	require.Equal(t, []block.ID{b.ID(), c.ID()}, ids(a.Children()))

	f.focus(b, 1)
	f.keys("S-Tab")
	assert.Equal(t, []block.ID{a.ID(), b.ID()}, ids(f.tree.Root().Children()))
	assert.Equal(t, []block.ID{c.ID()}, ids(b.Children()))
	assert.True(t, a.Children().Empty())
	assert.Equal(t, 0, b.Depth())
	assert.Equal(t, 1, c.Depth())

	cur, off := f.at()
	assert.Same(t, b, cur)
	assert.Equal(t, 1, off)
	require.NoError(t, f.tree.Verify())
}

func TestOutdentKeepsExistingChildrenFirst(t *testing.T) {
	f := newFixture(t)
	a := f.line("A")
	b := f.child(a, "B")
	x := f.child(b, "X")
	c := f.child(a, "C")
	d := f.child(a, "D")
	f.focus(b, 0)

	f.keys("S-Tab")
	assert.Equal(t, []block.ID{x.ID(), c.ID(), d.ID()}, ids(b.Children()))
}

func TestOutdentTopLevelIsNoop(t *testing.T) {
	f := newFixture(t)
	a := f.line("A")
	f.line("B")
	f.focus(a, 0)
	frames := f.r.Frames()

	f.keys("S-Tab")
	assert.Equal(t, 2, f.tree.Root().Children().Len())
	assert.Equal(t, frames, f.r.Frames())
}

func TestIndentOutdentRoundTrip(t *testing.T) {
	f := newFixture(t)
	a := f.line("a")
	b := f.line("b")
	f.focus(b, 1)

	f.keys("Tab", "S-Tab")
	assert.Equal(t, []block.ID{a.ID(), b.ID()}, ids(f.tree.Root().Children()))
	_, off := f.at()
	assert.Equal(t, 1, off)
}

func TestBackspaceDeletesCharacter(t *testing.T) {
	f := newFixture(t)
	a := f.line("abc")
	f.focus(a, 2)

	f.keys("Backspace")
	assert.Equal(t, "ac", a.HTML())
	_, off := f.at()
	assert.Equal(t, 1, off)
}

func TestBackspacePromotesLastChild(t *testing.T) {
	f := newFixture(t)
	a := f.line("A")
	f.child(a, "X")
	b := f.child(a, "B")
	f.focus(b, 0)

	f.keys("Backspace")
	assert.Equal(t, []block.ID{a.ID(), b.ID()}, ids(f.tree.Root().Children()))
	assert.Equal(t, 1, a.Children().Len())
	assert.Equal(t, "B", b.HTML())
	cur, off := f.at()
	assert.Same(t, b, cur)
	assert.Equal(t, 0, off)
}

func TestBackspaceMergesIntoPrevious(t *testing.T) {
	f := newFixture(t)
	a := f.line("ab")
	b := f.line("cd")
	c := f.child(b, "x")
	f.focus(b, 0)

	f.keys("Backspace")
	assert.Equal(t, "abcd", a.HTML())
	assert.Equal(t, []block.ID{a.ID(), c.ID()}, ids(f.tree.Root().Children()))
	assert.Nil(t, f.tree.Lookup(b.ID()))
	assert.Nil(t, f.r.Target(b.ID()))

	cur, off := f.at()
	assert.Same(t, a, cur)
	assert.Equal(t, 2, off)
	require.NoError(t, f.tree.Verify())
}

func TestBackspaceMergesIntoLastDescendant(t *testing.T) {
	f := newFixture(t)
	a := f.line("a")
	deep := f.child(f.child(a, "a1"), "z")
	b := f.line("cd")
	f.focus(b, 0)

	f.keys("Backspace")
	assert.Equal(t, "zcd", deep.HTML())
	assert.Equal(t, 1, f.tree.Root().Children().Len())
	cur, off := f.at()
	assert.Same(t, deep, cur)
	assert.Equal(t, 1, off)
}

func TestBackspaceFirstChildMergesIntoParent(t *testing.T) {
	f := newFixture(t)
	a := f.line("p")
	b := f.child(a, "q")
	c := f.child(a, "r")
	f.focus(b, 0)

	f.keys("Backspace")
	assert.Equal(t, "pq", a.HTML())
	assert.Equal(t, []block.ID{c.ID()}, ids(a.Children()))
}

func TestBackspaceEmptyLine(t *testing.T) {
	f := newFixture(t)
	a := f.line("ab")
	b := f.line("")
	f.focus(b, 0)

	f.keys("Backspace")
	assert.Equal(t, "ab", a.HTML())
	cur, off := f.at()
	assert.Same(t, a, cur)
	assert.Equal(t, 2, off)
}

func TestBackspaceAtDocumentStartIsNoop(t *testing.T) {
	f := newFixture(t)
	a := f.line("ab")
	f.focus(a, 0)

	f.keys("Backspace")
	assert.Equal(t, "ab", a.HTML())
	assert.Equal(t, 1, f.tree.Root().Children().Len())
}

func TestBackspaceMovesWidgets(t *testing.T) {
	f := newFixture(t)
	a := f.line("a")
	b := f.line("b")
	f.focus(b, 1)
	f.keys("/", "Enter")
	require.Equal(t, 1, b.Inline().Len())
	w := b.Inline().Head()

	f.focus(b, 0)
	f.keys("Backspace")
	assert.Equal(t, []block.ID{w.ID()}, ids(a.Inline()))
	assert.Equal(t, "ab", a.HTML())
	assert.NotNil(t, f.r.Target(w.ID()))
	assert.Equal(t, "ab│", f.r.Display(a.ID()))
}

// hidingHost reports no render target for selected blocks.
type hidingHost struct {
	*renderer.Renderer
	hide map[block.ID]bool
}

func (h *hidingHost) Target(id block.ID) *html.Node {
	if h.hide[id] {
		return nil
	}
	return h.Renderer.Target(id)
}

func TestMissingTargetAbortsKey(t *testing.T) {
	tree := block.NewTree()
	r := renderer.New(tree)
	t.Cleanup(r.Close)
	h := &hidingHost{Renderer: r, hide: map[block.ID]bool{}}
	c := New(tree, h)
	ctx := context.Background()

	a := tree.Root().Children().AddToEnd(tree.NewLine())
	b := tree.Root().Children().AddToEnd(tree.NewLine())
	require.NoError(t, c.Focus(ctx, b, 0))
	h.hide[a.ID()] = true

	err := c.HandleKey(ctx, keyOf(t, "Up"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, block.ErrInvariant)

	var inv *block.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, a.ID(), inv.Block)
}

func TestEventsPublished(t *testing.T) {
	bus := event.NewBus()
	f := newFixture(t, WithBus(bus))

	var moves []events.CaretMoved
	var edits []events.EditApplied
	_, err := event.Subscribe[events.CaretMoved](bus, events.TopicCaretMoved,
		func(_ context.Context, e event.Event[events.CaretMoved]) error {
			moves = append(moves, e.Payload)
			return nil
		})
	require.NoError(t, err)
	_, err = event.Subscribe[events.EditApplied](bus, events.TopicEditApplied,
		func(_ context.Context, e event.Event[events.EditApplied]) error {
			edits = append(edits, e.Payload)
			return nil
		})
	require.NoError(t, err)

	a := f.line("abc")
	f.focus(a, 3)
	f.keys("Enter", "Up")

	require.NotEmpty(t, edits)
	assert.Equal(t, events.OpSplit, edits[len(edits)-1].Op)
	require.NotEmpty(t, moves)
	last := moves[len(moves)-1]
	assert.Equal(t, events.ReasonVertical, last.Reason)
	assert.Equal(t, a.ID(), last.Block)
	assert.Equal(t, 0, last.Offset)
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	f := newFixture(t)
	a := f.line("abc")
	f.focus(a, 1)
	f.keys("C-q", "Delete")
	assert.Equal(t, "abc", a.HTML())
	_, off := f.at()
	assert.Equal(t, 1, off)
}

func TestKeysRejectsBadSpec(t *testing.T) {
	f := newFixture(t)
	err := f.c.Keys(f.ctx, "")
	assert.Error(t, err)
}

func TestKeyErrorMessage(t *testing.T) {
	err := &KeyError{Key: "Tab", Err: errors.New("boom")}
	assert.Equal(t, "editor: key Tab aborted: boom", err.Error())
	assert.ErrorIs(t, err, ErrAborted)
}
