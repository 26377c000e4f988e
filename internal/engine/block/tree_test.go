package block

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewTree(t *testing.T) {
	tree := NewTree()
	root := tree.Root()
	require.NotNil(t, root)
	assert.True(t, root.IsRoot())
	assert.Nil(t, root.Parent())
	assert.Nil(t, root.Next())
	assert.Nil(t, root.Prev())
	assert.Nil(t, root.Inline())
	assert.True(t, root.Children().Empty())
	assert.Equal(t, 1, tree.Size())
	assert.Same(t, root, tree.Lookup(root.ID()))
}

func TestBlockIDsAreUnique(t *testing.T) {
	tree := NewTree()
	seen := map[ID]bool{tree.Root().ID(): true}
	for i := 0; i < 100; i++ {
		b := tree.NewLine()
		require.False(t, seen[b.ID()], "duplicate id %s", b.ID())
		seen[b.ID()] = true

		parsed, err := ParseID(b.ID().String())
		require.NoError(t, err)
		assert.Equal(t, b.ID(), parsed)
	}
}

func TestDepthAndLastDescendant(t *testing.T) {
	tree := NewTree()
	a := tree.Root().Children().AddToEnd(tree.NewLine())
	b := a.Children().AddToEnd(a.Children().MustCreate(KindLine))
	c := b.Children().AddToEnd(b.Children().MustCreate(KindLine))
	d := a.Children().AddToEnd(a.Children().MustCreate(KindLine))

	assert.Equal(t, 0, a.Depth())
	assert.Equal(t, 1, b.Depth())
	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, 1, d.Depth())

	assert.Same(t, d, a.LastDescendant())
	assert.Same(t, c, b.LastDescendant())
	assert.Same(t, c, c.LastDescendant())

	opt := c.Inline().AddToEnd(c.Inline().MustCreate(KindInlineOption))
	slot := opt.Inline().AddToEnd(opt.Inline().MustCreate(KindOption))
	assert.Same(t, c, slot.LineParent())
	assert.Same(t, c, opt.LineParent())
}

func TestLinesInVisualOrder(t *testing.T) {
	tree := NewTree()
	top := tree.Root().Children()
	a := top.AddToEnd(tree.NewLine())
	b := a.Children().AddToEnd(a.Children().MustCreate(KindLine))
	c := top.AddToEnd(tree.NewLine())
	d := b.Children().AddToEnd(b.Children().MustCreate(KindLine))

	assert.Equal(t, []*Block{a, b, d, c}, tree.Lines())
}

func TestApplyContent(t *testing.T) {
	tree := NewTree()
	line := tree.Root().Children().AddToEnd(tree.NewLine())
	opt := line.Inline().AddToEnd(line.Inline().MustCreate(KindInlineOption))
	slot := opt.Inline().AddToEnd(opt.Inline().MustCreate(KindOption))

	require.NoError(t, tree.ApplyContent(line.ID(), "hello <b>world</b>"))
	assert.Equal(t, "hello <b>world</b>", line.HTML())

	require.NoError(t, tree.ApplyContent(slot.ID(), "yes"))
	assert.Equal(t, "yes", slot.Content())

	err := tree.ApplyContent(opt.ID(), "x")
	assert.ErrorIs(t, err, ErrInvalidKind)

	err = tree.ApplyContent(newID(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscard(t *testing.T) {
	tree := NewTree()
	top := tree.Root().Children()
	a := top.AddToEnd(tree.NewLine())
	b := a.Children().AddToEnd(a.Children().MustCreate(KindLine))
	opt := a.Inline().AddToEnd(a.Inline().MustCreate(KindInlineOption))
	size := tree.Size()

	assert.Panics(t, func() { tree.Discard(a) }, "attached blocks cannot be discarded")

	top.DeleteBlock(a)
	tree.Discard(a)
	assert.Equal(t, size-3, tree.Size())
	assert.Nil(t, tree.Lookup(a.ID()))
	assert.Nil(t, tree.Lookup(b.ID()))
	assert.Nil(t, tree.Lookup(opt.ID()))
}

func TestVerifyDetectsCycle(t *testing.T) {
	tree := NewTree()
	top := tree.Root().Children()
	a := top.AddToEnd(tree.NewLine())
	b := top.AddToEnd(tree.NewLine())
	require.NoError(t, tree.Verify())

	// Corrupt the links directly to simulate a bug.
	b.next = a.id
	err := top.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBrokenLink)

	b.next = NilID
	a.parent = b.id
	assert.ErrorIs(t, tree.Verify(), ErrBrokenLink)
}

func TestSnapshotYAML(t *testing.T) {
	tree := NewTree()
	a := tree.Root().Children().AddToEnd(tree.NewLine())
	b := a.Children().AddToEnd(a.Children().MustCreate(KindLine))
	opt := b.Inline().AddToEnd(b.Inline().MustCreate(KindInlineOption))
	slot := opt.Inline().AddToEnd(opt.Inline().MustCreate(KindOption))
	slot.SetContent("true")
	a.SetHTML("question")

	data, err := tree.Snapshot().YAML()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "kind: inline-option"))

	var decoded Snapshot
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, tree.Snapshot(), decoded)

	names := map[string]string{a.ID().String(): "A", b.ID().String(): "B"}
	assert.Equal(t, "A(B)", tree.Snapshot().Shape(names))

	a.Children().AddToEnd(a.Children().MustCreate(KindLine))
	tree.Root().Children().AddToEnd(tree.NewLine())
	assert.Equal(t, "A(B line) line", tree.Snapshot().Shape(names))
}
