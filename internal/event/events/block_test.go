package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event/topic"
)

func TestNewBlockChanged(t *testing.T) {
	tree := block.NewTree()
	var got []BlockChanged
	cancel := tree.Observe(func(c block.Change) { got = append(got, NewBlockChanged(c)) })
	defer cancel()

	top := tree.Root().Children()
	a := top.AddToEnd(tree.NewLine())
	b := top.InsertAfter(a, tree.NewLine())

	// Two creations and two insertions.
	require.Len(t, got, 4)
	ins := got[3]
	assert.Equal(t, block.ChangeInsertedAfter, ins.Change)
	assert.Equal(t, b.ID(), ins.Block)
	assert.Equal(t, a.ID(), ins.Anchor)
	assert.Equal(t, tree.Root().ID(), ins.Owner)
	assert.Equal(t, block.RoleChildren, ins.Role)
	assert.True(t, got[2].Anchor.IsNil())
}

func TestBlockTopic(t *testing.T) {
	tp := BlockTopic(block.ChangeDeleted)
	assert.Equal(t, topic.Topic("block.deleted"), tp)
	assert.True(t, tp.Matches(TopicBlockAny))
}
