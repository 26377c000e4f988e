package events

import (
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event/topic"
)

// TopicBlockAny matches every block structure topic.
const TopicBlockAny topic.Topic = "block.*"

// BlockTopic returns the topic a list change is published under.
func BlockTopic(k block.ChangeKind) topic.Topic {
	return topic.Topic(k.Topic())
}

// BlockChanged is the bus form of a block.Change.
type BlockChanged struct {
	Change block.ChangeKind
	Block  block.ID
	Anchor block.ID
	Owner  block.ID
	Role   block.Role
}

// NewBlockChanged flattens a list change into IDs.
func NewBlockChanged(c block.Change) BlockChanged {
	bc := BlockChanged{Change: c.Kind, Block: c.Block.ID()}
	if c.Anchor != nil {
		bc.Anchor = c.Anchor.ID()
	}
	if c.List != nil {
		bc.Owner = c.List.Owner().ID()
		bc.Role = c.List.Role()
	}
	return bc
}
