package events

import (
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event/topic"
)

// TopicEditApplied is published after a structural edit completes.
const TopicEditApplied topic.Topic = "edit.applied"

// Edit operation names.
const (
	OpSplit    = "split"
	OpIndent   = "indent"
	OpOutdent  = "outdent"
	OpMerge    = "merge"
	OpPromote  = "promote"
	OpCommand  = "command"
	OpTextEdit = "text"
)

// EditApplied names the edit and the block it centred on.
type EditApplied struct {
	Op    string
	Block block.ID
}
