package events

import (
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event/topic"
)

// TopicCaretMoved is published after the controller places the caret.
const TopicCaretMoved topic.Topic = "caret.moved"

// Reasons for a caret move.
const (
	ReasonVertical   = "vertical"
	ReasonHorizontal = "horizontal"
	ReasonEdit       = "edit"
	ReasonPrompt     = "prompt"
)

// CaretMoved describes a new caret location.
type CaretMoved struct {
	Block  block.ID
	Offset int
	Reason string
}
