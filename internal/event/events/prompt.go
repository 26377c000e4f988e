package events

import (
	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event/topic"
)

// Prompt topics.
const (
	// TopicPromptOpened is published when the trigger character opens the
	// command prompt.
	TopicPromptOpened topic.Topic = "prompt.opened"

	// TopicPromptClosed is published when the prompt is confirmed or
	// cancelled.
	TopicPromptClosed topic.Topic = "prompt.closed"
)

// PromptOpened carries where the prompt was anchored.
type PromptOpened struct {
	Block  block.ID
	Offset int
}

// PromptClosed reports how the prompt ended.
type PromptClosed struct {
	Block     block.ID
	Command   string
	Confirmed bool
}
