package events

import "github.com/dshills/outliner/internal/event/topic"

// TopicRendererFrameRendered is published after the terminal front-end
// draws a frame.
const TopicRendererFrameRendered topic.Topic = "renderer.frame.rendered"

// FrameRendered summarises one drawn frame.
type FrameRendered struct {
	Lines int
	Width int
}
