package editor

import (
	"context"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
	"github.com/dshills/outliner/internal/event/topic"
)

const source = "editor"

const (
	reasonVertical   = events.ReasonVertical
	reasonHorizontal = events.ReasonHorizontal
	reasonEdit       = events.ReasonEdit
	reasonPrompt     = events.ReasonPrompt

	opSplit   = events.OpSplit
	opIndent  = events.OpIndent
	opOutdent = events.OpOutdent
	opMerge   = events.OpMerge
	opPromote = events.OpPromote
	opCommand = events.OpCommand
	opText    = events.OpTextEdit
)

func publish[T any](ctx context.Context, c *Controller, t topic.Topic, payload T) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(ctx, event.NewEvent(t, payload, source)); err != nil {
		c.log.Debug("publish failed", "topic", t.String(), "error", err)
	}
}

func (c *Controller) caretMoved(ctx context.Context, b *block.Block, offset int, reason string) {
	publish(ctx, c, events.TopicCaretMoved, events.CaretMoved{Block: b.ID(), Offset: offset, Reason: reason})
}

func (c *Controller) edited(ctx context.Context, op string, b *block.Block) {
	c.log.Debug("edit applied", "op", op, "block", b.String())
	publish(ctx, c, events.TopicEditApplied, events.EditApplied{Op: op, Block: b.ID()})
}
