// Package events defines the typed payloads published on the event bus.
//
// Each payload has a topic constant next to it. Block structure topics are
// derived from block.ChangeKind.Topic so they stay in step with the
// closed set of list mutations.
//
//	evt := event.NewEvent(events.TopicCaretMoved,
//	    events.CaretMoved{Block: id, Offset: 4, Reason: events.ReasonVertical},
//	    "editor",
//	)
//	bus.Publish(ctx, evt)
package events
