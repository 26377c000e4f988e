// Package event provides the in-process event bus that connects the
// editing controller to its observers.
//
// The controller publishes caret, prompt and edit events; the block tree's
// list changes are forwarded as block.* events. Front-ends, plugins and
// logging subscribe by topic pattern.
//
// # Topics
//
// Topics are dot-separated and subscriptions may use wildcards:
//
//	caret.moved     - caret placed in a block
//	prompt.opened   - command prompt opened at the caret
//	block.*         - any list mutation
//	**              - everything
//
// # Delivery
//
// Delivery is synchronous in the publisher's goroutine, ordered by
// priority and then by subscription order. A handler that returns an error
// or panics is isolated: the remaining handlers still run and the failure
// is reported to the bus error handler.
//
// # Usage
//
//	bus := event.NewBus()
//	sub, _ := event.Subscribe(bus, events.TopicCaretMoved,
//	    func(ctx context.Context, e event.Event[events.CaretMoved]) error {
//	        return nil
//	    })
//	defer bus.Unsubscribe(sub)
//
//	bus.Publish(ctx, event.NewEvent(events.TopicCaretMoved, payload, "editor"))
package event
