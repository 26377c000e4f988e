package app

import (
	"context"

	"github.com/dshills/outliner/internal/engine/block"
	"github.com/dshills/outliner/internal/event"
	"github.com/dshills/outliner/internal/event/events"
)

// subscribe forwards tree changes onto the bus and logs them.
func (a *Application) subscribe() error {
	log := a.log.WithComponent("tree")
	a.stops = append(a.stops, a.tree.Observe(func(c block.Change) {
		evt := event.NewEvent(events.BlockTopic(c.Kind), events.NewBlockChanged(c), "tree")
		if err := a.bus.Publish(context.Background(), evt); err != nil {
			log.Debug("forward change failed", "change", c.String(), "error", err)
		}
	}))

	sub, err := event.Subscribe[events.BlockChanged](a.bus, events.TopicBlockAny,
		func(_ context.Context, e event.Event[events.BlockChanged]) error {
			log.Debug("block changed", "topic", e.Type.String(), "block", e.Payload.Block.Short())
			return nil
		}, event.WithPriority(event.PriorityLow))
	if err != nil {
		return err
	}
	a.stops = append(a.stops, func() { _ = a.bus.Unsubscribe(sub) })

	sub, err = event.Subscribe[events.EditApplied](a.bus, events.TopicEditApplied,
		func(_ context.Context, e event.Event[events.EditApplied]) error {
			log.Debug("edit applied", "op", e.Payload.Op, "block", e.Payload.Block.Short())
			return nil
		}, event.WithPriority(event.PriorityLow))
	if err != nil {
		return err
	}
	a.stops = append(a.stops, func() { _ = a.bus.Unsubscribe(sub) })
	return nil
}
