// Package sortable reorders a list of rendered elements with drag and drop.
//
// A Controller owns the ordered items of one list together with the element
// each item is rendered as. It listens for drag events on the list's
// container, marks the dragged and hovered elements with class names,
// optionally animates a live preview of the pending move, and when the drag
// ends commits exactly one reorder computed by shift.Shift.
//
// # Usage
//
//	c := sortable.New(tasks,
//	    sortable.WithDraggingClassNames("dragging", "opacity-50"),
//	    sortable.WithAnimate(true),
//	)
//	c.OnChange(func(tasks []Task) {
//	    render(tasks) // render and register elements again
//	})
//	c.Mount(list)
//
//	pass := c.BeginRender()
//	for _, t := range c.Items() {
//	    pass.Register(renderTask(list, t))
//	}
//	if err := pass.End(); err != nil {
//	    return err
//	}
//
// # Render passes
//
// Elements are registered through an explicit render pass: one Register call
// per item, in item order, closed by End. End rejects a pass that registered
// a different number of elements than there are items, so items and elements
// always share one index space.
//
// # Gestures
//
// The controller is a small state machine, idle or dragging, driven by
// Dispatch. Events that cannot be resolved to a registered element, and
// events that arrive out of order (a drop without a drag start, for example),
// are ignored. A gesture that ends without a usable drop target commits
// nothing. Drag gestures never return errors.
//
// When the drop side is settled is chosen by InsertPolicy:
//
//   - InsertAtDrop (default): on drop, from the pointer position in the
//     target's box.
//   - InsertWhileOver: on every drag-over, from the drag direction.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. Its event source must deliver
// events one at a time, which browsers, the server package and the term
// package all do.
package sortable
