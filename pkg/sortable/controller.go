package sortable

import (
	"log/slog"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/shift"
)

// DraggableAttribute is set to "true" on every registered element.
const DraggableAttribute = "draggable"

// slot pairs an item with the element it is rendered as.
type slot[T any] struct {
	item   T
	el     dom.Element
	bounds dom.Rect
}

// Controller reorders a list of items by drag and drop.
type Controller[T any] struct {
	opts   Options
	logger *slog.Logger

	slots      []slot[T]
	generation uint64

	container dom.Container
	detach    []func()

	session  session
	onChange []func([]T)
}

// New creates a controller for items.
func New[T any](items []T, opts ...Option) *Controller[T] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller[T]{
		opts:   o,
		logger: logger,
	}
	c.session.reset()
	c.adopt(items)

	if o.Multiple {
		logger.Debug("multiple selection is not implemented, dragging single elements")
	}
	return c
}

// Options returns the controller's resolved options.
func (c *Controller[T]) Options() Options {
	return c.opts
}

// Items returns a copy of the current item sequence.
func (c *Controller[T]) Items() []T {
	items := make([]T, len(c.slots))
	for i, s := range c.slots {
		items[i] = s.item
	}
	return items
}

// Len returns the number of items.
func (c *Controller[T]) Len() int {
	return len(c.slots)
}

// Element returns the element registered for position i, or nil.
func (c *Controller[T]) Element(i int) dom.Element {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i].el
}

// IndexOf returns the position of el, or -1 if el is not registered.
func (c *Controller[T]) IndexOf(el dom.Element) int {
	if el == nil {
		return -1
	}
	for i, s := range c.slots {
		if s.el == el {
			return i
		}
	}
	return -1
}

// OnChange registers fn to receive the items after every committed reorder.
func (c *Controller[T]) OnChange(fn func([]T)) {
	c.onChange = append(c.onChange, fn)
}

// SetItems replaces the item sequence. Any drag in progress is abandoned and
// all registered elements are forgotten; the caller must run a new render
// pass for the new items.
func (c *Controller[T]) SetItems(items []T) {
	c.clearPreview()
	c.session.reset()
	c.unbind()
	c.generation++
	c.adopt(items)
	c.logger.Debug("items replaced", "len", len(items))
}

func (c *Controller[T]) adopt(items []T) {
	c.slots = make([]slot[T], len(items))
	for i, item := range items {
		c.slots[i].item = item
	}
}

// Mount attaches the drag listeners to container.
// Mounting another container moves the listeners.
func (c *Controller[T]) Mount(container dom.Container) {
	c.removeListeners()
	c.container = container
	c.addListeners()
}

// Unmount detaches the listeners, abandons any drag in progress and removes
// the draggable attribute from every registered element.
func (c *Controller[T]) Unmount() {
	c.clearPreview()
	c.session.reset()
	c.removeListeners()
	c.container = nil
	for _, s := range c.slots {
		if s.el != nil {
			s.el.RemoveAttribute(DraggableAttribute)
		}
	}
}

func (c *Controller[T]) addListeners() {
	if c.container == nil {
		return
	}
	for _, t := range dom.DragEvents {
		c.detach = append(c.detach, c.container.AddEventListener(t, c.Dispatch))
	}
}

func (c *Controller[T]) removeListeners() {
	for _, remove := range c.detach {
		remove()
	}
	c.detach = nil
}

// bind installs the elements of a finished render pass.
func (c *Controller[T]) bind(elements []dom.Element) {
	c.removeListeners()

	keep := make(map[dom.Element]bool, len(elements))
	for _, el := range elements {
		keep[el] = true
	}
	for _, s := range c.slots {
		if s.el != nil && !keep[s.el] {
			s.el.RemoveAttribute(DraggableAttribute)
		}
	}

	for i, el := range elements {
		c.slots[i].el = el
		c.slots[i].bounds = dom.Rect{}
		if c.opts.Animate {
			c.slots[i].bounds = el.BoundingRect()
		}
		el.SetAttribute(DraggableAttribute, "true")
	}

	c.addListeners()
}

// unbind forgets every registered element.
func (c *Controller[T]) unbind() {
	c.removeListeners()
	for i := range c.slots {
		if el := c.slots[i].el; el != nil {
			el.RemoveAttribute(DraggableAttribute)
		}
		c.slots[i].el = nil
	}
}

// commit applies the pending move to items and elements together.
func (c *Controller[T]) commit(source, target int, insertBefore bool) {
	c.slots = shift.Shift(c.slots, source, target, insertBefore)
	c.generation++

	c.logger.Debug("reorder committed",
		"source", source,
		"target", target,
		"insert_before", insertBefore)
	if c.opts.Observer != nil {
		c.opts.Observer.Committed(source, target, insertBefore, len(c.slots))
	}

	items := c.Items()
	for _, fn := range c.onChange {
		fn(items)
	}
}
