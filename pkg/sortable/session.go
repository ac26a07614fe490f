package sortable

import (
	"github.com/vango-dev/sortable/pkg/dom"
)

type state uint8

const (
	stateIdle state = iota
	stateDragging
)

// session is the transient state of one drag gesture.
type session struct {
	state        state
	source       int
	target       int
	insertBefore bool

	// Provisional target used for the preview under InsertAtDrop, where the
	// real target is only known at drop.
	hoverTarget int
	hoverBefore bool

	gesture        uint64
	previewPending bool
	previewed      bool
}

func (s *session) reset() {
	s.state = stateIdle
	s.source = -1
	s.target = -1
	s.insertBefore = false
	s.hoverTarget = -1
	s.hoverBefore = false
	s.previewPending = false
	s.gesture++
}

// SessionState is a snapshot of the drag session.
type SessionState struct {
	Dragging     bool
	Source       int // -1 when no drag is in progress
	Target       int // -1 until a drop target is known
	InsertBefore bool

	// PreviewPending is true while a scheduled preview update has not run.
	PreviewPending bool
}

// Session returns a snapshot of the current drag session.
func (c *Controller[T]) Session() SessionState {
	return SessionState{
		Dragging:       c.session.state == stateDragging,
		Source:         c.session.source,
		Target:         c.session.target,
		InsertBefore:   c.session.insertBefore,
		PreviewPending: c.session.previewPending,
	}
}

// Dispatch feeds one drag event into the controller. Container listeners
// call it; tests and custom event sources may call it directly.
func (c *Controller[T]) Dispatch(e dom.Event) {
	switch e.Type {
	case dom.DragStart:
		c.dragStart(e)
	case dom.DragOver:
		c.dragOver(e)
	case dom.DragEnter:
		c.dragEnter(e)
	case dom.DragLeave:
		c.dragLeave(e)
	case dom.Drop:
		c.drop(e)
	case dom.DragEnd:
		c.dragEnd(e)
	}
}

func (c *Controller[T]) dragStart(e dom.Event) {
	i := c.IndexOf(e.Target)
	if i < 0 {
		c.logger.Debug("drag start on untracked element ignored")
		return
	}

	if c.session.state == stateDragging {
		// The previous gesture never ended.
		c.clearPreview()
		if prev := c.Element(c.session.source); prev != nil {
			prev.RemoveClass(c.opts.DraggingClassNames...)
		}
	}

	c.session.reset()
	c.session.state = stateDragging
	c.session.source = i
	e.Target.AddClass(c.opts.DraggingClassNames...)

	if c.opts.Observer != nil {
		c.opts.Observer.DragStarted(i)
	}
}

func (c *Controller[T]) dragOver(e dom.Event) {
	if c.session.state != stateDragging {
		return
	}
	i := c.IndexOf(e.Target)
	if i < 0 || i == c.session.source {
		return
	}

	switch c.opts.InsertPolicy {
	case InsertWhileOver:
		c.session.target = i
		c.session.insertBefore = c.session.source > i
	default:
		c.session.hoverTarget = i
		c.session.hoverBefore = c.pointerBefore(e, e.Target.BoundingRect())
	}

	if c.opts.Animate {
		c.schedulePreview()
	}
}

func (c *Controller[T]) dragEnter(e dom.Event) {
	if c.IndexOf(e.Target) < 0 {
		return
	}
	e.Target.AddClass(c.opts.DragoverClassNames...)
}

func (c *Controller[T]) dragLeave(e dom.Event) {
	if e.Target == nil {
		return
	}
	e.Target.RemoveClass(c.opts.DragoverClassNames...)
}

func (c *Controller[T]) drop(e dom.Event) {
	if e.Target == nil {
		return
	}
	e.Target.RemoveClass(c.opts.DragoverClassNames...)

	if c.opts.InsertPolicy != InsertAtDrop || c.session.state != stateDragging {
		return
	}
	i := c.IndexOf(e.Target)
	if i < 0 || i == c.session.source {
		return
	}
	c.session.target = i
	c.session.insertBefore = c.pointerBefore(e, e.Target.BoundingRect())
}

func (c *Controller[T]) dragEnd(e dom.Event) {
	if e.Target != nil {
		e.Target.RemoveClass(c.opts.DraggingClassNames...)
	}
	if c.session.state != stateDragging {
		return
	}
	if src := c.Element(c.session.source); src != nil && src != e.Target {
		src.RemoveClass(c.opts.DraggingClassNames...)
	}

	c.clearPreview()

	source, target, before := c.session.source, c.session.target, c.session.insertBefore
	c.session.reset()

	if !c.validPair(source, target) {
		c.logger.Debug("drag ended without a drop target", "source", source)
		if c.opts.Observer != nil {
			c.opts.Observer.Aborted("no_target")
		}
		return
	}
	c.commit(source, target, before)
}

func (c *Controller[T]) validPair(source, target int) bool {
	n := len(c.slots)
	return source >= 0 && source < n && target >= 0 && target < n && source != target
}

// pointerBefore reports whether the pointer is in the first half of r along
// the configured axis.
func (c *Controller[T]) pointerBefore(e dom.Event, r dom.Rect) bool {
	x := e.ClientX < r.X+r.Width/2
	y := e.ClientY < r.Y+r.Height/2
	switch c.opts.Axis {
	case AxisX:
		return x
	case AxisY:
		return y
	default:
		return x || y
	}
}
