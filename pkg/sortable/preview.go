package sortable

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vango-dev/sortable/pkg/shift"
)

// Inline style properties written by the live preview.
const (
	StyleTransform  = "transform"
	StyleTransition = "transition"
)

// schedulePreview queues a preview update unless one is already pending.
func (c *Controller[T]) schedulePreview() {
	if c.session.previewPending {
		return
	}
	c.session.previewPending = true
	gesture := c.session.gesture
	c.opts.Scheduler(func() {
		if c.session.gesture != gesture {
			return
		}
		c.applyPreview()
		c.session.previewPending = false
	})
}

// pendingMove returns the move the preview should show.
func (c *Controller[T]) pendingMove() (source, target int, insertBefore bool) {
	if c.opts.InsertPolicy == InsertWhileOver {
		return c.session.source, c.session.target, c.session.insertBefore
	}
	return c.session.source, c.session.hoverTarget, c.session.hoverBefore
}

// applyPreview translates every element to where it would sit if the pending
// move were committed now. Element k of the permutation is the original
// position of the element that lands at k, so that element travels from its
// own captured box to the box captured for position k.
func (c *Controller[T]) applyPreview() {
	if c.session.state != stateDragging {
		return
	}
	source, target, before := c.pendingMove()
	if !c.validPair(source, target) {
		return
	}

	perm := shift.Permutation(len(c.slots), source, target, before)
	for k, from := range perm {
		el := c.slots[from].el
		if el == nil {
			continue
		}
		dx, dy := c.slots[from].bounds.Offset(c.slots[k].bounds)
		el.SetStyle(StyleTransition, c.transition(k))
		el.SetStyle(StyleTransform, Translate(dx, dy))
	}
	c.session.previewed = true
}

// clearPreview removes the preview styles from every element.
func (c *Controller[T]) clearPreview() {
	if !c.session.previewed {
		return
	}
	for _, s := range c.slots {
		if s.el == nil {
			continue
		}
		s.el.RemoveStyle(StyleTransform)
		s.el.RemoveStyle(StyleTransition)
	}
	c.session.previewed = false
}

func (c *Controller[T]) transition(i int) string {
	return fmt.Sprintf("transform %s %s %s",
		cssDuration(c.opts.AnimationDuration(i)),
		c.opts.AnimationTiming(i),
		cssDuration(c.opts.AnimationDelay(i)))
}

// Translate formats a CSS translate transform.
func Translate(dx, dy float64) string {
	return "translate(" + cssPixels(dx) + ", " + cssPixels(dy) + ")"
}

func cssPixels(v float64) string {
	if v == 0 {
		// Avoid "-0px".
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func cssDuration(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
