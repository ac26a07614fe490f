package sortable

import (
	"github.com/vango-dev/sortable/internal/errors"
	"github.com/vango-dev/sortable/pkg/dom"
)

// RenderPass collects the elements rendered for the current items.
type RenderPass[T any] struct {
	c          *Controller[T]
	generation uint64
	elements   []dom.Element
	ended      bool
}

// BeginRender starts a render pass. Starting a pass supersedes any pass that
// has not ended yet.
func (c *Controller[T]) BeginRender() *RenderPass[T] {
	c.generation++
	return &RenderPass[T]{
		c:          c,
		generation: c.generation,
		elements:   make([]dom.Element, 0, len(c.slots)),
	}
}

// Register appends the element rendered for the next item. Nil elements are
// ignored, matching a ref callback invoked for an unmounting node.
func (p *RenderPass[T]) Register(el dom.Element) {
	if el == nil {
		return
	}
	p.elements = append(p.elements, el)
}

// Len returns the number of elements registered so far.
func (p *RenderPass[T]) Len() int {
	return len(p.elements)
}

// End binds the registered elements to the items, position by position,
// marks them draggable and re-attaches the container listeners.
func (p *RenderPass[T]) End() error {
	if p.ended {
		return errors.New("E202")
	}
	p.ended = true

	c := p.c
	if p.generation != c.generation {
		return errors.New("E202").WithDetail("a newer render pass or item replacement superseded this pass")
	}
	if len(p.elements) != len(c.slots) {
		return errors.New("E201").
			WithDetailf("registered %d elements for %d items", len(p.elements), len(c.slots)).
			WithSuggestion("Call Register once per item, in the order of Items()")
	}

	c.bind(p.elements)
	c.logger.Debug("render pass bound", "elements", len(p.elements))
	return nil
}
