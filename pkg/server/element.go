package server

import (
	"slices"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/protocol"
)

// ItemAttribute carries the item text of a remote element.
const ItemAttribute = "data-item"

// patchSink receives the patches produced by element mutations.
type patchSink interface {
	queuePatch(p protocol.Patch)
}

// element is the server-side mirror of one client element. Mutations that
// change its state are queued as patches; no-op mutations are dropped.
type element struct {
	hid   string
	sink  patchSink
	rect  dom.Rect
	class []string
	attrs map[string]string
	style map[string]string
}

func newElement(hid string, sink patchSink) *element {
	return &element{
		hid:   hid,
		sink:  sink,
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

func (e *element) AddClass(names ...string) {
	for _, name := range names {
		if name == "" || slices.Contains(e.class, name) {
			continue
		}
		e.class = append(e.class, name)
		e.sink.queuePatch(protocol.NewAddClassPatch(e.hid, name))
	}
}

func (e *element) RemoveClass(names ...string) {
	for _, name := range names {
		i := slices.Index(e.class, name)
		if i < 0 {
			continue
		}
		e.class = slices.Delete(e.class, i, i+1)
		e.sink.queuePatch(protocol.NewRemoveClassPatch(e.hid, name))
	}
}

func (e *element) HasClass(name string) bool {
	return slices.Contains(e.class, name)
}

func (e *element) SetAttribute(name, value string) {
	if v, ok := e.attrs[name]; ok && v == value {
		return
	}
	e.attrs[name] = value
	e.sink.queuePatch(protocol.NewSetAttrPatch(e.hid, name, value))
}

func (e *element) RemoveAttribute(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.sink.queuePatch(protocol.NewRemoveAttrPatch(e.hid, name))
}

func (e *element) SetStyle(property, value string) {
	if v, ok := e.style[property]; ok && v == value {
		return
	}
	e.style[property] = value
	e.sink.queuePatch(protocol.NewSetStylePatch(e.hid, property, value))
}

func (e *element) RemoveStyle(property string) {
	if _, ok := e.style[property]; !ok {
		return
	}
	delete(e.style, property)
	e.sink.queuePatch(protocol.NewRemoveStylePatch(e.hid, property))
}

func (e *element) BoundingRect() dom.Rect {
	return e.rect
}
