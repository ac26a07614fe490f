package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/sortable/pkg/protocol"
)

type patchRecorder struct {
	patches []protocol.Patch
}

func (r *patchRecorder) queuePatch(p protocol.Patch) {
	r.patches = append(r.patches, p)
}

func TestElement_DropsNoOps(t *testing.T) {
	rec := &patchRecorder{}
	el := newElement("i0", rec)

	el.AddClass("dragging", "dragging")
	el.AddClass("dragging")
	el.RemoveClass("dragover")
	el.SetAttribute("draggable", "true")
	el.SetAttribute("draggable", "true")
	el.RemoveAttribute("data-item")
	el.SetStyle("transform", "translate(0px, 20px)")
	el.SetStyle("transform", "translate(0px, 20px)")
	el.RemoveStyle("transition")

	assert.Equal(t, []protocol.Patch{
		protocol.NewAddClassPatch("i0", "dragging"),
		protocol.NewSetAttrPatch("i0", "draggable", "true"),
		protocol.NewSetStylePatch("i0", "transform", "translate(0px, 20px)"),
	}, rec.patches)
	assert.True(t, el.HasClass("dragging"))
}

func TestElement_RemovalsAfterSet(t *testing.T) {
	rec := &patchRecorder{}
	el := newElement("i3", rec)

	el.AddClass("a", "b")
	el.RemoveClass("a")
	el.SetAttribute("data-item", "x")
	el.SetAttribute("data-item", "y")
	el.RemoveAttribute("data-item")
	el.SetStyle("transition", "none")
	el.RemoveStyle("transition")

	assert.Equal(t, []protocol.Patch{
		protocol.NewAddClassPatch("i3", "a"),
		protocol.NewAddClassPatch("i3", "b"),
		protocol.NewRemoveClassPatch("i3", "a"),
		protocol.NewSetAttrPatch("i3", "data-item", "x"),
		protocol.NewSetAttrPatch("i3", "data-item", "y"),
		protocol.NewRemoveAttrPatch("i3", "data-item"),
		protocol.NewSetStylePatch("i3", "transition", "none"),
		protocol.NewRemoveStylePatch("i3", "transition"),
	}, rec.patches)
	assert.False(t, el.HasClass("a"))
}
