// Package vtest provides testing helpers for sortable lists.
//
// The vtest package builds a simulated list (an in-memory container with one
// element per item), re-renders it after every committed reorder the way a
// keyed renderer would, and fires drag gestures at it.
//
// # Quick Start
//
//	func TestReorder(t *testing.T) {
//	    l := vtest.NewList(1, 2, 3, 4, 5).Build()
//
//	    l.DragStart(1)
//	    l.DragEnter(4)
//	    l.DropAfter(4)
//	    l.DragEnd(1)
//
//	    vtest.ExpectOrder(t, l, 2, 3, 4, 1, 5)
//	}
//
// # Fluent Builder
//
//	l := vtest.NewList("a", "b", "c").
//	    WithOptions(sortable.WithAnimate(true)).
//	    WithItemSize(200, 30).
//	    WithLabel(strings.ToUpper).
//	    Build()
//
// Elements are stacked vertically: the element at position k occupies
// (0, k*height) to (width, (k+1)*height). Layout is recomputed on every
// render, so positions follow the committed order.
//
// # Assertions
//
//	vtest.ExpectClass(t, l.Node("a"), "dragging")
//	vtest.ExpectNoClass(t, l.Node("a"), "dragover")
//	vtest.ExpectAttribute(t, l.Node("a"), "draggable", "true")
//	vtest.ExpectContains(t, l, `class="dragging"`)
package vtest
