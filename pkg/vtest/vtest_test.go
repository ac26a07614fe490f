package vtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/sortable/pkg/dom"
)

func TestBuild_LaysOutItems(t *testing.T) {
	l := NewList("a", "b", "c").WithItemSize(50, 10).Build()

	require.Equal(t, 1, l.Renders())
	assert.Equal(t, []string{"a", "b", "c"}, l.Order())
	assert.Equal(t, []string{"a", "b", "c"}, l.Texts())
	assert.Equal(t, dom.Rect{X: 0, Y: 20, Width: 50, Height: 10}, l.Node("c").BoundingRect())
	assert.Same(t, l.Node("b"), l.NodeAt(1))
	assert.Nil(t, l.NodeAt(3))
	assert.Nil(t, l.Node("z"))
	ExpectAttribute(t, l.Node("a"), "draggable", "true")
}

func TestBuild_WithLabel(t *testing.T) {
	l := NewList(1, 2).WithLabel(func(v int) string {
		if v == 1 {
			return "one"
		}
		return "two"
	}).Build()

	assert.Equal(t, []string{"one", "two"}, l.Texts())
	ExpectContains(t, l, ">one<")
}

func TestSetItems_ReusesNodes(t *testing.T) {
	l := NewList("a", "b").Build()
	a := l.Node("a")

	l.SetItems("c", "a")

	assert.Equal(t, 2, l.Renders())
	assert.Same(t, a, l.Node("a"))
	assert.Equal(t, []string{"c", "a"}, l.Order())
	assert.Equal(t, dom.Rect{X: 0, Y: DefaultItemHeight, Width: DefaultItemWidth, Height: DefaultItemHeight}, a.BoundingRect())
	ExpectNoAttribute(t, l.Node("b"), "draggable")
}

func TestMove_RerendersInNewOrder(t *testing.T) {
	l := NewList("a", "b", "c").Build()

	l.Move("a", "c", false)

	ExpectOrder(t, l, "b", "c", "a")
	assert.Equal(t, 2, l.Renders())
	assert.Equal(t, float64(2*DefaultItemHeight), l.Node("a").BoundingRect().Y)
}

func TestQuarterPoints(t *testing.T) {
	l := NewList("a", "b").Build()

	x, y := l.firstQuarter("b")
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 25.0, y)

	x, y = l.lastQuarter("b")
	assert.Equal(t, 75.0, x)
	assert.Equal(t, 35.0, y)
}
