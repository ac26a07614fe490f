package vtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/sortable"
)

// Default element size used for the simulated layout.
const (
	DefaultItemWidth  = 100
	DefaultItemHeight = 20
)

// ListBuilder allows fluent construction of simulated lists.
type ListBuilder[T comparable] struct {
	items  []T
	opts   []sortable.Option
	width  float64
	height float64
	label  func(T) string
}

// NewList creates a builder for a list of items.
func NewList[T comparable](items ...T) *ListBuilder[T] {
	return &ListBuilder[T]{
		items:  items,
		width:  DefaultItemWidth,
		height: DefaultItemHeight,
		label:  func(v T) string { return fmt.Sprint(v) },
	}
}

// WithOptions adds controller options.
func (b *ListBuilder[T]) WithOptions(opts ...sortable.Option) *ListBuilder[T] {
	b.opts = append(b.opts, opts...)
	return b
}

// WithItemSize sets the simulated element size.
func (b *ListBuilder[T]) WithItemSize(width, height float64) *ListBuilder[T] {
	b.width = width
	b.height = height
	return b
}

// WithLabel sets the text rendered for an item.
func (b *ListBuilder[T]) WithLabel(label func(T) string) *ListBuilder[T] {
	b.label = label
	return b
}

// Build mounts the controller on a new container and renders the items.
func (b *ListBuilder[T]) Build() *List[T] {
	l := &List[T]{
		Container:  dom.NewNode("ul").WithHID("list"),
		Controller: sortable.New(b.items, b.opts...),
		width:      b.width,
		height:     b.height,
		label:      b.label,
		nodes:      make(map[T]*dom.Node),
		items:      make(map[*dom.Node]T),
	}
	l.Controller.OnChange(func([]T) { l.mustRender() })
	l.Controller.Mount(l.Container)
	l.mustRender()
	return l
}

// List is a simulated sortable list.
type List[T comparable] struct {
	Container  *dom.Node
	Controller *sortable.Controller[T]

	width   float64
	height  float64
	label   func(T) string
	nodes   map[T]*dom.Node
	items   map[*dom.Node]T
	renders int
}

// Render lays out one element per item in the controller's order and
// registers them in a render pass. Elements are reused per item.
func (l *List[T]) Render() error {
	order := l.Controller.Items()
	children := make([]*dom.Node, len(order))
	pass := l.Controller.BeginRender()
	for k, item := range order {
		n := l.nodeFor(item)
		n.SetRect(dom.Rect{X: 0, Y: float64(k) * l.height, Width: l.width, Height: l.height})
		children[k] = n
		pass.Register(n)
	}
	l.Container.SetChildren(children...)
	l.renders++
	return pass.End()
}

func (l *List[T]) mustRender() {
	if err := l.Render(); err != nil {
		panic(fmt.Sprintf("vtest: render failed: %v", err))
	}
}

func (l *List[T]) nodeFor(item T) *dom.Node {
	if n, ok := l.nodes[item]; ok {
		return n
	}
	n := dom.NewNode("li").
		WithHID(fmt.Sprintf("h%d", len(l.nodes)+1)).
		WithText(l.label(item))
	l.nodes[item] = n
	l.items[n] = item
	return n
}

// SetItems replaces the items and renders them.
func (l *List[T]) SetItems(items ...T) {
	l.Controller.SetItems(items)
	l.mustRender()
}

// Renders returns how many render passes ran.
func (l *List[T]) Renders() int {
	return l.renders
}

// Node returns the element rendered for item, or nil.
func (l *List[T]) Node(item T) *dom.Node {
	return l.nodes[item]
}

// NodeAt returns the container child at position i, or nil.
func (l *List[T]) NodeAt(i int) *dom.Node {
	children := l.Container.Children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// Order returns the items in DOM order.
func (l *List[T]) Order() []T {
	children := l.Container.Children()
	out := make([]T, len(children))
	for i, n := range children {
		out[i] = l.items[n]
	}
	return out
}

// Texts returns the element texts in DOM order.
func (l *List[T]) Texts() []string {
	children := l.Container.Children()
	out := make([]string, len(children))
	for i, n := range children {
		out[i] = n.Text
	}
	return out
}

// HTML renders the container.
func (l *List[T]) HTML() string {
	return l.Container.HTML()
}

// Fire dispatches an event of type t on the element for item. Unknown items
// dispatch on the container itself with no target.
func (l *List[T]) Fire(t dom.EventType, item T, x, y float64) {
	if n, ok := l.nodes[item]; ok {
		n.Dispatch(dom.Event{Type: t, ClientX: x, ClientY: y})
		return
	}
	l.FireOnContainer(t, x, y)
}

// FireOnContainer dispatches an event on the container background.
func (l *List[T]) FireOnContainer(t dom.EventType, x, y float64) {
	l.Container.Dispatch(dom.Event{Type: t, ClientX: x, ClientY: y})
}

// DragStart starts a drag on item.
func (l *List[T]) DragStart(item T) {
	l.Fire(dom.DragStart, item, l.centerX(item), l.centerY(item))
}

// DragEnter enters item.
func (l *List[T]) DragEnter(item T) {
	l.Fire(dom.DragEnter, item, l.centerX(item), l.centerY(item))
}

// DragLeave leaves item.
func (l *List[T]) DragLeave(item T) {
	l.Fire(dom.DragLeave, item, l.centerX(item), l.centerY(item))
}

// DragOverBefore hovers the first half of item's box.
func (l *List[T]) DragOverBefore(item T) {
	x, y := l.firstQuarter(item)
	l.Fire(dom.DragOver, item, x, y)
}

// DragOverAfter hovers the second half of item's box.
func (l *List[T]) DragOverAfter(item T) {
	x, y := l.lastQuarter(item)
	l.Fire(dom.DragOver, item, x, y)
}

// DropBefore drops on the first half of item's box.
func (l *List[T]) DropBefore(item T) {
	x, y := l.firstQuarter(item)
	l.Fire(dom.Drop, item, x, y)
}

// DropAfter drops on the second half of item's box.
func (l *List[T]) DropAfter(item T) {
	x, y := l.lastQuarter(item)
	l.Fire(dom.Drop, item, x, y)
}

// DragEnd ends the drag on item.
func (l *List[T]) DragEnd(item T) {
	l.Fire(dom.DragEnd, item, l.centerX(item), l.centerY(item))
}

// Move performs a complete gesture dropping source before or after target.
func (l *List[T]) Move(source, target T, before bool) {
	l.DragStart(source)
	l.DragEnter(target)
	if before {
		l.DragOverBefore(target)
		l.DropBefore(target)
	} else {
		l.DragOverAfter(target)
		l.DropAfter(target)
	}
	l.DragEnd(source)
}

func (l *List[T]) rect(item T) dom.Rect {
	if n, ok := l.nodes[item]; ok {
		return n.BoundingRect()
	}
	return dom.Rect{}
}

func (l *List[T]) centerX(item T) float64 {
	x, _ := l.rect(item).Center()
	return x
}

func (l *List[T]) centerY(item T) float64 {
	_, y := l.rect(item).Center()
	return y
}

func (l *List[T]) firstQuarter(item T) (float64, float64) {
	r := l.rect(item)
	return r.X + r.Width/4, r.Y + r.Height/4
}

func (l *List[T]) lastQuarter(item T) (float64, float64) {
	r := l.rect(item)
	return r.X + r.Width*3/4, r.Y + r.Height*3/4
}

// ExpectOrder asserts the DOM order of the list.
func ExpectOrder[T comparable](t *testing.T, l *List[T], want ...T) {
	t.Helper()
	got := l.Order()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// ExpectClass asserts that the node has every class.
func ExpectClass(t *testing.T, n *dom.Node, classes ...string) {
	t.Helper()
	for _, c := range classes {
		if !n.HasClass(c) {
			t.Errorf("expected %s to have class %q, classes: %v", describe(n), c, n.Classes())
		}
	}
}

// ExpectNoClass asserts that the node has none of the classes.
func ExpectNoClass(t *testing.T, n *dom.Node, classes ...string) {
	t.Helper()
	for _, c := range classes {
		if n.HasClass(c) {
			t.Errorf("expected %s NOT to have class %q", describe(n), c)
		}
	}
}

// ExpectAttribute asserts an attribute value.
func ExpectAttribute(t *testing.T, n *dom.Node, name, value string) {
	t.Helper()
	got, ok := n.Attribute(name)
	if !ok {
		t.Errorf("expected %s to have attribute %s=%q, attribute missing", describe(n), name, value)
		return
	}
	if got != value {
		t.Errorf("expected %s attribute %s=%q, got %q", describe(n), name, value, got)
	}
}

// ExpectNoAttribute asserts that an attribute is not set.
func ExpectNoAttribute(t *testing.T, n *dom.Node, name string) {
	t.Helper()
	if v, ok := n.Attribute(name); ok {
		t.Errorf("expected %s NOT to have attribute %s, got %q", describe(n), name, v)
	}
}

// ExpectContains asserts that the rendered list contains expected.
func ExpectContains[T comparable](t *testing.T, l *List[T], expected string) {
	t.Helper()
	html := l.HTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered list does not contain unexpected.
func ExpectNotContains[T comparable](t *testing.T, l *List[T], unexpected string) {
	t.Helper()
	html := l.HTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

func describe(n *dom.Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<%s %s>%s", n.Tag, n.HID, n.Text)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
