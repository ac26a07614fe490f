package dom

import (
	"html"
	"slices"
	"sort"
	"strings"
)

// Node is an in-memory element and container.
//
// Node keeps class names in insertion order, attributes and inline styles in
// maps, and an explicit child list so that callers can re-render by moving
// existing nodes around the way a keyed renderer would.
type Node struct {
	Tag  string
	HID  string
	Text string

	classes   []string
	attrs     map[string]string
	style     map[string]string
	rect      Rect
	parent    *Node
	children  []*Node
	listeners map[EventType][]*listener
}

type listener struct {
	fn Listener
}

// NewNode creates an element node with the given tag.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// WithHID sets the hydration ID and returns the node.
func (n *Node) WithHID(hid string) *Node {
	n.HID = hid
	return n
}

// WithText sets the text content and returns the node.
func (n *Node) WithText(text string) *Node {
	n.Text = text
	return n
}

// WithRect sets the bounding box and returns the node.
func (n *Node) WithRect(r Rect) *Node {
	n.rect = r
	return n
}

// AddClass implements Element.
func (n *Node) AddClass(names ...string) {
	for _, name := range names {
		if name == "" || slices.Contains(n.classes, name) {
			continue
		}
		n.classes = append(n.classes, name)
	}
}

// RemoveClass implements Element.
func (n *Node) RemoveClass(names ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// HasClass implements Element.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetAttribute implements Element.
func (n *Node) SetAttribute(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// RemoveAttribute implements Element.
func (n *Node) RemoveAttribute(name string) {
	delete(n.attrs, name)
}

// Attribute returns an attribute value and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetStyle implements Element.
func (n *Node) SetStyle(property, value string) {
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[property] = value
}

// RemoveStyle implements Element.
func (n *Node) RemoveStyle(property string) {
	delete(n.style, property)
}

// Style returns an inline style value, or "" when unset.
func (n *Node) Style(property string) string {
	return n.style[property]
}

// BoundingRect implements Element.
func (n *Node) BoundingRect() Rect {
	return n.rect
}

// SetRect replaces the bounding box.
func (n *Node) SetRect(r Rect) {
	n.rect = r
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild appends child, detaching it from its previous parent.
func (n *Node) AppendChild(child *Node) {
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// SetChildren replaces the child list with nodes, in order.
func (n *Node) SetChildren(nodes ...*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = n.children[:0]
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

// NextSibling returns the node after n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	return n.sibling(1)
}

// PreviousSibling returns the node before n in its parent, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.sibling(-1)
}

func (n *Node) sibling(delta int) *Node {
	if n.parent == nil {
		return nil
	}
	i := slices.Index(n.parent.children, n) + delta
	if i < 0 || i >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i]
}

// AddEventListener implements Container.
func (n *Node) AddEventListener(t EventType, fn Listener) func() {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[t] = append(n.listeners[t], l)
	return func() {
		n.listeners[t] = slices.DeleteFunc(n.listeners[t], func(x *listener) bool { return x == l })
	}
}

// ListenerCount returns the number of listeners registered for t.
func (n *Node) ListenerCount(t EventType) int {
	return len(n.listeners[t])
}

// Dispatch raises e on n. Target defaults to n, and the event is delivered
// to the listeners of n and then of every ancestor.
func (n *Node) Dispatch(e Event) {
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		// Listeners may be replaced while the event is being handled.
		for _, l := range slices.Clone(cur.listeners[e.Type]) {
			l.fn(e)
		}
	}
}

// HTML renders the node and its children.
func (n *Node) HTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	b.WriteString("<")
	b.WriteString(n.Tag)
	if n.HID != "" {
		writeAttr(b, "data-hid", n.HID)
	}
	if len(n.classes) > 0 {
		writeAttr(b, "class", strings.Join(n.classes, " "))
	}
	for _, k := range sortedKeys(n.attrs) {
		writeAttr(b, k, n.attrs[k])
	}
	if len(n.style) > 0 {
		parts := make([]string, 0, len(n.style))
		for _, k := range sortedKeys(n.style) {
			parts = append(parts, k+": "+n.style[k])
		}
		writeAttr(b, "style", strings.Join(parts, "; "))
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(n.Text))
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
