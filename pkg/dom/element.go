package dom

// Element is a handle to one rendered element.
type Element interface {
	// AddClass adds class names that are not present yet.
	AddClass(names ...string)

	// RemoveClass removes class names. Missing names are ignored.
	RemoveClass(names ...string)

	// HasClass reports whether the class name is present.
	HasClass(name string) bool

	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// SetStyle sets an inline style property such as "transform".
	SetStyle(property, value string)
	RemoveStyle(property string)

	// BoundingRect returns the element's box in client coordinates.
	BoundingRect() Rect
}

// Container is the element that receives delegated drag listeners.
type Container interface {
	// AddEventListener registers fn for events of type t and returns the
	// function that removes it again.
	AddEventListener(t EventType, fn Listener) (remove func())
}
