// Package dom defines the element model the sortable controller drives.
//
// A sortable container never touches a real document. It talks to Element
// and Container values, which can be backed by a browser (through the server
// package), a terminal (through the term package) or by the in-memory Node
// type in this package, which tests and simulations use.
//
// # Elements
//
// Element is the handle for one rendered list entry. The controller only ever
// adds and removes class names, sets the draggable attribute, writes inline
// transform/transition styles and reads the element's bounding rectangle.
//
// Element values are compared with ==, so implementations should be pointer
// types.
//
// # Containers
//
// Container receives drag event listeners. Events raised on child elements are
// delivered to the container's listeners with Target set to the child, the
// same way DOM events bubble to a delegated listener.
//
//	root := dom.NewNode("ul")
//	item := dom.NewNode("li").WithRect(dom.Rect{Y: 0, Width: 100, Height: 20})
//	root.AppendChild(item)
//
//	remove := root.AddEventListener(dom.DragStart, func(e dom.Event) {
//	    fmt.Println("drag started on", e.Target)
//	})
//	defer remove()
//
//	item.Dispatch(dom.Event{Type: dom.DragStart})
package dom
