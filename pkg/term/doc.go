// Package term renders a sortable list on a terminal and reorders it with
// mouse drags.
//
// Each row is a dom.Element, so the list runs the same controller as a
// browser list. Pressing the primary button on a row starts a drag, moving
// with the button held hovers other rows, and releasing drops. The pointer
// is placed at the center of the cell, so with the default InsertAtDrop
// policy the horizontal half of the row decides the insert side.
//
// Classes map to styles: "dragging" renders reversed and "dragover"
// underlined. Other class names can be given a style with SetClassStyle.
package term
