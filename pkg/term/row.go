package term

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/sortable"
)

// row is one line of the list.
type row struct {
	label string
	rect  dom.Rect
	class []string
	attrs map[string]string
	style map[string]string
}

func newRow(label string) *row {
	return &row{
		label: label,
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

func (r *row) AddClass(names ...string) {
	for _, name := range names {
		if name != "" && !slices.Contains(r.class, name) {
			r.class = append(r.class, name)
		}
	}
}

func (r *row) RemoveClass(names ...string) {
	r.class = slices.DeleteFunc(r.class, func(c string) bool {
		return slices.Contains(names, c)
	})
}

func (r *row) HasClass(name string) bool {
	return slices.Contains(r.class, name)
}

func (r *row) SetAttribute(name, value string) { r.attrs[name] = value }
func (r *row) RemoveAttribute(name string)     { delete(r.attrs, name) }
func (r *row) SetStyle(property, value string) { r.style[property] = value }
func (r *row) RemoveStyle(property string)     { delete(r.style, property) }
func (r *row) BoundingRect() dom.Rect          { return r.rect }

// offset returns the row shift requested by a preview transform.
func (r *row) offset() int {
	t, ok := r.style[sortable.StyleTransform]
	if !ok {
		return 0
	}
	args, ok := strings.CutPrefix(t, "translate(")
	if !ok {
		return 0
	}
	_, y, ok := strings.Cut(strings.TrimSuffix(args, ")"), ",")
	if !ok {
		return 0
	}
	dy, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(y), "px"), 64)
	if err != nil {
		return 0
	}
	return int(dy)
}

// cellStyle applies the class styles in the order the classes were added.
func (r *row) cellStyle(base tcell.Style, classes map[string]func(tcell.Style) tcell.Style) tcell.Style {
	style := base
	for _, c := range r.class {
		if fn, ok := classes[c]; ok {
			style = fn(style)
		}
	}
	return style
}
