package term

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/vango-dev/sortable/pkg/dom"
	"github.com/vango-dev/sortable/pkg/sortable"
)

// List is a terminal list of strings reordered by mouse drags.
//
// A List is not safe for concurrent use. Run owns it until it returns.
type List struct {
	screen     tcell.Screen
	controller *sortable.Controller[string]
	container  *dom.Node
	rows       []*row
	logger     *slog.Logger

	base    tcell.Style
	classes map[string]func(tcell.Style) tcell.Style

	// Drag state derived from the mouse.
	source *row
	hover  *row
}

// New creates a list on screen. The screen must already be initialized.
func New(screen tcell.Screen, items []string, opts ...sortable.Option) *List {
	l := &List{
		screen:    screen,
		container: dom.NewNode("list"),
		logger:    slog.Default(),
		base:      tcell.StyleDefault,
		classes: map[string]func(tcell.Style) tcell.Style{
			"dragging": func(s tcell.Style) tcell.Style { return s.Reverse(true) },
			"dragover": func(s tcell.Style) tcell.Style { return s.Underline(true) },
		},
	}
	l.controller = sortable.New(items, opts...)
	l.controller.OnChange(l.committed)
	l.controller.Mount(l.container)

	l.rows = make([]*row, len(items))
	for i, item := range items {
		l.rows[i] = newRow(item)
	}
	l.render()
	return l
}

// SetLogger sets the logger for render failures.
func (l *List) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// SetClassStyle sets how rows carrying class are drawn.
func (l *List) SetClassStyle(class string, fn func(tcell.Style) tcell.Style) {
	l.classes[class] = fn
}

// Items returns the current order.
func (l *List) Items() []string {
	return l.controller.Items()
}

// OnChange registers fn to receive the items after every reorder.
func (l *List) OnChange(fn func([]string)) {
	l.controller.OnChange(fn)
}

// Controller returns the underlying controller.
func (l *List) Controller() *sortable.Controller[string] {
	return l.controller
}

// layout gives row i the cell line y = i across the screen width.
func (l *List) layout() {
	w, _ := l.screen.Size()
	for i, r := range l.rows {
		r.rect = dom.Rect{X: 0, Y: float64(i), Width: float64(w), Height: 1}
	}
}

func (l *List) render() {
	l.layout()
	pass := l.controller.BeginRender()
	for _, r := range l.rows {
		pass.Register(r)
	}
	if err := pass.End(); err != nil {
		l.logger.Error("render failed", "error", err)
	}
}

func (l *List) committed([]string) {
	for i := range l.rows {
		if r, ok := l.controller.Element(i).(*row); ok {
			l.rows[i] = r
		}
	}
	l.render()
}

func (l *List) rowAt(y int) *row {
	if y < 0 || y >= len(l.rows) {
		return nil
	}
	return l.rows[y]
}

func (l *List) dispatch(t dom.EventType, target *row, x, y int) {
	l.container.Dispatch(dom.Event{
		Type:    t,
		Target:  target,
		ClientX: float64(x) + 0.5,
		ClientY: float64(y) + 0.5,
	})
}

// HandleMouse turns a mouse event into drag events. It reports whether the
// event was part of a drag; the list is redrawn when it was.
func (l *List) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.ButtonPrimary != 0
	over := l.rowAt(y)

	switch {
	case pressed && l.source == nil:
		if over == nil {
			return false
		}
		l.source = over
		l.dispatch(dom.DragStart, over, x, y)

	case pressed:
		if over != l.hover {
			if l.hover != nil {
				l.dispatch(dom.DragLeave, l.hover, x, y)
			}
			if over != nil {
				l.dispatch(dom.DragEnter, over, x, y)
			}
			l.hover = over
		}
		if over != nil {
			l.dispatch(dom.DragOver, over, x, y)
		}

	case l.source != nil:
		if l.hover != nil && l.hover != over {
			l.dispatch(dom.DragLeave, l.hover, x, y)
		}
		if over != nil {
			l.dispatch(dom.Drop, over, x, y)
		}
		source := l.source
		l.source, l.hover = nil, nil
		l.dispatch(dom.DragEnd, source, x, y)

	default:
		return false
	}

	l.Draw()
	return true
}

// Draw paints every row and shows the screen.
func (l *List) Draw() {
	l.screen.Clear()
	w, h := l.screen.Size()
	for i, r := range l.rows {
		y := i + r.offset()
		if y < 0 || y >= h {
			continue
		}
		l.screen.PutStrStyled(0, y, pad(r.label, w), r.cellStyle(l.base, l.classes))
	}
	l.screen.Show()
}

// pad fills s with spaces to width cells so styles span the whole row.
func pad(s string, width int) string {
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// Run draws the list and handles terminal events until ctx is done or the
// user quits with q, Esc or Ctrl-C.
func (l *List) Run(ctx context.Context) error {
	l.screen.EnableMouse()
	defer l.screen.DisableMouse()
	l.Draw()

	events := l.screen.EventQ()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev == nil {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
			case *tcell.EventMouse:
				l.HandleMouse(ev)
			case *tcell.EventResize:
				l.screen.Sync()
				if !l.controller.Session().Dragging {
					l.render()
				}
				l.Draw()
			case *tcell.EventError:
				return ev
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Str() == "q"
	}
	return false
}
