package sortable

import (
	"log/slog"
	"time"
)

// InsertPolicy decides when the side of the drop target is settled.
type InsertPolicy uint8

const (
	// InsertAtDrop settles the target and side when the drop event arrives,
	// from the pointer position inside the target's box. A gesture that ends
	// without a drop on a list element commits nothing.
	InsertAtDrop InsertPolicy = iota

	// InsertWhileOver settles the target on every drag-over. The moved element
	// lands before the target when dragging backwards and after it when
	// dragging forwards. Drop only clears the drag-over marker.
	InsertWhileOver
)

// String returns the config name of the policy.
func (p InsertPolicy) String() string {
	switch p {
	case InsertAtDrop:
		return "drop"
	case InsertWhileOver:
		return "over"
	default:
		return "unknown"
	}
}

// ParseInsertPolicy parses a policy name as returned by String.
func ParseInsertPolicy(s string) (InsertPolicy, bool) {
	switch s {
	case "drop":
		return InsertAtDrop, true
	case "over":
		return InsertWhileOver, true
	default:
		return 0, false
	}
}

// Axis selects the pointer coordinates used to pick the side of the target.
type Axis uint8

const (
	// AxisBoth inserts before the target when the pointer is in the first
	// half of the box horizontally or vertically.
	AxisBoth Axis = iota
	AxisX
	AxisY
)

// String returns the config name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisBoth:
		return "both"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "unknown"
	}
}

// ParseAxis parses an axis name as returned by String.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "both":
		return AxisBoth, true
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	default:
		return 0, false
	}
}

// Default animation parameters.
const (
	DefaultAnimationDuration = 200 * time.Millisecond
	DefaultAnimationTiming   = "cubic-bezier(0.25, 0.1, 0.25, 1)"
)

// Observer receives gesture lifecycle notifications.
// Metrics and tracing hang off this; the controller never depends on them.
type Observer interface {
	DragStarted(source int)
	Committed(source, target int, insertBefore bool, length int)
	Aborted(reason string)
}

// Options configures a Controller.
type Options struct {
	// Multiple is accepted for compatibility but has no effect: only a single
	// element is dragged at a time.
	Multiple bool

	// DraggingClassNames are added to the element being dragged.
	DraggingClassNames []string

	// DragoverClassNames are added to an element while something is dragged
	// over it.
	DragoverClassNames []string

	// Animate enables the live preview transforms during a drag.
	Animate bool

	// AnimationDelay, AnimationDuration and AnimationTiming produce the
	// transition parameters for the element at a given position.
	AnimationDelay    func(i int) time.Duration
	AnimationDuration func(i int) time.Duration
	AnimationTiming   func(i int) string

	InsertPolicy InsertPolicy
	Axis         Axis

	// Scheduler runs preview updates. The default runs them immediately.
	// While a scheduled preview has not run yet, further drag-over events
	// do not schedule another one.
	Scheduler func(func())

	Observer Observer
	Logger   *slog.Logger
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the default controller options.
func DefaultOptions() Options {
	return Options{
		Multiple:           false,
		DraggingClassNames: []string{"dragging"},
		DragoverClassNames: []string{"dragover"},
		Animate:            false,
		AnimationDelay:     func(int) time.Duration { return 0 },
		AnimationDuration:  func(int) time.Duration { return DefaultAnimationDuration },
		AnimationTiming:    func(int) string { return DefaultAnimationTiming },
		InsertPolicy:       InsertAtDrop,
		Axis:               AxisBoth,
		Scheduler:          func(fn func()) { fn() },
	}
}

// WithMultiple sets the (inert) multiple-selection flag.
func WithMultiple(multiple bool) Option {
	return func(o *Options) {
		o.Multiple = multiple
	}
}

// WithDraggingClassNames sets the classes added to the dragged element.
func WithDraggingClassNames(names ...string) Option {
	return func(o *Options) {
		o.DraggingClassNames = names
	}
}

// WithDragoverClassNames sets the classes added to hovered elements.
func WithDragoverClassNames(names ...string) Option {
	return func(o *Options) {
		o.DragoverClassNames = names
	}
}

// WithAnimate enables or disables the live preview.
func WithAnimate(animate bool) Option {
	return func(o *Options) {
		o.Animate = animate
	}
}

// WithAnimationDelay sets the per-position transition delay.
func WithAnimationDelay(fn func(i int) time.Duration) Option {
	return func(o *Options) {
		if fn != nil {
			o.AnimationDelay = fn
		}
	}
}

// WithAnimationDuration sets the per-position transition duration.
func WithAnimationDuration(fn func(i int) time.Duration) Option {
	return func(o *Options) {
		if fn != nil {
			o.AnimationDuration = fn
		}
	}
}

// WithAnimationTiming sets the per-position transition timing function.
func WithAnimationTiming(fn func(i int) string) Option {
	return func(o *Options) {
		if fn != nil {
			o.AnimationTiming = fn
		}
	}
}

// WithInsertPolicy sets when the drop side is settled.
func WithInsertPolicy(p InsertPolicy) Option {
	return func(o *Options) {
		o.InsertPolicy = p
	}
}

// WithAxis sets the axis used for pointer based insertion.
func WithAxis(a Axis) Option {
	return func(o *Options) {
		o.Axis = a
	}
}

// WithScheduler sets the function that runs preview updates.
func WithScheduler(fn func(func())) Option {
	return func(o *Options) {
		if fn != nil {
			o.Scheduler = fn
		}
	}
}

// WithObserver sets the gesture observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// Stagger returns a delay function that delays position i by i*step.
func Stagger(step time.Duration) func(i int) time.Duration {
	return func(i int) time.Duration {
		return time.Duration(i) * step
	}
}
