package dom

// EventType identifies a drag and drop event.
type EventType uint8

// Drag event types, in the order a gesture normally produces them.
const (
	DragStart EventType = iota + 1
	DragEnter
	DragOver
	DragLeave
	Drop
	DragEnd
)

// DragEvents lists every event type a sortable container listens to.
var DragEvents = []EventType{DragStart, DragOver, DragEnter, DragLeave, DragEnd, Drop}

// String returns the DOM name of the event type.
func (t EventType) String() string {
	switch t {
	case DragStart:
		return "dragstart"
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	case DragEnd:
		return "dragend"
	default:
		return "unknown"
	}
}

// ParseEventType returns the event type for a DOM event name.
func ParseEventType(name string) (EventType, bool) {
	for _, t := range DragEvents {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// Event is a drag event delivered to a container listener.
type Event struct {
	Type EventType

	// Target is the element the event was raised on. It is nil when the
	// event happened on the container background.
	Target Element

	// ClientX and ClientY are the pointer coordinates.
	ClientX float64
	ClientY float64
}

// Listener handles a drag event.
type Listener func(Event)
