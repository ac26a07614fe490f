package protocol

import (
	"errors"
	"math"

	"github.com/vango-dev/sortable/pkg/dom"
)

// EventType identifies the type of client event.
type EventType uint8

// Event type constants.
const (
	// Drag events (0x50-0x55)
	EventDragStart EventType = 0x50
	EventDragEnd   EventType = 0x51
	EventDrop      EventType = 0x52
	EventDragEnter EventType = 0x53
	EventDragOver  EventType = 0x54
	EventDragLeave EventType = 0x55

	// EventLayout reports the bounding boxes of rendered elements.
	EventLayout EventType = 0x60
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventDragStart:
		return "DragStart"
	case EventDragEnd:
		return "DragEnd"
	case EventDrop:
		return "Drop"
	case EventDragEnter:
		return "DragEnter"
	case EventDragOver:
		return "DragOver"
	case EventDragLeave:
		return "DragLeave"
	case EventLayout:
		return "Layout"
	default:
		return "Unknown"
	}
}

// DOM maps a drag event type to its dom.EventType.
func (et EventType) DOM() (dom.EventType, bool) {
	switch et {
	case EventDragStart:
		return dom.DragStart, true
	case EventDragEnd:
		return dom.DragEnd, true
	case EventDrop:
		return dom.Drop, true
	case EventDragEnter:
		return dom.DragEnter, true
	case EventDragOver:
		return dom.DragOver, true
	case EventDragLeave:
		return dom.DragLeave, true
	default:
		return 0, false
	}
}

// EventTypeFor maps a dom.EventType to its wire type.
func EventTypeFor(t dom.EventType) (EventType, bool) {
	switch t {
	case dom.DragStart:
		return EventDragStart, true
	case dom.DragEnd:
		return EventDragEnd, true
	case dom.Drop:
		return EventDrop, true
	case dom.DragEnter:
		return EventDragEnter, true
	case dom.DragOver:
		return EventDragOver, true
	case dom.DragLeave:
		return EventDragLeave, true
	default:
		return 0, false
	}
}

// Modifiers is a bitmask of keyboard modifiers held during a drag.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 0x01
	ModShift Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

// Has reports whether m contains mod.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// DragEventData is the payload of every drag event. Coordinates are
// whole CSS pixels.
type DragEventData struct {
	ClientX   int
	ClientY   int
	Modifiers Modifiers
}

// ElementRect is the bounding box of one element.
type ElementRect struct {
	HID  string
	Rect dom.Rect
}

// LayoutEventData is the payload of EventLayout.
type LayoutEventData struct {
	Rects []ElementRect
}

// Event is a decoded client event.
type Event struct {
	Seq     uint64
	Type    EventType
	HID     string
	Payload any // *DragEventData or *LayoutEventData
}

// Drag returns the drag payload, or a zero value.
func (e *Event) Drag() DragEventData {
	if d, ok := e.Payload.(*DragEventData); ok && d != nil {
		return *d
	}
	return DragEventData{}
}

// Event encoding errors.
var (
	ErrInvalidEventType = errors.New("protocol: invalid event type")
	ErrInvalidPayload   = errors.New("protocol: invalid event payload")
)

// EncodeEvent encodes an event to bytes.
func EncodeEvent(e *Event) []byte {
	enc := NewEncoder()
	EncodeEventTo(enc, e)
	return enc.Bytes()
}

// EncodeEventTo encodes an event using the provided encoder.
func EncodeEventTo(enc *Encoder, e *Event) {
	enc.WriteUvarint(e.Seq)
	enc.WriteByte(byte(e.Type))
	enc.WriteString(e.HID)

	switch e.Type {
	case EventDragStart, EventDragEnd, EventDrop,
		EventDragEnter, EventDragOver, EventDragLeave:
		d := e.Drag()
		enc.WriteSvarint(int64(d.ClientX))
		enc.WriteSvarint(int64(d.ClientY))
		enc.WriteByte(byte(d.Modifiers))

	case EventLayout:
		data, ok := e.Payload.(*LayoutEventData)
		if !ok || data == nil {
			enc.WriteUvarint(0)
			return
		}
		enc.WriteUvarint(uint64(len(data.Rects)))
		for _, r := range data.Rects {
			enc.WriteString(r.HID)
			enc.WriteFloat64(r.Rect.X)
			enc.WriteFloat64(r.Rect.Y)
			enc.WriteFloat64(r.Rect.Width)
			enc.WriteFloat64(r.Rect.Height)
		}
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	return DecodeEventFrom(NewDecoder(data))
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	typeByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}

	e := &Event{Seq: seq, Type: EventType(typeByte), HID: hid}

	switch e.Type {
	case EventDragStart, EventDragEnd, EventDrop,
		EventDragEnter, EventDragOver, EventDragLeave:
		x, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		y, err := d.ReadSvarint()
		if err != nil {
			return nil, err
		}
		mods, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		e.Payload = &DragEventData{ClientX: int(x), ClientY: int(y), Modifiers: Modifiers(mods)}

	case EventLayout:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		rects := make([]ElementRect, count)
		for i := range rects {
			if rects[i], err = decodeElementRect(d); err != nil {
				return nil, err
			}
		}
		e.Payload = &LayoutEventData{Rects: rects}

	default:
		return nil, ErrInvalidEventType
	}

	return e, nil
}

func decodeElementRect(d *Decoder) (ElementRect, error) {
	hid, err := d.ReadString()
	if err != nil {
		return ElementRect{}, err
	}
	var v [4]float64
	for i := range v {
		if v[i], err = d.ReadFloat64(); err != nil {
			return ElementRect{}, err
		}
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return ElementRect{}, ErrInvalidPayload
		}
	}
	return ElementRect{
		HID:  hid,
		Rect: dom.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]},
	}, nil
}
