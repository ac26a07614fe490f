// Package protocol implements the binary wire format spoken between a
// browser-side drag-and-drop shim and a sortable list server.
//
// Events flow from client to server and carry the drag event type, the
// hydration ID (HID) of the element the event fired on, and the pointer
// position. Patches flow from server to client and describe the class,
// attribute and style mutations the controller performed, plus a Reorder
// operation after each committed move.
//
// # Wire Format
//
// Every message is framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Integers inside payloads are varints (ZigZag for signed values), strings
// are length-prefixed, and floats are IEEE 754 big-endian.
//
// Example DragOver event:
//
//	[Seq: varint][Type: 0x54][HID: "i3"][X: svarint][Y: svarint][Mods: byte]
package protocol
