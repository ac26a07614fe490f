// Package server hosts sortable lists over WebSocket.
//
// Every connection gets its own Session: a sortable.Controller over the
// shared item list, one remote element per item and the container the
// controller listens on. The browser side is a thin shim that forwards the
// native drag events and element layout as binary protocol frames and
// applies the patches it receives.
//
// # Session Lifecycle
//
// On connect the session renders the current items and sends one Patches
// frame: a Reorder patch listing the element HIDs ("i0", "i1", ...), a
// data-item attribute carrying each item's text, and the draggable
// attributes set by the render pass. The session then runs two goroutines:
//
//   - ReadLoop: decodes frames and dispatches events into the controller,
//     one at a time, then flushes the resulting patches
//   - WriteLoop: sends heartbeat pings
//
// # Event Processing
//
// When a client sends a drag event:
//  1. ReadLoop decodes the event frame
//  2. The HID is resolved to a remote element ("" is the container)
//  3. The event is dispatched through the container's listeners
//  4. Preview updates queued during dispatch run
//  5. Class, attribute and style changes are flushed as one Patches frame
//
// A committed reorder additionally emits a Reorder patch for the container,
// re-renders the elements in the new order and publishes the order to the
// server, where GET /api/items reports it and new sessions start from it.
//
// Layout events carry the untransformed bounding boxes of the elements;
// they are applied immediately and picked up by the next render pass.
//
// # Routes
//
//	GET /ws          WebSocket endpoint
//	GET /api/items   current order as JSON
//	GET /metrics     Prometheus metrics
//	GET /healthz     liveness probe
package server
