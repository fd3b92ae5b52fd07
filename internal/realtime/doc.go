// Package realtime delivers change frames to browser sessions over WebSocket.
//
// A Session joins the room named after its own identity by sending
// {"type":"join-room","room":"<email>"}. The Hub implements events.Sink and
// broadcasts {"event":"task-updated-<email>"} to every session in the room
// matching the change. Each session owns a buffered outbound queue drained by
// a writer goroutine; when the queue is full the frame is dropped.
package realtime
