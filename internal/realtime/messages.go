package realtime

// Client message types.
const (
	MessageJoinRoom  = "join-room"
	MessageLeaveRoom = "leave-room"
)

// Server frame types.
const (
	FrameJoined = "joined"
	FrameLeft   = "left"
	FrameError  = "error"
)

// ClientMessage is a message sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Room string `json:"room,omitempty"`
}

// ControlFrame acknowledges or rejects a client message.
type ControlFrame struct {
	Type    string `json:"type"`
	Room    string `json:"room,omitempty"`
	Message string `json:"message,omitempty"`
}

// ChangeFrame tells a session to refetch its tasks.
type ChangeFrame struct {
	Event string `json:"event"`
}
