package types

import "github.com/lol-team-randomizer/backend/internal/room"

// ServerMessage is what the subscription socket pushes. The socket is
// one-directional: clients mutate rooms over HTTP and only listen here.
type ServerMessage struct {
	Type  string     `json:"type"` // "RoomSnapshot" | "Error"
	Room  *room.Room `json:"room,omitempty"`
	Error string     `json:"error,omitempty"`
}

const (
	MsgRoomSnapshot = "RoomSnapshot"
	MsgError        = "Error"
)
