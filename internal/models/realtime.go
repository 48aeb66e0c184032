package models

// EventType tags an outbound realtime event. The set is closed so the
// hub and clients can handle it exhaustively.
type EventType string

const (
	// EventOnlineCount carries the updated global connection count.
	EventOnlineCount EventType = "onlineCount"
	// EventNewBubble announces a freshly posted bubble to everyone.
	EventNewBubble EventType = "newBubble"
	// EventChatroomUserJoined tells a room somebody joined it.
	EventChatroomUserJoined EventType = "chatroomUserJoined"
	// EventNewMessage carries a chatroom message to the room.
	EventNewMessage EventType = "newMessage"
)

// Event is a single outbound frame, written to clients as JSON.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// OnlineCountPayload is the payload of EventOnlineCount.
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// RoomJoinPayload is the payload of EventChatroomUserJoined.
type RoomJoinPayload struct {
	Nickname string `json:"nickname"`
	Time     int64  `json:"time"`
}

// RoomMessagePayload is the payload of EventNewMessage.
type RoomMessagePayload struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
	Time     int64  `json:"time"`
}

// CommandType tags an inbound client command.
type CommandType string

const (
	// CommandUserJoin binds a user identity to the connection.
	CommandUserJoin CommandType = "userJoin"
	// CommandJoinChatroom adds the connection to a room.
	CommandJoinChatroom CommandType = "joinChatroom"
	// CommandChatroomMessage sends a message to a room.
	CommandChatroomMessage CommandType = "chatroomMessage"
	// CommandLeaveChatroom removes the connection from a room.
	CommandLeaveChatroom CommandType = "leaveChatroom"
)

// Command is a single inbound frame from a realtime client. ConnID is
// stamped by the read pump, never trusted from the wire.
type Command struct {
	Type       CommandType `json:"type"`
	ConnID     string      `json:"-"`
	User       *User       `json:"user,omitempty"`
	ChatroomID string      `json:"chatroomId,omitempty"`
	Message    string      `json:"message,omitempty"`
}
