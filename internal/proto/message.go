package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin           = "join"
	InboundTypeSendMessage    = "send_message"
	InboundTypePrivateMessage = "private_message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	// Outbound event names.
	EventChatHistory    = "chat_history"
	EventUserList       = "user_list"
	EventReceiveMessage = "receive_message"
	EventReceivePrivate = "receive_private"

	// DefaultChannel is used when a join or send omits the channel field.
	DefaultChannel = "general"
)

// JoinData requests to join a channel.
type JoinData struct {
	Channel string `json:"channel"`
}

// SendMessageData is a broadcast message from the client.
type SendMessageData struct {
	Channel string `json:"channel"`
	Message string `json:"message"`
}

// PrivateMessageData is a direct message from the client.
type PrivateMessageData struct {
	Target string `json:"target"`
	Msg    string `json:"msg"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// ChatMessage is one broadcast message, both in history and live delivery.
type ChatMessage struct {
	User string `json:"user"`
	Msg  string `json:"msg"`
	Role string `json:"role"`
}

// UserEntry is one row of the user_list presence snapshot.
type UserEntry struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PrivateMessage is delivered to the target of a direct message only.
type PrivateMessage struct {
	From string `json:"from"`
	Msg  string `json:"msg"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
