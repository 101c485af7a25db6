package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers a channel's message history to a joining client.
	EventHistory EventKind = iota
	// EventUserList delivers the global presence snapshot to every client.
	EventUserList
	// EventChannelMessage notifies channel members about a broadcast message.
	EventChannelMessage
	// EventPrivateMessage delivers a direct message to its target only.
	EventPrivateMessage
)

// UserEntry is one row of the presence snapshot.
type UserEntry struct {
	Name string
	Role Role
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Channel  string
	Message  Message     // EventChannelMessage
	Messages []Message   // EventHistory
	Users    []UserEntry // EventUserList
	From     string      // EventPrivateMessage
	Body     string      // EventPrivateMessage
}
