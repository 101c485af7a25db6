package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin subscribes the client's identity to a channel.
	CommandJoin CommandKind = iota
	// CommandSend broadcasts a message to a channel.
	CommandSend
	// CommandPrivate delivers a message to a single identity.
	CommandPrivate
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Channel string
	Target  string
	Body    string
}
