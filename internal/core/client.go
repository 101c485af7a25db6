package core

// eventBuffer is the per-client outbound buffer. Delivery is best-effort:
// when the buffer is full the event is dropped so one stalled connection
// cannot block routing for everyone else.
const eventBuffer = 32

// Client is a live transport connection as seen by the core layer.
// ID identifies the connection, Name the identity bound to it.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id, name string) *Client {
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, eventBuffer),
		done:     make(chan struct{}),
	}
}

// Done is closed when the hub has unregistered the client.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) send(ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
