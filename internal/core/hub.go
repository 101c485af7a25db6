package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Hub routes inbound client commands against the identity registry and the
// channel store. It is a single goroutine: Run owns the connected-client set
// and serializes every join, send, and disconnect, which is what gives each
// channel a total broadcast order.
//
// Malformed or unauthorized commands are dropped silently. Errors in one
// command never surface to other connections.
type Hub struct {
	registry *Registry
	channels *ChannelStore
	log      *zerolog.Logger

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub over the given registry and channel store.
func NewHub(registry *Registry, channels *ChannelStore, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry:   registry,
		channels:   channels,
		log:        logger,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
	}
}

// RegisterClient hands a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient signals that a connection is gone. Safe to call more than
// once per client: the hub de-duplicates by its connected-client set, so the
// disconnect side effects run exactly once.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations, disconnects, and commands until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(c)
			h.log.Debug().Str("conn_id", c.ID).Str("user", c.Name).Msg("client registered")

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case cc := <-h.commands:
			h.dispatch(cc.client, cc.cmd)

		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the hub loop. It exits when the
// hub unregisters the client.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}

// dispatch applies a single command. A panic while handling one event must
// not take the hub down with it.
func (h *Hub) dispatch(c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("user", c.Name).Msg("recovered while handling command")
		}
	}()

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(c, cmd.Channel)
	case CommandSend:
		h.handleSend(c, cmd.Channel, cmd.Body)
	case CommandPrivate:
		h.handlePrivate(c, cmd.Target, cmd.Body)
	default:
		h.log.Debug().Int("kind", int(cmd.Kind)).Msg("unknown command dropped")
	}
}

func (h *Hub) handleJoin(c *Client, channel string) {
	if _, ok := h.registry.Lookup(c.Name); !ok {
		h.log.Debug().Str("user", c.Name).Msg("join from unknown identity dropped")
		return
	}

	if err := h.registry.Bind(c.Name, c); err != nil {
		h.log.Debug().Err(err).Str("user", c.Name).Msg("bind failed")
		return
	}
	h.channels.Subscribe(channel, c.Name, c)

	// History goes to the joiner only, then presence goes to everyone.
	c.send(&Event{
		Kind:     EventHistory,
		Channel:  channel,
		Messages: h.channels.History(channel),
	})
	h.broadcastUserList()

	h.log.Info().Str("user", c.Name).Str("channel", channel).Msg("joined channel")
}

func (h *Hub) handleSend(c *Client, channel, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	id, ok := h.registry.Lookup(c.Name)
	if !ok {
		h.log.Debug().Str("user", c.Name).Msg("send from unknown identity dropped")
		return
	}

	msg := Message{Author: id.Name, Body: body, Role: id.Role}
	recipients := h.channels.AppendMessage(channel, msg)
	for _, rc := range recipients {
		rc.send(&Event{Kind: EventChannelMessage, Channel: channel, Message: msg})
	}
}

// handlePrivate delivers a direct message to the target's connection only.
// The body is passed through untrimmed and may be empty; only channel sends
// enforce the non-empty rule.
func (h *Hub) handlePrivate(c *Client, target, body string) {
	id, ok := h.registry.Lookup(target)
	if !ok || id.Conn == nil {
		h.log.Debug().Str("target", target).Msg("private message to unknown or offline target dropped")
		return
	}
	id.Conn.send(&Event{Kind: EventPrivateMessage, From: c.Name, Body: body})
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.done)

	// A connection that never joined has no binding; nothing else to clean up.
	name, ok := h.registry.RemoveByConn(c.ID)
	if !ok {
		return
	}
	h.channels.RemoveMember(name)
	h.broadcastUserList()
	h.log.Info().Str("user", name).Msg("disconnected")
}

func (h *Hub) broadcastUserList() {
	users := h.registry.ListAll()
	for c := range h.clients {
		c.send(&Event{Kind: EventUserList, Users: users})
	}
}
