package core

import "sync"

// Channel is a named message stream with its own history and delivery group.
// Channels are created lazily on first reference and live for the process
// lifetime; only their history is ever cleared.
type Channel struct {
	name    string
	history []Message
	members map[string]*Client // identity name -> live connection
}

// ChannelStore owns every channel. All access goes through its mutex so
// concurrent first-joins of the same name produce exactly one Channel.
type ChannelStore struct {
	mu       sync.Mutex
	channels map[string]*Channel
}

// NewChannelStore constructs an empty store.
func NewChannelStore() *ChannelStore {
	return &ChannelStore{channels: make(map[string]*Channel)}
}

// ensure returns the channel, creating it if absent. Caller holds the lock.
func (s *ChannelStore) ensure(name string) *Channel {
	ch, ok := s.channels[name]
	if !ok {
		ch = &Channel{name: name, members: make(map[string]*Client)}
		s.channels[name] = ch
	}
	return ch
}

// Subscribe adds the identity's connection to the channel's delivery group,
// creating the channel if needed. Joining a second channel does not leave the
// first: membership accumulates until disconnect.
func (s *ChannelStore) Subscribe(channel, name string, c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(channel).members[name] = c
}

// AppendMessage appends to the channel's history (creating the channel if
// absent) and returns a snapshot of the delivery group. Append and snapshot
// share one critical section, so every subscriber observes broadcasts in
// history order.
func (s *ChannelStore) AppendMessage(channel string, m Message) []*Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.ensure(channel)
	ch.history = append(ch.history, m)

	recipients := make([]*Client, 0, len(ch.members))
	for _, c := range ch.members {
		recipients = append(recipients, c)
	}
	return recipients
}

// History returns a copy of the channel's message history. Unknown channels
// yield an empty slice.
func (s *ChannelStore) History(channel string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channel]
	if !ok {
		return []Message{}
	}
	out := make([]Message, len(ch.history))
	copy(out, ch.history)
	return out
}

// Members returns the identity names currently subscribed to the channel.
func (s *ChannelStore) Members(channel string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.channels[channel]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ch.members))
	for name := range ch.members {
		names = append(names, name)
	}
	return names
}

// RemoveMember drops the identity from every channel's delivery group.
// Histories are untouched.
func (s *ChannelStore) RemoveMember(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.channels {
		delete(ch.members, name)
	}
}

// ClearAll resets every channel's history to empty. Membership is preserved.
func (s *ChannelStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.channels {
		ch.history = nil
	}
}
