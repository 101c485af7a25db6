package core

import "sync"

// Identity is a uniquely-named chat participant. Conn is nil until the
// identity joins a channel over a live connection.
type Identity struct {
	Name string
	Role Role
	Conn *Client
}

// Registry is the single source of truth for who is online. It maps display
// names to identities and maintains a connection-to-name reverse index so
// disconnects resolve without scanning.
//
// A single mutex guards both maps; they must never diverge.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*Identity
	byConn map[string]string // connection ID -> identity name
	order  []string          // insertion order, for stable presence snapshots
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Identity),
		byConn: make(map[string]string),
	}
}

// Register inserts a new identity under name. The check and the insert happen
// under one lock: two concurrent registrations of the same name cannot both
// succeed. Returns ErrNameTaken if the name is live.
func (r *Registry) Register(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return ErrNameTaken
	}
	r.byName[name] = &Identity{Name: name, Role: RoleUser}
	r.order = append(r.order, name)
	return nil
}

// Lookup returns a snapshot of the identity registered under name.
func (r *Registry) Lookup(name string) (Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		return Identity{}, false
	}
	return *id, true
}

// Bind attaches a live connection to an existing identity and records the
// reverse mapping. Returns ErrUnknownIdentity if the name is not registered.
func (r *Registry) Bind(name string, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[name]
	if !ok {
		return ErrUnknownIdentity
	}
	if id.Conn != nil && id.Conn.ID != c.ID {
		delete(r.byConn, id.Conn.ID)
	}
	id.Conn = c
	r.byConn[c.ID] = name
	return nil
}

// Remove deletes the identity and its connection binding. Removing an absent
// name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(name)
}

// RemoveByConn resolves the identity bound to the given connection ID,
// removes it, and reports the name. Returns false if nothing is bound, in
// which case the registry is untouched.
func (r *Registry) RemoveByConn(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	r.remove(name)
	return name, true
}

// remove deletes name from both indexes. Caller holds the lock.
func (r *Registry) remove(name string) {
	id, ok := r.byName[name]
	if !ok {
		return
	}
	if id.Conn != nil {
		delete(r.byConn, id.Conn.ID)
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// ListAll returns the presence snapshot in registration order.
func (r *Registry) ListAll() []UserEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]UserEntry, 0, len(r.order))
	for _, name := range r.order {
		if id, ok := r.byName[name]; ok {
			entries = append(entries, UserEntry{Name: id.Name, Role: id.Role})
		}
	}
	return entries
}
