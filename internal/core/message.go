package core

// Role tags an identity. Only RoleUser exists today; keeping it a named
// string type lets moderator/admin variants arrive without touching callers.
type Role string

// RoleUser is the default role assigned at login.
const RoleUser Role = "user"

// Message is an immutable chat message appended to exactly one channel's history.
type Message struct {
	Author string
	Body   string
	Role   Role
}
