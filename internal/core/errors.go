package core

import "errors"

var (
	// ErrNameTaken is returned when registering a display name that is already live.
	ErrNameTaken = errors.New("name already taken")
	// ErrUnknownIdentity is returned when binding a connection to a name
	// that is not in the registry.
	ErrUnknownIdentity = errors.New("unknown identity")
)
