package rcon

import "errors"

// Sentinel kinds for live query failures.
var (
	ErrPoolClosed      = errors.New("rcon pool closed")
	ErrUnexpectedReply = errors.New("unexpected rcon reply")
)
