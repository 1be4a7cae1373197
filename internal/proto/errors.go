package proto

import "errors"

// The four failure kinds of the protocol engine. Callers match them with
// errors.Is; concrete errors wrap one of these and add context.
var (
	// ErrConnection is a socket-level failure: closed peer, failed send or
	// receive. Fatal to the affected connection.
	ErrConnection = errors.New("connection error")

	// ErrProtocol means the reply did not match the expected shape, or the
	// peer reported an application-level error. The byte stream may be
	// mid-frame afterwards and should not be trusted without reconnecting.
	ErrProtocol = errors.New("protocol error")

	// ErrNoSuchKey is returned when an operation required an existing key
	// but the store reported absence.
	ErrNoSuchKey = errors.New("no such key")

	// ErrValue means a returned value violates an expected invariant.
	ErrValue = errors.New("value error")
)
