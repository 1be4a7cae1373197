package client

import (
	"errors"

	"github.com/redshard/sharded-redis/internal/proto"
)

// Failure kinds raised by the protocol engine, re-exported so callers can
// match them without importing internal packages.
var (
	ErrConnection = proto.ErrConnection
	ErrProtocol   = proto.ErrProtocol
	ErrNoSuchKey  = proto.ErrNoSuchKey
	ErrValue      = proto.ErrValue
)

// ErrClusterMode is returned when an operation cannot be expressed against
// more than one shard: either the command itself is single-connection only,
// or a multi-key operation resolved its keys to different shards.
var ErrClusterMode = errors.New("not available in cluster mode")
