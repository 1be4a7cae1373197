package client

import "fmt"

// Hasher maps a key to a shard index in [0, len(targets)). Implementations
// must be deterministic for a fixed target list: repeated calls for the
// same key must always reach the same server.
type Hasher interface {
	Index(key string, targets []ConnectionTarget) int
}

// shardFor resolves a key to its shard index. With a single connection
// every key maps to it trivially and the hasher is never consulted.
func (c *Client) shardFor(key string) int {
	if len(c.conns) == 1 {
		return 0
	}
	return c.hasher.Index(key, c.targets)
}

func (c *Client) connFor(key string) *conn {
	return c.conns[c.shardFor(key)]
}

// connForKeys resolves a batch of keys that must all live on one shard.
// Keys resolving to different shards are a usage error, never silently
// routed to one of them.
func (c *Client) connForKeys(keys []string) (*conn, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys given", ErrValue)
	}
	shard := c.shardFor(keys[0])
	for _, k := range keys[1:] {
		if c.shardFor(k) != shard {
			return nil, fmt.Errorf("%w: keys resolve to different shards", ErrClusterMode)
		}
	}
	return c.conns[shard], nil
}

// singleConn is for commands that only make sense against one server.
func (c *Client) singleConn() (*conn, error) {
	if len(c.conns) > 1 {
		return nil, ErrClusterMode
	}
	return c.conns[0], nil
}
