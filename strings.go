package client

import (
	"fmt"

	"github.com/redshard/sharded-redis/internal/proto"
)

// Set stores value under key.
func (c *Client) Set(key, value string) error {
	return c.doOK(c.connFor(key), proto.NewCommand("SET", key, value))
}

// Get returns the value stored under key, or nil when the key is absent.
// An absent value is distinct from a present empty one.
func (c *Client) Get(key string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("GET", key))
}

// GetSet stores value and returns the previous value, nil when there was
// none.
func (c *Client) GetSet(key, value string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("GETSET", key, value))
}

// SetNX stores value only if key does not exist yet and reports whether it
// was stored.
func (c *Client) SetNX(key, value string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("SETNX", key, value))
}

// SetEx stores value under key with a time to live in seconds.
func (c *Client) SetEx(key, value string, seconds int64) error {
	return c.doOK(c.connFor(key), proto.NewCommand("SETEX", key).ArgInt(seconds).Arg(value))
}

// Append appends value to the string at key and returns the new length.
func (c *Client) Append(key, value string) (int64, error) {
	n, err := c.doInt(c.connFor(key), proto.NewCommand("APPEND", key, value))
	if err != nil {
		return 0, err
	}
	if n < int64(len(value)) {
		return 0, fmt.Errorf("%w: APPEND answered length %d, shorter than the appended value", ErrProtocol, n)
	}
	return n, nil
}

// Substr returns the substring of the value at key between the inclusive
// offsets start and end (negative offsets count from the end).
func (c *Client) Substr(key string, start, end int64) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("SUBSTR", key).ArgInt(start).ArgInt(end))
}

// Incr increments the integer at key by one and returns the new value.
func (c *Client) Incr(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("INCR", key))
}

// IncrBy increments the integer at key by n and returns the new value.
func (c *Client) IncrBy(key string, n int64) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("INCRBY", key).ArgInt(n))
}

// Decr decrements the integer at key by one and returns the new value.
func (c *Client) Decr(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("DECR", key))
}

// DecrBy decrements the integer at key by n and returns the new value.
func (c *Client) DecrBy(key string, n int64) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("DECRBY", key).ArgInt(n))
}
