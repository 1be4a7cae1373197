package client

import (
	"fmt"

	"github.com/redshard/sharded-redis/internal/proto"
)

// HSet stores value under field in the hash at key and reports whether the
// field was newly created (false means an existing field was overwritten).
func (c *Client) HSet(key, field, value string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("HSET", key, field, value))
}

// HGet returns the value under field, nil when the field is absent.
func (c *Client) HGet(key, field string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("HGET", key, field))
}

// HSetNX stores value under field only if the field does not exist yet and
// reports whether it was stored.
func (c *Client) HSetNX(key, field, value string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("HSETNX", key, field, value))
}

// HMSet stores the alternating field/value arguments in the hash at key.
func (c *Client) HMSet(key string, fieldValues ...string) error {
	if len(fieldValues) == 0 || len(fieldValues)%2 != 0 {
		return fmt.Errorf("%w: HMSET needs alternating fields and values", ErrValue)
	}
	return c.doOK(c.connFor(key), proto.NewCommand("HMSET", key).ArgList(fieldValues))
}

// HMGet returns the values under fields, in field order, nil entries for
// absent fields.
func (c *Client) HMGet(key string, fields ...string) ([][]byte, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields given", ErrValue)
	}
	return c.doMulti(c.connFor(key), proto.NewCommand("HMGET", key).ArgList(fields))
}

// HIncrBy increments the integer under field by n and returns the new
// value.
func (c *Client) HIncrBy(key, field string, n int64) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("HINCRBY", key, field).ArgInt(n))
}

// HExists reports whether field exists in the hash at key.
func (c *Client) HExists(key, field string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("HEXISTS", key, field))
}

// HDel removes field from the hash at key and reports whether it existed.
func (c *Client) HDel(key, field string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("HDEL", key, field))
}

// HLen returns the number of fields in the hash at key.
func (c *Client) HLen(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("HLEN", key))
}

// HKeys returns the field names of the hash at key.
func (c *Client) HKeys(key string) ([]string, error) {
	values, err := c.doMulti(c.connFor(key), proto.NewCommand("HKEYS", key))
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = string(v)
	}
	return fields, nil
}

// HVals returns the values of the hash at key.
func (c *Client) HVals(key string) ([][]byte, error) {
	return c.doMulti(c.connFor(key), proto.NewCommand("HVALS", key))
}

// HGetAll returns every field and value of the hash at key.
func (c *Client) HGetAll(key string) (map[string]string, error) {
	values, err := c.doMulti(c.connFor(key), proto.NewCommand("HGETALL", key))
	if err != nil {
		return nil, err
	}
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%w: HGETALL answered %d elements", ErrProtocol, len(values))
	}
	out := make(map[string]string, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		out[string(values[i])] = string(values[i+1])
	}
	return out, nil
}
