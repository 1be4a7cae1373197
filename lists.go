package client

import (
	"fmt"

	"github.com/redshard/sharded-redis/internal/proto"
)

// RPush appends value to the list at key and returns the new length.
func (c *Client) RPush(key, value string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("RPUSH", key, value))
}

// LPush prepends value to the list at key and returns the new length.
func (c *Client) LPush(key, value string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("LPUSH", key, value))
}

// LLen returns the length of the list at key.
func (c *Client) LLen(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("LLEN", key))
}

// LRange returns the elements between the inclusive offsets start and end;
// 0, -1 selects the whole list.
func (c *Client) LRange(key string, start, end int64) ([][]byte, error) {
	return c.doMulti(c.connFor(key), proto.NewCommand("LRANGE", key).ArgInt(start).ArgInt(end))
}

// GetList returns the whole list at key.
func (c *Client) GetList(key string) ([][]byte, error) {
	return c.LRange(key, 0, -1)
}

// LTrim trims the list at key to the inclusive offsets start and end.
func (c *Client) LTrim(key string, start, end int64) error {
	return c.doOK(c.connFor(key), proto.NewCommand("LTRIM", key).ArgInt(start).ArgInt(end))
}

// LIndex returns the element at index, nil when the index is out of range.
func (c *Client) LIndex(key string, index int64) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("LINDEX", key).ArgInt(index))
}

// LSet overwrites the element at index.
func (c *Client) LSet(key string, index int64, value string) error {
	return c.doOK(c.connFor(key), proto.NewCommand("LSET", key).ArgInt(index).Arg(value))
}

// LRem removes up to count occurrences of value from the list at key and
// returns the number removed. A negative count removes from the tail.
func (c *Client) LRem(key string, count int64, value string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("LREM", key).ArgInt(count).Arg(value))
}

// LRemExact is LRem that insists on removing exactly count occurrences.
func (c *Client) LRemExact(key string, count int64, value string) error {
	removed, err := c.LRem(key, count, value)
	if err != nil {
		return err
	}
	if removed != count {
		return fmt.Errorf("%w: removed %d of %d list elements", ErrValue, removed, count)
	}
	return nil
}

// LPop pops the head of the list at key, nil when the list is empty.
func (c *Client) LPop(key string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("LPOP", key))
}

// RPop pops the tail of the list at key, nil when the list is empty.
func (c *Client) RPop(key string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("RPOP", key))
}

// BLPop blocks until an element can be popped from the head of one of the
// listed keys, returning the key it came from and the value. All keys must
// resolve to the same shard. The timeout is server-side, in seconds, with
// 0 meaning forever; an expired timeout surfaces as ErrNoSuchKey.
func (c *Client) BLPop(timeout int64, keys ...string) (string, []byte, error) {
	return c.blockingPop("BLPOP", timeout, keys)
}

// BRPop is BLPop popping from the tail.
func (c *Client) BRPop(timeout int64, keys ...string) (string, []byte, error) {
	return c.blockingPop("BRPOP", timeout, keys)
}

func (c *Client) blockingPop(name string, timeout int64, keys []string) (string, []byte, error) {
	cn, err := c.connForKeys(keys)
	if err != nil {
		return "", nil, err
	}
	cmd := proto.NewCommand(name, keys...).ArgInt(timeout)
	values, err := c.doMulti(cn, cmd)
	if err != nil {
		return "", nil, err
	}
	if len(values) != 2 {
		return "", nil, fmt.Errorf("%w: %s answered %d elements, expected key and value",
			ErrProtocol, name, len(values))
	}
	return string(values[0]), values[1], nil
}
