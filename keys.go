package client

import (
	"golang.org/x/exp/rand"

	"github.com/redshard/sharded-redis/internal/proto"
)

// KeyType names the datatype stored under a key.
type KeyType string

const (
	TypeNone    KeyType = "none"
	TypeString  KeyType = "string"
	TypeList    KeyType = "list"
	TypeSet     KeyType = "set"
	TypeZSet    KeyType = "zset"
	TypeHash    KeyType = "hash"
	TypeUnknown KeyType = "unknown"
)

// Exists reports whether key exists.
func (c *Client) Exists(key string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("EXISTS", key))
}

// Del removes key. Deleting a key that does not exist is an error.
func (c *Client) Del(key string) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("DEL", key))
}

// Type reports the datatype of the value stored under key.
func (c *Client) Type(key string) (KeyType, error) {
	status, err := c.doStatus(c.connFor(key), proto.NewCommand("TYPE", key))
	if err != nil {
		return TypeUnknown, err
	}
	switch t := KeyType(status); t {
	case TypeNone, TypeString, TypeList, TypeSet, TypeZSet, TypeHash:
		return t, nil
	}
	return TypeUnknown, nil
}

// Keys returns every key matching pattern, aggregated across all shards.
// Any unreachable shard fails the whole call.
func (c *Client) Keys(pattern string) ([]string, error) {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand("KEYS", pattern)); err != nil {
			return nil, err
		}
	}
	var out []string
	for _, cn := range c.conns {
		values, err := cn.r.ReadMultiBulk()
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			out = append(out, string(v))
		}
	}
	return out, nil
}

// RandomKey returns a random key from a randomly chosen shard, or nil when
// that shard is empty.
func (c *Client) RandomKey() ([]byte, error) {
	cn := c.conns[0]
	if len(c.conns) > 1 {
		cn = c.conns[rand.Intn(len(c.conns))]
	}
	if err := cn.send(proto.NewCommand("RANDOMKEY")); err != nil {
		return nil, err
	}
	return cn.r.ReadBulk()
}

// Rename renames oldName to newName. Both names must resolve to the same
// shard.
func (c *Client) Rename(oldName, newName string) error {
	cn, err := c.connForKeys([]string{oldName, newName})
	if err != nil {
		return err
	}
	return c.doOK(cn, proto.NewCommand("RENAME", oldName, newName))
}

// RenameNX renames oldName to newName unless newName already exists, and
// reports whether the rename happened. Both names must resolve to the same
// shard.
func (c *Client) RenameNX(oldName, newName string) (bool, error) {
	cn, err := c.connForKeys([]string{oldName, newName})
	if err != nil {
		return false, err
	}
	return c.doBool(cn, proto.NewCommand("RENAMENX", oldName, newName))
}

// Expire sets a time to live in seconds on key.
func (c *Client) Expire(key string, seconds int64) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("EXPIRE", key).ArgInt(seconds))
}

// TTL returns the remaining time to live of key in seconds, negative when
// the key has no expiry or does not exist.
func (c *Client) TTL(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("TTL", key))
}

// Move moves key into another database on its shard.
func (c *Client) Move(key string, db int64) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("MOVE", key).ArgInt(db))
}

// Sort options; zero value sorts numerically ascending with no limit.
type SortOptions struct {
	By         string
	LimitStart int64
	LimitCount int64
	Get        []string
	Desc       bool
	Alpha      bool
}

// Sort returns the sorted elements of the list, set or sorted set at key.
func (c *Client) Sort(key string, opts SortOptions) ([][]byte, error) {
	cmd := proto.NewCommand("SORT", key)
	if opts.By != "" {
		cmd.Arg("BY").Arg(opts.By)
	}
	if opts.LimitStart > 0 || opts.LimitCount > 0 {
		cmd.Arg("LIMIT").ArgInt(opts.LimitStart).ArgInt(opts.LimitCount)
	}
	for _, pattern := range opts.Get {
		cmd.Arg("GET").Arg(pattern)
	}
	if opts.Desc {
		cmd.Arg("DESC")
	} else {
		cmd.Arg("ASC")
	}
	if opts.Alpha {
		cmd.Arg("ALPHA")
	}
	return c.doMulti(c.connFor(key), cmd)
}
