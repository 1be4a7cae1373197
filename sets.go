package client

import (
	"github.com/redshard/sharded-redis/internal/proto"
)

// SAdd adds member to the set at key. Adding a member that is already
// present is an error.
func (c *Client) SAdd(key, member string) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("SADD", key, member))
}

// SRem removes member from the set at key. Removing an absent member is an
// error.
func (c *Client) SRem(key, member string) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("SREM", key, member))
}

// SPop removes and returns a random member, nil when the set is empty.
func (c *Client) SPop(key string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("SPOP", key))
}

// SRandMember returns a random member without removing it, nil when the
// set is empty.
func (c *Client) SRandMember(key string) ([]byte, error) {
	return c.doBulk(c.connFor(key), proto.NewCommand("SRANDMEMBER", key))
}

// SMove moves member from the set at srcKey to the set at dstKey. Both
// keys must resolve to the same shard.
func (c *Client) SMove(srcKey, dstKey, member string) error {
	cn, err := c.connForKeys([]string{srcKey, dstKey})
	if err != nil {
		return err
	}
	return c.doIntOK(cn, proto.NewCommand("SMOVE", srcKey, dstKey, member))
}

// SCard returns the number of members of the set at key.
func (c *Client) SCard(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("SCARD", key))
}

// SIsMember reports whether member is in the set at key.
func (c *Client) SIsMember(key, member string) (bool, error) {
	return c.doBool(c.connFor(key), proto.NewCommand("SISMEMBER", key, member))
}

// SMembers returns every member of the set at key.
func (c *Client) SMembers(key string) ([][]byte, error) {
	return c.doMulti(c.connFor(key), proto.NewCommand("SMEMBERS", key))
}

// SInter returns the intersection of the sets at keys, which must all
// resolve to the same shard.
func (c *Client) SInter(keys ...string) ([][]byte, error) {
	return c.setOp("SINTER", keys)
}

// SInterStore stores the intersection of the sets at keys into dstKey and
// returns its cardinality. All keys incl. dstKey must share a shard.
func (c *Client) SInterStore(dstKey string, keys ...string) (int64, error) {
	return c.setStoreOp("SINTERSTORE", dstKey, keys)
}

// SUnion returns the union of the sets at keys, which must all resolve to
// the same shard.
func (c *Client) SUnion(keys ...string) ([][]byte, error) {
	return c.setOp("SUNION", keys)
}

// SUnionStore stores the union of the sets at keys into dstKey and returns
// its cardinality. All keys incl. dstKey must share a shard.
func (c *Client) SUnionStore(dstKey string, keys ...string) (int64, error) {
	return c.setStoreOp("SUNIONSTORE", dstKey, keys)
}

// SDiff returns the difference of the first set against the rest; the keys
// must all resolve to the same shard.
func (c *Client) SDiff(keys ...string) ([][]byte, error) {
	return c.setOp("SDIFF", keys)
}

// SDiffStore stores the difference into dstKey and returns its
// cardinality. All keys incl. dstKey must share a shard.
func (c *Client) SDiffStore(dstKey string, keys ...string) (int64, error) {
	return c.setStoreOp("SDIFFSTORE", dstKey, keys)
}

func (c *Client) setOp(name string, keys []string) ([][]byte, error) {
	cn, err := c.connForKeys(keys)
	if err != nil {
		return nil, err
	}
	return c.doMulti(cn, proto.NewCommand(name, keys...))
}

func (c *Client) setStoreOp(name, dstKey string, keys []string) (int64, error) {
	cn, err := c.connForKeys(append([]string{dstKey}, keys...))
	if err != nil {
		return 0, err
	}
	return c.doInt(cn, proto.NewCommand(name, dstKey).ArgList(keys))
}
