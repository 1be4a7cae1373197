package client

import (
	"fmt"
	"strconv"

	"github.com/redshard/sharded-redis/internal/proto"
)

// RangeFlag modifies score-range queries.
type RangeFlag int

const (
	ExcludeMin RangeFlag = 1 << iota
	ExcludeMax
)

// Aggregate selects how ZUnionStore/ZInterStore combine scores.
type Aggregate string

const (
	AggregateSum Aggregate = "SUM"
	AggregateMin Aggregate = "MIN"
	AggregateMax Aggregate = "MAX"
)

// ZAdd adds member with the given score to the sorted set at key. Adding a
// member that is already present is an error.
func (c *Client) ZAdd(key string, score float64, member string) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("ZADD", key).ArgFloat(score).Arg(member))
}

// ZRem removes member from the sorted set at key. Removing an absent
// member is an error.
func (c *Client) ZRem(key, member string) error {
	return c.doIntOK(c.connFor(key), proto.NewCommand("ZREM", key, member))
}

// ZIncrBy increments member's score by increment and returns the new score.
func (c *Client) ZIncrBy(key, member string, increment float64) (float64, error) {
	cmd := proto.NewCommand("ZINCRBY", key).ArgFloat(increment).Arg(member)
	return c.scoreReply(c.connFor(key), cmd)
}

// ZScore returns member's score.
func (c *Client) ZScore(key, member string) (float64, error) {
	return c.scoreReply(c.connFor(key), proto.NewCommand("ZSCORE", key, member))
}

// ZRank returns member's 0-based rank by ascending score.
func (c *Client) ZRank(key, member string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("ZRANK", key, member))
}

// ZRevRank returns member's 0-based rank by descending score.
func (c *Client) ZRevRank(key, member string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("ZREVRANK", key, member))
}

// ZRangeByScore returns the members with scores between min and max.
// flags may exclude either bound; a positive count (or offset) applies a
// LIMIT clause.
func (c *Client) ZRangeByScore(key string, min, max float64, offset, count int64, flags RangeFlag) ([][]byte, error) {
	minArg := strconv.FormatFloat(min, 'g', -1, 64)
	maxArg := strconv.FormatFloat(max, 'g', -1, 64)
	if flags&ExcludeMin != 0 {
		minArg = "(" + minArg
	}
	if flags&ExcludeMax != 0 {
		maxArg = "(" + maxArg
	}
	cmd := proto.NewCommand("ZRANGEBYSCORE", key, minArg, maxArg)
	if count > 0 || offset > 0 {
		cmd.Arg("LIMIT").ArgInt(offset).ArgInt(count)
	}
	return c.doMulti(c.connFor(key), cmd)
}

// ZCount returns the number of members with scores between min and max.
func (c *Client) ZCount(key string, min, max float64) (int64, error) {
	cmd := proto.NewCommand("ZCOUNT", key).ArgFloat(min).ArgFloat(max)
	return c.doInt(c.connFor(key), cmd)
}

// ZCard returns the number of members of the sorted set at key.
func (c *Client) ZCard(key string) (int64, error) {
	return c.doInt(c.connFor(key), proto.NewCommand("ZCARD", key))
}

// ZRemRangeByRank removes the members between the inclusive ranks start
// and end and returns the number removed.
func (c *Client) ZRemRangeByRank(key string, start, end int64) (int64, error) {
	cmd := proto.NewCommand("ZREMRANGEBYRANK", key).ArgInt(start).ArgInt(end)
	return c.doInt(c.connFor(key), cmd)
}

// ZRemRangeByScore removes the members with scores between min and max and
// returns the number removed.
func (c *Client) ZRemRangeByScore(key string, min, max float64) (int64, error) {
	cmd := proto.NewCommand("ZREMRANGEBYSCORE", key).ArgFloat(min).ArgFloat(max)
	return c.doInt(c.connFor(key), cmd)
}

// ZUnionStore stores the union of the sorted sets at keys into dstKey and
// returns its cardinality. weights, when given, must match keys in length.
// All keys incl. dstKey must share a shard.
func (c *Client) ZUnionStore(dstKey string, keys []string, weights []float64, aggregate Aggregate) (int64, error) {
	return c.zStoreOp("ZUNIONSTORE", dstKey, keys, weights, aggregate)
}

// ZInterStore is ZUnionStore for the intersection.
func (c *Client) ZInterStore(dstKey string, keys []string, weights []float64, aggregate Aggregate) (int64, error) {
	return c.zStoreOp("ZINTERSTORE", dstKey, keys, weights, aggregate)
}

func (c *Client) zStoreOp(name, dstKey string, keys []string, weights []float64, aggregate Aggregate) (int64, error) {
	cn, err := c.connForKeys(append([]string{dstKey}, keys...))
	if err != nil {
		return 0, err
	}
	if len(weights) > 0 && len(weights) != len(keys) {
		return 0, fmt.Errorf("%w: %d weights for %d keys", ErrValue, len(weights), len(keys))
	}
	cmd := proto.NewCommand(name, dstKey).ArgInt(int64(len(keys))).ArgList(keys)
	if len(weights) > 0 {
		cmd.Arg("WEIGHTS")
		for _, w := range weights {
			cmd.ArgFloat(w)
		}
	}
	if aggregate != "" {
		cmd.Arg("AGGREGATE").Arg(string(aggregate))
	}
	return c.doInt(cn, cmd)
}

// scoreReply decodes a bulk reply that carries a score.
func (c *Client) scoreReply(cn *conn, cmd *proto.Command) (float64, error) {
	b, err := c.doBulk(cn, cmd)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, fmt.Errorf("%w", ErrNoSuchKey)
	}
	score, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: score %q is not a number", ErrValue, b)
	}
	return score, nil
}
