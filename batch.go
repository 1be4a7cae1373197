package client

import (
	"bytes"
	"fmt"

	"github.com/edwingeng/deque/v2"

	"github.com/redshard/sharded-redis/internal/proto"
)

// Multi-key commands fan out per shard: group the keys by shard index,
// write every shard's request(s), then drain each shard's replies in FIFO
// order. Within one call a connection briefly carries a queue of expected
// replies; outside of it the lock-step rule holds again.

type replyKind int

const (
	expectOK replyKind = iota
	expectIntOK
)

// MGet fetches the values for keys, possibly from several shards, and
// returns them in the caller's key order. Absent keys yield nil entries.
func (c *Client) MGet(keys ...string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no keys given", ErrValue)
	}
	type mgetBatch struct {
		cmd     *proto.Command
		indices []int
	}
	batches := make(map[int]*mgetBatch)
	for i, k := range keys {
		shard := c.shardFor(k)
		b := batches[shard]
		if b == nil {
			b = &mgetBatch{cmd: proto.NewCommand("MGET")}
			batches[shard] = b
		}
		b.cmd.Arg(k)
		b.indices = append(b.indices, i)
	}

	for shard := 0; shard < len(c.conns); shard++ {
		if b, ok := batches[shard]; ok {
			if err := c.conns[shard].send(b.cmd); err != nil {
				return nil, err
			}
		}
	}

	out := make([][]byte, len(keys))
	for shard := 0; shard < len(c.conns); shard++ {
		b, ok := batches[shard]
		if !ok {
			continue
		}
		values, err := c.conns[shard].r.ReadMultiBulk()
		if err != nil {
			return nil, err
		}
		if len(values) != len(b.indices) {
			return nil, fmt.Errorf("%w: MGET answered %d values for %d keys",
				ErrProtocol, len(values), len(b.indices))
		}
		for j, v := range values {
			out[b.indices[j]] = v
		}
	}
	return out, nil
}

// MSet stores the alternating key/value arguments, one MSET per shard.
func (c *Client) MSet(keyValues ...string) error {
	batches, err := c.groupPairs("MSET", keyValues, nil)
	if err != nil {
		return err
	}
	return c.runPairBatches(batches)
}

// MSetEx is MSet followed by an EXPIRE for every key, pipelined per shard
// the way the wire allows: each shard gets its MSET and EXPIREs in one
// write, then the replies are drained in order.
func (c *Client) MSetEx(seconds int64, keyValues ...string) error {
	batches, err := c.groupPairs("MSET", keyValues, func(b *pairBatch, key string) {
		b.extra.Write(proto.NewCommand("EXPIRE", key).ArgInt(seconds).Bytes())
		b.pending.PushFront(expectIntOK)
	})
	if err != nil {
		return err
	}
	return c.runPairBatches(batches)
}

// MSetNX stores the pairs only if none of the keys exist. The server can
// only answer that atomically on one shard, so keys spanning shards are a
// usage error.
func (c *Client) MSetNX(keyValues ...string) (bool, error) {
	if len(keyValues) == 0 || len(keyValues)%2 != 0 {
		return false, fmt.Errorf("%w: MSETNX needs alternating keys and values", ErrValue)
	}
	keys := make([]string, 0, len(keyValues)/2)
	for i := 0; i < len(keyValues); i += 2 {
		keys = append(keys, keyValues[i])
	}
	cn, err := c.connForKeys(keys)
	if err != nil {
		return false, err
	}
	return c.doBool(cn, proto.NewCommand("MSETNX", keyValues...))
}

type pairBatch struct {
	cmd   *proto.Command
	extra bytes.Buffer
	// pending holds the reply shapes to drain, oldest at the back
	// (PushFront to enqueue, PopBack to dequeue).
	pending *deque.Deque[replyKind]
}

func (c *Client) groupPairs(name string, keyValues []string, perKey func(*pairBatch, string)) (map[int]*pairBatch, error) {
	if len(keyValues) == 0 || len(keyValues)%2 != 0 {
		return nil, fmt.Errorf("%w: %s needs alternating keys and values", ErrValue, name)
	}
	batches := make(map[int]*pairBatch)
	for i := 0; i < len(keyValues); i += 2 {
		key, value := keyValues[i], keyValues[i+1]
		shard := c.shardFor(key)
		b := batches[shard]
		if b == nil {
			b = &pairBatch{cmd: proto.NewCommand(name), pending: deque.NewDeque[replyKind]()}
			b.pending.PushFront(expectOK)
			batches[shard] = b
		}
		b.cmd.Arg(key).Arg(value)
		if perKey != nil {
			perKey(b, key)
		}
	}
	return batches, nil
}

func (c *Client) runPairBatches(batches map[int]*pairBatch) error {
	for shard := 0; shard < len(c.conns); shard++ {
		b, ok := batches[shard]
		if !ok {
			continue
		}
		buf := append(b.cmd.Bytes(), b.extra.Bytes()...)
		if err := c.conns[shard].sendRaw(buf); err != nil {
			return err
		}
	}
	for shard := 0; shard < len(c.conns); shard++ {
		b, ok := batches[shard]
		if !ok {
			continue
		}
		r := c.conns[shard].r
		for b.pending.Len() > 0 {
			var err error
			switch b.pending.PopBack() {
			case expectOK:
				err = r.ReadOK()
			case expectIntOK:
				err = r.ReadIntOK()
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
