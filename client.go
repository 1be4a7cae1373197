// Package client is a client for the Redis wire protocol with optional
// manual sharding: it holds one blocking TCP connection per configured
// server and routes each key to a connection through a pluggable hash
// strategy. Multi-key commands are rejected when their keys would span
// shards; a small set of admin commands broadcast to every connection or
// pick one at random instead of routing by key.
//
// A Client is not safe for concurrent use. Each call runs a full
// request/reply exchange on one connection before returning.
package client

import (
	"errors"
	"fmt"

	"github.com/redshard/sharded-redis/internal/proto"
)

// Client owns the fixed set of connections established at construction.
// The set never grows or shrinks; Close tears every connection down.
type Client struct {
	targets []ConnectionTarget
	conns   []*conn
	hasher  Hasher
}

// SingleTargetClient connects to exactly one server.
func SingleTargetClient(target ConnectionTarget) (*Client, error) {
	return ShardedClient(target)
}

// ShardedClient connects to every target eagerly, in order, using the
// default modulo hash for key routing. Construction is atomic: if any dial
// or database selection fails, connections opened so far are closed and no
// client is returned.
func ShardedClient(targets ...ConnectionTarget) (*Client, error) {
	return ShardedClientWith(ModHash{}, targets...)
}

// ShardedClientWith is ShardedClient with a caller-supplied hash strategy.
func ShardedClientWith(hasher Hasher, targets ...ConnectionTarget) (*Client, error) {
	if len(targets) == 0 {
		return nil, errors.New("no connection targets given")
	}
	c := &Client{targets: targets, hasher: hasher}
	for _, t := range targets {
		cn, err := dialTarget(t)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.conns = append(c.conns, cn)
	}
	return c, nil
}

// Close closes every connection. The client must not be used afterwards.
func (c *Client) Close() {
	for _, cn := range c.conns {
		cn.close()
	}
	c.conns = nil
}

// Connections reports the configured targets in shard order.
func (c *Client) Connections() []ConnectionTarget {
	return c.targets
}

// ShardCount reports the number of live connections.
func (c *Client) ShardCount() int {
	return len(c.conns)
}

// Do sends an arbitrary command and decodes whatever reply comes back.
// When the command has at least one argument the first one is treated as
// the key for routing; bare commands go to the first connection. Meant for
// generic consumers like the CLI; the typed methods are preferred.
func (c *Client) Do(args ...string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrValue)
	}
	cn := c.conns[0]
	if len(args) > 1 {
		cn = c.connFor(args[1])
	}
	if err := cn.send(proto.NewCommand(args[0], args[1:]...)); err != nil {
		return nil, err
	}
	return cn.r.ReadAny()
}

// Exchange helpers shared by the command surface: write one request, decode
// one reply of the expected shape.

func (c *Client) doOK(cn *conn, cmd *proto.Command) error {
	if err := cn.send(cmd); err != nil {
		return err
	}
	return cn.r.ReadOK()
}

func (c *Client) doStatus(cn *conn, cmd *proto.Command) (string, error) {
	if err := cn.send(cmd); err != nil {
		return "", err
	}
	return cn.r.ReadStatus()
}

func (c *Client) doInt(cn *conn, cmd *proto.Command) (int64, error) {
	if err := cn.send(cmd); err != nil {
		return 0, err
	}
	return cn.r.ReadInt()
}

func (c *Client) doIntOK(cn *conn, cmd *proto.Command) error {
	if err := cn.send(cmd); err != nil {
		return err
	}
	return cn.r.ReadIntOK()
}

func (c *Client) doBool(cn *conn, cmd *proto.Command) (bool, error) {
	n, err := c.doInt(cn, cmd)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (c *Client) doBulk(cn *conn, cmd *proto.Command) ([]byte, error) {
	if err := cn.send(cmd); err != nil {
		return nil, err
	}
	return cn.r.ReadBulk()
}

func (c *Client) doMulti(cn *conn, cmd *proto.Command) ([][]byte, error) {
	if err := cn.send(cmd); err != nil {
		return nil, err
	}
	return cn.r.ReadMultiBulk()
}
