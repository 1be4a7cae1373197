package client

import (
	"errors"
	"fmt"

	"github.com/redshard/sharded-redis/internal/proto"
)

// Auth authenticates the connection. Single server only.
func (c *Client) Auth(password string) error {
	cn, err := c.singleConn()
	if err != nil {
		return err
	}
	return c.doOK(cn, proto.NewCommand("AUTH", password))
}

// Select switches the logical database. Single server only; in cluster
// mode the database index is fixed per target at construction.
func (c *Client) Select(db int64) error {
	cn, err := c.singleConn()
	if err != nil {
		return err
	}
	return c.doOK(cn, proto.NewCommand("SELECT").ArgInt(db))
}

// Ping checks every shard.
func (c *Client) Ping() error {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand("PING")); err != nil {
			return err
		}
	}
	for _, cn := range c.conns {
		status, err := cn.r.ReadStatus()
		if err != nil {
			return err
		}
		if status != "PONG" {
			return fmt.Errorf("%w: unexpected PING response %q", ErrProtocol, status)
		}
	}
	return nil
}

// DBSize returns the number of keys in the selected database, summed over
// all shards.
func (c *Client) DBSize() (int64, error) {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand("DBSIZE")); err != nil {
			return 0, err
		}
	}
	var total int64
	for _, cn := range c.conns {
		n, err := cn.r.ReadInt()
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// DBSizeShard returns the number of keys on one shard.
func (c *Client) DBSizeShard(shard int) (int64, error) {
	if err := shardRangeCheck(c, shard); err != nil {
		return 0, err
	}
	return c.doInt(c.conns[shard], proto.NewCommand("DBSIZE"))
}

// FlushDB clears the selected database on every shard.
func (c *Client) FlushDB() error {
	return c.broadcastOK("FLUSHDB")
}

// FlushDBShard clears the selected database on one shard.
func (c *Client) FlushDBShard(shard int) error {
	if err := shardRangeCheck(c, shard); err != nil {
		return err
	}
	return c.doOK(c.conns[shard], proto.NewCommand("FLUSHDB"))
}

// FlushAll clears every database. Single server only; wiping all databases
// of all shards in one call is too blunt to offer in cluster mode.
func (c *Client) FlushAll() error {
	cn, err := c.singleConn()
	if err != nil {
		return err
	}
	return c.doOK(cn, proto.NewCommand("FLUSHALL"))
}

// Save snapshots every shard synchronously.
func (c *Client) Save() error {
	return c.broadcastOK("SAVE")
}

// BGSave starts a background snapshot on every shard.
func (c *Client) BGSave() error {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand("BGSAVE")); err != nil {
			return err
		}
	}
	for _, cn := range c.conns {
		if err := readBGSaveReply(cn); err != nil {
			return err
		}
	}
	return nil
}

// BGSaveShard starts a background snapshot on one shard.
func (c *Client) BGSaveShard(shard int) error {
	if err := shardRangeCheck(c, shard); err != nil {
		return err
	}
	cn := c.conns[shard]
	if err := cn.send(proto.NewCommand("BGSAVE")); err != nil {
		return err
	}
	return readBGSaveReply(cn)
}

func readBGSaveReply(cn *conn) error {
	status, err := cn.r.ReadStatus()
	if err != nil {
		return err
	}
	if status != proto.StatusOK && status != "Background saving started" {
		return fmt.Errorf("%w: unexpected BGSAVE response %q", ErrProtocol, status)
	}
	return nil
}

// LastSave returns the unix time of the least recent successful save over
// all shards, i.e. the point up to which every shard is durable.
func (c *Client) LastSave() (int64, error) {
	var earliest int64
	for _, cn := range c.conns {
		n, err := c.doInt(cn, proto.NewCommand("LASTSAVE"))
		if err != nil {
			return 0, err
		}
		if earliest == 0 || n < earliest {
			earliest = n
		}
	}
	return earliest, nil
}

// LastSaveShard returns the unix time of the last successful save on one
// shard.
func (c *Client) LastSaveShard(shard int) (int64, error) {
	if err := shardRangeCheck(c, shard); err != nil {
		return 0, err
	}
	return c.doInt(c.conns[shard], proto.NewCommand("LASTSAVE"))
}

// Shutdown asks every shard to save and exit. The server closes the
// connection before acknowledging, so a connection error while reading the
// reply is the expected success signal and suppressed here.
func (c *Client) Shutdown() error {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand("SHUTDOWN")); err != nil {
			return err
		}
		if err := cn.r.ReadOK(); err != nil && !errors.Is(err, ErrConnection) {
			return err
		}
	}
	return nil
}

func shardRangeCheck(c *Client, shard int) error {
	if shard < 0 || shard >= len(c.conns) {
		return fmt.Errorf("%w: shard %d out of range", ErrValue, shard)
	}
	return nil
}

func (c *Client) broadcastOK(name string) error {
	for _, cn := range c.conns {
		if err := cn.send(proto.NewCommand(name)); err != nil {
			return err
		}
	}
	for _, cn := range c.conns {
		if err := cn.r.ReadOK(); err != nil {
			return err
		}
	}
	return nil
}
