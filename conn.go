package client

import (
	"fmt"
	"net"

	"github.com/redshard/sharded-redis/internal/proto"
)

// ConnectionTarget identifies one server endpoint and the logical database
// selected on it at dial time. Immutable once the connection is established.
type ConnectionTarget struct {
	Address string
	Port    int
	DB      int
}

func (t ConnectionTarget) addr() string {
	return fmt.Sprintf("%s:%d", t.Address, t.Port)
}

// conn is one live connection, owned exclusively by the Client that dialed
// it and closed exactly once at Client teardown. Used in strict
// request/reply lock-step: a request is fully written before its reply is
// read, and no second request goes out until the reply is fully consumed.
type conn struct {
	target ConnectionTarget
	sock   net.Conn
	r      *proto.Reader
}

func dialTarget(t ConnectionTarget) (*conn, error) {
	sock, err := net.Dial("tcp", t.addr())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", ErrConnection, t.addr(), err)
	}
	if tc, ok := sock.(*net.TCPConn); ok {
		tc.SetNoDelay(true)
	}
	c := &conn{target: t, sock: sock, r: proto.NewReader(sock)}
	if err := c.send(proto.NewCommand("SELECT").ArgInt(int64(t.DB))); err != nil {
		sock.Close()
		return nil, err
	}
	if err := c.r.ReadOK(); err != nil {
		sock.Close()
		return nil, err
	}
	return c, nil
}

func (c *conn) send(cmd *proto.Command) error {
	return c.sendRaw(cmd.Bytes())
}

// sendRaw writes pre-encoded request bytes. Used directly when a batch puts
// several requests on the wire before draining their replies.
func (c *conn) sendRaw(b []byte) error {
	if _, err := c.sock.Write(b); err != nil {
		return fmt.Errorf("%w: send to %s failed: %v", ErrConnection, c.target.addr(), err)
	}
	return nil
}

func (c *conn) close() {
	c.sock.Close()
}
