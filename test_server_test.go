package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeShard is an in-process server speaking just enough of the wire
// format for tests: it decodes multi-bulk requests and answers each one
// from a handler. Returning nil from the handler closes the connection,
// which is how SHUTDOWN behaves.
type fakeShard struct {
	t       *testing.T
	ln      net.Listener
	handler func(args []string) []byte

	mu       sync.Mutex
	commands [][]string
	sessions []net.Conn
}

func newFakeShard(t *testing.T, handler func(args []string) []byte) *fakeShard {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeShard{t: t, ln: ln, handler: handler}
	t.Cleanup(s.close)
	go s.serve()
	return s
}

func (s *fakeShard) target() ConnectionTarget {
	addr := s.ln.Addr().(*net.TCPAddr)
	return ConnectionTarget{Address: "127.0.0.1", Port: addr.Port}
}

// received returns every decoded request so far, in arrival order.
func (s *fakeShard) received() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.commands))
	copy(out, s.commands)
	return out
}

func (s *fakeShard) close() {
	s.ln.Close()
	s.mu.Lock()
	for _, c := range s.sessions {
		c.Close()
	}
	s.mu.Unlock()
}

func (s *fakeShard) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.sessions = append(s.sessions, conn)
		s.mu.Unlock()
		go s.session(conn)
	}
}

func (s *fakeShard) session(conn net.Conn) {
	defer conn.Close()
	br := bufio.NewReader(conn)
	for {
		args, err := readRequest(br)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.commands = append(s.commands, args)
		s.mu.Unlock()
		reply := s.handler(args)
		if reply == nil {
			return
		}
		if _, err := conn.Write(reply); err != nil {
			return
		}
	}
}

func readRequest(br *bufio.Reader) ([]string, error) {
	head, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	head = strings.TrimRight(head, "\r\n")
	if !strings.HasPrefix(head, "*") {
		return nil, fmt.Errorf("bad request header %q", head)
	}
	argc, err := strconv.Atoi(head[1:])
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, argc)
	for i := 0; i < argc; i++ {
		sizeLine, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeLine = strings.TrimRight(sizeLine, "\r\n")
		if !strings.HasPrefix(sizeLine, "$") {
			return nil, fmt.Errorf("bad argument header %q", sizeLine)
		}
		size, err := strconv.Atoi(sizeLine[1:])
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

// withSelect answers the SELECT issued at dial time and hands everything
// else to h.
func withSelect(h func(args []string) []byte) func(args []string) []byte {
	return func(args []string) []byte {
		if strings.EqualFold(args[0], "SELECT") {
			return statusReply("OK")
		}
		return h(args)
	}
}

func statusReply(s string) []byte {
	return []byte("+" + s + "\r\n")
}

func errorReply(msg string) []byte {
	return []byte("-ERR " + msg + "\r\n")
}

func intReply(n int64) []byte {
	return []byte(":" + strconv.FormatInt(n, 10) + "\r\n")
}

func bulkReply(s string) []byte {
	return []byte("$" + strconv.Itoa(len(s)) + "\r\n" + s + "\r\n")
}

func nilBulkReply() []byte {
	return []byte("$-1\r\n")
}

func multiBulkReply(values ...string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "*%d\r\n", len(values))
	for _, v := range values {
		b.Write(bulkReply(v))
	}
	return []byte(b.String())
}
