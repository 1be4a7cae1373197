package proto

import (
	"bytes"
	"strconv"
)

// Command accumulates a command name and its arguments and serializes them
// as a multi-bulk request:
//
//	*<argc>\r\n
//	$<len>\r\n<argument-bytes>\r\n   (per argument)
//
// Arguments are binary-safe; they may contain CR, LF or any other byte.
// Building is purely in-memory.
type Command struct {
	args [][]byte
}

// NewCommand starts a request for the named command. The name is the first
// argument on the wire.
func NewCommand(name string, args ...string) *Command {
	c := &Command{args: make([][]byte, 0, len(args)+1)}
	c.Arg(name)
	for _, a := range args {
		c.Arg(a)
	}
	return c
}

func (c *Command) Arg(s string) *Command {
	return c.ArgBytes([]byte(s))
}

func (c *Command) ArgBytes(b []byte) *Command {
	c.args = append(c.args, b)
	return c
}

func (c *Command) ArgInt(n int64) *Command {
	return c.Arg(strconv.FormatInt(n, 10))
}

// ArgFloat appends a score formatted with the shortest representation that
// round-trips through ParseFloat.
func (c *Command) ArgFloat(f float64) *Command {
	return c.Arg(strconv.FormatFloat(f, 'g', -1, 64))
}

// ArgList appends each element of vals as its own argument, in order.
func (c *Command) ArgList(vals []string) *Command {
	for _, v := range vals {
		c.Arg(v)
	}
	return c
}

// Len reports the number of arguments appended so far, command name included.
func (c *Command) Len() int {
	return len(c.args)
}

// Name returns the command name.
func (c *Command) Name() string {
	return string(c.args[0])
}

// Bytes encodes the request into wire form.
func (c *Command) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte('*')
	buf.WriteString(strconv.Itoa(len(c.args)))
	buf.WriteString("\r\n")
	for _, a := range c.args {
		buf.WriteByte('$')
		buf.WriteString(strconv.Itoa(len(a)))
		buf.WriteString("\r\n")
		buf.Write(a)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}
