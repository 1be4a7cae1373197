package proto

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandWireShape(t *testing.T) {
	cmd := NewCommand("SET", "foo", "bar")
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n", string(cmd.Bytes()))
}

func TestCommandBinarySafeArguments(t *testing.T) {
	// Arguments may contain the frame's own delimiters.
	payload := "a\r\nb\x00c*$"
	cmd := NewCommand("SET", "k").Arg(payload)
	want := "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$" + strconv.Itoa(len(payload)) + "\r\n" + payload + "\r\n"
	assert.Equal(t, want, string(cmd.Bytes()))
}

func TestCommandEmptyArgument(t *testing.T) {
	cmd := NewCommand("SET", "k", "")
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$0\r\n\r\n", string(cmd.Bytes()))
}

func TestCommandScalarFormatting(t *testing.T) {
	cmd := NewCommand("ZADD", "k").ArgFloat(1.5).ArgInt(-42)
	assert.Equal(t, "*4\r\n$4\r\nZADD\r\n$1\r\nk\r\n$3\r\n1.5\r\n$3\r\n-42\r\n", string(cmd.Bytes()))
}

func TestCommandFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 1.0 / 3.0, -2.5e-17, 3.141592653589793, 1e21} {
		cmd := NewCommand("ZADD", "k").ArgFloat(f)
		// The score is the last argument on the wire.
		var vals [][]byte
		r := NewReader(bytesReader(cmd.Bytes()))
		vals, err := r.ReadMultiBulk()
		assert.NoError(t, err)
		back, err := strconv.ParseFloat(string(vals[len(vals)-1]), 64)
		assert.NoError(t, err)
		assert.Equal(t, f, back)
	}
}

func TestCommandArgList(t *testing.T) {
	cmd := NewCommand("MGET").ArgList([]string{"a", "b", "c"})
	assert.Equal(t, 4, cmd.Len())
	assert.Equal(t, "MGET", cmd.Name())
	assert.Equal(t, "*4\r\n$4\r\nMGET\r\n$1\r\na\r\n$1\r\nb\r\n$1\r\nc\r\n", string(cmd.Bytes()))
}

// Round-trip: a request is itself a multi-bulk frame, so decoding what the
// encoder produced must reproduce the command name and arguments
// byte-for-byte.
func TestCommandRoundTrip(t *testing.T) {
	args := []string{"k\r\n1", "", "\x00\xff binary $*", "plain"}
	cmd := NewCommand("MSET", args...)

	r := NewReader(bytesReader(cmd.Bytes()))
	decoded, err := r.ReadMultiBulk()
	assert.NoError(t, err)
	assert.Len(t, decoded, len(args)+1)
	assert.Equal(t, "MSET", string(decoded[0]))
	for i, a := range args {
		assert.Equal(t, []byte(a), decoded[i+1])
	}
}
