package proto

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// chunkReader hands out the stream in caller-chosen pieces, the way a
// socket delivers bytes in arbitrary segments.
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n == len(r.chunks[0]) {
		r.chunks = r.chunks[1:]
	} else {
		r.chunks[0] = r.chunks[0][n:]
	}
	return n, nil
}

func TestReadLineAcrossChunks(t *testing.T) {
	// Two lines split at an arbitrary point; the first read must stop at
	// the delimiter and leave the second line intact for the next read.
	r := NewReader(&chunkReader{chunks: [][]byte{[]byte("hel"), []byte("lo\r\nworld\r\n")}})

	line, err := r.ReadLine(MaxLineSize)
	assert.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = r.ReadLine(MaxLineSize)
	assert.NoError(t, err)
	assert.Equal(t, "world", line)
}

func TestReadLineBareLF(t *testing.T) {
	r := NewReader(strings.NewReader("hello\nnext\r\n"))
	line, err := r.ReadLine(MaxLineSize)
	assert.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestReadLineOverrunReturnsEmpty(t *testing.T) {
	r := NewReader(strings.NewReader(strings.Repeat("a", 3000) + "\r\n"))
	line, err := r.ReadLine(MaxLineSize)
	assert.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestReadLinePeerClose(t *testing.T) {
	r := NewReader(strings.NewReader("no delimiter"))
	_, err := r.ReadLine(MaxLineSize)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestReadExact(t *testing.T) {
	r := NewReader(&chunkReader{chunks: [][]byte{[]byte("ab"), []byte("cde")}})
	b, err := r.ReadExact(4)
	assert.NoError(t, err)
	assert.Equal(t, []byte("abcd"), b)

	_, err = r.ReadExact(2)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestReadStatus(t *testing.T) {
	r := NewReader(strings.NewReader("+OK\r\n"))
	status, err := r.ReadStatus()
	assert.NoError(t, err)
	assert.Equal(t, "OK", status)
}

func TestReadStatusErrorMarker(t *testing.T) {
	r := NewReader(strings.NewReader("-ERR unknown command 'FOO'\r\n"))
	_, err := r.ReadStatus()
	assert.ErrorIs(t, err, ErrProtocol)
	assert.Contains(t, err.Error(), "unknown command 'FOO'")
}

func TestReadStatusEmptyLine(t *testing.T) {
	r := NewReader(strings.NewReader("\r\n"))
	_, err := r.ReadStatus()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReadOK(t *testing.T) {
	r := NewReader(strings.NewReader("+OK\r\n+QUEUED\r\n"))
	assert.NoError(t, r.ReadOK())
	assert.ErrorIs(t, r.ReadOK(), ErrProtocol)
}

func TestReadInt(t *testing.T) {
	r := NewReader(strings.NewReader(":42\r\n:-7\r\n"))
	n, err := r.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)
	n, err = r.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(-7), n)
}

func TestReadIntWrongPrefix(t *testing.T) {
	// Expecting ':' but receiving a status line is a protocol violation,
	// never a silent default.
	r := NewReader(strings.NewReader("+OK\r\n"))
	_, err := r.ReadInt()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReadIntUnparsable(t *testing.T) {
	r := NewReader(strings.NewReader(":forty-two\r\n"))
	_, err := r.ReadInt()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReadIntOK(t *testing.T) {
	r := NewReader(strings.NewReader(":1\r\n:0\r\n"))
	assert.NoError(t, r.ReadIntOK())
	assert.ErrorIs(t, r.ReadIntOK(), ErrProtocol)
}

func TestReadBulk(t *testing.T) {
	r := NewReader(strings.NewReader("$5\r\nhello\r\n"))
	b, err := r.ReadBulk()
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)
}

func TestReadBulkBinarySafe(t *testing.T) {
	r := NewReader(strings.NewReader("$6\r\na\r\nb\x00\r\n"))
	b, err := r.ReadBulk()
	assert.NoError(t, err)
	assert.Equal(t, []byte("a\r\nb\x00"), b)
}

func TestReadBulkAbsentVersusEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("$-1\r\n$0\r\n\r\n"))

	absent, err := r.ReadBulk()
	assert.NoError(t, err)
	assert.Nil(t, absent)

	empty, err := r.ReadBulk()
	assert.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestReadBulkNegativeLength(t *testing.T) {
	// -1 is the only negative length with a meaning; anything below it is a
	// malformed header, never a payload size.
	for _, in := range []string{"$-3\r\n", "$-2\r\nxx\r\n"} {
		r := NewReader(strings.NewReader(in))
		_, err := r.ReadBulk()
		assert.ErrorIs(t, err, ErrProtocol, "input %q", in)
	}
}

func TestReadBulkShortPayload(t *testing.T) {
	r := NewReader(strings.NewReader("$10\r\nhello\r\n"))
	_, err := r.ReadBulk()
	assert.ErrorIs(t, err, ErrConnection)
}

func TestReadMultiBulk(t *testing.T) {
	r := NewReader(strings.NewReader("*3\r\n$1\r\na\r\n$-1\r\n$1\r\nc\r\n"))
	values, err := r.ReadMultiBulk()
	assert.NoError(t, err)
	assert.Len(t, values, 3)
	assert.Equal(t, []byte("a"), values[0])
	assert.Nil(t, values[1])
	assert.Equal(t, []byte("c"), values[2])
}

func TestReadMultiBulkMissingVersusEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("*-1\r\n*0\r\n"))

	_, err := r.ReadMultiBulk()
	assert.ErrorIs(t, err, ErrNoSuchKey)

	values, err := r.ReadMultiBulk()
	assert.NoError(t, err)
	assert.NotNil(t, values)
	assert.Len(t, values, 0)
}

func TestReadMultiBulkNegativeCount(t *testing.T) {
	r := NewReader(strings.NewReader("*-2\r\n"))
	_, err := r.ReadMultiBulk()
	assert.ErrorIs(t, err, ErrProtocol)

	r = NewReader(strings.NewReader("*-2\r\n"))
	_, err = r.ReadAny()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReadMultiBulkWrongPrefix(t *testing.T) {
	r := NewReader(strings.NewReader("$3\r\nfoo\r\n"))
	_, err := r.ReadMultiBulk()
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestBackToBackReplies(t *testing.T) {
	// Replies arriving in one burst must decode one frame at a time with
	// no bytes of the following reply consumed early.
	r := NewReader(strings.NewReader("+OK\r\n:5\r\n$2\r\nhi\r\n*-1\r\n"))

	assert.NoError(t, r.ReadOK())

	n, err := r.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)

	b, err := r.ReadBulk()
	assert.NoError(t, err)
	assert.Equal(t, []byte("hi"), b)

	_, err = r.ReadMultiBulk()
	assert.ErrorIs(t, err, ErrNoSuchKey)
}

func TestReadAny(t *testing.T) {
	r := NewReader(strings.NewReader("+PONG\r\n:3\r\n$2\r\nok\r\n*2\r\n$1\r\na\r\n:9\r\n*-1\r\n$-1\r\n"))

	v, err := r.ReadAny()
	assert.NoError(t, err)
	assert.Equal(t, "PONG", v)

	v, err = r.ReadAny()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = r.ReadAny()
	assert.NoError(t, err)
	assert.Equal(t, []byte("ok"), v)

	v, err = r.ReadAny()
	assert.NoError(t, err)
	assert.Equal(t, []any{[]byte("a"), int64(9)}, v)

	v, err = r.ReadAny()
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = r.ReadAny()
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestReadAnyServerError(t *testing.T) {
	r := NewReader(strings.NewReader("-ERR bad things\r\n"))
	_, err := r.ReadAny()
	assert.ErrorIs(t, err, ErrProtocol)
	assert.Contains(t, err.Error(), "bad things")
}

func TestReadAnyUnknownPrefix(t *testing.T) {
	r := NewReader(strings.NewReader("?what\r\n"))
	_, err := r.ReadAny()
	assert.ErrorIs(t, err, ErrProtocol)
}
