package proto

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// StatusOK is the status text of a successful command.
	StatusOK = "OK"

	// errorMarker separates an error reply from ordinary status text.
	errorMarker = "-ERR "

	prefixStatus    = '+'
	prefixInt       = ':'
	prefixBulk      = '$'
	prefixMultiBulk = '*'

	// peekChunk bounds how many already-buffered bytes a single ReadLine
	// scan looks at, mirroring the peek window of the socket version.
	peekChunk = 64

	// MaxLineSize is the default bound for a reply line.
	MaxLineSize = 2048
)

// Reader decodes framed replies from a blocking byte stream. One Reader must
// own the stream for the whole connection lifetime: bytes buffered past a
// frame boundary belong to the next reply.
type Reader struct {
	br *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine reads up to and including the next LF, using a peek-before-consume
// scan so that bytes after the delimiter are never pulled out of the buffer.
// The returned line has trailing CR/LF trimmed. If no delimiter shows up
// within max bytes an empty line is returned; decoders treat that as a
// framing failure. A closed peer yields ErrConnection.
func (r *Reader) ReadLine(max int) (string, error) {
	var line []byte
	total := 0
	for total < max {
		// Block until at least one byte is available, then scan only what
		// is already buffered.
		if _, err := r.br.Peek(1); err != nil {
			return "", connClosed(err)
		}
		n := r.br.Buffered()
		if n > peekChunk {
			n = peekChunk
		}
		chunk, err := r.br.Peek(n)
		if err != nil {
			return "", connClosed(err)
		}
		if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
			line = append(line, chunk[:i+1]...)
			if _, err := r.br.Discard(i + 1); err != nil {
				return "", connClosed(err)
			}
			return string(trimEOL(line)), nil
		}
		line = append(line, chunk...)
		if _, err := r.br.Discard(n); err != nil {
			return "", connClosed(err)
		}
		total += n
	}
	return "", nil
}

// ReadExact blocks until exactly n bytes have been received. A peer close
// before n bytes yields ErrConnection.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, connClosed(err)
	}
	return buf, nil
}

// ReadStatus decodes a status reply and returns its text. A line carrying
// the error marker is surfaced as ErrProtocol with the server's message.
func (r *Reader) ReadStatus() (string, error) {
	line, err := r.ReadLine(MaxLineSize)
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", fmt.Errorf("%w: empty status reply", ErrProtocol)
	}
	if strings.HasPrefix(line, errorMarker) {
		msg := line[len(errorMarker):]
		if msg == "" {
			msg = "unknown error"
		}
		return "", fmt.Errorf("%w: %s", ErrProtocol, msg)
	}
	if line[0] != prefixStatus {
		return "", fmt.Errorf("%w: unexpected prefix %q for status reply", ErrProtocol, line[0])
	}
	return line[1:], nil
}

// ReadOK decodes a status reply and requires it to be OK.
func (r *Reader) ReadOK() error {
	status, err := r.ReadStatus()
	if err != nil {
		return err
	}
	if status != StatusOK {
		return fmt.Errorf("%w: expected OK, got %q", ErrProtocol, status)
	}
	return nil
}

// ReadInt decodes an integer reply.
func (r *Reader) ReadInt() (int64, error) {
	line, err := r.ReadLine(MaxLineSize)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, fmt.Errorf("%w: empty integer reply", ErrProtocol)
	}
	if line[0] != prefixInt {
		return 0, fmt.Errorf("%w: unexpected prefix %q for integer reply", ErrProtocol, line[0])
	}
	n, err := strconv.ParseInt(line[1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad integer reply %q", ErrProtocol, line[1:])
	}
	return n, nil
}

// ReadIntOK decodes an integer reply and requires it to be 1, the success
// value of boolean-shaped commands.
func (r *Reader) ReadIntOK() error {
	n, err := r.ReadInt()
	if err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("%w: expected integer reply of 1, got %d", ErrProtocol, n)
	}
	return nil
}

// ReadBulk decodes a bulk reply. An absent value ($-1) is returned as a nil
// slice, distinct from a present empty value.
func (r *Reader) ReadBulk() ([]byte, error) {
	length, err := r.readLength(prefixBulk, "bulk")
	if err != nil {
		return nil, err
	}
	if length == -1 {
		return nil, nil
	}
	data, err := r.ReadExact(int(length) + 2)
	if err != nil {
		return nil, err
	}
	if !bytes.HasSuffix(data, []byte("\r\n")) {
		return nil, fmt.Errorf("%w: bulk payload not terminated by CRLF", ErrProtocol)
	}
	return data[:length], nil
}

// ReadMultiBulk decodes a multi-bulk reply as an ordered sequence of bulk
// values. The missing-key sentinel (*-1) is surfaced as ErrNoSuchKey; an
// empty sequence (*0) is present and valid.
func (r *Reader) ReadMultiBulk() ([][]byte, error) {
	count, err := r.readLength(prefixMultiBulk, "multi-bulk")
	if err != nil {
		return nil, err
	}
	if count == -1 {
		return nil, fmt.Errorf("%w", ErrNoSuchKey)
	}
	out := make([][]byte, 0, count)
	for i := int64(0); i < count; i++ {
		b, err := r.ReadBulk()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ReadAny decodes whatever reply comes next, dispatching on the prefix byte.
// It returns string (status), int64, []byte (nil for absent), []any, or nil
// for a missing multi-bulk. Error replies come back as ErrProtocol. Meant
// for generic consumers like the CLI; command methods use the typed readers.
func (r *Reader) ReadAny() (any, error) {
	b, err := r.br.Peek(1)
	if err != nil {
		return nil, connClosed(err)
	}
	switch b[0] {
	case prefixStatus:
		return r.ReadStatus()
	case '-':
		line, err := r.ReadLine(MaxLineSize)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrProtocol, strings.TrimPrefix(line[1:], "ERR "))
	case prefixInt:
		return r.ReadInt()
	case prefixBulk:
		return r.ReadBulk()
	case prefixMultiBulk:
		count, err := r.readLength(prefixMultiBulk, "multi-bulk")
		if err != nil {
			return nil, err
		}
		if count == -1 {
			return nil, nil
		}
		out := make([]any, 0, count)
		for i := int64(0); i < count; i++ {
			v, err := r.ReadAny()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown reply prefix %q", ErrProtocol, b[0])
	}
}

// readLength reads the header line of a length-prefixed reply and parses the
// signed length after the prefix byte.
func (r *Reader) readLength(prefix byte, kind string) (int64, error) {
	line, err := r.ReadLine(MaxLineSize)
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, fmt.Errorf("%w: empty %s reply", ErrProtocol, kind)
	}
	if line[0] != prefix {
		return 0, fmt.Errorf("%w: unexpected prefix %q for %s reply", ErrProtocol, line[0], kind)
	}
	n, err := strconv.ParseInt(line[1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s length %q", ErrProtocol, kind, line[1:])
	}
	// -1 is the absence sentinel; any other negative length is malformed.
	if n < -1 {
		return 0, fmt.Errorf("%w: bad %s length %d", ErrProtocol, kind, n)
	}
	return n, nil
}

func trimEOL(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

func connClosed(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: connection was closed", ErrConnection)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
