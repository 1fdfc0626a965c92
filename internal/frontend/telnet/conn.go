package telnet

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// Telnet commands (RFC 854) and the one option this server enables (RFC 858).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	SE   byte = 240

	OptSuppressGoAhead byte = 3
)

// MaxLineLength bounds one line of client input. The rest of a longer line is
// discarded and ReadLine reports ErrLineTooLong.
const MaxLineLength = 1024

// ErrLineTooLong is returned by ReadLine for input lines over MaxLineLength.
var ErrLineTooLong = errors.New("telnet: input line too long")

// Conn is a line-oriented Telnet connection. Reads must come from a single
// goroutine; writes may be concurrent.
type Conn struct {
	raw net.Conn
	in  *bufio.Reader
	mu  sync.Mutex
	// afterCR is set when the last line ended in CR, so a following LF
	// belongs to it even if it arrives in a later segment.
	afterCR bool

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps a raw TCP connection with Telnet protocol handling.
//
// Precondition: raw must be a valid, open network connection.
// Postcondition: Returns a Conn ready for reading and writing.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		in:           bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate offers to suppress go-ahead. Echo stays with the client, and
// every other option the client proposes is refused as it arrives.
func (c *Conn) Negotiate() error {
	return c.Write([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of input without its line ending. Command
// sequences and control characters other than tab are dropped.
//
// Postcondition: Returns the line, ErrLineTooLong with the truncated line, or
// a read error (including io.EOF) with whatever was read so far.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	line := make([]byte, 0, 64)
	overflow := false
	for {
		b, err := decodeByte(c.in, c.refuse)
		if err != nil {
			return string(line), err
		}
		if c.afterCR {
			c.afterCR = false
			if b == '\n' {
				continue
			}
		}
		switch {
		case b == '\n':
		case b == '\r':
			c.afterCR = true
		case b == IAC || (b < 32 && b != '\t'):
			continue
		case len(line) >= MaxLineLength:
			overflow = true
			continue
		default:
			line = append(line, b)
			continue
		}
		break
	}
	if overflow {
		return string(line), ErrLineTooLong
	}
	return string(line), nil
}

// refuse answers an option request from the peer. Suppress-go-ahead is the
// only option this side agrees to, so a DO for it needs no reply.
func (c *Conn) refuse(cmd, opt byte) error {
	switch cmd {
	case DO:
		if opt == OptSuppressGoAhead {
			return nil
		}
		return c.Write([]byte{IAC, WONT, opt})
	case WILL:
		return c.Write([]byte{IAC, DONT, opt})
	}
	return nil
}

// WriteLine sends text followed by \r\n.
//
// Precondition: text should not contain trailing newline characters.
func (c *Conn) WriteLine(text string) error {
	return c.WriteLines([]string{text})
}

// WriteLines sends each line followed by \r\n as one block; concurrent
// writers cannot interleave with it.
//
// Postcondition: All lines are written in order, or the first error is returned.
func (c *Conn) WriteLines(lines []string) error {
	return c.send(func(w *bufio.Writer) error {
		for _, line := range lines {
			if _, err := w.WriteString(line); err != nil {
				return err
			}
			if _, err := w.WriteString("\r\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// Write sends raw bytes to the client.
func (c *Conn) Write(data []byte) error {
	return c.send(func(w *bufio.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WritePrompt sends prompt without a line ending.
func (c *Conn) WritePrompt(prompt string) error {
	return c.send(func(w *bufio.Writer) error {
		_, err := w.WriteString(prompt)
		return err
	})
}

// send runs fn against a buffered writer under the write lock, then flushes.
func (c *Conn) send(fn func(w *bufio.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	w := bufio.NewWriter(c.raw)
	if err := fn(w); err != nil {
		return err
	}
	return w.Flush()
}

// Close closes the underlying TCP connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

// FilterIAC returns the data bytes of input with every command sequence
// removed. An escaped IAC becomes a single 0xFF; a truncated trailing
// sequence is dropped.
func FilterIAC(input []byte) []byte {
	r := bytes.NewReader(input)
	out := make([]byte, 0, len(input))
	for {
		b, err := decodeByte(r, nil)
		if err != nil {
			return out
		}
		out = append(out, b)
	}
}

// decodeByte returns the next data byte from r. Option negotiations are
// passed to onOption when it is non-nil; other commands and sub-negotiations
// are skipped.
func decodeByte(r io.ByteReader, onOption func(cmd, opt byte) error) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil || b != IAC {
			return b, err
		}
		cmd, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch cmd {
		case IAC:
			return IAC, nil
		case WILL, WONT, DO, DONT:
			opt, err := r.ReadByte()
			if err != nil {
				return 0, err
			}
			if onOption != nil {
				if err := onOption(cmd, opt); err != nil {
					return 0, err
				}
			}
		case SB:
			if err := skipSubnegotiation(r); err != nil {
				return 0, err
			}
		}
	}
}

// skipSubnegotiation consumes bytes up to and including IAC SE.
func skipSubnegotiation(r io.ByteReader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b != IAC {
			continue
		}
		next, err := r.ReadByte()
		if err != nil {
			return err
		}
		if next == SE {
			return nil
		}
	}
}
