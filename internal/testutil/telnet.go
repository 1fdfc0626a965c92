package testutil

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/statrange/internal/frontend/telnet"
)

// DefaultPrompt is the prompt the calculator prints before each command.
const DefaultPrompt = "statrange> "

// TelnetClient drives a calculator session over a real TCP connection.
// Output it returns has Telnet negotiation and ANSI colors removed.
type TelnetClient struct {
	t      *testing.T
	conn   net.Conn
	Prompt string
}

// NewTelnetClient dials addr and returns a client expecting DefaultPrompt.
//
// Precondition: addr must be a "host:port" with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { conn.Close() })
	return &TelnetClient{t: t, conn: conn, Prompt: DefaultPrompt}
}

// ReadUntil reads until the plain-text output contains substr and returns
// everything read, or fails the test once timeout elapses.
//
// Precondition: substr must be non-empty.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	var raw []byte
	buf := make([]byte, 1024)
	for {
		n, err := c.conn.Read(buf)
		raw = append(raw, buf[:n]...)
		out := telnet.StripANSI(string(telnet.FilterIAC(raw)))
		if strings.Contains(out, substr) {
			return out
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q: %v", substr, out, err)
		}
	}
}

// Send writes text followed by \r\n.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Exec sends one command line and returns the output up to the next prompt.
func (c *TelnetClient) Exec(line string) string {
	c.t.Helper()
	c.Send(line)
	return c.ReadUntil(c.Prompt, 5*time.Second)
}

// Close closes the connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
