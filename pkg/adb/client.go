package adb

import (
	"bufio"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client owns a single TCP connection to a locally running ADB server.
// The protocol is strictly one outstanding request at a time; Client
// offers no internal parallelism between operations. Callers who need
// concurrent transfers construct additional Clients (see Bugreport, which
// opens a second Client to pull the generated zip).
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	host string
	port int

	// Log receives Debug entries for every connect, reconnect, transport
	// selection and sync entry. Sync-batch outcomes are not logged here.
	// Defaults to logrus's standard logger if nil.
	Log *log.Logger

	// chunkSizeBytes overrides the sync sub-protocol's DATA frame size,
	// sourced from Config.ChunkSizeKB (see Options.ChunkSizeKB). Zero
	// means "use the sync package's own default".
	chunkSizeBytes int
}

// Options configure a new Client. A zero value means "use defaults: read
// ADB_ADDRESS, falling back to 127.0.0.1:5037".
type Options struct {
	Host string
	Port int
	Log  *log.Logger
	// ChunkSizeKB overrides the sync push chunk size, in KiB. Normally
	// sourced from Config.ChunkSizeKB (see LoadConfig). Zero keeps the
	// sync package's built-in default.
	ChunkSizeKB int
}

// NewClient dials the ADB server and returns a connected Client.
func NewClient(opts Options) (*Client, error) {
	host, port := resolveAddress(opts.Host, opts.Port)
	c := &Client{host: host, port: port, Log: opts.Log, chunkSizeBytes: opts.ChunkSizeKB * 1024}
	if c.Log == nil {
		c.Log = log.StandardLogger()
	}
	if err := c.dial(); err != nil {
		return nil, err
	}
	return c, nil
}

func resolveAddress(host string, port int) (string, int) {
	switch {
	case host != "" && port != 0:
		return host, port
	case host != "" && port == 0:
		return host, DefaultServerPort
	case host == "" && port != 0:
		return DefaultServerHost, port
	default:
		if addr, ok := os.LookupEnv(ServerAddressEnv); ok {
			if h, p, err := splitHostPort(addr); err == nil {
				return h, p
			}
		}
		return DefaultServerHost, DefaultServerPort
	}
}

func splitHostPort(addr string) (string, int, error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, err
	}
	return h, port, nil
}

func (c *Client) addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

func (c *Client) dial() error {
	addr := c.addr()
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return &TransportError{Addr: addr, Err: err}
	}
	c.conn = conn
	c.r = bufio.NewReader(conn)
	c.Log.WithField("addr", addr).Debug("adb: connected")
	return nil
}

// Reconnect closes the current connection, if any, and dials a new one to
// the same server address. Required after any long-lived channel (sync,
// shell, reboot) leaves the stream in a terminal state.
func (c *Client) Reconnect() error {
	c.Close()
	c.Log.WithField("addr", c.addr()).Debug("adb: reconnecting")
	return c.dial()
}

// Close shuts down the underlying TCP connection. It is safe to call
// multiple times.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.r = nil
	if err != nil && !strings.Contains(err.Error(), "use of closed network connection") {
		return err
	}
	return nil
}

// selectTransport sends one of the four host:transport* commands and
// asserts OKAY, per SPEC_FULL.md §4.2.
func (c *Client) selectTransport(t Transport) error {
	c.Log.WithField("transport", t.Command()).Debug("adb: select transport")
	return c.sendAndAssertOK(t.Command(), "transport")
}
