package etherbone

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/litex-tools/netcli/pkg/log"
)

// Defaults for the retry discipline.
const (
	// DefaultTimeout is the per-attempt reply deadline.
	DefaultTimeout = 100 * time.Millisecond

	// DefaultRetries is the total number of send attempts per read.
	DefaultRetries = 3

	// DefaultPort is the Etherbone UDP port LiteX gateware listens on.
	DefaultPort = 1234

	// maxDatagram bounds the receive buffer. Single-operation replies
	// are 20 bytes; anything up to one Ethernet frame is tolerated.
	maxDatagram = 1500
)

// ErrTimeout indicates the retry budget was exhausted without a reply.
var ErrTimeout = errors.New("etherbone timeout")

// Config configures a Client.
type Config struct {
	// Timeout is the per-attempt reply deadline (default: 100ms).
	Timeout time.Duration

	// Retries is the total number of attempts per read (default: 3).
	Retries int

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

// ParseTarget normalizes a "host[:port]" target string, applying
// DefaultPort when no port is given.
func ParseTarget(target string) (string, error) {
	if target == "" {
		return "", fmt.Errorf("empty target")
	}
	host, port, err := net.SplitHostPort(target)
	if err != nil {
		// No port part; validate by re-joining with the default.
		host, port = target, strconv.Itoa(DefaultPort)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("invalid port %q in target %q", port, target)
	}
	return net.JoinHostPort(host, port), nil
}

// Client performs single-register Etherbone transactions against one
// fixed UDP target. It owns its socket exclusively for the process
// lifetime and keeps at most one transaction outstanding. Client is
// not safe for concurrent use; the command loop is strictly serial.
type Client struct {
	conn   net.PacketConn
	raddr  net.Addr
	cfg    Config
	connID string
	buf    [maxDatagram]byte
}

// Dial binds a UDP socket and resolves the target address. The target
// is "host[:port]"; a missing port defaults to DefaultPort.
func Dial(target string, cfg Config) (*Client, error) {
	hostport, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	raddr, err := net.ResolveUDPAddr("udp", hostport)
	if err != nil {
		return nil, fmt.Errorf("resolve target %q: %w", target, err)
	}
	conn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, fmt.Errorf("bind udp socket: %w", err)
	}
	return NewClient(conn, raddr, cfg), nil
}

// NewClient wraps an existing packet connection. Tests substitute an
// in-memory net.PacketConn here.
func NewClient(conn net.PacketConn, raddr net.Addr, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}
	return &Client{
		conn:   conn,
		raddr:  raddr,
		cfg:    cfg,
		connID: uuid.NewString(),
	}
}

// ConnectionID returns the UUID identifying this socket in log events.
func (c *Client) ConnectionID() string {
	return c.connID
}

// RemoteAddr returns the configured target address.
func (c *Client) RemoteAddr() net.Addr {
	return c.raddr
}

// Close releases the socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Read performs one register read. Each attempt sends a request
// datagram and waits up to the configured timeout for a reply; after
// the retry budget is exhausted it fails with ErrTimeout. A reply that
// fails structural validation fails immediately with ErrProtocol.
func (c *Client) Read(ctx context.Context, addr uint32) (uint32, error) {
	request := NewReadRequest(addr).Encode()

	for attempt := 1; attempt <= c.cfg.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		c.logTransaction("read", addr, nil, attempt)

		if err := c.send(request); err != nil {
			return 0, err
		}

		value, err := c.awaitReply(ctx)
		if err == nil {
			return value, nil
		}
		if !isDeadline(err) {
			c.logError(err, "read reply")
			return 0, err
		}
	}

	err := fmt.Errorf("%w: no reply from %v after %d attempts",
		ErrTimeout, c.raddr, c.cfg.Retries)
	c.logError(err, "read")
	return 0, err
}

// Write performs one register write. The exchange is fire-and-forget:
// the datagram is sent once and success means it left the socket.
// Callers confirm the write by reading the register back.
func (c *Client) Write(ctx context.Context, addr, value uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logTransaction("write", addr, &value, 0)
	return c.send(NewWriteRequest(addr, value).Encode())
}

// send transmits one datagram to the target and logs it.
func (c *Client) send(data []byte) error {
	if _, err := c.conn.WriteTo(data, c.raddr); err != nil {
		err = fmt.Errorf("send to %v: %w", c.raddr, err)
		c.logError(err, "send")
		return err
	}
	c.logDatagram(log.DirectionOut, data)
	return nil
}

// awaitReply waits for one datagram within the per-attempt deadline and
// decodes it as a read reply.
func (c *Client) awaitReply(ctx context.Context) (uint32, error) {
	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return 0, fmt.Errorf("set read deadline: %w", err)
	}

	n, _, err := c.conn.ReadFrom(c.buf[:])
	if err != nil {
		return 0, err
	}
	data := c.buf[:n]
	c.logDatagram(log.DirectionIn, data)

	reply, err := Decode(data)
	if err != nil {
		return 0, err
	}
	return ReadReplyValue(reply)
}

// isDeadline reports whether err is a read-deadline expiry, the only
// error class worth another attempt.
func isDeadline(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func (c *Client) logDatagram(dir log.Direction, data []byte) {
	c.cfg.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    dir,
		Category:     log.CategoryDatagram,
		RemoteAddr:   c.raddr.String(),
		Datagram: &log.DatagramEvent{
			Size: len(data),
			Data: append([]byte(nil), data...),
		},
	})
}

func (c *Client) logTransaction(kind string, addr uint32, value *uint32, attempt int) {
	c.cfg.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    log.DirectionOut,
		Category:     log.CategoryTransaction,
		RemoteAddr:   c.raddr.String(),
		Transaction: &log.TransactionEvent{
			Kind:    kind,
			Addr:    addr,
			Value:   value,
			Attempt: attempt,
		},
	})
}

func (c *Client) logError(err error, context string) {
	c.cfg.Logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    log.DirectionIn,
		Category:     log.CategoryError,
		RemoteAddr:   c.raddr.String(),
		Error: &log.ErrorEvent{
			Message: err.Error(),
			Context: context,
		},
	})
}
