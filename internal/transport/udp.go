// Package transport owns the UDP socket a mock server listens on: binding
// a fixed or ephemeral port, reading the kernel-assigned port back, and
// setting platform socket options so a test suite that restarts a mock on
// the same fixed port in rapid succession doesn't hit EADDRINUSE from a
// lingering TIME_WAIT socket.
package transport

import (
	"context"
	"fmt"
	"net"

	"github.com/joshuafuller/dnsmock/internal/errors"
)

// Listener is a bound UDP socket ready to receive datagrams. port=0 at
// Listen binds an OS-assigned ephemeral port; Listener.Port reads it back.
type Listener struct {
	conn *net.UDPConn
}

// Listen binds a UDP socket on the given port (0 for an OS-assigned
// ephemeral port). A nonzero port gets SO_REUSEADDR applied via the
// platform-specific control function so a rapid bind/close/bind cycle on
// the same port (common in CI retry loops) doesn't fail while the previous
// socket lingers in TIME_WAIT; an ephemeral port needs no such option since
// it never collides with a prior bind.
func Listen(port int) (*Listener, error) {
	lc := net.ListenConfig{}
	if port != 0 {
		lc.Control = platformControl
	}

	pc, err := lc.ListenPacket(context.Background(), "udp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, &errors.NetworkError{
			Operation: "bind socket",
			Err:       err,
			Details:   fmt.Sprintf("failed to bind UDP port %d", port),
		}
	}

	udpConn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return nil, &errors.NetworkError{
			Operation: "bind socket",
			Err:       fmt.Errorf("unexpected PacketConn type %T", pc),
		}
	}

	return &Listener{conn: udpConn}, nil
}

// Port returns the bound port, resolving the OS-assigned value when the
// caller requested an ephemeral port.
func (l *Listener) Port() uint16 {
	addr, ok := l.conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return 0
	}
	return uint16(addr.Port) //nolint:gosec // UDP port always fits uint16
}

// ReadFrom blocks until a datagram arrives or the socket is closed, in
// which case it returns the "closed" sentinel error that unblocks the
// accept loop on Close.
func (l *Listener) ReadFrom(buf []byte) (int, net.Addr, error) {
	n, addr, err := l.conn.ReadFrom(buf)
	if err != nil {
		return n, addr, &errors.NetworkError{Operation: "read datagram", Err: err}
	}
	return n, addr, nil
}

// WriteTo sends a response datagram back to the querying client.
func (l *Listener) WriteTo(b []byte, addr net.Addr) error {
	_, err := l.conn.WriteTo(b, addr)
	if err != nil {
		return &errors.NetworkError{Operation: "write datagram", Err: err, Details: fmt.Sprintf("destination %s", addr)}
	}
	return nil
}

// Close closes the socket, unblocking any in-flight ReadFrom.
func (l *Listener) Close() error {
	if err := l.conn.Close(); err != nil {
		return &errors.NetworkError{Operation: "close socket", Err: err}
	}
	return nil
}
