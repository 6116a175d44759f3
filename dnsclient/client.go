// Package dnsclient is a minimal embedded DNS client for round-tripping
// queries against a mock server in tests, without shelling out to dig or
// pulling in a full resolver library. It is built on the same wire codec
// the server itself uses.
package dnsclient

import (
	"context"
	"net"
	"time"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/wire"
)

// Answer is the public, codec-independent view of one parsed response RR.
type Answer struct {
	Name  string
	Type  uint16
	Class uint16
	TTL   uint32
	RDATA []byte
}

// Response is the public, codec-independent view of a parsed DNS response.
type Response struct {
	ID      uint16
	RCODE   uint8
	Answers []Answer
}

// Client queries a single DNS server over UDP.
type Client struct {
	conn    *net.UDPConn
	timeout time.Duration
}

// Dial opens a UDP client socket targeting addr (host:port).
func Dial(addr string) (*Client, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &errors.NetworkError{Operation: "resolve server address", Err: err, Details: addr}
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, &errors.NetworkError{Operation: "dial server", Err: err, Details: addr}
	}
	return &Client{conn: conn, timeout: 2 * time.Second}, nil
}

// Close releases the client's socket.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Query sends a single question and returns the parsed response. ctx's
// deadline (if any) governs the read; otherwise the client's default
// 2-second timeout applies.
func (c *Client) Query(ctx context.Context, name string, qtype uint16) (*Response, error) {
	query, err := wire.BuildQuery(name, qtype)
	if err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, &errors.NetworkError{Operation: "set deadline", Err: err}
	}

	if _, err := c.conn.Write(query); err != nil {
		return nil, &errors.NetworkError{Operation: "send query", Err: err}
	}

	buf := make([]byte, 4096)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, &errors.NetworkError{Operation: "read response", Err: err}
	}

	msg, err := wire.ParseMessage(buf[:n])
	if err != nil {
		return nil, err
	}

	answers := make([]Answer, len(msg.Answers))
	for i, a := range msg.Answers {
		answers[i] = Answer{Name: a.Name, Type: a.Type, Class: a.Class, TTL: a.TTL, RDATA: a.RDATA}
	}

	return &Response{
		ID:      msg.Header.ID,
		RCODE:   msg.Header.RCODE(),
		Answers: answers,
	}, nil
}
