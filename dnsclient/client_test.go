package dnsclient

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/joshuafuller/dnsmock/internal/wire"
)

// fakeA stands in for records.A without importing the public records
// package, to keep this test isolated to the wire codec's RR contract.
type fakeA struct {
	owner string
	addr  [4]byte
}

func (f fakeA) Owner() string  { return f.owner }
func (f fakeA) RRType() uint16 { return 1 }
func (f fakeA) RRTTL() uint32  { return 1 }
func (f fakeA) WriteRDATA(buf *bytes.Buffer, _ map[string]int) error {
	buf.Write(f.addr[:])
	return nil
}

// startFakeServer runs a single-shot UDP responder on an ephemeral port
// that echoes one canned A answer for any query, then exits.
func startFakeServer(t *testing.T) string {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("net.ListenUDP() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, 512)
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return
		}
		msg, err := wire.ParseMessage(buf[:n])
		if err != nil || len(msg.Questions) == 0 {
			return
		}
		response, err := wire.BuildResponse(msg.Header.ID, msg.Header.Flags, msg.Questions[0],
			[]wire.RR{fakeA{owner: msg.Questions[0].QNAME, addr: [4]byte{9, 9, 9, 9}}})
		if err != nil {
			return
		}
		_, _ = conn.WriteTo(response, addr)
	}()

	return conn.LocalAddr().String()
}

func TestClient_QueryRoundTrip(t *testing.T) {
	addr := startFakeServer(t)

	client, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.Query(ctx, "example.com", 1)
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	if len(resp.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(resp.Answers))
	}
	if string(resp.Answers[0].RDATA) != string([]byte{9, 9, 9, 9}) {
		t.Errorf("RDATA = %v, want [9 9 9 9]", resp.Answers[0].RDATA)
	}
}

func TestClient_QueryTimeout(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		t.Fatalf("net.ListenUDP() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	client, err := Dial(conn.LocalAddr().String())
	if err != nil {
		t.Fatalf("Dial() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Query(ctx, "example.com", 1); err == nil {
		t.Error("Query() expected timeout error, got nil")
	}
}
