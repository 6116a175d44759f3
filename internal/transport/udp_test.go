package transport

import (
	"net"
	"testing"
)

func TestListen_EphemeralPort(t *testing.T) {
	l, err := Listen(0)
	if err != nil {
		t.Fatalf("Listen(0) unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	if l.Port() == 0 {
		t.Error("Port() = 0, want a nonzero OS-assigned port")
	}
}

func TestListen_FixedPortRebind(t *testing.T) {
	first, err := Listen(0)
	if err != nil {
		t.Fatalf("Listen(0) unexpected error: %v", err)
	}
	port := int(first.Port())
	if err := first.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	second, err := Listen(port)
	if err != nil {
		t.Fatalf("Listen(%d) unexpected error after close: %v", port, err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if int(second.Port()) != port {
		t.Errorf("Port() = %d, want %d", second.Port(), port)
	}
}

func TestListener_ReadWriteRoundTrip(t *testing.T) {
	server, err := Listen(0)
	if err != nil {
		t.Fatalf("Listen(0) unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = server.Close() })

	client, err := net.ListenUDP("udp", nil)
	if err != nil {
		t.Fatalf("net.ListenUDP() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	dest := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: int(server.Port())}
	if _, err := client.WriteTo([]byte("ping"), dest); err != nil {
		t.Fatalf("client.WriteTo() unexpected error: %v", err)
	}

	buf := make([]byte, 16)
	n, from, err := server.ReadFrom(buf)
	if err != nil {
		t.Fatalf("ReadFrom() unexpected error: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("ReadFrom() payload = %q, want %q", buf[:n], "ping")
	}

	if err := server.WriteTo([]byte("pong"), from); err != nil {
		t.Fatalf("WriteTo() unexpected error: %v", err)
	}

	reply := make([]byte, 16)
	n, _, err = client.ReadFrom(reply)
	if err != nil {
		t.Fatalf("client.ReadFrom() unexpected error: %v", err)
	}
	if string(reply[:n]) != "pong" {
		t.Errorf("reply payload = %q, want %q", reply[:n], "pong")
	}
}

func TestListener_CloseUnblocksReadFrom(t *testing.T) {
	l, err := Listen(0)
	if err != nil {
		t.Fatalf("Listen(0) unexpected error: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		_, _, readErr := l.ReadFrom(buf)
		done <- readErr
	}()

	if err := l.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	if err := <-done; err == nil {
		t.Error("ReadFrom() after Close() expected error, got nil")
	}
}

func TestBufferPool_GetPut(t *testing.T) {
	buf := GetBuffer()
	(*buf)[0] = 0xFF
	PutBuffer(buf)

	buf2 := GetBuffer()
	if (*buf2)[0] != 0 {
		t.Error("GetBuffer() after PutBuffer() returned a buffer that wasn't cleared")
	}
	PutBuffer(buf2)
}
