package records

import (
	"bytes"
	"testing"
)

func TestA_WriteRDATA(t *testing.T) {
	rr, err := BuildA("example.com", "192.0.2.1")
	if err != nil {
		t.Fatalf("BuildA() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err != nil {
		t.Fatalf("WriteRDATA() unexpected error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{192, 0, 2, 1}) {
		t.Errorf("WriteRDATA() = %v, want [192 0 2 1]", buf.Bytes())
	}
	if rr.RRType() != 1 {
		t.Errorf("RRType() = %d, want 1", rr.RRType())
	}
}

func TestAAAA_WriteRDATA(t *testing.T) {
	rr, err := BuildAAAA("example.com", "2001:db8::1")
	if err != nil {
		t.Fatalf("BuildAAAA() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err != nil {
		t.Fatalf("WriteRDATA() unexpected error: %v", err)
	}
	if buf.Len() != 16 {
		t.Errorf("WriteRDATA() wrote %d bytes, want 16", buf.Len())
	}
}

func TestMX_WriteRDATA(t *testing.T) {
	rr, err := BuildMX("example.com", "mail.example.com:10")
	if err != nil {
		t.Fatalf("BuildMX() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err != nil {
		t.Fatalf("WriteRDATA() unexpected error: %v", err)
	}
	// 2-byte preference + encoded name ("mail"+"example"+"com"+root = 18 bytes)
	if buf.Len() != 2+18 {
		t.Errorf("WriteRDATA() wrote %d bytes, want %d", buf.Len(), 2+18)
	}
	if buf.Bytes()[0] != 0 || buf.Bytes()[1] != 10 {
		t.Errorf("preference bytes = %v, want [0 10]", buf.Bytes()[:2])
	}
}

func TestSOA_WriteRDATA(t *testing.T) {
	rr, err := BuildSOA("example.com", SOAValue{
		MName: "ns1.example.com", RName: "admin.example.com",
		Serial: 2024010100, Refresh: 3600, Retry: 600, Expire: 604800, Minimum: 300,
	})
	if err != nil {
		t.Fatalf("BuildSOA() unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err != nil {
		t.Fatalf("WriteRDATA() unexpected error: %v", err)
	}
	if buf.Len() < 20 {
		t.Fatalf("WriteRDATA() too short for SOA fixed fields: %d bytes", buf.Len())
	}
}

func TestTXT_WriteRDATA_TooLong(t *testing.T) {
	rr := &TXT{Header: Header{OwnerName: "example.com"}, Text: string(make([]byte, 256))}
	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err == nil {
		t.Fatal("WriteRDATA() expected error for 256-octet TXT, got nil")
	}
}

func TestTXT_WriteRDATA_MaxLength(t *testing.T) {
	rr := &TXT{Header: Header{OwnerName: "example.com"}, Text: string(make([]byte, 255))}
	var buf bytes.Buffer
	if err := rr.WriteRDATA(&buf, nil); err != nil {
		t.Fatalf("WriteRDATA() unexpected error for 255-octet TXT: %v", err)
	}
	if buf.Len() != 256 {
		t.Errorf("WriteRDATA() wrote %d bytes, want 256", buf.Len())
	}
}
