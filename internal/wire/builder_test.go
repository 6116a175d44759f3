package wire

import (
	"bytes"
	"testing"
)

// fakeA is a minimal wire.RR implementation standing in for records.A in
// tests that only need to exercise the codec, not the record factories.
type fakeA struct {
	owner string
	ttl   uint32
	addr  [4]byte
}

func (f fakeA) Owner() string  { return f.owner }
func (f fakeA) RRType() uint16 { return 1 }
func (f fakeA) RRTTL() uint32  { return f.ttl }
func (f fakeA) WriteRDATA(buf *bytes.Buffer, _ map[string]int) error {
	buf.Write(f.addr[:])
	return nil
}

func TestBuildResponse_SingleAnswer(t *testing.T) {
	question := Question{QNAME: "example.com", QTYPE: 1, QCLASS: 1}
	rr := fakeA{owner: "example.com", ttl: 1, addr: [4]byte{1, 2, 3, 4}}

	response, err := BuildResponse(42, 0x0100, question, []RR{rr})
	if err != nil {
		t.Fatalf("BuildResponse() unexpected error: %v", err)
	}

	msg, err := ParseMessage(response)
	if err != nil {
		t.Fatalf("ParseMessage(response) unexpected error: %v", err)
	}

	if msg.Header.ID != 42 {
		t.Errorf("Header.ID = %d, want 42", msg.Header.ID)
	}
	if !msg.Header.IsResponse() {
		t.Error("response message parsed with QR=0")
	}
	if msg.Header.RCODE() != 0 {
		t.Errorf("RCODE = %d, want 0", msg.Header.RCODE())
	}
	if len(msg.Answers) != 1 {
		t.Fatalf("len(Answers) = %d, want 1", len(msg.Answers))
	}

	answer := msg.Answers[0]
	if answer.Name != "example.com" {
		t.Errorf("answer.Name = %q, want %q", answer.Name, "example.com")
	}
	if answer.TTL != 1 {
		t.Errorf("answer.TTL = %d, want 1", answer.TTL)
	}
	if !bytes.Equal(answer.RDATA, []byte{1, 2, 3, 4}) {
		t.Errorf("answer.RDATA = %v, want [1 2 3 4]", answer.RDATA)
	}
}

func TestBuildResponse_AnswerNameCompressesToQuestion(t *testing.T) {
	question := Question{QNAME: "example.com", QTYPE: 1, QCLASS: 1}
	rr := fakeA{owner: "example.com", ttl: 1, addr: [4]byte{9, 9, 9, 9}}

	response, err := BuildResponse(1, 0, question, []RR{rr})
	if err != nil {
		t.Fatalf("BuildResponse() unexpected error: %v", err)
	}

	// Header (12) + question name (13 bytes: "example"+"com"+root) + QTYPE/QCLASS (4)
	// = 29. The answer name, matching the question exactly, should compress to a
	// 2-byte pointer instead of repeating all 13 bytes.
	withCompression := 12 + 13 + 4 + 2 /*pointer*/ + 2 + 2 + 4 + 2 + 4
	if len(response) != withCompression {
		t.Errorf("len(response) = %d, want %d (answer name should compress)", len(response), withCompression)
	}
}

func TestBuildResponse_NoAnswers(t *testing.T) {
	question := Question{QNAME: "example.com", QTYPE: 1, QCLASS: 1}
	response, err := BuildResponse(7, 0, question, nil)
	if err != nil {
		t.Fatalf("BuildResponse() unexpected error: %v", err)
	}

	msg, err := ParseMessage(response)
	if err != nil {
		t.Fatalf("ParseMessage() unexpected error: %v", err)
	}
	if len(msg.Answers) != 0 {
		t.Errorf("len(Answers) = %d, want 0", len(msg.Answers))
	}
	if msg.Header.RCODE() != 0 {
		t.Errorf("RCODE = %d, want 0 (miss still answers NOERROR)", msg.Header.RCODE())
	}
}

func TestBuildQuery(t *testing.T) {
	query, err := BuildQuery("example.com", 15)
	if err != nil {
		t.Fatalf("BuildQuery() unexpected error: %v", err)
	}

	msg, err := ParseMessage(query)
	if err != nil {
		t.Fatalf("ParseMessage() unexpected error: %v", err)
	}
	if msg.Header.IsResponse() {
		t.Error("BuildQuery() produced a message with QR=1")
	}
	if len(msg.Questions) != 1 || msg.Questions[0].QTYPE != 15 {
		t.Errorf("unexpected question section: %+v", msg.Questions)
	}
}
