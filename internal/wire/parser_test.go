package wire

import (
	"testing"
)

func TestParseMessage_QueryRoundTrip(t *testing.T) {
	query, err := BuildQuery("example.com", 1)
	if err != nil {
		t.Fatalf("BuildQuery() unexpected error: %v", err)
	}

	msg, err := ParseMessage(query)
	if err != nil {
		t.Fatalf("ParseMessage() unexpected error: %v", err)
	}

	if len(msg.Questions) != 1 {
		t.Fatalf("len(Questions) = %d, want 1", len(msg.Questions))
	}
	q := msg.Questions[0]
	if q.QNAME != "example.com" {
		t.Errorf("QNAME = %q, want %q", q.QNAME, "example.com")
	}
	if q.QTYPE != 1 {
		t.Errorf("QTYPE = %d, want 1", q.QTYPE)
	}
	if msg.Header.IsResponse() {
		t.Error("query message parsed as response")
	}
}

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader([]byte{0, 1, 2})
	if err == nil {
		t.Fatal("ParseHeader() expected error for short buffer, got nil")
	}
}

func TestParseQuestion_Truncated(t *testing.T) {
	name, err := EncodeName("example.com")
	if err != nil {
		t.Fatalf("EncodeName() unexpected error: %v", err)
	}
	// QTYPE/QCLASS missing entirely.
	_, _, err = ParseQuestion(name, 0)
	if err == nil {
		t.Fatal("ParseQuestion() expected error for truncated question, got nil")
	}
}

func TestParseAnswer_Truncated(t *testing.T) {
	name, err := EncodeName("example.com")
	if err != nil {
		t.Fatalf("EncodeName() unexpected error: %v", err)
	}
	_, _, err = ParseAnswer(name, 0)
	if err == nil {
		t.Fatal("ParseAnswer() expected error for truncated answer, got nil")
	}
}
