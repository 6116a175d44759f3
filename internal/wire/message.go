// Package wire implements the RFC 1035 DNS message codec: header, question,
// and answer framing, name encoding with compression-pointer support, and
// the parse/build entry points the query handler and the embedded test
// client both use.
package wire

// Header is the 12-byte DNS message header per RFC 1035 §4.1.1.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// IsQuery reports whether the QR bit is clear.
func (h *Header) IsQuery() bool {
	return (h.Flags & 0x8000) == 0
}

// IsResponse reports whether the QR bit is set.
func (h *Header) IsResponse() bool {
	return (h.Flags & 0x8000) != 0
}

// RCODE extracts the response code (bits 0-3) from Flags.
func (h *Header) RCODE() uint8 {
	return uint8(h.Flags & 0x000F) //nolint:gosec // masked to 0-15
}

// OPCODE extracts the operation code (bits 11-14) from Flags.
func (h *Header) OPCODE() uint8 {
	return uint8((h.Flags >> 11) & 0x0F) //nolint:gosec // masked to 0-15
}

// Question is a single question-section entry per RFC 1035 §4.1.2.
type Question struct {
	QNAME  string
	QTYPE  uint16
	QCLASS uint16
}

// Answer is a single resource-record entry per RFC 1035 §4.1.3. It is used
// for the parsed form of both inbound and outbound messages; RDATA is the
// raw, type-specific payload.
type Answer struct {
	Name     string
	Type     uint16
	Class    uint16
	TTL      uint32
	RDLength uint16
	RDATA    []byte
}

// Message is a complete parsed DNS message: header plus up to four sections.
// The mock server never populates Authorities or Additionals on its own
// responses, but parses them out of inbound datagrams for completeness.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []Answer
	Authorities []Answer
	Additionals []Answer
}
