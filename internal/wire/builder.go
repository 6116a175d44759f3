package wire

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
)

// RR is the minimal view of a resource record the wire codec needs to
// serialize an answer. The records package's RR implementations satisfy
// this structurally, so wire has no import dependency on records.
type RR interface {
	Owner() string
	RRType() uint16
	RRTTL() uint32
	WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error
}

// BuildQuery constructs a standard DNS query message: a random transaction
// ID, a single question, and no other sections. It is used by the embedded
// test client, not by the server itself.
func BuildQuery(name string, qtype uint16) ([]byte, error) {
	var buf bytes.Buffer

	id, err := randomID()
	if err != nil {
		return nil, err
	}

	writeHeader(&buf, id, 0, 1, 0, 0, 0)

	if err := WriteName(&buf, name, nil); err != nil {
		return nil, err
	}
	writeUint16(&buf, qtype)
	writeUint16(&buf, uint16(protocol.ClassIN))

	return buf.Bytes(), nil
}

// BuildResponse constructs a response message for the given request header
// ID/flags and echoed question, with one answer per rr, in order. Answer
// names use a compression pointer back to the question's QNAME whenever
// they match it exactly, per RFC 1035 §4.1.4.
func BuildResponse(requestID uint16, requestFlags uint16, question Question, rrs []RR) ([]byte, error) {
	var buf bytes.Buffer

	responseFlags := protocol.FlagQR |
		(requestFlags & (0x7800 | protocol.FlagRD)) | // OPCODE + RD echoed
		protocol.RCodeNoError

	// ANCOUNT is bounded by len(rrs), which the dictionary never grows past
	// a realistic test fixture size, but clamp defensively against overflow.
	anCount := len(rrs)
	if anCount > 0xFFFF {
		anCount = 0xFFFF
	}
	writeHeader(&buf, requestID, responseFlags, 1, uint16(anCount), 0, 0) //nolint:gosec // clamped above

	offsets := make(map[string]int)
	if err := WriteName(&buf, question.QNAME, offsets); err != nil {
		return nil, err
	}
	writeUint16(&buf, question.QTYPE)
	writeUint16(&buf, question.QCLASS)

	for _, rr := range rrs {
		if err := writeAnswer(&buf, rr, offsets); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func writeAnswer(buf *bytes.Buffer, rr RR, offsets map[string]int) error {
	if err := WriteName(buf, rr.Owner(), offsets); err != nil {
		return err
	}
	writeUint16(buf, rr.RRType())
	writeUint16(buf, uint16(protocol.ClassIN))
	writeUint32(buf, rr.RRTTL())

	rdlengthOffset := buf.Len()
	writeUint16(buf, 0) // placeholder, patched below

	rdataStart := buf.Len()
	if err := rr.WriteRDATA(buf, offsets); err != nil {
		return err
	}
	rdlength := buf.Len() - rdataStart
	if rdlength > 0xFFFF {
		return &errors.ValidationError{
			Field:   "RDATA",
			Value:   rdlength,
			Message: "encoded RDATA exceeds 65535 bytes",
		}
	}

	patched := buf.Bytes()
	binary.BigEndian.PutUint16(patched[rdlengthOffset:rdlengthOffset+2], uint16(rdlength)) //nolint:gosec // bounds checked above
	return nil
}

func writeHeader(buf *bytes.Buffer, id, flags, qdcount, ancount, nscount, arcount uint16) {
	writeUint16(buf, id)
	writeUint16(buf, flags)
	writeUint16(buf, qdcount)
	writeUint16(buf, ancount)
	writeUint16(buf, nscount)
	writeUint16(buf, arcount)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func randomID() (uint16, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(65536))
	if err != nil {
		return 0, &errors.NetworkError{Operation: "generate query ID", Err: err}
	}
	return uint16(n.Uint64()), nil //nolint:gosec // bounded to [0, 65535] by rand.Int's max argument
}
