package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuafuller/dnsmock/internal/errors"
)

// headerSize is the fixed length of a DNS message header in octets.
const headerSize = 12

// ParseMessage decodes a complete DNS message per RFC 1035 §4.1: header,
// then the question, answer, authority, and additional sections in turn.
func ParseMessage(msg []byte) (*Message, error) {
	header, err := ParseHeader(msg)
	if err != nil {
		return nil, err
	}

	offset := headerSize

	questions := make([]Question, header.QDCount)
	for i := range questions {
		q, next, err := ParseQuestion(msg, offset)
		if err != nil {
			return nil, err
		}
		questions[i] = q
		offset = next
	}

	answers, offset, err := parseAnswers(msg, offset, header.ANCount)
	if err != nil {
		return nil, err
	}
	authorities, offset, err := parseAnswers(msg, offset, header.NSCount)
	if err != nil {
		return nil, err
	}
	additionals, _, err := parseAnswers(msg, offset, header.ARCount)
	if err != nil {
		return nil, err
	}

	return &Message{
		Header:      header,
		Questions:   questions,
		Answers:     answers,
		Authorities: authorities,
		Additionals: additionals,
	}, nil
}

func parseAnswers(msg []byte, offset int, count uint16) ([]Answer, int, error) {
	answers := make([]Answer, count)
	for i := range answers {
		a, next, err := ParseAnswer(msg, offset)
		if err != nil {
			return nil, offset, err
		}
		answers[i] = a
		offset = next
	}
	return answers, offset, nil
}

// ParseHeader decodes the fixed 12-byte DNS header per RFC 1035 §4.1.1.
func ParseHeader(msg []byte) (Header, error) {
	if len(msg) < headerSize {
		return Header{}, &errors.WireFormatError{
			Operation: "parse header",
			Offset:    0,
			Message:   fmt.Sprintf("message too short for header: %d bytes, expected at least %d", len(msg), headerSize),
		}
	}

	return Header{
		ID:      binary.BigEndian.Uint16(msg[0:2]),
		Flags:   binary.BigEndian.Uint16(msg[2:4]),
		QDCount: binary.BigEndian.Uint16(msg[4:6]),
		ANCount: binary.BigEndian.Uint16(msg[6:8]),
		NSCount: binary.BigEndian.Uint16(msg[8:10]),
		ARCount: binary.BigEndian.Uint16(msg[10:12]),
	}, nil
}

// ParseQuestion decodes one question-section entry starting at offset.
func ParseQuestion(msg []byte, offset int) (Question, int, error) {
	qname, next, err := ParseName(msg, offset)
	if err != nil {
		return Question{}, offset, err
	}

	if next+4 > len(msg) {
		return Question{}, offset, &errors.WireFormatError{
			Operation: "parse question",
			Offset:    next,
			Message:   "truncated question: not enough bytes for QTYPE and QCLASS",
		}
	}

	return Question{
		QNAME:  qname,
		QTYPE:  binary.BigEndian.Uint16(msg[next : next+2]),
		QCLASS: binary.BigEndian.Uint16(msg[next+2 : next+4]),
	}, next + 4, nil
}

// ParseAnswer decodes one resource-record entry (answer, authority, or
// additional section) starting at offset.
func ParseAnswer(msg []byte, offset int) (Answer, int, error) {
	name, next, err := ParseName(msg, offset)
	if err != nil {
		return Answer{}, offset, err
	}

	if next+10 > len(msg) {
		return Answer{}, offset, &errors.WireFormatError{
			Operation: "parse answer",
			Offset:    next,
			Message:   "truncated answer: not enough bytes for fixed fields",
		}
	}

	rtype := binary.BigEndian.Uint16(msg[next : next+2])
	class := binary.BigEndian.Uint16(msg[next+2 : next+4])
	ttl := binary.BigEndian.Uint32(msg[next+4 : next+8])
	rdlength := binary.BigEndian.Uint16(msg[next+8 : next+10])
	next += 10

	if next+int(rdlength) > len(msg) {
		return Answer{}, offset, &errors.WireFormatError{
			Operation: "parse answer",
			Offset:    next,
			Message:   fmt.Sprintf("truncated RDATA: expected %d bytes, only %d available", rdlength, len(msg)-next),
		}
	}

	rdata := make([]byte, rdlength)
	copy(rdata, msg[next:next+int(rdlength)])

	return Answer{
		Name:     name,
		Type:     rtype,
		Class:    class,
		TTL:      ttl,
		RDLength: rdlength,
		RDATA:    rdata,
	}, next + int(rdlength), nil
}
