// Package records defines the resource-record types the mock dictionary
// stores and the wire codec serializes: one Go type per DNS record type,
// replacing the stringly-typed dispatch a looser schema would otherwise
// need with an exhaustive type switch.
package records

import (
	"bytes"
	"encoding/binary"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
	"github.com/joshuafuller/dnsmock/internal/wire"
)

// Type is a DNS record type tag, aliased from the protocol package so
// callers outside internal/ don't need to import it directly.
type Type = protocol.RecordType

// Supported record type tags.
const (
	TypeA     = protocol.TypeA
	TypeAAAA  = protocol.TypeAAAA
	TypeCNAME = protocol.TypeCNAME
	TypeMX    = protocol.TypeMX
	TypeNS    = protocol.TypeNS
	TypePTR   = protocol.TypePTR
	TypeSOA   = protocol.TypeSOA
	TypeTXT   = protocol.TypeTXT
)

// RR is implemented by every concrete record type in this package. It is
// also the minimal shape the wire codec (internal/wire.RR) needs to
// serialize a record, satisfied structurally without either package
// importing the other's interface.
type RR interface {
	Owner() string
	RRType() uint16
	RRTTL() uint32
	SetTTL(ttl uint32)
	Kind() Type
	WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error
}

// Header carries the fields every record type shares: the owner name (in
// normalized punycode form) and the TTL.
type Header struct {
	OwnerName string
	TTLValue  uint32
}

func (h Header) Owner() string      { return h.OwnerName }
func (h Header) RRTTL() uint32      { return h.TTLValue }
func (h *Header) SetTTL(ttl uint32) { h.TTLValue = ttl }

// A is an IPv4 address record.
type A struct {
	Header
	Addr [4]byte
}

func (r *A) RRType() uint16 { return uint16(protocol.TypeA) }
func (r *A) Kind() Type     { return protocol.TypeA }
func (r *A) WriteRDATA(buf *bytes.Buffer, _ map[string]int) error {
	buf.Write(r.Addr[:])
	return nil
}

// AAAA is an IPv6 address record.
type AAAA struct {
	Header
	Addr [16]byte
}

func (r *AAAA) RRType() uint16 { return uint16(protocol.TypeAAAA) }
func (r *AAAA) Kind() Type     { return protocol.TypeAAAA }
func (r *AAAA) WriteRDATA(buf *bytes.Buffer, _ map[string]int) error {
	buf.Write(r.Addr[:])
	return nil
}

// CNAME is a canonical-name alias record.
type CNAME struct {
	Header
	Target string
}

func (r *CNAME) RRType() uint16 { return uint16(protocol.TypeCNAME) }
func (r *CNAME) Kind() Type     { return protocol.TypeCNAME }
func (r *CNAME) WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error {
	return wire.WriteName(buf, r.Target, offsets)
}

// NS is an authoritative name-server record.
type NS struct {
	Header
	Target string
}

func (r *NS) RRType() uint16 { return uint16(protocol.TypeNS) }
func (r *NS) Kind() Type     { return protocol.TypeNS }
func (r *NS) WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error {
	return wire.WriteName(buf, r.Target, offsets)
}

// PTR is a reverse-lookup pointer record.
type PTR struct {
	Header
	Target string
}

func (r *PTR) RRType() uint16 { return uint16(protocol.TypePTR) }
func (r *PTR) Kind() Type     { return protocol.TypePTR }
func (r *PTR) WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error {
	return wire.WriteName(buf, r.Target, offsets)
}

// MX is a mail-exchange record. Preference is resolved by the dictionary
// builder per the auto-priority rule when the caller didn't supply one
// explicitly; ExplicitPreference reports which case applied.
type MX struct {
	Header
	Preference         uint16
	Exchange           string
	explicitPreference bool
}

func (r *MX) RRType() uint16            { return uint16(protocol.TypeMX) }
func (r *MX) Kind() Type                { return protocol.TypeMX }
func (r *MX) ExplicitPreference() bool  { return r.explicitPreference }
func (r *MX) SetPreference(pref uint16) { r.Preference = pref }
func (r *MX) WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], r.Preference)
	buf.Write(b[:])
	return wire.WriteName(buf, r.Exchange, offsets)
}

// SOA is a start-of-authority record. The dictionary never stores more than
// one per owner (invariant 4 — enforced by the dictionary, not this type).
type SOA struct {
	Header
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (r *SOA) RRType() uint16 { return uint16(protocol.TypeSOA) }
func (r *SOA) Kind() Type     { return protocol.TypeSOA }
func (r *SOA) WriteRDATA(buf *bytes.Buffer, offsets map[string]int) error {
	if err := wire.WriteName(buf, r.MName, offsets); err != nil {
		return err
	}
	if err := wire.WriteName(buf, r.RName, offsets); err != nil {
		return err
	}
	for _, v := range []uint32{r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum} {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}
	return nil
}

// TXT is a single character-string text record.
type TXT struct {
	Header
	Text string
}

const maxTXTLength = 255

func (r *TXT) RRType() uint16 { return uint16(protocol.TypeTXT) }
func (r *TXT) Kind() Type     { return protocol.TypeTXT }
func (r *TXT) WriteRDATA(buf *bytes.Buffer, _ map[string]int) error {
	if len(r.Text) > maxTXTLength {
		return &errors.ValidationError{
			Field:   "text",
			Value:   r.Text,
			Message: "TXT character-string exceeds 255 octets",
		}
	}
	buf.WriteByte(byte(len(r.Text)))
	buf.WriteString(r.Text)
	return nil
}
