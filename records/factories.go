package records

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
	"github.com/joshuafuller/dnsmock/internal/punycode"
)

// SOAValue is the structured input a caller (or the dictionary's loose
// schema loader) supplies to BuildSOA. All seven RFC 1035 §3.3.13 fields
// are required; there is no partial-SOA form.
type SOAValue struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// MXValue is the structured form of an MX entry. Preference is a pointer
// so the dictionary builder can tell "caller omitted it" (nil, subject to
// auto-priority) from "caller explicitly chose 0" (non-nil, the null-MX
// case per RFC 7505).
type MXValue struct {
	Preference *uint16
	Exchange   string
}

func wrapContext(recordType, value string, err error) error {
	return &errors.InvalidRecordContextError{RecordType: recordType, Value: value, Err: err}
}

// BuildA parses value as an IPv4 literal and builds an A record for owner.
func BuildA(owner, value string) (*A, error) {
	ip := net.ParseIP(value)
	if ip == nil {
		return nil, wrapContext("A", value, &errors.InvalidIPAddressError{Value: value})
	}
	v4 := ip.To4()
	if v4 == nil {
		return nil, wrapContext("A", value, &errors.InvalidIPAddressError{Value: value, Err: fmt.Errorf("not an IPv4 address")})
	}
	rr := &A{Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL}}
	copy(rr.Addr[:], v4)
	return rr, nil
}

// BuildAAAA parses value as an IPv6 literal and builds an AAAA record for owner.
func BuildAAAA(owner, value string) (*AAAA, error) {
	ip := net.ParseIP(value)
	if ip == nil {
		return nil, wrapContext("AAAA", value, &errors.InvalidIPAddressError{Value: value})
	}
	if ip.To4() != nil {
		return nil, wrapContext("AAAA", value, &errors.InvalidIPAddressError{Value: value, Err: fmt.Errorf("not an IPv6 address")})
	}
	rr := &AAAA{Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL}}
	copy(rr.Addr[:], ip.To16())
	return rr, nil
}

// BuildCNAME punycodes value and builds a CNAME record for owner.
func BuildCNAME(owner, value string) (*CNAME, error) {
	target, err := punycode.Normalize(value)
	if err != nil {
		return nil, wrapContext("CNAME", value, err)
	}
	return &CNAME{
		Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		Target: target,
	}, nil
}

// BuildNS punycodes value and builds an NS record for owner.
func BuildNS(owner, value string) (*NS, error) {
	target, err := punycode.Normalize(value)
	if err != nil {
		return nil, wrapContext("NS", value, err)
	}
	return &NS{
		Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		Target: target,
	}, nil
}

// BuildPTR punycodes value and builds a PTR record for owner.
func BuildPTR(owner, value string) (*PTR, error) {
	target, err := punycode.Normalize(value)
	if err != nil {
		return nil, wrapContext("PTR", value, err)
	}
	return &PTR{
		Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		Target: target,
	}, nil
}

// BuildTXT builds a TXT record for owner. value must be at most 255 octets;
// the bound is re-checked at serialization time too (WriteRDATA), but
// rejecting it here means a bad dictionary never builds at all.
func BuildTXT(owner, value string) (*TXT, error) {
	if len(value) > maxTXTLength {
		return nil, wrapContext("TXT", value, fmt.Errorf("character-string exceeds %d octets", maxTXTLength))
	}
	return &TXT{
		Header: Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		Text:   value,
	}, nil
}

// BuildSOA builds an SOA record for owner from a fully-populated SOAValue.
func BuildSOA(owner string, value SOAValue) (*SOA, error) {
	mname, err := punycode.Normalize(value.MName)
	if err != nil {
		return nil, wrapContext("SOA", value.MName, err)
	}
	rname, err := punycode.Normalize(value.RName)
	if err != nil {
		return nil, wrapContext("SOA", value.RName, err)
	}
	return &SOA{
		Header:  Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		MName:   mname,
		RName:   rname,
		Serial:  value.Serial,
		Refresh: value.Refresh,
		Retry:   value.Retry,
		Expire:  value.Expire,
		Minimum: value.Minimum,
	}, nil
}

// BuildMX parses a loose MX value — a bare "exchange" string, an
// "exchange:preference" string, or a structured MXValue — and builds an MX
// record for owner. When the caller didn't supply a preference,
// ExplicitPreference() reports false and the dictionary builder fills one
// in per the auto-priority rule once every entry for the owner is parsed.
func BuildMX(owner string, value any) (*MX, error) {
	switch v := value.(type) {
	case string:
		return buildMXFromString(owner, v)
	case MXValue:
		return buildMXFromValue(owner, v)
	default:
		return nil, wrapContext("MX", fmt.Sprintf("%v", value), fmt.Errorf("unsupported MX value type %T", value))
	}
}

func buildMXFromString(owner, raw string) (*MX, error) {
	exchange := raw
	var preference *uint16
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		exchange = raw[:idx]
		prefText := raw[idx+1:]
		n, err := strconv.ParseUint(prefText, 10, 16)
		if err != nil {
			return nil, wrapContext("MX", raw, fmt.Errorf("invalid preference %q: %w", prefText, err))
		}
		p := uint16(n)
		preference = &p
	}
	return buildMXFromValue(owner, MXValue{Preference: preference, Exchange: exchange})
}

func buildMXFromValue(owner string, value MXValue) (*MX, error) {
	exchange, err := punycode.Normalize(value.Exchange)
	if err != nil {
		return nil, wrapContext("MX", value.Exchange, err)
	}

	rr := &MX{
		Header:   Header{OwnerName: owner, TTLValue: protocol.DefaultTTL},
		Exchange: exchange,
	}
	if value.Preference != nil {
		rr.Preference = *value.Preference
		rr.explicitPreference = true
	}
	return rr, nil
}
