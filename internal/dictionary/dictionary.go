// Package dictionary builds and serves the mock server's resource-record
// store: the loose, human-friendly owner→type→value mapping described by
// the external records schema, turned into a typed, query-ready lookup
// table by the record factories in the records package.
package dictionary

import (
	"fmt"
	"net"

	"github.com/joshuafuller/dnsmock/internal/punycode"
	"github.com/joshuafuller/dnsmock/internal/reversedns"
	"github.com/joshuafuller/dnsmock/records"
)

// Records is the loose input schema: outer keys are owner names or IP
// literals (for PTR), inner keys are lowercase type tags ("a", "mx", …),
// and values are either a scalar or an ordered list depending on type —
// see buildTypeEntries for the accepted shape of each tag.
type Records map[string]map[string]any

// Key identifies one dictionary slot: a normalized owner name paired with
// a record type. All RRs stored under a Key share that exact owner and
// type (invariant 5).
type Key struct {
	Owner string
	Type  records.Type
}

// Dictionary is the immutable, query-ready record store built from Records.
// Once built it is never mutated; a server swaps to a newly built
// Dictionary wholesale instead (see the top-level server package).
type Dictionary struct {
	entries map[Key][]records.RR
}

// Build walks input and constructs a Dictionary. It fails fast: the first
// factory error aborts the whole build and no partial dictionary escapes.
func Build(input Records) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[Key][]records.RR, len(input))}

	for owner, typed := range input {
		normalizedOwner, err := normalizeOwner(owner)
		if err != nil {
			return nil, err
		}
		for tag, value := range typed {
			if err := d.buildTypeEntries(normalizedOwner, tag, value); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// BuildWithTTL behaves like Build, then stamps ttl onto every stored RR.
// It exists for the server TTL override option (§9.2): the factories
// always assemble records at the package TTL default, so a non-default TTL
// is applied as a second pass rather than threaded through every factory.
func BuildWithTTL(input Records, ttl uint32) (*Dictionary, error) {
	d, err := Build(input)
	if err != nil {
		return nil, err
	}
	for _, rrs := range d.entries {
		for _, rr := range rrs {
			rr.SetTTL(ttl)
		}
	}
	return d, nil
}

// Lookup returns the stored RRs for (owner, recordType), if any. owner must
// already be in normalized form (the query handler normalizes QNAME before
// calling Lookup; callers building their own lookups should normalize via
// punycode.Normalize or reversedns.Name first).
func (d *Dictionary) Lookup(owner string, recordType records.Type) ([]records.RR, bool) {
	rrs, ok := d.entries[Key{Owner: owner, Type: recordType}]
	return rrs, ok
}

func normalizeOwner(owner string) (string, error) {
	if ip := net.ParseIP(owner); ip != nil {
		return reversedns.Name(owner)
	}
	return punycode.Normalize(owner)
}

func (d *Dictionary) buildTypeEntries(owner, tag string, value any) error {
	switch tag {
	case "a":
		return d.buildList(owner, records.TypeA, value, func(v string) (records.RR, error) { return records.BuildA(owner, v) })
	case "aaaa":
		return d.buildList(owner, records.TypeAAAA, value, func(v string) (records.RR, error) { return records.BuildAAAA(owner, v) })
	case "cname":
		rr, err := records.BuildCNAME(owner, toScalarString(value))
		if err != nil {
			return err
		}
		d.store(owner, records.TypeCNAME, rr)
		return nil
	case "ns":
		return d.buildList(owner, records.TypeNS, value, func(v string) (records.RR, error) { return records.BuildNS(owner, v) })
	case "ptr":
		return d.buildList(owner, records.TypePTR, value, func(v string) (records.RR, error) { return records.BuildPTR(owner, v) })
	case "txt":
		return d.buildList(owner, records.TypeTXT, value, func(v string) (records.RR, error) { return records.BuildTXT(owner, v) })
	case "soa":
		soaValue, err := toSOAValue(value)
		if err != nil {
			return err
		}
		rr, err := records.BuildSOA(owner, soaValue)
		if err != nil {
			return err
		}
		d.store(owner, records.TypeSOA, rr)
		return nil
	case "mx":
		return d.buildMXEntries(owner, value)
	default:
		return fmt.Errorf("unsupported record type tag %q", tag)
	}
}

func (d *Dictionary) buildList(owner string, t records.Type, value any, build func(string) (records.RR, error)) error {
	items, err := toStringList(value)
	if err != nil {
		return err
	}
	rrs := make([]records.RR, 0, len(items))
	for _, item := range items {
		rr, err := build(item)
		if err != nil {
			return err
		}
		rrs = append(rrs, rr)
	}
	d.entries[Key{Owner: owner, Type: t}] = append(d.entries[Key{Owner: owner, Type: t}], rrs...)
	return nil
}

// buildMXEntries parses every MX item for owner, then applies the
// auto-priority rule (invariant 3): entries without an explicit preference
// receive 10 * (position + 1), where position is the 0-indexed slot in the
// declared list. An explicit value elsewhere in the list neither consumes
// nor resets that positional count.
func (d *Dictionary) buildMXEntries(owner string, value any) error {
	items, err := toList(value)
	if err != nil {
		return err
	}

	mxRRs := make([]*records.MX, 0, len(items))
	for _, item := range items {
		mxValue, err := toMXBuildValue(item)
		if err != nil {
			return err
		}
		rr, err := records.BuildMX(owner, mxValue)
		if err != nil {
			return err
		}
		mxRRs = append(mxRRs, rr)
	}

	for i, rr := range mxRRs {
		if !rr.ExplicitPreference() {
			rr.SetPreference(uint16(10 * (i + 1))) //nolint:gosec // step*position bounded well under uint16 range for realistic fixtures
		}
	}

	rrs := make([]records.RR, len(mxRRs))
	for i, rr := range mxRRs {
		rrs[i] = rr
	}
	d.store(owner, records.TypeMX, rrs...)
	return nil
}

func (d *Dictionary) store(owner string, t records.Type, rrs ...records.RR) {
	key := Key{Owner: owner, Type: t}
	d.entries[key] = append(d.entries[key], rrs...)
}
