// Package punycode normalizes a human-typed hostname into the canonical ASCII
// form the dictionary keys on and the wire codec serializes: lowercase,
// Punycode-encoded where needed, no trailing dot.
package punycode

import (
	"strings"

	"golang.org/x/net/idna"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
)

// profile is the IDNA2008 "Lookup" profile: it lowercases, applies
// Nameprep-style mapping, and Punycode-encodes non-ASCII labels. STD3
// rules are disabled (StrictDomainName(false)): record data routinely
// carries underscore-prefixed owners (DKIM/SPF selectors, SRV-style
// names) that protocol.ValidateName's LDH+underscore policy allows but
// STD3 would reject outright. Length checks are left to
// protocol.ValidateName as well, so an over-long label is reported as a
// ValidationError rather than as an invalid hostname.
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.VerifyDNSLength(false),
	idna.StrictDomainName(false),
)

// Normalize converts name to its canonical owner-name form: Punycode-encoded
// ASCII, lowercase, with any trailing root dot stripped. Calling Normalize
// twice on its own output is a no-op, so the dictionary builder and the
// record factories can pass already-ASCII names through it without
// double-encoding them. The query handler does not call it: a QNAME is
// already ASCII on the wire and is only lowercased and stripped of its
// trailing dot there.
func Normalize(name string) (string, error) {
	trimmed := strings.TrimSuffix(name, ".")
	if trimmed == "" {
		return "", nil
	}

	ascii, err := profile.ToASCII(trimmed)
	if err != nil {
		return "", &errors.InvalidHostnameError{Label: name, Err: err}
	}

	ascii = strings.ToLower(ascii)

	if err := protocol.ValidateName(ascii); err != nil {
		return "", err
	}

	return ascii, nil
}
