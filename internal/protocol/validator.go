package protocol

import (
	"fmt"
	"strings"

	"github.com/joshuafuller/dnsmock/internal/errors"
)

// ValidateName checks that a DNS name satisfies the wire-format constraints of
// RFC 1035 §3.1: total length, per-label length, and label character set. It
// operates on the already-normalized (post-punycode) form of a name, so callers
// run this after the punycode package has had a chance to reject anything it
// cannot represent.
func ValidateName(name string) error {
	if name == "" {
		return &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: "name cannot be empty",
		}
	}

	name = strings.TrimSuffix(name, ".")
	labels := strings.Split(name, ".")

	wireLength := 1 // root terminator
	for _, label := range labels {
		wireLength += 1 + len(label)
	}
	if wireLength > MaxNameLength {
		return &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: fmt.Sprintf("name exceeds maximum length %d bytes (wire format: %d bytes)", MaxNameLength, wireLength),
		}
	}

	for i, label := range labels {
		if err := validateLabel(label, i); err != nil {
			return &errors.ValidationError{
				Field:   "name",
				Value:   name,
				Message: err.Error(),
			}
		}
	}

	return nil
}

func validateLabel(label string, position int) error {
	if label == "" {
		return fmt.Errorf("empty label at position %d (consecutive dots)", position)
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("label %q exceeds maximum length %d bytes", label, MaxLabelLength)
	}
	if strings.HasPrefix(label, "-") {
		return fmt.Errorf("label %q starts with hyphen", label)
	}
	if strings.HasSuffix(label, "-") {
		return fmt.Errorf("label %q ends with hyphen", label)
	}
	for i, ch := range label {
		if !isValidDNSChar(ch) {
			return fmt.Errorf("invalid character %q in label %q (position %d)", ch, label, i)
		}
	}
	return nil
}

// isValidDNSChar reports whether ch may appear in a DNS label. Underscore is
// allowed even though RFC 1035 predates it, since it shows up routinely in
// real zone data (e.g. DKIM/SPF selector names, SRV-style owners).
func isValidDNSChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' ||
		ch == '_'
}
