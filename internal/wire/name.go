package wire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
)

// ParseName decodes a DNS name starting at offset in msg, following
// compression pointers per RFC 1035 §4.1.4. It returns the dotted-label
// name and the offset immediately following the name's on-the-wire
// encoding (which, for a compressed name, is the offset after the two-byte
// pointer, not after whatever the pointer jumped to).
func ParseName(msg []byte, offset int) (name string, newOffset int, err error) {
	if offset < 0 || offset >= len(msg) {
		return "", offset, &errors.WireFormatError{
			Operation: "parse name",
			Offset:    offset,
			Message:   "offset out of bounds",
		}
	}

	var labels []string
	jumps := 0
	pos := offset
	jumped := false

	for {
		if pos >= len(msg) {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   "unexpected end of message while parsing name",
			}
		}

		length := msg[pos]

		if (length & protocol.CompressionMask) == protocol.CompressionMask {
			if pos+1 >= len(msg) {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   "truncated compression pointer",
				}
			}

			pointerOffset := int(msg[pos]&0x3F)<<8 | int(msg[pos+1])
			if pointerOffset >= pos {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   fmt.Sprintf("invalid compression pointer: points to offset %d (current position %d)", pointerOffset, pos),
				}
			}

			if !jumped {
				newOffset = pos + 2
				jumped = true
			}

			pos = pointerOffset
			jumps++
			if jumps > protocol.MaxCompressionPointers {
				return "", offset, &errors.WireFormatError{
					Operation: "parse name",
					Offset:    pos,
					Message:   fmt.Sprintf("too many compression jumps (possible loop, exceeded %d)", protocol.MaxCompressionPointers),
				}
			}
			continue
		}

		if length == 0 {
			if !jumped {
				newOffset = pos + 1
			}
			break
		}

		if length > protocol.MaxLabelLength {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   fmt.Sprintf("label length %d exceeds maximum %d bytes", length, protocol.MaxLabelLength),
			}
		}

		if pos+1+int(length) > len(msg) {
			return "", offset, &errors.WireFormatError{
				Operation: "parse name",
				Offset:    pos,
				Message:   fmt.Sprintf("truncated label: expected %d bytes, only %d available", length, len(msg)-pos-1),
			}
		}

		labels = append(labels, string(msg[pos+1:pos+1+int(length)]))
		pos += 1 + int(length)
	}

	name = strings.Join(labels, ".")
	if len(name) > protocol.MaxNameLength {
		return "", offset, &errors.WireFormatError{
			Operation: "parse name",
			Offset:    offset,
			Message:   fmt.Sprintf("name length %d exceeds maximum %d bytes", len(name), protocol.MaxNameLength),
		}
	}

	return name, newOffset, nil
}

// EncodeName encodes name into wire format with no compression: a sequence
// of length-prefixed labels terminated by a zero-length label. name must
// already be in its normalized (punycoded, lowercase, no trailing dot) form.
func EncodeName(name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteName(&buf, name, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteName appends name's wire encoding to buf. If offsets is non-nil, it is
// consulted and updated as a compression table: any label suffix of name
// already recorded at a prior offset is replaced with a two-byte pointer,
// and any new, pointer-addressable suffix (offset ≤ 0x3FFF) this call writes
// is recorded for later names to point back to. Passing a nil map disables
// compression entirely.
func WriteName(buf *bytes.Buffer, name string, offsets map[string]int) error {
	labels, err := splitLabels(name)
	if err != nil {
		return err
	}

	for i := range labels {
		suffix := strings.Join(labels[i:], ".")

		if offsets != nil {
			if ptr, ok := offsets[suffix]; ok {
				buf.WriteByte(protocol.CompressionMask | byte(ptr>>8))
				buf.WriteByte(byte(ptr))
				return nil
			}
			if offset := buf.Len(); offset <= 0x3FFF {
				offsets[suffix] = offset
			}
		}

		buf.WriteByte(byte(len(labels[i])))
		buf.WriteString(labels[i])
	}

	buf.WriteByte(0)
	return nil
}

// splitLabels validates and splits a normalized name into its labels. The
// root name ("" or ".") yields an empty, non-nil slice.
func splitLabels(name string) ([]string, error) {
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return []string{}, nil
	}

	labels := strings.Split(name, ".")
	encodedLen := 1
	for _, label := range labels {
		if label == "" {
			return nil, &errors.ValidationError{
				Field:   "name",
				Value:   name,
				Message: "empty label (consecutive dots)",
			}
		}
		if len(label) > protocol.MaxLabelLength {
			return nil, &errors.ValidationError{
				Field:   "name",
				Value:   name,
				Message: fmt.Sprintf("label %q exceeds maximum length %d bytes", label, protocol.MaxLabelLength),
			}
		}
		encodedLen += 1 + len(label)
	}

	if encodedLen > protocol.MaxNameLength {
		return nil, &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: fmt.Sprintf("encoded name length %d exceeds maximum %d bytes", encodedLen, protocol.MaxNameLength),
		}
	}

	return labels, nil
}
