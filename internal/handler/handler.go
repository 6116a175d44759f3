// Package handler implements the per-datagram DNS query handler: parse,
// normalize, look up, and assemble a response, per RFC 1035 question/answer
// framing restricted to class IN.
package handler

import (
	"log/slog"
	"strings"

	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
	"github.com/joshuafuller/dnsmock/internal/wire"
	"github.com/joshuafuller/dnsmock/records"
)

// Lookup resolves a normalized owner and record type against whatever
// dictionary is current at call time. The server package supplies this
// from an atomically-swapped dictionary so a query never observes a
// half-swapped dictionary.
type Lookup func(owner string, recordType records.Type) ([]records.RR, bool)

// Handler turns inbound datagrams into response datagrams. It holds no
// socket and no mutable state beyond the injected lookup function, so one
// Handler can be shared across every datagram a server's accept loop reads.
type Handler struct {
	logger *slog.Logger
	strict bool
	lookup Lookup
}

// New constructs a Handler. logger must not be nil; pass
// slog.New(slog.DiscardHandler) for a silent default.
func New(logger *slog.Logger, strict bool, lookup Lookup) *Handler {
	return &Handler{logger: logger, strict: strict, lookup: lookup}
}

// HandleDatagram parses one inbound datagram and returns the response to
// send, if any. A malformed datagram (one that fails to parse, or carries
// no question) yields a nil response: the caller must drop it silently,
// never crash, and never reply.
//
// When strict mode is on and the dictionary has no match, HandleDatagram
// still returns a valid NOERROR/empty response (so the client doesn't hang
// or retry) and additionally returns a non-nil notFound error; the caller
// must send the response before surfacing notFound, and must not block the
// accept loop delivering it.
func (h *Handler) HandleDatagram(datagram []byte) (response []byte, notFound *errors.RecordNotFoundError) {
	msg, err := wire.ParseMessage(datagram)
	if err != nil {
		h.logger.Warn("dropping malformed datagram", "error", err)
		return nil, nil
	}
	if len(msg.Questions) == 0 {
		h.logger.Warn("dropping datagram with no question section")
		return nil, nil
	}

	question := msg.Questions[0]
	owner := normalizeQuestionName(question.QNAME)
	recordType := records.Type(question.QTYPE)

	var rrs []records.RR
	var found bool
	if question.QCLASS == uint16(protocol.ClassIN) {
		rrs, found = h.lookup(owner, recordType)
	}

	wireRRs := make([]wire.RR, len(rrs))
	for i, rr := range rrs {
		wireRRs[i] = rr
	}

	response, err = wire.BuildResponse(msg.Header.ID, msg.Header.Flags, question, wireRRs)
	if err != nil {
		h.logger.Warn("dropping datagram: failed to build response", "error", err)
		return nil, nil
	}

	h.logger.Debug("accepted datagram", "owner", owner, "type", recordType, "answers", len(rrs))

	if !found && h.strict {
		notFound = &errors.RecordNotFoundError{Owner: owner, Type: recordType.String()}
	}
	return response, notFound
}

// normalizeQuestionName matches the dictionary builder's owner
// normalization for the query-matching side: lowercase, no trailing dot.
// QNAME is already ASCII on the wire, so no punycode step is needed here —
// punycode conversion happened once, at dictionary build time.
func normalizeQuestionName(qname string) string {
	return strings.ToLower(strings.TrimSuffix(qname, "."))
}
