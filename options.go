package dnsmock

import (
	"log/slog"

	"github.com/joshuafuller/dnsmock/internal/dictionary"
	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/protocol"
)

// Option configures a Server at StartServer time. Options are applied in
// order and validated as they're applied; an invalid combination returns a
// ValidationError from StartServer rather than panicking.
type Option func(*config) error

type config struct {
	records dictionary.Records
	port    int
	strict  bool
	logger  *slog.Logger
	ttl     uint32
}

func defaultConfig() *config {
	return &config{
		records: dictionary.Records{},
		port:    protocol.DefaultPort,
		strict:  false,
		logger:  slog.New(slog.DiscardHandler),
		ttl:     protocol.DefaultTTL,
	}
}

// WithRecords seeds the server's initial dictionary. Equivalent to calling
// AssignMocks immediately after StartServer, but fails the start instead of
// leaving a server registered with an empty dictionary on bad input.
func WithRecords(records dictionary.Records) Option {
	return func(c *config) error {
		c.records = records
		return nil
	}
}

// WithPort pins the listen port. 0 requests an OS-assigned ephemeral port.
// Without this option the server listens on protocol.DefaultPort (5300).
func WithPort(port int) Option {
	return func(c *config) error {
		if port < 0 || port > 65535 {
			return &errors.ValidationError{Field: "port", Value: port, Message: "port must be between 0 and 65535"}
		}
		c.port = port
		return nil
	}
}

// WithStrict enables exception_if_not_found mode: a query that misses the
// dictionary is still answered NOERROR/empty, but the server additionally
// signals a RecordNotFoundError on its NotFound channel.
func WithStrict(strict bool) Option {
	return func(c *config) error {
		c.strict = strict
		return nil
	}
}

// WithLogger injects a structured logger. The default is a no-op logger so
// tests stay quiet unless a caller opts in.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "logger must not be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithTTL overrides the TTL stamped on every record. Tests that want to
// observe a non-default TTL (rather than the 1-second default meant to
// defeat client-side caching) use this.
func WithTTL(ttl uint32) Option {
	return func(c *config) error {
		c.ttl = ttl
		return nil
	}
}
