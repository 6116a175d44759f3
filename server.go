package dnsmock

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joshuafuller/dnsmock/internal/dictionary"
	"github.com/joshuafuller/dnsmock/internal/errors"
	"github.com/joshuafuller/dnsmock/internal/handler"
	"github.com/joshuafuller/dnsmock/internal/transport"
	"github.com/joshuafuller/dnsmock/records"
)

type serverState int

const (
	stateCreated serverState = iota
	stateListening
	stateStopped
)

// Server is one mock DNS responder bound to a single UDP port. Lifecycle:
// created (socket bound) → listening (accept loop running) → stopped
// (socket closed, accept loop exited).
type Server struct {
	listener *transport.Listener
	handler  *handler.Handler
	dict     atomic.Pointer[dictionary.Dictionary]
	notFound chan *errors.RecordNotFoundError
	logger   *slog.Logger
	ttl      uint32

	mu    sync.Mutex
	state serverState
	wg    sync.WaitGroup
}

// StartServer builds the initial dictionary, binds the listen port, and
// starts the accept loop. On any failure (invalid option, bad record
// input, socket bind failure) no server is registered — the caller gets
// the error and nothing else changes.
func StartServer(opts ...Option) (*Server, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	dict, err := dictionary.BuildWithTTL(cfg.records, cfg.ttl)
	if err != nil {
		return nil, err
	}

	listener, err := transport.Listen(cfg.port)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener: listener,
		logger:   cfg.logger,
		ttl:      cfg.ttl,
		notFound: make(chan *errors.RecordNotFoundError, 64),
		state:    stateCreated,
	}
	s.dict.Store(dict)
	s.handler = handler.New(cfg.logger, cfg.strict, s.lookup)

	s.mu.Lock()
	s.state = stateListening
	s.mu.Unlock()

	s.wg.Add(1)
	go s.acceptLoop()

	register(s)
	return s, nil
}

func (s *Server) lookup(owner string, recordType records.Type) ([]records.RR, bool) {
	return s.dict.Load().Lookup(owner, recordType)
}

// acceptLoop is the server's one background worker: it blocks on the
// socket's receive, hands each datagram to the handler, and writes back
// whatever response the handler produces. It exits when Stop closes the
// socket and the receive call returns an error.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		bufPtr := transport.GetBuffer()
		n, addr, err := s.listener.ReadFrom(*bufPtr)
		if err != nil {
			transport.PutBuffer(bufPtr)
			return
		}

		datagram := make([]byte, n)
		copy(datagram, (*bufPtr)[:n])
		transport.PutBuffer(bufPtr)

		response, notFound := s.handler.HandleDatagram(datagram)
		if response != nil {
			if writeErr := s.listener.WriteTo(response, addr); writeErr != nil {
				s.logger.Warn("failed to send response datagram", "error", writeErr)
			}
		}
		if notFound != nil {
			select {
			case s.notFound <- notFound:
			default:
				s.logger.Warn("dropping RecordNotFoundError: notification channel full",
					"owner", notFound.Owner, "type", notFound.Type)
			}
		}
	}
}

// Port returns the bound listen port, resolving the OS-assigned value when
// the server was started with an ephemeral port.
func (s *Server) Port() uint16 {
	return s.listener.Port()
}

// AssignMocks rebuilds the dictionary from records and atomically swaps it
// into place. In-flight queries observe either the old dictionary or the
// new one, never a mix. On a build error the previous dictionary remains
// in place.
func (s *Server) AssignMocks(newRecords dictionary.Records) error {
	dict, err := dictionary.BuildWithTTL(newRecords, s.ttl)
	if err != nil {
		return err
	}
	s.dict.Store(dict)
	return nil
}

// NotFound returns the channel the hosting process can drain for
// RecordNotFoundError notifications raised in strict mode. Delivery is
// non-blocking: if the channel is full, the notification is dropped and a
// warning is logged rather than stalling the accept loop.
func (s *Server) NotFound() <-chan *errors.RecordNotFoundError {
	return s.notFound
}

// Stop closes the socket, which unblocks the accept loop's receive, then
// waits for the accept loop to exit before returning. Calling Stop on an
// already-stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.state == stateStopped {
		s.mu.Unlock()
		return nil
	}
	s.state = stateStopped
	s.mu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	unregister(s)
	return err
}
