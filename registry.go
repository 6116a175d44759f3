package dnsmock

import "sync"

// registry is the process-wide ordered collection of live servers — the
// only piece of process-scoped state in this module; everything else
// belongs to an individual Server. Adapted from the teacher's
// mutex-guarded service registry, but ordered (a slice, not a map) since
// running_servers callers expect registration order.
type registry struct {
	mu      sync.Mutex
	servers []*Server
}

var globalRegistry = &registry{}

func register(s *Server) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.servers = append(globalRegistry.servers, s)
}

func unregister(s *Server) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	for i, candidate := range globalRegistry.servers {
		if candidate == s {
			globalRegistry.servers = append(globalRegistry.servers[:i], globalRegistry.servers[i+1:]...)
			return
		}
	}
}

// RunningServers returns a snapshot of every currently-registered server,
// in registration order. Mutating the returned slice does not affect the
// registry.
func RunningServers() []*Server {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	snapshot := make([]*Server, len(globalRegistry.servers))
	copy(snapshot, globalRegistry.servers)
	return snapshot
}

// StopRunningServers stops every registered server and empties the
// registry. It always succeeds, even when the registry is already empty.
func StopRunningServers() bool {
	for _, s := range RunningServers() {
		_ = s.Stop()
	}
	return true
}
