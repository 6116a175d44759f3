//go:build !linux && !darwin && !windows

package transport

import "syscall"

// platformControl is a no-op on platforms without a dedicated socket-option
// implementation: the fixed port still binds, it just doesn't get the
// rapid-rebind convenience SO_REUSEADDR provides elsewhere.
func platformControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
