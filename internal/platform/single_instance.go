// Package platform wraps the few OS-specific concerns the app has:
// keeping a second copy from starting and registering login autostart.
package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning means another process of this app holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is a cross-platform single-instance lock backed by a loopback
// listener. The port is derived from the app id, so every copy of the app
// competes for the same one; closing the process releases it even after a
// crash.
type Lock struct {
	listener net.Listener
}

// TryLock claims the instance lock or fails with ErrAlreadyRunning.
func TryLock(appID string) (*Lock, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", lockPort(appID)))
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &Lock{listener: listener}, nil
}

// Release gives the lock up. Safe on a nil lock.
func (lock *Lock) Release() {
	if lock == nil || lock.listener == nil {
		return
	}
	_ = lock.listener.Close()
	lock.listener = nil
}

// lockPort maps the app id into the dynamic port range, away from
// well-known services.
func lockPort(appID string) int {
	const base, span = 49152, 16384
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(appID))
	return base + int(hasher.Sum32()%span)
}
