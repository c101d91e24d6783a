// Package interplock provides the mutual-exclusion discipline for engines
// built on an embedded interpreter with a single global execution lock.
//
// Two rules govern the boundary. Entering the interpreter on behalf of a
// native evaluation goroutine holds the lock for the duration of that call
// only (With). When interpreter-driven code calls back into native code that
// does not need the interpreter, the lock is released around the callback and
// reacquired afterwards (Without), so other goroutines waiting to enter the
// interpreter are not starved.
package interplock

import "sync"

// RuntimeLock serializes entry into one embedded interpreter runtime.
// Adapters typically share a single package-level RuntimeLock across all of
// their engine instances, mirroring an interpreter-wide lock.
//
// The lock is not reentrant: calling With from code already running under
// With on the same goroutine deadlocks, and Without must only be called from
// code that currently holds the lock. Both primitives restore the lock state
// on every exit path, including panics.
type RuntimeLock struct {
	mu sync.Mutex
}

// New creates an unlocked RuntimeLock.
func New() *RuntimeLock {
	return &RuntimeLock{}
}

// With runs fn holding the lock and returns fn's error. The lock is released
// when fn returns or panics.
func (l *RuntimeLock) With(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// Without releases the already-held lock, runs fn, and reacquires the lock
// before returning, even when fn panics. It must only be called while the
// calling goroutine holds the lock via With.
func (l *RuntimeLock) Without(fn func() error) error {
	l.mu.Unlock()
	defer l.mu.Lock()
	return fn()
}
