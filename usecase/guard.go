package usecase

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"staking/domain"
)

// Guard serializes the state-mutating ledger operations: one runs at a
// time, later callers queue. A guarded call made from inside another
// guarded call on the same goroutine is a reentrant entry and is rejected
// with ErrorReentrantCall instead of deadlocking.
type Guard struct {
	mu sync.Mutex

	track  sync.Mutex
	holder int64
}

func NewGuard() *Guard {
	return &Guard{}
}

func (guard *Guard) Do(fn func() error) error {
	gid := goroutineID()

	guard.track.Lock()
	reentrant := guard.holder == gid
	guard.track.Unlock()
	if reentrant {
		return domain.ErrorReentrantCall
	}

	guard.mu.Lock()
	defer guard.mu.Unlock()

	guard.track.Lock()
	guard.holder = gid
	guard.track.Unlock()

	defer func() {
		guard.track.Lock()
		guard.holder = 0
		guard.track.Unlock()
	}()

	return fn()
}

// goroutineID extracts the running goroutine's id from its stack header.
// Goroutine ids start at 1, so 0 marks the guard as idle.
func goroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, []byte("goroutine "))
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		buf = buf[:i]
	}
	id, _ := strconv.ParseInt(string(buf), 10, 64)
	return id
}
