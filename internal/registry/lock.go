package registry

import (
	"sync"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

// batchLocks serializes writers per batch. Entries live only while held.
type batchLocks struct {
	mu    sync.Mutex
	locks map[model.BatchID]*batchLock
}

type batchLock struct {
	mu   sync.Mutex
	refs int
}

func newBatchLocks() *batchLocks {
	return &batchLocks{locks: make(map[model.BatchID]*batchLock)}
}

func (l *batchLocks) lock(id model.BatchID) func() {
	l.mu.Lock()
	bl, ok := l.locks[id]
	if !ok {
		bl = &batchLock{}
		l.locks[id] = bl
	}
	bl.refs++
	l.mu.Unlock()

	bl.mu.Lock()
	return func() {
		bl.mu.Unlock()
		l.mu.Lock()
		bl.refs--
		if bl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
