package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Keys are never evicted; the set
// of tournaments a process touches is small.
type LockManager struct {
	locks sync.Map
}

func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for key.
func (lm *LockManager) WithLock(key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
