package concurrency

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LockManager handles named locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the lock for key.
// If ctx is done by the time the lock is acquired, fn is skipped and ctx.Err() is returned.
func (lm *LockManager) WithLock(ctx context.Context, key string, fn func() error) error {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

// PlotKey is the lock key for one plot of one owner.
// UUID owner ids are canonicalized so every spelling of an id maps to the same key.
func PlotKey(ownerID string, index int) string {
	return "plot:" + canonicalID(ownerID) + ":" + strconv.Itoa(index)
}

func canonicalID(id string) string {
	if u, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
		return u.String()
	}
	return id
}
