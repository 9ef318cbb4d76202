package concurrency

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestPlotKey(t *testing.T) {
	assert.Equal(t, "plot:p1:3", PlotKey("p1", 3))
	assert.NotEqual(t, PlotKey("p1", 1), PlotKey("p11", 1))
}

func TestPlotKey_CanonicalizesUUIDs(t *testing.T) {
	id := "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"

	tests := []struct {
		name  string
		input string
	}{
		{"uppercase", strings.ToUpper(id)},
		{"braced", "{" + id + "}"},
		{"urn", "urn:uuid:" + id},
		{"no hyphens", strings.ReplaceAll(id, "-", "")},
		{"padded", " " + id + " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PlotKey(id, 2), PlotKey(tt.input, 2))
		})
	}
	assert.NotEqual(t, PlotKey(id, 2), PlotKey(id, 3))
}

func TestPlotKey_AliasedIDsShareMutex(t *testing.T) {
	lm := NewLockManager()
	id := "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	assert.Same(t, lm.GetLock(PlotKey(id, 0)), lm.GetLock(PlotKey(strings.ToUpper(id), 0)))
}

func TestWithLock_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()
	key := PlotKey("owner", 0)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = lm.WithLock(context.Background(), key, func() error {
				v := counter
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestWithLock_ReturnsError(t *testing.T) {
	lm := NewLockManager()
	boom := errors.New("boom")
	assert.ErrorIs(t, lm.WithLock(context.Background(), "k", func() error { return boom }), boom)
}

func TestWithLock_SkipsExpiredContext(t *testing.T) {
	lm := NewLockManager()
	key := PlotKey("owner", 1)

	// Hold the lock while the waiter's context expires
	held := lm.GetLock(key)
	held.Lock()

	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	done := make(chan error, 1)
	go func() {
		done <- lm.WithLock(ctx, key, func() error {
			ran = true
			return nil
		})
	}()

	cancel()
	held.Unlock()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)

	// The lock is released afterwards
	assert.NoError(t, lm.WithLock(context.Background(), key, func() error { return nil }))
}
