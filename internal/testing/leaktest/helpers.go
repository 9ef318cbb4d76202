// Package leaktest runs contended operations in tests and checks that no
// goroutines outlive them.
package leaktest

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

// GoroutineChecker records the goroutine count at creation and compares later
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines were leaked
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(500 * time.Millisecond)
	var after int
	for {
		runtime.Gosched()
		after = runtime.NumGoroutine()
		if after-g.before <= tolerance || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// Concurrently starts n goroutines that call fn at the same moment and
// returns their errors indexed by worker. The test fails if any goroutine
// is still running afterwards.
func Concurrently(t testing.TB, n int, fn func(worker int) error) []error {
	t.Helper()

	errs := make([]error, n)
	CheckNoGoroutineLeak(t, func() {
		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				<-start
				errs[worker] = fn(worker)
			}(i)
		}
		close(start)
		wg.Wait()
	})
	return errs
}

// CountNil returns how many errors in errs are nil
func CountNil(errs []error) int {
	n := 0
	for _, err := range errs {
		if err == nil {
			n++
		}
	}
	return n
}
