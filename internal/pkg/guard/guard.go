package guard

import (
	"sync"

	"github.com/Iotic-Labs/lz4framed/internal/pkg/opts"
	"github.com/Iotic-Labs/lz4framed/internal/pkg/zerr"
)

// Codec calls working a buffer at least this large are handed to the
// worker pool when one is configured.
const OffloadThreshold = 8 << 10

// GuardT serializes operations on a context and latches Close. Every
// context operation holds the lock for its full body, so Close blocks
// until in-flight work drains and later operations observe the latch.
type GuardT struct {
	mu     sync.Mutex
	closed bool
}

func (g *GuardT) Acquire() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return zerr.ErrClosed
	}
	return nil
}

func (g *GuardT) Release() {
	g.mu.Unlock()
}

// CloseOnce runs release under the lock on the first call only.
func (g *GuardT) CloseOnce(release func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	release()
	return nil
}

// Offload runs task inline, or through the pool when n crosses the
// threshold. It returns once task completes either way; the caller
// keeps holding its context lock throughout.
func Offload(pool opts.WorkerPool, n int, task func()) {
	if pool == nil || n < OffloadThreshold {
		task()
		return
	}

	done := make(chan struct{})
	pool.Submit(func() {
		defer close(done)
		task()
	})
	<-done
}
