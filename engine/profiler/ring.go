package profiler

import (
	"sync"
	"sync/atomic"
)

type event struct {
	AtNS  int64
	Frame int
	Open  bool
}

// ring keeps the most recent scope open and close events. Older events are
// overwritten once it wraps.
type ring struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []event
}

func (r *ring) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]event, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the retained events in write order.
func (r *ring) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

// frameTable interns scope names into stable frame indices.
type frameTable struct {
	mu    sync.Mutex
	names []string
	index map[string]int
}

func (t *frameTable) intern(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[name]; ok {
		return id
	}
	if t.index == nil {
		t.index = map[string]int{}
	}
	id := len(t.names)
	t.index[name] = id
	t.names = append(t.names, name)
	return id
}

func (t *frameTable) snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.names...)
}
