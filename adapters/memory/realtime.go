package memory

import (
	"sync"

	"github.com/goliatone/go-statebridge"
)

// Realtime is an in-memory keyed collection implementing statebridge.Query.
// Put and Delete fire child events to every listener registered for the
// matching kind. Callbacks run synchronously on the mutating goroutine,
// outside the collection lock.
type Realtime struct {
	path string

	mu        sync.Mutex
	records   map[string]map[string]any
	nextToken int
	listeners map[statebridge.EventKind]map[int]func(statebridge.Snapshot)
}

// NewRealtime returns an empty collection. path is reported through
// Description and ends up in subscription error metadata.
func NewRealtime(path string) *Realtime {
	return &Realtime{
		path:      path,
		records:   map[string]map[string]any{},
		listeners: map[statebridge.EventKind]map[int]func(statebridge.Snapshot){},
	}
}

// Description satisfies statebridge.Query.
func (r *Realtime) Description() string {
	return r.path
}

// Listen satisfies statebridge.Query. The returned handle detaches exactly
// this registration; detaching twice is harmless.
func (r *Realtime) Listen(kind statebridge.EventKind, fn func(statebridge.Snapshot)) statebridge.ListenerHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listeners[kind] == nil {
		r.listeners[kind] = map[int]func(statebridge.Snapshot){}
	}
	token := r.nextToken
	r.nextToken++
	r.listeners[kind][token] = fn

	return &listenerHandle{detach: func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners[kind], token)
	}}
}

// Put stores value under key and fires child-added for new keys or
// child-changed for existing ones.
func (r *Realtime) Put(key string, value map[string]any) {
	r.mu.Lock()
	kind := statebridge.ChildAdded
	if _, ok := r.records[key]; ok {
		kind = statebridge.ChildChanged
	}
	r.records[key] = value
	fns := r.snapshotListeners(kind)
	r.mu.Unlock()

	snap := snapshot{key: key, value: value, exists: true}
	for _, fn := range fns {
		fn(snap)
	}
}

// Delete removes key and fires child-removed carrying the last known value.
// Unknown keys are a no-op.
func (r *Realtime) Delete(key string) {
	r.mu.Lock()
	value, ok := r.records[key]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.records, key)
	fns := r.snapshotListeners(statebridge.ChildRemoved)
	r.mu.Unlock()

	snap := snapshot{key: key, value: value, exists: true}
	for _, fn := range fns {
		fn(snap)
	}
}

// Emit fires a raw snapshot at every listener for kind, bypassing the
// record map. Useful for driving error paths in tests.
func (r *Realtime) Emit(kind statebridge.EventKind, key string, value any, exists bool) {
	r.mu.Lock()
	fns := r.snapshotListeners(kind)
	r.mu.Unlock()

	snap := snapshot{key: key, value: value, exists: exists}
	for _, fn := range fns {
		fn(snap)
	}
}

// ListenerCount reports how many listeners are registered for kind.
func (r *Realtime) ListenerCount(kind statebridge.EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners[kind])
}

func (r *Realtime) snapshotListeners(kind statebridge.EventKind) []func(statebridge.Snapshot) {
	fns := make([]func(statebridge.Snapshot), 0, len(r.listeners[kind]))
	for _, fn := range r.listeners[kind] {
		fns = append(fns, fn)
	}
	return fns
}

type listenerHandle struct {
	detach func()
}

func (h *listenerHandle) Detach() {
	h.detach()
}

type snapshot struct {
	key    string
	value  any
	exists bool
}

func (s snapshot) Exists() bool { return s.exists }
func (s snapshot) Key() string  { return s.key }
func (s snapshot) Value() any   { return s.value }
