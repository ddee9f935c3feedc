package statebridge

import (
	"sync"

	"github.com/goliatone/go-print"
)

// Bridge converts realtime change notifications for one collection into
// store actions. One Bridge owns one (query, kind, decoder) triple; the
// subscription guard itself lives in the store and is passed to Activate by
// the caller.
type Bridge struct {
	query  Query
	kind   string
	decode DecoderFunc
	logger Logger
	debug  bool

	mu      sync.Mutex
	handles []ListenerHandle
}

// NewBridge returns a bridge for one collection. kind scopes every action
// the bridge emits so reducers can route by tag.
func NewBridge(query Query, kind string, decode DecoderFunc) *Bridge {
	return &Bridge{
		query:  query,
		kind:   kind,
		decode: decode,
		logger: defLogger{},
	}
}

func (b *Bridge) WithLogger(logger Logger) *Bridge {
	b.logger = logger
	return b
}

// WithDebug enables dispatch tracing through the bridge logger.
func (b *Bridge) WithDebug(debug bool) *Bridge {
	b.debug = debug
	return b
}

// Kind returns the collection tag the bridge stamps on its actions.
func (b *Bridge) Kind() string {
	return b.kind
}

// Activate returns an ActionProducer that registers the three child-event
// listeners exactly once. When the guard is already set the producer is an
// idempotent no-op: no dispatch, no registration. Otherwise it dispatches
// the new guard value before any listener is registered, so no callback can
// observe an unset guard.
func (b *Bridge) Activate(sub SubscriptionState) ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		if sub.Subscribed {
			return nil
		}

		dispatch = b.trace(dispatch)
		dispatch(ObjectSubscribed{Kind: b.kind, Subscribed: true})
		b.register(dispatch)

		return nil
	}
}

// Deactivate returns an ActionProducer that detaches every registered
// listener and resets the subscription guard. Safe to invoke when nothing
// is registered.
func (b *Bridge) Deactivate() ActionProducer {
	return func(_ State, dispatch Dispatch) Action {
		b.mu.Lock()
		handles := b.handles
		b.handles = nil
		b.mu.Unlock()

		for _, h := range handles {
			h.Detach()
		}
		if len(handles) > 0 {
			b.trace(dispatch)(ObjectSubscribed{Kind: b.kind, Subscribed: false})
		}

		return nil
	}
}

func (b *Bridge) register(dispatch Dispatch) {
	added := b.query.Listen(ChildAdded, b.listener(dispatch, func(record any) Action {
		return ObjectAdded{Kind: b.kind, Record: record}
	}))
	changed := b.query.Listen(ChildChanged, b.listener(dispatch, func(record any) Action {
		return ObjectChanged{Kind: b.kind, Record: record}
	}))
	removed := b.query.Listen(ChildRemoved, b.listener(dispatch, func(record any) Action {
		return ObjectRemoved{Kind: b.kind, Record: record}
	}))

	b.mu.Lock()
	b.handles = append(b.handles, added, changed, removed)
	b.mu.Unlock()

	b.logger.Debug("registered listeners for %s at %s", b.kind, b.query.Description())
}

// listener wraps the decode pipeline for one event kind. Each invocation is
// independent; a decode failure dispatches a scoped error action and leaves
// the listener registered.
func (b *Bridge) listener(dispatch Dispatch, wrap func(record any) Action) func(Snapshot) {
	path := b.query.Description()
	kind := b.kind
	decode := b.decode
	return func(snap Snapshot) {
		record, err := decodeSnapshot(snap, path, decode)
		if err != nil {
			dispatch(ObjectErrored{Kind: kind, Err: err})
			return
		}
		dispatch(wrap(record))
	}
}

func (b *Bridge) trace(dispatch Dispatch) Dispatch {
	if !b.debug {
		return dispatch
	}
	logger := b.logger
	return func(action Action) {
		logger.Debug("dispatch %s %s", action.Type(), print.MaybePrettyJSON(action))
		dispatch(action)
	}
}
