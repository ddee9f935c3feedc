package memory

import (
	"reflect"
	"sync"

	"github.com/goliatone/go-statebridge"
)

// Reducer folds one action into the state tree and returns the new tree.
type Reducer func(state map[string]any, action statebridge.Action) map[string]any

// Store is a reducer-backed statebridge.Store. Dispatch is serialized with
// a mutex so bridge callbacks arriving from any goroutine are applied in
// invocation order.
type Store struct {
	mu     sync.Mutex
	state  map[string]any
	reduce Reducer
}

// NewStore creates a store around the given reducer. A nil reducer falls
// back to DefaultReducer.
func NewStore(reduce Reducer) *Store {
	if reduce == nil {
		reduce = DefaultReducer
	}
	return &Store{
		state:  map[string]any{},
		reduce: reduce,
	}
}

// Dispatch satisfies statebridge.Store.
func (s *Store) Dispatch(action statebridge.Action) {
	if action == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reduce(s.state, action)
}

// State satisfies statebridge.Store. The returned tree is a top-level copy;
// callers must treat nested values as read-only.
func (s *Store) State() statebridge.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// DispatchProducer invokes a deferred action producer against this store,
// dispatching its immediate action when it returns one.
func (s *Store) DispatchProducer(producer statebridge.ActionProducer) {
	if producer == nil {
		return
	}
	if action := producer(s.State(), s.Dispatch); action != nil {
		s.Dispatch(action)
	}
}

// DefaultReducer materializes bridge actions into a state tree:
//
//	collections:   kind -> record id -> record
//	subscriptions: kind -> subscribed flag
//	errors:        kind -> last subscription error
//	auth:          userID, lastEvent, lastError
func DefaultReducer(state map[string]any, action statebridge.Action) map[string]any {
	next := make(map[string]any, len(state))
	for k, v := range state {
		next[k] = v
	}

	switch a := action.(type) {
	case statebridge.ObjectSubscribed:
		subs := copyTree[bool](next, "subscriptions")
		subs[a.Kind] = a.Subscribed

	case statebridge.ObjectAdded:
		upsertRecord(next, a.Kind, a.Record)

	case statebridge.ObjectChanged:
		upsertRecord(next, a.Kind, a.Record)

	case statebridge.ObjectRemoved:
		if id, ok := recordID(a.Record); ok {
			collections := copyTree[map[string]any](next, "collections")
			if col, ok := collections[a.Kind]; ok {
				delete(col, id)
			}
		}

	case statebridge.ObjectErrored:
		errs := copyTree[error](next, "errors")
		errs[a.Kind] = a.Err

	case statebridge.UserLoggedIn:
		auth := copyAuth(next)
		auth["userID"] = a.UserID
		delete(auth, "lastError")

	case statebridge.UserLoggedOut:
		next["auth"] = map[string]any{}

	case statebridge.UserAuthEvent:
		auth := copyAuth(next)
		auth["lastEvent"] = a.Event

	case statebridge.UserAuthFailed:
		auth := copyAuth(next)
		auth["lastError"] = a.Err
	}

	return next
}

func upsertRecord(state map[string]any, kind string, record any) {
	id, ok := recordID(record)
	if !ok {
		return
	}
	collections := copyTree[map[string]any](state, "collections")
	col, ok := collections[kind]
	if !ok {
		col = map[string]any{}
	} else {
		clone := make(map[string]any, len(col))
		for k, v := range col {
			clone[k] = v
		}
		col = clone
	}
	col[id] = record
	collections[kind] = col
}

func copyTree[V any](state map[string]any, key string) map[string]V {
	out := map[string]V{}
	if prev, ok := state[key].(map[string]V); ok {
		for k, v := range prev {
			out[k] = v
		}
	}
	state[key] = out
	return out
}

func copyAuth(state map[string]any) map[string]any {
	out := map[string]any{}
	if prev, ok := state["auth"].(map[string]any); ok {
		for k, v := range prev {
			out[k] = v
		}
	}
	state["auth"] = out
	return out
}

// recordID extracts the record key: RecordID method first, then a string ID
// struct field, then an "id" map entry.
func recordID(record any) (string, bool) {
	if r, ok := record.(interface{ RecordID() string }); ok {
		return r.RecordID(), r.RecordID() != ""
	}

	if m, ok := record.(map[string]any); ok {
		id, ok := m["id"].(string)
		return id, ok && id != ""
	}

	v := reflect.ValueOf(record)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		f := v.FieldByName("ID")
		if f.IsValid() && f.Kind() == reflect.String && f.String() != "" {
			return f.String(), true
		}
	}

	return "", false
}
