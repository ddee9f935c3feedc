package statebridge

import "fmt"

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// EventKind identifies which realtime change notification fired.
type EventKind string

const (
	ChildAdded   EventKind = "child_added"
	ChildChanged EventKind = "child_changed"
	ChildRemoved EventKind = "child_removed"
)

// Snapshot is a point-in-time view of one backend record delivered with a
// change notification. Snapshots are only valid for the duration of the
// listener callback that received them.
type Snapshot interface {
	Exists() bool
	Key() string
	Value() any
}

// ListenerHandle identifies one registered listener so it can be detached.
type ListenerHandle interface {
	Detach()
}

// Query is the realtime backend capability the subscription bridge consumes.
// The backend invokes listener callbacks on its own execution context, zero
// or more times, in any order across event kinds.
type Query interface {
	Listen(kind EventKind, fn func(Snapshot)) ListenerHandle
	Description() string
}

// UserHandle is the backend's view of the currently authenticated user.
type UserHandle interface {
	ID() string
	UpdatePassword(newPassword string, done func(error))
	UpdateEmail(newEmail string, done func(error))
}

// AuthClient is the backend authentication capability. It is injected into
// the auth bridge at construction time so tests can substitute a fake with
// scripted callback sequences.
type AuthClient interface {
	CurrentUser() UserHandle
	SignIn(email, password string, done func(UserHandle, error))
	CreateUser(email, password string, done func(UserHandle, error))
	SendPasswordReset(email string, done func(error))
	SignOut() error
}

// State is the store's state tree as seen by an ActionProducer. The bridges
// never read it beyond what callers pass in explicitly, so it stays opaque.
type State = any

// Dispatch delivers one action to the store. It must not block.
type Dispatch func(Action)

// ActionProducer is a deferred computation that, given the current state and
// a dispatch capability, may synchronously return one immediate action and
// may trigger asynchronous dispatches later. A nil return means no immediate
// action.
type ActionProducer func(state State, dispatch Dispatch) Action

// Store holds the single application state tree and applies dispatched
// actions. Implementations are responsible for serializing Dispatch when the
// host is multi-threaded; the bridges do no locking of their own.
type Store interface {
	Dispatch(action Action)
	State() State
}

// SubscriptionState is the guard flag owned by one collection's slice of
// application state. It starts false and is flipped to true by the
// subscription bridge on first activation.
type SubscriptionState struct {
	Subscribed bool `json:"subscribed"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] BRIDGE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] BRIDGE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] BRIDGE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
