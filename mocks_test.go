package statebridge_test

import (
	"sync"

	"github.com/goliatone/go-statebridge"
)

// fakeSnapshot implements statebridge.Snapshot
type fakeSnapshot struct {
	key    string
	value  any
	exists bool
}

func (s fakeSnapshot) Exists() bool { return s.exists }
func (s fakeSnapshot) Key() string  { return s.key }
func (s fakeSnapshot) Value() any   { return s.value }

// fakeHandle implements statebridge.ListenerHandle
type fakeHandle struct {
	detached bool
}

func (h *fakeHandle) Detach() {
	h.detached = true
}

// fakeQuery implements statebridge.Query and records listener registrations
// so tests can fire scripted snapshots.
type fakeQuery struct {
	desc      string
	listeners map[statebridge.EventKind][]func(statebridge.Snapshot)
	handles   []*fakeHandle
}

func newFakeQuery(desc string) *fakeQuery {
	return &fakeQuery{
		desc:      desc,
		listeners: map[statebridge.EventKind][]func(statebridge.Snapshot){},
	}
}

func (q *fakeQuery) Listen(kind statebridge.EventKind, fn func(statebridge.Snapshot)) statebridge.ListenerHandle {
	q.listeners[kind] = append(q.listeners[kind], fn)
	h := &fakeHandle{}
	q.handles = append(q.handles, h)
	return h
}

func (q *fakeQuery) Description() string {
	return q.desc
}

func (q *fakeQuery) fire(kind statebridge.EventKind, snap statebridge.Snapshot) {
	for _, fn := range q.listeners[kind] {
		fn(snap)
	}
}

func (q *fakeQuery) listenerCount() int {
	n := 0
	for _, fns := range q.listeners {
		n += len(fns)
	}
	return n
}

// recorder captures dispatched actions in invocation order.
type recorder struct {
	mu      sync.Mutex
	actions []statebridge.Action
}

func (r *recorder) dispatch(action statebridge.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *recorder) all() []statebridge.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]statebridge.Action(nil), r.actions...)
}

// fakeUser implements statebridge.UserHandle with scripted outcomes.
type fakeUser struct {
	id                  string
	updatePasswordErr   error
	updateEmailErr      error
	updatePasswordCalls int
	updateEmailCalls    int
}

func (u *fakeUser) ID() string { return u.id }

func (u *fakeUser) UpdatePassword(newPassword string, done func(error)) {
	u.updatePasswordCalls++
	done(u.updatePasswordErr)
}

func (u *fakeUser) UpdateEmail(newEmail string, done func(error)) {
	u.updateEmailCalls++
	done(u.updateEmailErr)
}

// fakeAuthClient implements statebridge.AuthClient with scripted callback
// outcomes, invoked synchronously.
type fakeAuthClient struct {
	current statebridge.UserHandle

	signInUser  statebridge.UserHandle
	signInErr   error
	signInCalls int

	createUser  statebridge.UserHandle
	createErr   error
	createCalls int

	resetErr   error
	resetCalls int

	signOutErr   error
	signOutCalls int
}

func (c *fakeAuthClient) CurrentUser() statebridge.UserHandle {
	return c.current
}

func (c *fakeAuthClient) SignIn(email, password string, done func(statebridge.UserHandle, error)) {
	c.signInCalls++
	done(c.signInUser, c.signInErr)
}

func (c *fakeAuthClient) CreateUser(email, password string, done func(statebridge.UserHandle, error)) {
	c.createCalls++
	done(c.createUser, c.createErr)
}

func (c *fakeAuthClient) SendPasswordReset(email string, done func(error)) {
	c.resetCalls++
	done(c.resetErr)
}

func (c *fakeAuthClient) SignOut() error {
	c.signOutCalls++
	return c.signOutErr
}
