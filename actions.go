package statebridge

// Action is an immutable tagged value describing a state change, dispatched
// to and processed by the store's reducer.
type Action interface {
	Type() string
}

// AuthEvent tags one authentication lifecycle occurrence.
type AuthEvent string

const (
	SignedUp        AuthEvent = "signed_up"
	PasswordChanged AuthEvent = "password_changed"
	EmailChanged    AuthEvent = "email_changed"
	PasswordReset   AuthEvent = "password_reset"
)

// ObjectAdded carries one decoded record that appeared in the collection
// identified by Kind.
type ObjectAdded struct {
	Kind   string
	Record any
}

func (a ObjectAdded) Type() string { return "object.added" }

// ObjectChanged carries the new value of one decoded record.
type ObjectChanged struct {
	Kind   string
	Record any
}

func (a ObjectChanged) Type() string { return "object.changed" }

// ObjectRemoved carries the last known value of one removed record.
type ObjectRemoved struct {
	Kind   string
	Record any
}

func (a ObjectRemoved) Type() string { return "object.removed" }

// ObjectErrored reports a single failed event occurrence, scoped to the
// collection it concerns. The subscription stays live.
type ObjectErrored struct {
	Kind string
	Err  error
}

func (a ObjectErrored) Type() string { return "object.errored" }

// ObjectSubscribed carries the new subscription guard value for one
// collection.
type ObjectSubscribed struct {
	Kind       string
	Subscribed bool
}

func (a ObjectSubscribed) Type() string { return "object.subscribed" }

// UserLoggedIn carries the authenticated user's id.
type UserLoggedIn struct {
	UserID string
}

func (a UserLoggedIn) Type() string { return "user.logged_in" }

// UserLoggedOut signals the session ended. No payload.
type UserLoggedOut struct{}

func (a UserLoggedOut) Type() string { return "user.logged_out" }

// UserAuthEvent tags a completed authentication lifecycle operation.
type UserAuthEvent struct {
	Event AuthEvent
}

func (a UserAuthEvent) Type() string { return "user.auth_event" }

// UserAuthFailed carries a typed auth error; see errors.go for the taxonomy.
type UserAuthFailed struct {
	Err error
}

func (a UserAuthFailed) Type() string { return "user.auth_failed" }
