package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-statebridge"
)

// Client is an in-memory statebridge.AuthClient. Accounts are keyed by
// email, passwords are bcrypt hashed, and the active session can mint JWT
// id tokens. Completion callbacks run synchronously on the caller's
// goroutine.
type Client struct {
	mu      sync.Mutex
	byEmail map[string]*account
	byID    map[string]*account
	current *account
	mint    *TokenMint
}

type account struct {
	id           string
	email        string
	passwordHash string
}

// NewClient returns an empty client with a random token signing key.
func NewClient() *Client {
	return &Client{
		byEmail: map[string]*account{},
		byID:    map[string]*account{},
		mint:    NewTokenMint([]byte(uuid.NewString()), defaultTokenTTL, defaultIssuer),
	}
}

// WithTokenMint replaces the id-token mint, e.g. to pin the signing key.
func (c *Client) WithTokenMint(mint *TokenMint) *Client {
	c.mint = mint
	return c
}

// Register creates an account without establishing a session. Useful for
// seeding test fixtures.
func (c *Client) Register(email, password string) (string, error) {
	acct, err := c.createAccount(email, password)
	if err != nil {
		return "", err
	}
	return acct.id, nil
}

// CurrentUser satisfies statebridge.AuthClient.
func (c *Client) CurrentUser() statebridge.UserHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return &User{client: c, id: c.current.id}
}

// SignIn satisfies statebridge.AuthClient. Unknown emails and mismatched
// passwords both report ErrInvalidCredentials so callers cannot probe for
// registered addresses.
func (c *Client) SignIn(email, password string, done func(statebridge.UserHandle, error)) {
	c.mu.Lock()
	acct, ok := c.byEmail[email]
	c.mu.Unlock()

	if !ok {
		done(nil, ErrInvalidCredentials)
		return
	}
	if err := comparePasswordAndHash(password, acct.passwordHash); err != nil {
		done(nil, ErrInvalidCredentials)
		return
	}

	c.mu.Lock()
	c.current = acct
	c.mu.Unlock()

	done(&User{client: c, id: acct.id}, nil)
}

// CreateUser satisfies statebridge.AuthClient. A successful creation also
// establishes the session, matching hosted auth backends.
func (c *Client) CreateUser(email, password string, done func(statebridge.UserHandle, error)) {
	acct, err := c.createAccount(email, password)
	if err != nil {
		done(nil, err)
		return
	}

	c.mu.Lock()
	c.current = acct
	c.mu.Unlock()

	done(&User{client: c, id: acct.id}, nil)
}

// SendPasswordReset satisfies statebridge.AuthClient. The adapter has no
// mail transport, so a known email simply succeeds.
func (c *Client) SendPasswordReset(email string, done func(error)) {
	c.mu.Lock()
	_, ok := c.byEmail[email]
	c.mu.Unlock()

	if !ok {
		done(ErrUserNotFound)
		return
	}
	done(nil)
}

// SignOut satisfies statebridge.AuthClient. Signing out without a session
// is a no-op success.
func (c *Client) SignOut() error {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
	return nil
}

// IDToken mints a JWT for the active session.
func (c *Client) IDToken() (string, error) {
	c.mu.Lock()
	acct := c.current
	c.mu.Unlock()

	if acct == nil {
		return "", ErrNoSession
	}
	return c.mint.Generate(acct.id)
}

func (c *Client) createAccount(email, password string) (*account, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byEmail[email]; ok {
		return nil, ErrEmailTaken
	}

	acct := &account{
		id:           uuid.NewString(),
		email:        email,
		passwordHash: hash,
	}
	c.byEmail[email] = acct
	c.byID[acct.id] = acct

	return acct, nil
}

// User is the client's statebridge.UserHandle implementation.
type User struct {
	client *Client
	id     string
}

// ID satisfies statebridge.UserHandle.
func (u *User) ID() string {
	return u.id
}

// UpdatePassword satisfies statebridge.UserHandle.
func (u *User) UpdatePassword(newPassword string, done func(error)) {
	hash, err := hashPassword(newPassword)
	if err != nil {
		done(err)
		return
	}

	u.client.mu.Lock()
	acct, ok := u.client.byID[u.id]
	if ok {
		acct.passwordHash = hash
	}
	u.client.mu.Unlock()

	if !ok {
		done(ErrUserNotFound)
		return
	}
	done(nil)
}

// UpdateEmail satisfies statebridge.UserHandle.
func (u *User) UpdateEmail(newEmail string, done func(error)) {
	u.client.mu.Lock()
	acct, ok := u.client.byID[u.id]
	if !ok {
		u.client.mu.Unlock()
		done(ErrUserNotFound)
		return
	}
	if other, taken := u.client.byEmail[newEmail]; taken && other.id != u.id {
		u.client.mu.Unlock()
		done(ErrEmailTaken)
		return
	}
	delete(u.client.byEmail, acct.email)
	acct.email = newEmail
	u.client.byEmail[newEmail] = acct
	u.client.mu.Unlock()

	done(nil)
}
