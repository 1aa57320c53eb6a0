/*
Package auth is the credential-lookup capability behind login.

PURPOSE:

	Login resolves a username/password pair to a Session through the
	Authenticator interface. Who holds the credentials is an injection
	decision: a static admin table from configuration, an agent directory
	fed from the CRM, or a chain of both. Handlers only ever see the
	interface, so swapping in a real identity provider later touches
	nothing upstream.

SESSIONS:

	A Session is the authenticated identity: role plus display name plus,
	for agents, the CRM agent id used for deal queries. Sessions are
	carried across requests as signed tokens (token.go).
*/
package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidCredentials is returned for any failed login. One error for
// unknown user and wrong password alike; login never leaks which.
var ErrInvalidCredentials = errors.New("incorrect credentials")

// Role separates the admin console from the agent dashboard.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

// Session is an authenticated identity.
type Session struct {
	Username string
	Name     string
	Role     Role
	AgentID  string // CRM user id, empty for admins
}

// Authenticator resolves credentials to a Session.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Session, error)
}

// =============================================================================
// STATIC TABLE - Admin accounts from configuration
// =============================================================================

// StaticUser is one configured account.
type StaticUser struct {
	Username string
	Password string
	Name     string
	Role     Role
}

// StaticTable authenticates against a fixed account list.
type StaticTable struct {
	users map[string]StaticUser
}

func NewStaticTable(users []StaticUser) *StaticTable {
	m := make(map[string]StaticUser, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &StaticTable{users: m}
}

func (t *StaticTable) Authenticate(_ context.Context, username, password string) (Session, error) {
	u, ok := t.users[username]
	if !ok || u.Password != password {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: u.Username, Name: u.Name, Role: u.Role}, nil
}

// =============================================================================
// AGENT DIRECTORY - CRM-fed agent accounts
// =============================================================================

// AgentEntry is one agent account in the directory.
type AgentEntry struct {
	Username string
	Name     string
	AgentID  string
}

// Directory authenticates agents against the roster fetched from the
// CRM. Every agent shares one configured password; the CRM holds no
// password material we can verify against. Safe for concurrent use;
// SetAgents replaces the roster wholesale on each refresh.
type Directory struct {
	mu       sync.RWMutex
	password string
	agents   map[string]AgentEntry
}

func NewDirectory(sharedPassword string) *Directory {
	return &Directory{
		password: sharedPassword,
		agents:   make(map[string]AgentEntry),
	}
}

// SetAgents replaces the roster. Called by the background refresher.
func (d *Directory) SetAgents(agents []AgentEntry) {
	fresh := make(map[string]AgentEntry, len(agents))
	for _, a := range agents {
		if a.Username != "" {
			fresh[a.Username] = a
		}
	}

	d.mu.Lock()
	d.agents = fresh
	d.mu.Unlock()
}

// Agents returns the current roster, unordered.
func (d *Directory) Agents() []AgentEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]AgentEntry, 0, len(d.agents))
	for _, a := range d.agents {
		out = append(out, a)
	}
	return out
}

func (d *Directory) Authenticate(_ context.Context, username, password string) (Session, error) {
	d.mu.RLock()
	a, ok := d.agents[username]
	shared := d.password
	d.mu.RUnlock()

	if !ok || password != shared || shared == "" {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: a.Username, Name: a.Name, Role: RoleAgent, AgentID: a.AgentID}, nil
}

// =============================================================================
// CHAIN
// =============================================================================

// Chain tries each Authenticator in order and returns the first
// successful Session.
type Chain []Authenticator

func (c Chain) Authenticate(ctx context.Context, username, password string) (Session, error) {
	for _, a := range c {
		s, err := a.Authenticate(ctx, username, password)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrInvalidCredentials) {
			return Session{}, err
		}
	}
	return Session{}, ErrInvalidCredentials
}
