// Package auth is the identity collaborator in front of the reservation
// core.  Mirroring the original system's fixed admin/guest pair, accounts
// are seeded at boot rather than self-registered.  Each account carries an
// access level and an opaque guest reference used for booking attribution;
// the core trusts both and never re-checks them.
package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Access levels carried in the token's role claim.
const (
	RoleAdmin = "ADMIN"
	RoleGuest = "GUEST"
)

// Account is a seeded login.  GuestRef is the opaque identifier the
// booking layer attributes reservations to; it is minted once when the
// account is seeded.
type Account struct {
	Username     string
	PasswordHash string
	Role         string
	GuestRef     string
}

// ErrDuplicateAccount is returned when a username is seeded twice.
var ErrDuplicateAccount = errors.New("account already exists")

// Registry is an in-memory account set.  It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Account
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Account)}
}

// normalize makes usernames case-insensitive: both seeding and lookup go
// through the same lowercased, trimmed form.
func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Seed adds an account with a bcrypt-hashed password and a fresh guest
// reference.  The username is stored in its normalized form.
func (r *Registry) Seed(username, password, role string, cost int) error {
	username = normalize(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[username]; exists {
		return ErrDuplicateAccount
	}
	r.byName[username] = Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		GuestRef:     uuid.NewString(),
	}
	return nil
}

// Verify checks a username/password pair and returns the account on
// success.  The comparison is constant time via bcrypt.
func (r *Registry) Verify(username, password string) (Account, bool) {
	r.mu.RLock()
	acct, ok := r.byName[normalize(username)]
	r.mu.RUnlock()
	if !ok {
		return Account{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return Account{}, false
	}
	return acct, true
}
