package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSeedAndVerify(t *testing.T) {
	r := NewRegistry()
	if err := r.Seed("admin", "secret", RoleAdmin, bcrypt.MinCost); err != nil {
		t.Fatalf("seed: %v", err)
	}

	acc, ok := r.Verify("admin", "secret")
	if !ok {
		t.Fatal("expected verification to succeed")
	}
	if acc.Role != RoleAdmin || acc.GuestRef == "" {
		t.Fatalf("unexpected account: %+v", acc)
	}

	if _, ok := r.Verify("admin", "wrong"); ok {
		t.Fatal("wrong password must not verify")
	}
	if _, ok := r.Verify("nobody", "secret"); ok {
		t.Fatal("unknown user must not verify")
	}
}

func TestUsernamesAreCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	// A mixed-case configured username must still authenticate.
	if err := r.Seed(" Admin ", "secret", RoleAdmin, bcrypt.MinCost); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for _, name := range []string{"admin", "ADMIN", " Admin "} {
		if _, ok := r.Verify(name, "secret"); !ok {
			t.Errorf("login as %q failed", name)
		}
	}

	if err := r.Seed("ADMIN", "other", RoleGuest, bcrypt.MinCost); !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("case-variant reseed: expected ErrDuplicateAccount, got %v", err)
	}
}

func TestGuestRefsAreDistinct(t *testing.T) {
	r := NewRegistry()
	if err := r.Seed("admin", "a", RoleAdmin, bcrypt.MinCost); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := r.Seed("guest", "g", RoleGuest, bcrypt.MinCost); err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	a, _ := r.Verify("admin", "a")
	g, _ := r.Verify("guest", "g")
	if a.GuestRef == g.GuestRef {
		t.Fatal("accounts must mint distinct guest references")
	}
}
