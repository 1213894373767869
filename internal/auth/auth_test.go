package auth

import (
	"testing"
	"time"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for the same input, got %q twice", h1)
	}
	if !CheckPassword("secret123", h1) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if CheckPassword("wrong", h1) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := SignToken("alice", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sub, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("expected subject alice, got %q", sub)
	}
}

func TestToken_Expired(t *testing.T) {
	token, err := SignToken("alice", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(token, "test-secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := SignToken("alice", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Fatalf("expected token signed under another secret to be rejected")
	}
}

func TestToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "test-secret"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}
