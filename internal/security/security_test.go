package security

import (
	"testing"
	"time"
)

func TestHasherRoundTrip(t *testing.T) {
	hasher := NewHasher(4)

	hash, err := hasher.Hash([]byte("correct horse battery"))
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash equals the plaintext")
	}

	if err := hasher.Compare(hash, []byte("correct horse battery")); err != nil {
		t.Errorf("Compare rejected the right password: %v", err)
	}
	if err := hasher.Compare(hash, []byte("wrong")); err == nil {
		t.Error("Compare accepted the wrong password")
	}
}

func TestHasherCostClamp(t *testing.T) {
	if h := NewHasher(0); h.Cost <= 0 {
		t.Errorf("zero cost not defaulted, got %d", h.Cost)
	}
	if h := NewHasher(1000); h.Cost > 31 {
		t.Errorf("oversized cost not clamped, got %d", h.Cost)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenProvider("test-secret", time.Hour)

	token, expiresAt, err := tokens.Issue("user-1", "user@example.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired at issue time")
	}

	userID, email, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if userID != "user-1" || email != "user@example.test" {
		t.Errorf("claims = %q %q, want user-1 user@example.test", userID, email)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenProvider("secret-a", time.Hour)
	validator := NewTokenProvider("secret-b", time.Hour)

	token, _, err := issuer.Issue("user-1", "user@example.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, _, err := validator.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenProvider("test-secret", -time.Minute)

	token, _, err := tokens.Issue("user-1", "user@example.test")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, _, err := tokens.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenProvider("test-secret", time.Hour)
	if _, _, err := tokens.Validate("not.a.jwt"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}
