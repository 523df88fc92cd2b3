package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, exp, err := tm.GenerateToken("u1", "a@x.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if time.Until(exp) > time.Hour || time.Until(exp) < 55*time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateToken("u1", "a@x.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected verification failure with a different secret")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Nanosecond)

	token, _, err := tm.GenerateToken("u1", "a@x.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := tm.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
