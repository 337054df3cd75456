package helpers

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	tok, exp, err := m.GenerateAccessToken("u1", "s1", "CANDIDATE")
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry should be in the future")
	}
	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u1" || claims.SessionID != "s1" || claims.Role != "CANDIDATE" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := m.ParseRefreshToken(tok); err == nil {
		t.Fatal("access token must not validate with the refresh secret")
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("u1", "s1", "ADMIN")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ParseAccessToken(tok); err == nil {
		t.Fatal("expected expired token error")
	}
}

func TestPassword(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	if !CompareHashAndPassword(hash, "s3cret-pass") {
		t.Fatal("password should match")
	}
	if CompareHashAndPassword(hash, "wrong") {
		t.Fatal("wrong password should not match")
	}
}

func TestMaxAgeFrom(t *testing.T) {
	if maxAgeFrom(time.Now().Add(-time.Second)) != 0 {
		t.Fatal("past expiry should yield 0")
	}
	if got := maxAgeFrom(time.Now().Add(time.Hour)); got < 3590 || got > 3600 {
		t.Fatalf("maxAgeFrom = %d", got)
	}
}
