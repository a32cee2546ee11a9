package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"appointment-booking-api/internal/model"
)

var testUser = &model.User{
	ID:    "u-1",
	Name:  "Test User",
	Email: "user@test.com",
	Phone: "0771234567",
	NIC:   "991234567V",
	Role:  model.RoleUser,
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken(testUser, "secret")
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	c, err := ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != testUser.ID || c.Email != testUser.Email || c.Role != model.RoleUser {
		t.Errorf("claims mismatch: %+v", c)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, _ := MakeToken(testUser, "secret")
	if _, err := ParseToken(tok, "other"); err == nil {
		t.Fatal("wrong secret accepted")
	}
}

func TestTokenAlgorithmConfusion(t *testing.T) {
	// a token signed with 'none' must never validate
	c := Claims{UserID: "u-1"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := ParseToken(tok, "secret"); err == nil {
		t.Fatal("alg=none token accepted")
	}
}

func TestTokenExpiry(t *testing.T) {
	c := Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(tok, "secret"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("testpass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(h, "testpass123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(h, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("empty token parts")
	}
	if HashRefreshToken(raw) != hash {
		t.Error("hash does not round-trip")
	}
	raw2, _, _ := GenerateRefreshToken()
	if raw == raw2 {
		t.Error("tokens must be unique")
	}
}
