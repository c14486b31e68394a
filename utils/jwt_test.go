package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestGenerateAndParseToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("a@x.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", claims.Email)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserID)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > TokenTTL || ttl < TokenTTL-time.Minute {
		t.Errorf("expected ~1h expiry, got %v", ttl)
	}
}

func TestParseTokenExpired(t *testing.T) {
	InitJWT("test-secret")

	claims := &Claims{
		Email:  "a@x.com",
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = ParseToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseTokenTampered(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("a@x.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected tampered token to fail verification")
	}
}

func TestParseTokenWrongKey(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateToken("a@x.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	InitJWT("other-secret")
	defer InitJWT("test-secret")

	if _, err := ParseToken(token); err == nil {
		t.Error("expected token signed with another key to fail")
	}
}
