package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the session token lifetime. The access_token cookie max-age
// must stay equal to this value.
const TokenTTL = time.Hour

var jwtKey []byte

// Claims embeds the caller's identity into the session token.
type Claims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// InitJWT sets the symmetric signing key. Must be called before any token
// is generated or parsed.
func InitJWT(secret string) {
	jwtKey = []byte(secret)
}

// GenerateToken mints an HS256 session token for the given user.
func GenerateToken(email string, userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken verifies a session token and returns its claims. Expiry is
// reported as jwt.ErrTokenExpired so callers can distinguish it from a
// tampered token.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
