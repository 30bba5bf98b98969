package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SignToken issues a bearer token with the username as subject and an
// absolute expiry ttl from now.
func SignToken(secret []byte, alg, username string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(alg), claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the subject username.
func ParseToken(secret []byte, alg, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{alg}))
	if err != nil {
		return "", err
	}
	if !tok.Valid || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
