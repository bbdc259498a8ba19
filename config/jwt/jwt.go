package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Secret stays empty until Configure; no token is signed or accepted before that.
var (
	Secret []byte
	Expiry = 15 * 24 * time.Hour
)

var ErrNoSecret = errors.New("jwt secret is not configured")

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	gojwt.RegisteredClaims
}

func Configure(secret string, expiry time.Duration) {
	Secret = []byte(secret)
	if expiry > 0 {
		Expiry = expiry
	}
}

func GenerateJWT(id, email, role string) (string, error) {
	if len(Secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		ID:    id,
		Email: email,
		Role:  role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(Expiry)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(Secret)
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if len(Secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(t *gojwt.Token) (interface{}, error) {
		return Secret, nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
