package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const Admin = "Admin"

var JWT = struct {
	ACCESS_COOKIE_NAME string
	SCOPE              string
}{
	ACCESS_COOKIE_NAME: "access_token",
	SCOPE:              "administration",
}

type JWTClaims struct {
	Kind  string `json:"kind"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// AdminLoginRequest is the body of POST /v1/auth/login
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// NewAdminToken signs an HS256 access token for the admin
func NewAdminToken(secret string, expiry time.Time) (string, error) {
	claims := JWTClaims{
		Kind:  Admin,
		Scope: JWT.SCOPE,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Admin,
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateJWTToken(tokenString string, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || claims.Scope != JWT.SCOPE || claims.Kind != Admin {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
