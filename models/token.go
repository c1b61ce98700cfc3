package models

import "github.com/golang-jwt/jwt/v5"

// Token wraps a parsed JWT together with the user it was issued for.
type Token struct {
	jwt.RegisteredClaims

	// Token is the parsed JWT object, populated after validation.
	Token *jwt.Token `json:"-"`

	// SignedString is the compact serialized form sent in the
	// Authorization header.
	SignedString string `json:"-"`

	// UserID is extracted from the subject claim.
	UserID int64 `json:"-"`
}
