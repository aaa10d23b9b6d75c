package models

import "github.com/golang-jwt/jwt/v5"

// Token is an access token issued on register or login.
//
// The server fills Token and SignedString when signing and UserID when
// validating a request. The client only ever sees SignedString and the
// UserID read from its subject claim.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	SignedString string `json:"-"`
	UserID       int64  `json:"-"`
}

func (t *Token) String() string {
	return t.SignedString
}
