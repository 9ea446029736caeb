package domain

import (
	"errors"
	"fmt"
)

// Authentication
var (
	ErrAuthorizationInvalid = errors.New("authorization header missing or invalid")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("access forbidden")
)

// Token codec
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrVerification   = errors.New("token verification failed")
)

// Catalog
var (
	ErrInvalidID       = errors.New("invalid id")
	ErrNotFound        = errors.New("not found")
	ErrUniqueKeyExists = errors.New("unique key already exists")
	ErrIDNotExists     = errors.New("id does not exist")
)

// ExpiredTokenError is returned by token validation once the expiry has
// passed. It matches ErrTokenExpired and carries the challenge a caller
// should send back in a WWW-Authenticate header.
type ExpiredTokenError struct {
	Scheme string
	Realm  string
}

func (e *ExpiredTokenError) Error() string { return ErrTokenExpired.Error() }

func (e *ExpiredTokenError) Is(target error) bool { return target == ErrTokenExpired }

// Challenge renders the RFC 6750 challenge for an expired access token.
func (e *ExpiredTokenError) Challenge() string {
	return fmt.Sprintf(`%s realm=%q, error="invalid_token", error_description="The access token expired"`, e.Scheme, e.Realm)
}
