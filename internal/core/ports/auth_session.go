package ports

import (
	"context"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// AuthSession issues tokens on login and validates bearer tokens on
// protected requests.
type AuthSession interface {
	Issue(ctx context.Context, cred domain.Credential) (*domain.LoginResult, error)
	// Validate runs the full token gate over an Authorization header value
	// and returns a context carrying the resolved subject id.
	Validate(ctx context.Context, authorization string) (context.Context, error)
	IsLoggedIn(ctx context.Context) bool
	HasAnyRole(ctx context.Context, roles ...string) bool
}

// TokenCodec builds and parses signed compact tokens.
type TokenCodec interface {
	Algorithm() string
	Encode(header domain.TokenHeader, claims domain.TokenClaims) (string, error)
	Decode(token string) (*domain.Token, error)
	// Verify returns false for a well-formed token with a wrong signature and
	// an error only when the key material or algorithm cannot be used.
	Verify(token string) (bool, error)
}

// UserDirectory is a read-only lookup over the known users.
type UserDirectory interface {
	FindByUsername(username string) (*domain.User, bool)
	FindByID(id string) (*domain.User, bool)
	FindByEmail(email string) (*domain.User, bool)
	// HashCost is the bcrypt cost of the stored password hashes; false when
	// no stored hash can be parsed.
	HashCost() (int, bool)
}

// RoleDirectory holds the fixed set of role names.
type RoleDirectory interface {
	AllRoles() []string
	Normalize(requested []string) []string
}
