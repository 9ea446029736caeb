package domain

import "fmt"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// User is a read-only directory entry.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email,omitempty"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
}

// Credential is a login attempt. It is never persisted and its password is
// never rendered.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

func (c Credential) String() string {
	return fmt.Sprintf("Credential{username: %q, password: <redacted>}", c.Username)
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"`
	Roles     []string `json:"roles"`
}
