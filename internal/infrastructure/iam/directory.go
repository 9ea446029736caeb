// Package iam holds the static user and role directories loaded at startup.
package iam

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

//go:embed data/users.json
var defaultUsers []byte

//go:embed data/roles.json
var defaultRoles []byte

// userRecord is the on-disk shape of a user entry.
type userRecord struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UserDirectory is an immutable list of users. Lookups return copies.
type UserDirectory struct {
	users []domain.User
}

// NewUserDirectory copies users into a new directory.
func NewUserDirectory(users []domain.User) *UserDirectory {
	d := &UserDirectory{users: make([]domain.User, len(users))}
	for i, u := range users {
		d.users[i] = cloneUser(u)
	}
	return d
}

// LoadUsers reads a JSON user list from path, or the bundled list when path
// is empty.
func LoadUsers(path string) (*UserDirectory, error) {
	raw, err := readSource(path, defaultUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var records []userRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("load users: decode: %w", err)
	}

	users := make([]domain.User, 0, len(records))
	for _, r := range records {
		if r.ID == "" || r.Username == "" {
			return nil, fmt.Errorf("load users: entry without id or username")
		}
		users = append(users, domain.User{
			ID:           r.ID,
			Username:     r.Username,
			Email:        r.Email,
			PasswordHash: r.Password,
			Roles:        r.Roles,
		})
	}
	return NewUserDirectory(users), nil
}

func (d *UserDirectory) FindByUsername(username string) (*domain.User, bool) {
	return d.find(func(u *domain.User) bool { return u.Username == username })
}

func (d *UserDirectory) FindByID(id string) (*domain.User, bool) {
	return d.find(func(u *domain.User) bool { return u.ID == id })
}

func (d *UserDirectory) FindByEmail(email string) (*domain.User, bool) {
	return d.find(func(u *domain.User) bool { return u.Email == email })
}

// HashCost reports the bcrypt cost of the first parseable stored hash.
func (d *UserDirectory) HashCost() (int, bool) {
	for i := range d.users {
		if cost, err := bcrypt.Cost([]byte(d.users[i].PasswordHash)); err == nil {
			return cost, true
		}
	}
	return 0, false
}

func (d *UserDirectory) find(match func(*domain.User) bool) (*domain.User, bool) {
	for i := range d.users {
		if match(&d.users[i]) {
			u := cloneUser(d.users[i])
			return &u, true
		}
	}
	return nil, false
}

func cloneUser(u domain.User) domain.User {
	u.Roles = append([]string(nil), u.Roles...)
	return u
}

// RoleDirectory is the fixed set of role names known to the process.
type RoleDirectory struct {
	roles []string
}

func NewRoleDirectory(roles []string) *RoleDirectory {
	return &RoleDirectory{roles: append([]string(nil), roles...)}
}

// LoadRoles reads a JSON array of role names from path, or the bundled set
// when path is empty.
func LoadRoles(path string) (*RoleDirectory, error) {
	raw, err := readSource(path, defaultRoles)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	var roles []string
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, fmt.Errorf("load roles: decode: %w", err)
	}
	return NewRoleDirectory(roles), nil
}

func (d *RoleDirectory) AllRoles() []string {
	return append([]string(nil), d.roles...)
}

// Normalize maps each requested name to its stored casing. Unknown and empty
// names are dropped; nil is returned when nothing matches.
func (d *RoleDirectory) Normalize(requested []string) []string {
	var out []string
	for _, r := range requested {
		if r == "" {
			continue
		}
		for _, known := range d.roles {
			if strings.EqualFold(known, r) {
				out = append(out, known)
				break
			}
		}
	}
	return out
}

func readSource(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	return os.ReadFile(path)
}
