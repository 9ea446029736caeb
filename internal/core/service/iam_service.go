package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

const (
	defaultTokenTTL = 24 * time.Hour
	defaultBearer   = "Bearer"
	tokenType       = "JWT"
)

// IamConfig carries the token policy.
type IamConfig struct {
	Issuer   string
	TTL      time.Duration
	Bearer   string
	Realm    string
	HashCost int
}

// IamService issues and validates bearer tokens against static user and
// role directories.
type IamService struct {
	codec     ports.TokenCodec
	users     ports.UserDirectory
	roles     ports.RoleDirectory
	cfg       IamConfig
	dummyHash []byte
	now       func() time.Time
}

// NewIamService builds the session. A throwaway hash with the cost of the
// stored hashes is computed so unknown users cost the same as wrong
// passwords. cfg.HashCost applies only when no stored hash is usable.
func NewIamService(codec ports.TokenCodec, users ports.UserDirectory, roles ports.RoleDirectory, cfg IamConfig) (*IamService, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	if cfg.Bearer == "" {
		cfg.Bearer = defaultBearer
	}
	if cfg.HashCost < bcrypt.MinCost || cfg.HashCost > bcrypt.MaxCost {
		cfg.HashCost = bcrypt.DefaultCost
	}

	filler := make([]byte, 16)
	if _, err := rand.Read(filler); err != nil {
		return nil, fmt.Errorf("iam: seed dummy hash: %w", err)
	}
	cost := cfg.HashCost
	if stored, ok := users.HashCost(); ok {
		cost = stored
	}
	dummy, err := bcrypt.GenerateFromPassword(filler, cost)
	if err != nil {
		return nil, fmt.Errorf("iam: dummy hash: %w", err)
	}

	return &IamService{
		codec:     codec,
		users:     users,
		roles:     roles,
		cfg:       cfg,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

// Issue checks the credential and returns a signed token. Every failure is
// reported as domain.ErrInvalidCredentials.
func (s *IamService) Issue(ctx context.Context, cred domain.Credential) (*domain.LoginResult, error) {
	if cred.Username == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, found := s.users.FindByUsername(cred.Username)
	hash := s.dummyHash
	if found {
		hash = []byte(user.PasswordHash)
	}
	// Always compare so a missing user takes as long as a wrong password.
	if err := bcrypt.CompareHashAndPassword(hash, []byte(cred.Password)); err != nil || !found {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := domain.TokenClaims{
		IssuedAt:  now.Unix(),
		Issuer:    s.cfg.Issuer,
		Subject:   user.ID,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.cfg.TTL).Unix(),
	}
	token, err := s.codec.Encode(domain.TokenHeader{Type: tokenType, Algorithm: s.codec.Algorithm()}, claims)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.LoginResult{
		Token:     token,
		TokenType: s.cfg.Bearer,
		ExpiresIn: int64(s.cfg.TTL / time.Second),
		Roles:     user.Roles,
	}, nil
}

// Validate checks an Authorization header value step by step and stops at
// the first failure. On success the returned context carries the subject id.
func (s *IamService) Validate(ctx context.Context, authorization string) (context.Context, error) {
	if authorization == "" {
		return ctx, domain.ErrAuthorizationInvalid
	}

	scheme, raw, _ := strings.Cut(authorization, " ")
	if raw == "" {
		return ctx, domain.ErrAuthorizationInvalid
	}
	if !strings.EqualFold(scheme, s.cfg.Bearer) {
		return ctx, fmt.Errorf("%w: unexpected scheme %q", domain.ErrTokenInvalid, scheme)
	}
	if !wellFormed(raw) {
		return ctx, fmt.Errorf("%w: malformed token", domain.ErrTokenInvalid)
	}

	token, err := s.codec.Decode(raw)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if token.Header.Algorithm != s.codec.Algorithm() {
		return ctx, fmt.Errorf("%w: algorithm %q not accepted", domain.ErrTokenInvalid, token.Header.Algorithm)
	}

	ok, err := s.codec.Verify(raw)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !ok {
		return ctx, fmt.Errorf("%w: bad signature", domain.ErrTokenInvalid)
	}

	if exp := token.Claims.ExpiresAt; exp == 0 || s.now().Unix() >= exp {
		return ctx, &domain.ExpiredTokenError{Scheme: s.cfg.Bearer, Realm: s.cfg.Realm}
	}
	if token.Claims.Issuer != s.cfg.Issuer {
		return ctx, fmt.Errorf("%w: unexpected issuer", domain.ErrTokenInvalid)
	}

	user, found := s.users.FindByID(token.Claims.Subject)
	if !found {
		return ctx, fmt.Errorf("%w: unknown subject", domain.ErrTokenInvalid)
	}
	return WithSubject(ctx, user.ID), nil
}

func (s *IamService) IsLoggedIn(ctx context.Context) bool {
	_, ok := SubjectFromContext(ctx)
	return ok
}

// HasAnyRole reports whether the bound subject holds at least one of roles.
func (s *IamService) HasAnyRole(ctx context.Context, roles ...string) bool {
	subject, ok := SubjectFromContext(ctx)
	if !ok {
		return false
	}
	user, found := s.users.FindByID(subject)
	if !found || len(user.Roles) == 0 {
		return false
	}

	for _, want := range s.roles.Normalize(roles) {
		for _, have := range user.Roles {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func wellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return strings.TrimSpace(parts[1]) != ""
}
