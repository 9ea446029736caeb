package jws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catalogshop/catalog-api/internal/core/domain"
)

// Codec encodes, decodes and verifies tokens for one algorithm and key pair.
type Codec struct {
	alg    Algorithm
	keys   KeyPair
	parser *jwt.Parser
}

func NewCodec(alg Algorithm, keys KeyPair) *Codec {
	return &Codec{alg: alg, keys: keys, parser: jwt.NewParser()}
}

func (c *Codec) Algorithm() string { return c.alg.Name() }

// Encode signs header.claims and returns the three part compact form.
func (c *Codec) Encode(header domain.TokenHeader, claims domain.TokenClaims) (string, error) {
	if c.alg.IsZero() {
		return "", fmt.Errorf("%w: no algorithm configured", domain.ErrVerification)
	}

	h, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("jws: encode header: %w", err)
	}
	p, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("jws: encode claims: %w", err)
	}

	var enc jwt.Token
	signingString := enc.EncodeSegment(h) + "." + enc.EncodeSegment(p)

	sig, err := c.alg.method.Sign(signingString, c.keys.Sign)
	if err != nil {
		return "", fmt.Errorf("%w: sign: %v", domain.ErrVerification, err)
	}
	return signingString + "." + enc.EncodeSegment(sig), nil
}

// Decode parses a token without checking its signature.
func (c *Codec) Decode(token string) (*domain.Token, error) {
	parts, err := Split(token)
	if err != nil {
		return nil, err
	}

	var out domain.Token
	if err := c.decodeJSON(parts[0], &out.Header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrMalformedToken, err)
	}
	if err := c.decodeJSON(parts[1], &out.Claims); err != nil {
		return nil, fmt.Errorf("%w: claims: %v", domain.ErrMalformedToken, err)
	}
	out.Signature, err = c.parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature: %v", domain.ErrMalformedToken, err)
	}
	return &out, nil
}

// Verify checks the signature with the configured algorithm. A token that
// cannot be split or whose signature does not match yields false. Unusable
// key material yields domain.ErrVerification.
func (c *Codec) Verify(token string) (bool, error) {
	if c.alg.IsZero() {
		return false, fmt.Errorf("%w: no algorithm configured", domain.ErrVerification)
	}

	parts, err := Split(token)
	if err != nil {
		return false, nil
	}
	sig, err := c.parser.DecodeSegment(parts[2])
	if err != nil {
		return false, nil
	}

	err = c.alg.method.Verify(parts[0]+"."+parts[1], sig, c.keys.Verify)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, jwt.ErrInvalidKeyType),
		errors.Is(err, jwt.ErrInvalidKey),
		errors.Is(err, jwt.ErrHashUnavailable):
		return false, fmt.Errorf("%w: %v", domain.ErrVerification, err)
	default:
		return false, nil
	}
}

func (c *Codec) decodeJSON(segment string, v any) error {
	raw, err := c.parser.DecodeSegment(segment)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Split returns the three segments of a compact token. Every segment must be
// non-empty and the payload must not be blank.
func Split(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", domain.ErrMalformedToken, len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment", domain.ErrMalformedToken)
		}
	}
	if strings.TrimSpace(parts[1]) == "" {
		return nil, fmt.Errorf("%w: blank payload", domain.ErrMalformedToken)
	}
	return parts, nil
}
