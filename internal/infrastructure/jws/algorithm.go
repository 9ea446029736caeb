// Package jws signs and verifies compact JSON Web Signatures with a single,
// process-wide algorithm.
package jws

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Family is the signature scheme an algorithm belongs to.
type Family int

const (
	FamilyHMAC Family = iota + 1
	FamilyRSA
	FamilyECDSA
)

func (f Family) String() string {
	switch f {
	case FamilyHMAC:
		return "HMAC"
	case FamilyRSA:
		return "RSA"
	case FamilyECDSA:
		return "ECDSA"
	default:
		return "unknown"
	}
}

// Algorithm is a resolved signing algorithm. The zero value is unusable.
type Algorithm struct {
	name   string
	family Family
	method jwt.SigningMethod
}

var algorithms = map[string]Algorithm{
	"HS256": {name: "HS256", family: FamilyHMAC, method: jwt.SigningMethodHS256},
	"HS384": {name: "HS384", family: FamilyHMAC, method: jwt.SigningMethodHS384},
	"HS512": {name: "HS512", family: FamilyHMAC, method: jwt.SigningMethodHS512},
	"RS256": {name: "RS256", family: FamilyRSA, method: jwt.SigningMethodRS256},
	"RS384": {name: "RS384", family: FamilyRSA, method: jwt.SigningMethodRS384},
	"RS512": {name: "RS512", family: FamilyRSA, method: jwt.SigningMethodRS512},
	"ES256": {name: "ES256", family: FamilyECDSA, method: jwt.SigningMethodES256},
	"ES384": {name: "ES384", family: FamilyECDSA, method: jwt.SigningMethodES384},
	"ES512": {name: "ES512", family: FamilyECDSA, method: jwt.SigningMethodES512},
}

// ParseAlgorithm resolves a JOSE algorithm name such as "RS256".
func ParseAlgorithm(name string) (Algorithm, error) {
	alg, ok := algorithms[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Algorithm{}, fmt.Errorf("jws: unsupported algorithm %q", name)
	}
	return alg, nil
}

// MustParseAlgorithm is ParseAlgorithm for constants known to be valid.
func MustParseAlgorithm(name string) Algorithm {
	alg, err := ParseAlgorithm(name)
	if err != nil {
		panic(err)
	}
	return alg
}

// EnvDecode lets go-envconfig resolve the algorithm while loading config.
func (a *Algorithm) EnvDecode(val string) error {
	alg, err := ParseAlgorithm(val)
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

func (a Algorithm) Name() string { return a.name }
func (a Algorithm) Family() Family { return a.family }
func (a Algorithm) String() string { return a.name }
func (a Algorithm) IsZero() bool { return a.method == nil }
