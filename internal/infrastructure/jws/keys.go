package jws

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// KeyFiles names the key material on disk. Only the entries required by the
// configured algorithm family are read.
type KeyFiles struct {
	Secret        string
	RSAPrivateKey string
	RSAPublicKey  string
	ECPrivateKey  string
	ECPublicKey   string
}

// KeyPair holds the signing and verifying keys for one algorithm. For HMAC
// both are the same []byte secret.
type KeyPair struct {
	Sign   any
	Verify any
}

// LoadKeys reads and parses the keys the algorithm's family needs.
func LoadKeys(alg Algorithm, files KeyFiles) (KeyPair, error) {
	switch alg.Family() {
	case FamilyHMAC:
		if files.Secret == "" {
			return KeyPair{}, errors.New("jws: empty HMAC secret")
		}
		secret := []byte(files.Secret)
		return KeyPair{Sign: secret, Verify: secret}, nil

	case FamilyRSA:
		privPEM, pubPEM, err := readPair(files.RSAPrivateKey, files.RSAPublicKey)
		if err != nil {
			return KeyPair{}, err
		}
		priv, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
		if err != nil {
			return KeyPair{}, fmt.Errorf("jws: rsa private key: %w", err)
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
		if err != nil {
			return KeyPair{}, fmt.Errorf("jws: rsa public key: %w", err)
		}
		return KeyPair{Sign: priv, Verify: pub}, nil

	case FamilyECDSA:
		privPEM, pubPEM, err := readPair(files.ECPrivateKey, files.ECPublicKey)
		if err != nil {
			return KeyPair{}, err
		}
		priv, err := jwt.ParseECPrivateKeyFromPEM(privPEM)
		if err != nil {
			return KeyPair{}, fmt.Errorf("jws: ec private key: %w", err)
		}
		pub, err := jwt.ParseECPublicKeyFromPEM(pubPEM)
		if err != nil {
			return KeyPair{}, fmt.Errorf("jws: ec public key: %w", err)
		}
		return KeyPair{Sign: priv, Verify: pub}, nil
	}
	return KeyPair{}, fmt.Errorf("jws: unsupported algorithm %q", alg.Name())
}

func readPair(privPath, pubPath string) ([]byte, []byte, error) {
	priv, err := os.ReadFile(privPath)
	if err != nil {
		return nil, nil, fmt.Errorf("jws: read private key: %w", err)
	}
	pub, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, nil, fmt.Errorf("jws: read public key: %w", err)
	}
	return priv, pub, nil
}
