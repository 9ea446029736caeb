package domain

// TokenHeader is the JOSE header of a signed token.
type TokenHeader struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// TokenClaims is the payload of a signed token. Times are unix seconds.
type TokenClaims struct {
	IssuedAt  int64  `json:"iat"`
	Issuer    string `json:"iss"`
	Subject   string `json:"sub"`
	TokenID   string `json:"jti"`
	ExpiresAt int64  `json:"exp"`
}

// Token is a decoded, not necessarily verified, token.
type Token struct {
	Header    TokenHeader
	Claims    TokenClaims
	Signature []byte
}
