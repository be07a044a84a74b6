package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrInvalidRole = errors.New("jwtx: invalid role claim")
)

// Verifier validates a session token and gives back the claims if legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer mints and verifies HS256 session tokens over a single process-wide
// secret. The secret is injected once at construction; nothing here reads
// configuration at call sites.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner returns a Signer over the given secret. A zero ttl falls back to
// DefaultSessionTTL.
func NewSigner(secret []byte, issuer string, ttl time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Signer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign issues a session token for the given subject and role.
func (s *Signer) Sign(subject string, role Role) (string, error) {
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return s.SignAt(subject, role, time.Now().UTC())
}

// SignAt is Sign with an explicit issue time, useful for tests.
func (s *Signer) SignAt(subject string, role Role, now time.Time) (string, error) {
	claims := NewSessionClaims(subject, role, s.ttl, s.issuer, now)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates the token string and returns its parsed Claims. Failures
// map onto the sentinel errors above so callers can distinguish expiry from
// a bad signature without string matching.
func (s *Signer) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			// An expired token reports expiry no matter how it was signed,
			// so the error never acts as a signature oracle.
			if expiredUnverified(tokenStr) {
				return Claims{}, ErrExpired
			}
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}
	if !claims.Role.Valid() {
		return Claims{}, ErrInvalidRole
	}

	return *claims, nil
}

// expiredUnverified decodes claims without checking the signature and reports
// whether the embedded expiry has passed.
func expiredUnverified(tokenStr string) bool {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return false
	}
	return errors.Is(claims.ValidateExpiry(), ErrExpired)
}
