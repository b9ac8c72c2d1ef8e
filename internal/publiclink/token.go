package publiclink

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"penscribe/sign-portal/sign-portal-backend/pkg/apperr"
)

// Issuer mints and verifies capability-link tokens. The protocol is fully
// stateless: a token is valid iff its signature verifies and its embedded
// expiry has not passed, so no storage or revocation list exists.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

type linkClaims struct {
	DocumentID uuid.UUID `json:"document_id"`
	jwt.RegisteredClaims
}

// Issue produces a signed token granting exactly one capability: create a
// signature for the given document.
func (i *Issuer) Issue(documentID uuid.UUID) (string, error) {
	now := time.Now()
	claims := linkClaims{
		DocumentID: documentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks the token and returns the embedded document id, nothing
// more.
func (i *Issuer) Verify(token string) (uuid.UUID, error) {
	claims := &linkClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, apperr.Wrap(apperr.KindExpired, "signing link has expired", err)
		}
		return uuid.Nil, apperr.Wrap(apperr.KindInvalidToken, "invalid signing link", err)
	}
	if !parsed.Valid || claims.DocumentID == uuid.Nil {
		return uuid.Nil, apperr.New(apperr.KindInvalidToken, "invalid signing link")
	}
	return claims.DocumentID, nil
}
