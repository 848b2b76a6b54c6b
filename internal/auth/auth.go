// Package auth resolves bearer credentials to user identities.
//
// chatwire trusts the resolved identity and performs no credential issuance
// itself; JWT verification or session lookup belongs to the service that
// issued the credential and plugs in behind the Verifier interface.
package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidToken is returned when a credential resolves to no user.
var ErrInvalidToken = errors.New("auth: invalid token")

// Verifier resolves a bearer credential to a user id.
type Verifier interface {
	Verify(token string) (int64, error)
}

// StaticVerifier maps fixed tokens to user ids. Intended for dev and test
// deployments; configured via the [auth.tokens] table in the config file.
type StaticVerifier map[string]int64

var _ Verifier = (StaticVerifier)(nil)

func (v StaticVerifier) Verify(token string) (int64, error) {
	for candidate, id := range v {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
			return id, nil
		}
	}
	return 0, ErrInvalidToken
}
