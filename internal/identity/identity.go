package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned for every verification failure: missing,
// malformed, expired or revoked tokens, and provider-side errors all look
// the same to the caller. Sub-reasons are wrapped for server-side logs only.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the verified caller, as asserted by the identity provider.
type Identity struct {
	UserID string
	Email  string
}

// Verifier validates an opaque access token and derives the caller identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
