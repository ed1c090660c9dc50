package providers

import (
	"context"
	"errors"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
)

// ErrInvalidToken is returned when an identity token fails verification.
var ErrInvalidToken = errors.New("identity token is invalid")

// IdentityVerifier turns an identity provider token into a verified identity.
type IdentityVerifier interface {
	// VerifyIDToken validates the token. Implementations wrap
	// ErrInvalidToken when the token itself is rejected.
	VerifyIDToken(ctx context.Context, idToken string) (*entities.VerifiedIdentity, error)
}
