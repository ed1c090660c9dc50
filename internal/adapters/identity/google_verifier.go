package identity

import (
	"context"
	"fmt"

	googleidtokenverifier "github.com/movsb/google-idtoken-verifier"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

// GoogleVerifier verifies Google Sign-In ID tokens for one OAuth client.
type GoogleVerifier struct {
	clientID string
	verify   func(token, audience string) (*googleidtokenverifier.ClaimSet, error)
}

var _ providers.IdentityVerifier = (*GoogleVerifier)(nil)

// NewGoogleVerifier creates a verifier that accepts tokens issued to clientID
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID, verify: googleidtokenverifier.Verify}
}

// VerifyIDToken validates signature, audience and expiry of the token
func (v *GoogleVerifier) VerifyIDToken(_ context.Context, idToken string) (*entities.VerifiedIdentity, error) {
	claims, err := v.verify(idToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrInvalidToken, err)
	}
	return &entities.VerifiedIdentity{UID: claims.Sub, Email: claims.Email}, nil
}
