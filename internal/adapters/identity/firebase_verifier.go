package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
)

// firebaseAuth is the subset of *auth.Client used for verification.
type firebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// FirebaseVerifier verifies Firebase Auth ID tokens.
type FirebaseVerifier struct {
	auth firebaseAuth
}

var _ providers.IdentityVerifier = (*FirebaseVerifier)(nil)

// NewFirebaseVerifier creates a verifier backed by Firebase Auth
func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{auth: client}
}

// VerifyIDToken validates the token. When the token carries no email claim
// the user record is consulted.
func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*entities.VerifiedIdentity, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrInvalidToken, err)
	}

	identity := &entities.VerifiedIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}

	if identity.Email == "" && token.UID != "" {
		user, err := v.auth.GetUser(ctx, token.UID)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("uid", token.UID).Msg("Failed to look up user email")
		} else if user != nil && user.UserInfo != nil {
			identity.Email = user.Email
		}
	}

	return identity, nil
}
