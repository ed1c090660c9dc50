package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/satisfaction-feedback/pkg/errors"
)

const sessionKeyPrefix = "admin_session:"

// SessionPolicy decides who may open an admin session.
type SessionPolicy struct {
	// AllowedEmails takes precedence over AllowedDomain when non-empty.
	AllowedEmails []string
	AllowedDomain string
	TTL           time.Duration
}

// IsEmailAllowed applies the allow-list, then the domain, and allows
// everyone when neither is configured.
func (p SessionPolicy) IsEmailAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}

	if len(p.AllowedEmails) > 0 {
		for _, allowed := range p.AllowedEmails {
			if strings.EqualFold(allowed, email) {
				return true
			}
		}
		return false
	}

	if domain := strings.TrimPrefix(strings.ToLower(p.AllowedDomain), "@"); domain != "" {
		return strings.HasSuffix(email, "@"+domain)
	}

	return true
}

// SessionService manages admin sessions backed by a cache provider.
type SessionService struct {
	cache       providers.CacheProvider
	verifier    providers.IdentityVerifier
	policy      SessionPolicy
	loginConfig entities.LoginConfig
	clock       Clock
}

// NewSessionService creates a new session service. verifier may be nil, in
// which case logins fail as unavailable.
func NewSessionService(
	cache providers.CacheProvider,
	verifier providers.IdentityVerifier,
	policy SessionPolicy,
	loginConfig entities.LoginConfig,
	clock Clock,
) *SessionService {
	if policy.TTL <= 0 {
		policy.TTL = 12 * time.Hour
	}
	loginConfig.AllowedDomain = policy.AllowedDomain
	loginConfig.AllowedEmails = append([]string{}, policy.AllowedEmails...)
	loginConfig.Enabled = verifier != nil
	return &SessionService{
		cache:       cache,
		verifier:    verifier,
		policy:      policy,
		loginConfig: loginConfig,
		clock:       clock,
	}
}

// TTL is the lifetime of a new session.
func (s *SessionService) TTL() time.Duration {
	return s.policy.TTL
}

// LoginConfig returns the configuration for the login page.
func (s *SessionService) LoginConfig() entities.LoginConfig {
	return s.loginConfig
}

// Login verifies an identity token and opens a session for an allowed email.
func (s *SessionService) Login(ctx context.Context, idToken string) (*entities.AdminSession, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, apperrors.NewValidationError("idToken is required")
	}
	if s.verifier == nil {
		return nil, apperrors.NewUnavailableError("identity provider is not configured")
	}

	logger := observability.LoggerFromContext(ctx)

	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, providers.ErrInvalidToken) {
			logger.Info().Err(err).Msg("Admin login rejected: invalid token")
			return nil, apperrors.NewUnauthorizedError("invalid identity token")
		}
		return nil, apperrors.NewExternalError("failed to verify identity token", err)
	}

	if !s.policy.IsEmailAllowed(identity.Email) {
		logger.Warn().Str("email", identity.Email).Msg("Admin login rejected: email not allowed")
		return nil, apperrors.NewForbiddenError("email is not authorized")
	}

	session := &entities.AdminSession{
		ID:        uuid.New().String(),
		UID:       identity.UID,
		Email:     strings.ToLower(identity.Email),
		CreatedAt: s.clock.Now().UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+session.ID, data, s.policy.TTL); err != nil {
		return nil, apperrors.NewInternalError("failed to store session", err)
	}

	logger.Info().Str("email", session.Email).Msg("Admin logged in")
	return session, nil
}

// Resolve returns the session for id, or nil when it is unknown or expired.
func (s *SessionService) Resolve(ctx context.Context, id string) (*entities.AdminSession, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, providers.ErrCacheMiss) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError("failed to load session", err)
	}

	var session entities.AdminSession
	if err := json.Unmarshal(data, &session); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Msg("Discarding unreadable session")
		if err := s.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete unreadable session")
		}
		return nil, nil
	}

	return &session, nil
}

// Logout ends the session. Unknown ids are not an error.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return apperrors.NewInternalError("failed to delete session", err)
	}
	return nil
}
