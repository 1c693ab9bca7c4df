package services

import (
	"context"
	"errors"

	"swipedeck/models"

	"go.uber.org/zap"
)

// IdentityService resolves the authenticated user's own profile. It runs on
// session start and whenever the auth token changes, and never retries: an
// auth failure means the session is unauthenticated and the caller redirects
// out.
type IdentityService struct {
	API     RemoteAPI
	Session *Session
	Log     *zap.Logger
}

// LoadIdentity resolves the identity behind authToken and installs it on the
// session, invalidating every response captured under the previous identity.
func (s *IdentityService) LoadIdentity(ctx context.Context, authToken string) (*models.Identity, error) {
	identity, err := s.API.FetchIdentity(ctx, authToken)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			s.Log.Warn("identity resolution refused", zap.String("token", authToken))
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	s.Session.SetIdentity(identity)
	s.Log.Info("identity resolved",
		zap.String("userId", identity.UserID),
		zap.String("genderInterest", identity.GenderInterest))
	return identity, nil
}
