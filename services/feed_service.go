package services

import (
	"context"

	"swipedeck/models"

	"go.uber.org/zap"
)

// FeedService keeps the candidate queue fed. A refresh fetches the raw
// gendered pool and rebuilds the queue through the session's filter stage;
// on failure the previous queue survives untouched and an error flag blocks
// the swipe engine until a refetch succeeds.
type FeedService struct {
	API     RemoteAPI
	Session *Session
	Log     *zap.Logger
}

// Refresh re-fetches the candidate pool for the current identity. Call it on
// session start and whenever the identity or its gender interest changes.
func (s *FeedService) Refresh(ctx context.Context) error {
	identity, idGen := s.Session.IdentityEpoch()
	if identity == nil {
		return models.ErrUnauthorized
	}

	s.Session.BeginFeedRefresh()

	pool, err := s.API.FetchCandidates(ctx, identity.UserID, identity.GenderInterest)
	if err != nil {
		s.Log.Warn("candidate fetch failed", zap.String("userId", identity.UserID), zap.Error(err))
		s.Session.FailFeedRefresh("could not load new profiles, please retry")
		return err
	}

	if !s.Session.CommitFeed(pool, idGen) {
		s.Log.Debug("discarding stale candidate pool", zap.String("userId", identity.UserID))
		return nil
	}

	s.Log.Info("candidate queue rebuilt",
		zap.String("userId", identity.UserID),
		zap.Int("poolSize", len(pool)),
		zap.Int("queueLen", s.Session.QueueLen()))
	return nil
}
