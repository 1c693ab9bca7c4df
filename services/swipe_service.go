package services

import (
	"context"
	"errors"

	"swipedeck/models"

	"go.uber.org/zap"
)

// ErrLikedProfileActive is returned when a queue decision is requested while
// a re-presented liked profile holds the suggestion slot. The two
// consumption paths are deliberately separate entry points; neither falls
// through to the other.
var ErrLikedProfileActive = errors.New("a liked profile is being presented; decide on it first")

// ErrNothingPresented is returned when no liked profile is active for the
// liked-profile decision path.
var ErrNothingPresented = errors.New("no liked profile is being presented")

// SwipeService consumes candidates one at a time and submits accept/reject
// decisions. While an error state is latched it refuses to act; only a
// successful feed refresh clears the latch.
type SwipeService struct {
	API     RemoteAPI
	Session *Session
	Log     *zap.Logger
}

// DecideFromQueue submits a decision on the current queue head and, on a
// clean outcome, advances the cursor.
func (s *SwipeService) DecideFromQueue(ctx context.Context, action string) (models.SwipeOutcome, error) {
	if latched := s.Session.ErrorState(); latched != nil {
		return models.SwipeOutcome{Kind: latched.Kind, Message: latched.Message}, nil
	}
	if s.Session.LikedProfileActive() {
		return models.SwipeOutcome{}, ErrLikedProfileActive
	}

	identity, idGen := s.Session.IdentityEpoch()
	if identity == nil {
		return models.SwipeOutcome{}, models.ErrUnauthorized
	}

	candidate, ok := s.Session.QueueHead()
	if !ok {
		s.Session.LatchError(models.OutcomeStructuralError, models.LimitExhaustedMessage)
		return models.SwipeOutcome{
			Kind:    models.OutcomeStructuralError,
			Message: models.LimitExhaustedMessage,
		}, nil
	}

	outcome, err := s.submit(ctx, identity, candidate.UserID, action)
	if err != nil || outcome.Kind == models.OutcomeRateLimited || outcome.Kind == models.OutcomeStructuralError {
		return outcome, err
	}

	s.Session.ConsumeQueueHead(candidate.UserID, idGen)
	return outcome, nil
}

// DecideFromLikedProfile submits a decision on the re-presented liked
// profile. That profile never sat in the queue, so the cursor stays put.
func (s *SwipeService) DecideFromLikedProfile(ctx context.Context, action string) (models.SwipeOutcome, error) {
	if latched := s.Session.ErrorState(); latched != nil {
		return models.SwipeOutcome{Kind: latched.Kind, Message: latched.Message}, nil
	}

	identity, idGen := s.Session.IdentityEpoch()
	if identity == nil {
		return models.SwipeOutcome{}, models.ErrUnauthorized
	}

	liked, ok := s.Session.LikedProfile()
	if !ok {
		return models.SwipeOutcome{}, ErrNothingPresented
	}

	outcome, err := s.submit(ctx, identity, liked.UserID, action)
	if err != nil || outcome.Kind == models.OutcomeRateLimited || outcome.Kind == models.OutcomeStructuralError {
		return outcome, err
	}

	s.Session.ConsumeLikedProfile(liked.UserID, idGen)
	return outcome, nil
}

// PresentLikedProfile swaps a profile from LikesReceived into the suggestion
// slot, the way tapping a row in the likes list re-presents that user for a
// decision. Profiles already decided on are refused.
func (s *SwipeService) PresentLikedProfile(likedUserID string) error {
	entry, ok := s.Session.LikeEntry(likedUserID)
	if !ok {
		return errors.New("user is not in the received likes")
	}
	candidate := models.Candidate{
		UserID:     entry.UserID,
		FirstName:  entry.DisplayName,
		DisplayPic: entry.DisplayProfilePic,
	}
	if !s.Session.PresentLikedProfile(candidate) {
		return errors.New("profile was already decided on this session")
	}
	return nil
}

// submit performs the remote call and latches whatever error class comes
// back: rate limits and structural answers latch as themselves, transport
// failures latch as fetch errors. Clean outcomes pass through untouched.
func (s *SwipeService) submit(ctx context.Context, identity *models.Identity, candidateID, action string) (models.SwipeOutcome, error) {
	if !models.ValidAction(action) {
		return models.SwipeOutcome{}, errors.New("unknown swipe action: " + action)
	}

	outcome, err := s.API.SubmitDecision(ctx, identity.UserID, candidateID, action)
	if err != nil {
		s.Log.Warn("decision submission failed",
			zap.String("candidateId", candidateID), zap.Error(err))
		s.Session.LatchError(models.OutcomeFetchError, "could not submit your decision, please retry")
		return models.SwipeOutcome{}, err
	}

	switch outcome.Kind {
	case models.OutcomeRateLimited:
		s.Log.Info("decision rate limited", zap.String("candidateId", candidateID))
		s.Session.LatchError(models.OutcomeRateLimited, "You are out of swipes for today.")
	case models.OutcomeStructuralError:
		s.Session.LatchError(models.OutcomeStructuralError, outcome.Message)
	}
	return outcome, nil
}
