package services

import (
	"context"

	"swipedeck/models"
)

// RemoteAPI is the slice of the matching backend this engine consumes. The
// api.Client implements it; tests substitute a fake.
type RemoteAPI interface {
	FetchIdentity(ctx context.Context, userID string) (*models.Identity, error)
	FetchCandidates(ctx context.Context, userID, genderInterest string) ([]models.Candidate, error)
	FetchLikes(ctx context.Context, userID string) ([]models.EngagementEntry, error)
	FetchMatches(ctx context.Context, userID string) ([]models.EngagementEntry, error)
	FetchChatHistory(ctx context.Context, senderID, recipientID string) ([]models.Message, error)
	SubmitDecision(ctx context.Context, userID, candidateID, action string) (models.SwipeOutcome, error)
	SubmitUnmatch(ctx context.Context, userID, matchedID string) error
}
