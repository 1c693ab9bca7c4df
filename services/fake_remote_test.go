package services

import (
	"context"
	"sync"
	"time"

	"swipedeck/models"

	"go.uber.org/zap"
)

// fakeRemote is an in-memory RemoteAPI. Each operation delegates to a
// replaceable func; unset funcs answer with benign defaults. Call counts are
// tracked for assertions.
type fakeRemote struct {
	mu sync.Mutex

	identityFn   func(ctx context.Context, userID string) (*models.Identity, error)
	candidatesFn func(ctx context.Context, userID, genderInterest string) ([]models.Candidate, error)
	likesFn      func(ctx context.Context, userID string) ([]models.EngagementEntry, error)
	matchesFn    func(ctx context.Context, userID string) ([]models.EngagementEntry, error)
	historyFn    func(ctx context.Context, senderID, recipientID string) ([]models.Message, error)
	decisionFn   func(ctx context.Context, userID, candidateID, action string) (models.SwipeOutcome, error)
	unmatchFn    func(ctx context.Context, userID, matchedID string) error

	decisionCalls int
	decidedIDs    []string
	historyCalls  int
	unmatchCalls  int
}

func (f *fakeRemote) FetchIdentity(ctx context.Context, userID string) (*models.Identity, error) {
	if f.identityFn != nil {
		return f.identityFn(ctx, userID)
	}
	return &models.Identity{UserID: userID, GenderInterest: "female", ProfileImageURL: "https://pics/self.jpg"}, nil
}

func (f *fakeRemote) FetchCandidates(ctx context.Context, userID, genderInterest string) ([]models.Candidate, error) {
	if f.candidatesFn != nil {
		return f.candidatesFn(ctx, userID, genderInterest)
	}
	return nil, nil
}

func (f *fakeRemote) FetchLikes(ctx context.Context, userID string) ([]models.EngagementEntry, error) {
	if f.likesFn != nil {
		return f.likesFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRemote) FetchMatches(ctx context.Context, userID string) ([]models.EngagementEntry, error) {
	if f.matchesFn != nil {
		return f.matchesFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRemote) FetchChatHistory(ctx context.Context, senderID, recipientID string) ([]models.Message, error) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()
	if f.historyFn != nil {
		return f.historyFn(ctx, senderID, recipientID)
	}
	return nil, nil
}

func (f *fakeRemote) SubmitDecision(ctx context.Context, userID, candidateID, action string) (models.SwipeOutcome, error) {
	f.mu.Lock()
	f.decisionCalls++
	f.decidedIDs = append(f.decidedIDs, candidateID)
	f.mu.Unlock()
	if f.decisionFn != nil {
		return f.decisionFn(ctx, userID, candidateID, action)
	}
	if action == models.ActionAccept {
		return models.SwipeOutcome{Kind: models.OutcomeAccepted}, nil
	}
	return models.SwipeOutcome{Kind: models.OutcomeRejected}, nil
}

func (f *fakeRemote) SubmitUnmatch(ctx context.Context, userID, matchedID string) error {
	f.mu.Lock()
	f.unmatchCalls++
	f.mu.Unlock()
	if f.unmatchFn != nil {
		return f.unmatchFn(ctx, userID, matchedID)
	}
	return nil
}

func (f *fakeRemote) counts() (decisions, histories, unmatches int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decisionCalls, f.historyCalls, f.unmatchCalls
}

func (f *fakeRemote) decisions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.decidedIDs...)
}

// newTestDashboard wires a dashboard around the fake without starting the
// poll loops; tests drive ticks by hand.
func newTestDashboard(fake *fakeRemote) *Dashboard {
	return NewDashboard(fake, nil, time.Second, zap.NewNop())
}

func cand(id string) models.Candidate {
	return models.Candidate{
		UserID:     id,
		FirstName:  "First-" + id,
		DOB:        "1998-04-12",
		Pronouns:   "they/them",
		About:      "hello",
		DisplayPic: "https://pics/" + id + ".jpg",
	}
}

func entry(id string) models.EngagementEntry {
	return models.EngagementEntry{
		UserID:            id,
		DisplayName:       "Name-" + id,
		DisplayProfilePic: "https://pics/" + id + ".jpg",
	}
}
