package services

import (
	"context"
	"errors"
	"testing"

	"swipedeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMatches(t *testing.T, d *Dashboard, fake *fakeRemote, ids ...string) {
	t.Helper()
	ctx := context.Background()
	if identity, _ := d.Session.IdentityEpoch(); identity == nil {
		_, err := d.Identity.LoadIdentity(ctx, "u0")
		require.NoError(t, err)
	}
	entries := make([]models.EngagementEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, entry(id))
	}
	fake.matchesFn = func(_ context.Context, _ string) ([]models.EngagementEntry, error) {
		return entries, nil
	}
	d.Poller.PollMatchesOnce(ctx)
	require.Len(t, d.Session.Matches().Data, len(ids))
}

func TestOpenChatBindsMatch(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1", "u2")
	ctx := context.Background()

	fake.historyFn = func(_ context.Context, senderID, recipientID string) ([]models.Message, error) {
		assert.Equal(t, "u0", senderID)
		assert.Equal(t, "u1", recipientID)
		return []models.Message{
			{MessageID: "m1", SenderID: "u1", Content: "hey", CreatedAt: "2026-08-30T10:00:00Z"},
			{MessageID: "m2", SenderID: "u0", Content: "hi!", CreatedAt: "2026-08-30T10:01:00Z"},
		}, nil
	}

	require.NoError(t, d.Binder.OpenChat(ctx, "u1"))

	chat := d.Session.Chat()
	require.NotNil(t, chat)
	assert.Equal(t, "u1", chat.MatchedUserID)
	assert.Equal(t, "Name-u1", chat.DisplayName)
	assert.Equal(t, models.ChatStatusOnline, chat.Status)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "hey", chat.Messages[0].Content)
}

func TestOpenChatNonMatchIsNoop(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")

	require.NoError(t, d.Binder.OpenChat(context.Background(), "stranger"))

	assert.Nil(t, d.Session.Chat())
	_, histories, _ := fake.counts()
	assert.Zero(t, histories)
}

func TestOpenChatUsesHistoryCache(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")
	ctx := context.Background()

	require.NoError(t, d.Binder.OpenChat(ctx, "u1"))
	require.NoError(t, d.Binder.OpenChat(ctx, "u1"))

	_, histories, _ := fake.counts()
	assert.Equal(t, 1, histories, "second open inside the cache window must not refetch")
}

func TestUnmatchRemovesAndClearsChat(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1", "u2")
	ctx := context.Background()

	require.NoError(t, d.Binder.OpenChat(ctx, "u1"))
	require.NotNil(t, d.Session.Chat())

	require.NoError(t, d.Binder.Unmatch(ctx, "u1"))

	matches := d.Session.Matches()
	require.Len(t, matches.Data, 1)
	assert.Equal(t, "u2", matches.Data[0].UserID)
	assert.Nil(t, d.Session.Chat(), "the bound session pointed at u1")
}

func TestUnmatchKeepsUnrelatedChat(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1", "u2")
	ctx := context.Background()

	require.NoError(t, d.Binder.OpenChat(ctx, "u2"))
	require.NoError(t, d.Binder.Unmatch(ctx, "u1"))

	chat := d.Session.Chat()
	require.NotNil(t, chat)
	assert.Equal(t, "u2", chat.MatchedUserID)
}

func TestUnmatchAbsentMatch(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")
	ctx := context.Background()

	require.NoError(t, d.Binder.Unmatch(ctx, "u1"))
	assert.ErrorIs(t, d.Binder.Unmatch(ctx, "u1"), models.ErrNotMatched)

	_, _, unmatches := fake.counts()
	assert.Equal(t, 1, unmatches, "the second call must not reach the server")
	assert.Empty(t, d.Session.Matches().Data)

	assert.ErrorIs(t, d.Binder.Unmatch(ctx, "stranger"), models.ErrNotMatched)
}

func TestUnmatchFailureLeavesStateUntouched(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")
	ctx := context.Background()

	require.NoError(t, d.Binder.OpenChat(ctx, "u1"))

	fake.unmatchFn = func(_ context.Context, _, _ string) error {
		return errors.New("server rejected")
	}
	err := d.Binder.Unmatch(ctx, "u1")
	require.Error(t, err)

	assert.Len(t, d.Session.Matches().Data, 1, "no silent success")
	assert.NotNil(t, d.Session.Chat())
}
