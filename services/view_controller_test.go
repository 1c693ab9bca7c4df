package services

import (
	"context"
	"testing"

	"swipedeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationsDeniedWhileMatchesLoading(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	ctx := context.Background()
	_, err := d.Identity.LoadIdentity(ctx, "u0")
	require.NoError(t, err)

	ok, err := d.View.ToConversations(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, models.ModeBrowse, d.Session.Mode())
}

func TestConversationsAutoBindsFirstMatch(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1", "u2")
	ctx := context.Background()

	ok, err := d.View.ToConversations(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.ModeConversations, d.Session.Mode())

	chat := d.Session.Chat()
	require.NotNil(t, chat)
	assert.Equal(t, "u1", chat.MatchedUserID)
}

func TestConversationsEntryWithNoMatches(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake) // loaded, but empty
	ctx := context.Background()

	ok, err := d.View.ToConversations(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, d.Session.Chat())
}

func TestNoRebindOverLiveSession(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1", "u2")
	ctx := context.Background()

	_, err := d.View.ToConversations(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Binder.OpenChat(ctx, "u2"))

	// The collection churns while we sit in Conversations; the bound
	// session must survive a repeated transition request.
	seedMatches(t, d, fake, "u3", "u1", "u2")
	_, err = d.View.ToConversations(ctx)
	require.NoError(t, err)

	chat := d.Session.Chat()
	require.NotNil(t, chat)
	assert.Equal(t, "u2", chat.MatchedUserID)
}

func TestToBrowseDestroysChat(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")
	ctx := context.Background()

	_, err := d.View.ToConversations(ctx)
	require.NoError(t, err)
	require.NotNil(t, d.Session.Chat())

	d.View.ToBrowse()

	assert.Equal(t, models.ModeBrowse, d.Session.Mode())
	assert.Nil(t, d.Session.Chat())

	// Coming back with no session bound auto-binds again.
	_, err = d.View.ToConversations(ctx)
	require.NoError(t, err)
	require.NotNil(t, d.Session.Chat())
}

func TestChangeTabRejectsUnknown(t *testing.T) {
	fake := &fakeRemote{}
	d := newTestDashboard(fake)
	seedMatches(t, d, fake, "u1")

	_, changed, err := d.View.ChangeTab(context.Background(), "settings")
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.False(t, changed)
}
