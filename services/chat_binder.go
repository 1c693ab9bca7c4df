package services

import (
	"context"
	"fmt"
	"time"

	"swipedeck/models"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ChatBinder binds a selected match to an active conversation session and
// handles unmatching. Fetched histories are held in a short-lived
// session-scoped cache so re-selecting a match inside the poll window does
// not refetch the same messages.
type ChatBinder struct {
	API     RemoteAPI
	Session *Session
	Log     *zap.Logger
	history *gocache.Cache
}

// NewChatBinder builds a binder with its history cache.
func NewChatBinder(api RemoteAPI, session *Session, log *zap.Logger) *ChatBinder {
	return &ChatBinder{
		API:     api,
		Session: session,
		Log:     log,
		history: gocache.New(30*time.Second, time.Minute),
	}
}

// OpenChat loads the conversation with matchedUserID and binds it as the
// active chat session. Selecting a user who is not a current match does
// nothing: a session must never bind to a non-match.
func (b *ChatBinder) OpenChat(ctx context.Context, matchedUserID string) error {
	identity, idGen := b.Session.IdentityEpoch()
	if identity == nil {
		return models.ErrUnauthorized
	}

	entry, ok := b.Session.MatchEntry(matchedUserID)
	if !ok {
		b.Log.Debug("ignoring chat open for non-match", zap.String("matchedUserId", matchedUserID))
		return nil
	}

	messages, err := b.loadHistory(ctx, identity.UserID, matchedUserID)
	if err != nil {
		return err
	}

	chat := models.ChatSession{
		MatchedUserID:     entry.UserID,
		DisplayName:       entry.DisplayName,
		DisplayProfilePic: entry.DisplayProfilePic,
		// Static default: there is no presence signal behind this field.
		Status:   models.ChatStatusOnline,
		Messages: messages,
	}
	if !b.Session.BindChat(chat, idGen) {
		b.Log.Debug("discarding stale chat bind", zap.String("matchedUserId", matchedUserID))
	}
	return nil
}

// Unmatch severs the match on the server, then removes it locally. An
// absent id gets ErrNotMatched without any remote call, so a double unmatch
// cannot corrupt state; a failed remote call leaves both the collection and
// any bound chat untouched.
func (b *ChatBinder) Unmatch(ctx context.Context, matchedUserID string) error {
	identity, _ := b.Session.IdentityEpoch()
	if identity == nil {
		return models.ErrUnauthorized
	}

	if _, ok := b.Session.MatchEntry(matchedUserID); !ok {
		return models.ErrNotMatched
	}

	if err := b.API.SubmitUnmatch(ctx, identity.UserID, matchedUserID); err != nil {
		b.Log.Warn("unmatch failed", zap.String("matchedUserId", matchedUserID), zap.Error(err))
		return fmt.Errorf("unmatch %s: %w", matchedUserID, err)
	}

	b.Session.RemoveMatch(matchedUserID)
	b.history.Delete(historyKey(identity.UserID, matchedUserID))
	b.Log.Info("unmatched", zap.String("userId", identity.UserID), zap.String("matchedUserId", matchedUserID))
	return nil
}

func (b *ChatBinder) loadHistory(ctx context.Context, senderID, recipientID string) ([]models.Message, error) {
	key := historyKey(senderID, recipientID)
	if cached, ok := b.history.Get(key); ok {
		return cached.([]models.Message), nil
	}

	messages, err := b.API.FetchChatHistory(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	b.history.Set(key, messages, gocache.DefaultExpiration)
	return messages, nil
}

func historyKey(senderID, recipientID string) string {
	return senderID + "|" + recipientID
}
