package services

import (
	"context"
	"errors"

	"swipedeck/models"

	"go.uber.org/zap"
)

// ErrUnknownTab is returned for a tab name outside the two view modes.
var ErrUnknownTab = errors.New("unknown tab")

// ViewController is the small state machine selecting between Browse and
// Conversations. Entering Conversations is denied while Matches is still
// loading; on entry, the first match is auto-bound when no chat session is
// bound yet.
type ViewController struct {
	Session *Session
	Binder  *ChatBinder
	Log     *zap.Logger
}

// ChangeTab requests a transition. It returns the resulting mode and
// whether the transition was applied.
func (v *ViewController) ChangeTab(ctx context.Context, tab string) (models.ViewMode, bool, error) {
	if !models.ValidMode(tab) {
		return v.Session.Mode(), false, ErrUnknownTab
	}

	switch models.ViewMode(tab) {
	case models.ModeBrowse:
		v.ToBrowse()
		return models.ModeBrowse, true, nil
	default:
		ok, err := v.ToConversations(ctx)
		return v.Session.Mode(), ok, err
	}
}

// ToConversations enters Conversations mode. Denied (mode unchanged) while
// the Matches collection has not finished loading.
func (v *ViewController) ToConversations(ctx context.Context) (bool, error) {
	if !v.Session.MatchesLoaded() {
		v.Log.Debug("conversations transition denied: matches still loading")
		return false, nil
	}

	v.Session.SetMode(models.ModeConversations)

	// Auto-bind the first match only when nothing is bound; collection
	// churn while already in this mode never re-binds over a live session.
	if v.Session.Chat() == nil {
		matches := v.Session.Matches()
		if len(matches.Data) > 0 {
			if err := v.Binder.OpenChat(ctx, matches.Data[0].UserID); err != nil {
				v.Log.Warn("auto-bind of first match failed", zap.Error(err))
				return true, err
			}
		}
	}
	return true, nil
}

// ToBrowse returns to Browse mode. No preconditions; the bound chat session
// is destroyed on the way out.
func (v *ViewController) ToBrowse() {
	v.Session.SetMode(models.ModeBrowse)
}
