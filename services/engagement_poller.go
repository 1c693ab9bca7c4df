package services

import (
	"context"
	"time"

	"swipedeck/utils"

	"go.uber.org/zap"
)

// EngagementPoller keeps LikesReceived and Matches synchronized with server
// state. Two independent tickers, one per collection, each: fetch, sanitize,
// replace wholesale. Poll failures are logged and skipped; the next tick is
// the retry. A result commits only if it is still the newest outstanding
// request for its collection and the identity has not changed mid-flight.
type EngagementPoller struct {
	API      RemoteAPI
	Session  *Session
	Log      *zap.Logger
	Interval time.Duration
}

// Start launches the two poll loops. They stop when ctx is cancelled or the
// session is closed.
func (p *EngagementPoller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}
	go p.run(ctx, interval, p.PollLikesOnce)
	go p.run(ctx, interval, p.PollMatchesOnce)
}

func (p *EngagementPoller) run(ctx context.Context, interval time.Duration, tick func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.Session.Done():
			return
		case <-ticker.C:
			tick(ctx)
		}
	}
}

// PollLikesOnce performs one likes tick.
func (p *EngagementPoller) PollLikesOnce(ctx context.Context) {
	identity, idGen := p.Session.IdentityEpoch()
	if identity == nil {
		return
	}
	reqGen := p.Session.BeginLikesPoll()

	raw, err := p.API.FetchLikes(ctx, identity.UserID)
	if err != nil {
		p.Log.Warn("likes poll failed", zap.String("userId", identity.UserID), zap.Error(err))
		return
	}

	if !p.Session.CommitLikes(utils.SanitizeProfiles(raw), idGen, reqGen) {
		p.Log.Debug("likes poll superseded", zap.String("userId", identity.UserID))
	}
}

// PollMatchesOnce performs one matches tick.
func (p *EngagementPoller) PollMatchesOnce(ctx context.Context) {
	identity, idGen := p.Session.IdentityEpoch()
	if identity == nil {
		return
	}
	reqGen := p.Session.BeginMatchesPoll()

	raw, err := p.API.FetchMatches(ctx, identity.UserID)
	if err != nil {
		p.Log.Warn("matches poll failed", zap.String("userId", identity.UserID), zap.Error(err))
		return
	}

	if !p.Session.CommitMatches(utils.SanitizeProfiles(raw), idGen, reqGen) {
		p.Log.Debug("matches poll superseded", zap.String("userId", identity.UserID))
	}
}
