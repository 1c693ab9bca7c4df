package services

import (
	"sync"

	"swipedeck/models"
	"swipedeck/utils"

	"go.uber.org/zap"
)

// Notifier pushes committed state changes to the rendering layer. The socket
// package implements it; a nil Notifier disables push.
type Notifier interface {
	Publish(userID, event string, payload interface{})
}

// Event names published to the rendering layer.
const (
	EventSuggestion = "suggestion"
	EventLikes      = "likes"
	EventMatches    = "matches"
	EventChat       = "chat"
	EventView       = "view"
)

// Session is the single mutable state of one authenticated dashboard user:
// identity, candidate queue, engagement collections, chat binding and view
// mode. It is created on login and torn down on log-out. All mutation goes
// through its methods under one mutex; reads hand out copies.
//
// Commit methods take the identity generation captured when their request
// was dispatched and refuse to apply a result if the identity has changed
// mid-flight. The per-collection request counters serve the same purpose
// for superseded poll responses.
type Session struct {
	mu       sync.Mutex
	log      *zap.Logger
	notifier Notifier

	identity    *models.Identity
	identityGen uint64

	rawPool     []models.Candidate
	queue       []models.Candidate
	cursor      int
	decided     map[string]struct{}
	feedLoading bool

	likedProfile *models.Candidate

	likes         []models.EngagementEntry
	likesLoaded   bool
	matches       []models.EngagementEntry
	matchesLoaded bool
	suppressed    map[string]struct{}

	likesReq   uint64
	matchesReq uint64

	chat *models.ChatSession
	mode models.ViewMode

	errState *models.ErrorState

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession builds an empty session in Browse mode.
func NewSession(log *zap.Logger, notifier Notifier) *Session {
	return &Session{
		log:        log,
		notifier:   notifier,
		decided:    make(map[string]struct{}),
		suppressed: make(map[string]struct{}),
		mode:       models.ModeBrowse,
		done:       make(chan struct{}),
	}
}

// Close tears the session down. The poller goroutines observe Done and stop.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Done is closed when the session has been torn down.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) publish(event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.mu.Lock()
	userID := ""
	if s.identity != nil {
		userID = s.identity.UserID
	}
	s.mu.Unlock()
	if userID == "" {
		return
	}
	s.notifier.Publish(userID, event, payload)
}

// --- identity ---

// SetIdentity installs a freshly resolved identity and bumps the identity
// generation, invalidating every in-flight response captured before it.
func (s *Session) SetIdentity(identity *models.Identity) {
	s.mu.Lock()
	s.identity = identity
	s.identityGen++
	s.mu.Unlock()
}

// IdentityEpoch snapshots the identity alongside its generation, for
// revalidation when a response comes back.
func (s *Session) IdentityEpoch() (*models.Identity, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil, s.identityGen
	}
	cp := *s.identity
	return &cp, s.identityGen
}

func (s *Session) identityCurrent(gen uint64) bool {
	return s.identity != nil && s.identityGen == gen
}

// --- candidate feed ---

// BeginFeedRefresh flags the suggestion as loading while a fetch is out.
func (s *Session) BeginFeedRefresh() {
	s.mu.Lock()
	s.feedLoading = true
	s.mu.Unlock()
}

// CommitFeed installs a freshly fetched raw pool, re-filters it into the
// queue and clears any latched error state: a successful fetch is the only
// thing that unblocks the swipe engine. A stale response (identity changed
// since dispatch) is discarded.
func (s *Session) CommitFeed(pool []models.Candidate, idGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) {
		s.mu.Unlock()
		return false
	}
	s.rawPool = pool
	s.refilterQueueLocked()
	s.feedLoading = false
	s.errState = nil
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
	return true
}

// FailFeedRefresh keeps the previous queue contents and latches a fetch
// error, suppressing swipe submissions until a refetch succeeds.
func (s *Session) FailFeedRefresh(message string) {
	s.mu.Lock()
	s.feedLoading = false
	s.errState = &models.ErrorState{Kind: models.OutcomeFetchError, Message: message}
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
}

// refilterQueueLocked rebuilds the queue from the raw pool, excluding the
// identity itself, every current match and every candidate already decided
// on this session. The cursor is clamped, not reset.
func (s *Session) refilterQueueLocked() {
	filtered := make([]models.Candidate, 0, len(s.rawPool))
	for i := range s.rawPool {
		c := s.rawPool[i]
		if !utils.SanitizeSuggestion(&c) {
			continue
		}
		if s.identity != nil && c.UserID == s.identity.UserID {
			continue
		}
		if _, ok := s.decided[c.UserID]; ok {
			continue
		}
		if s.isMatchLocked(c.UserID) {
			continue
		}
		filtered = append(filtered, c)
	}
	s.queue = filtered
	if s.cursor > len(s.queue) {
		s.cursor = len(s.queue)
	}
}

func (s *Session) isMatchLocked(userID string) bool {
	_, ok := utils.EntryByUserID(s.matches, userID)
	return ok
}

// Suggestion snapshots the candidate currently presented: a re-presented
// liked profile when one is active, otherwise the queue head, otherwise the
// latched error.
func (s *Session) Suggestion() models.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Suggestion{Loading: s.feedLoading}
	if s.errState != nil {
		es := *s.errState
		snap.Error = &es
		return snap
	}
	if s.likedProfile != nil {
		cp := *s.likedProfile
		snap.Candidate = &cp
		snap.ShowingLikedProfile = true
		return snap
	}
	if s.cursor < len(s.queue) {
		cp := s.queue[s.cursor]
		snap.Candidate = &cp
	}
	return snap
}

// QueueHead returns the candidate the queue cursor points at.
func (s *Session) QueueHead() (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.queue) {
		return models.Candidate{}, false
	}
	return s.queue[s.cursor], true
}

// QueueLen and Cursor expose queue geometry for the readiness snapshot.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// --- error latch ---

// ErrorState returns the latched error, nil when none.
func (s *Session) ErrorState() *models.ErrorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errState == nil {
		return nil
	}
	es := *s.errState
	return &es
}

// LatchError records a user-facing error state that blocks further swipe
// submissions until a successful feed refresh clears it.
func (s *Session) LatchError(kind models.OutcomeKind, message string) {
	s.mu.Lock()
	s.errState = &models.ErrorState{Kind: kind, Message: message}
	s.likedProfile = nil
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
}

// --- swipe consumption ---

// ConsumeQueueHead records a decision on the queue head: the candidate joins
// the decided set, the cursor advances one position and the next candidate
// is computed. Queue exhaustion at the new cursor latches a structural
// error rather than presenting nothing. Stale calls (identity changed) are
// dropped.
func (s *Session) ConsumeQueueHead(candidateID string, idGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) {
		s.mu.Unlock()
		return false
	}
	s.decided[candidateID] = struct{}{}
	if s.cursor < len(s.queue) && s.queue[s.cursor].UserID == candidateID {
		s.cursor++
	}
	if s.cursor >= len(s.queue) {
		s.errState = &models.ErrorState{
			Kind:    models.OutcomeStructuralError,
			Message: models.LimitExhaustedMessage,
		}
	}
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
	return true
}

// ConsumeLikedProfile records a decision on a re-presented liked profile.
// The cursor does not move, but the queue is re-filtered against the grown
// decided set: a user who sits in both LikesReceived and the candidate pool
// must not surface at the queue head after this decision. The presentation
// falls back to the queue head, with the same exhaustion check.
func (s *Session) ConsumeLikedProfile(candidateID string, idGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) {
		s.mu.Unlock()
		return false
	}
	s.decided[candidateID] = struct{}{}
	s.likedProfile = nil
	s.refilterQueueLocked()
	if s.cursor >= len(s.queue) {
		s.errState = &models.ErrorState{
			Kind:    models.OutcomeStructuralError,
			Message: models.LimitExhaustedMessage,
		}
	}
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
	return true
}

// HasDecided reports whether the candidate was already decided on this
// session.
func (s *Session) HasDecided(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.decided[userID]
	return ok
}

// PresentLikedProfile swaps a profile taken from LikesReceived into the
// suggestion slot. Rejected when that user already got a decision.
func (s *Session) PresentLikedProfile(c models.Candidate) bool {
	s.mu.Lock()
	if _, ok := s.decided[c.UserID]; ok {
		s.mu.Unlock()
		return false
	}
	s.likedProfile = &c
	s.mu.Unlock()

	s.publish(EventSuggestion, s.Suggestion())
	return true
}

// LikedProfileActive reports whether a liked profile currently preempts the
// queue head.
func (s *Session) LikedProfileActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likedProfile != nil
}

// LikedProfile returns the active liked-profile presentation, if any.
func (s *Session) LikedProfile() (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likedProfile == nil {
		return models.Candidate{}, false
	}
	return *s.likedProfile, true
}

// --- engagement collections ---

// BeginLikesPoll and BeginMatchesPoll issue a request generation for a poll
// tick; only the most recently issued generation may commit.
func (s *Session) BeginLikesPoll() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likesReq++
	return s.likesReq
}

func (s *Session) BeginMatchesPoll() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchesReq++
	return s.matchesReq
}

// CommitLikes replaces LikesReceived wholesale. Entries that are already
// mutual are dropped so the two collections stay disjoint. Superseded or
// stale responses are discarded.
func (s *Session) CommitLikes(entries []models.EngagementEntry, idGen, reqGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) || reqGen != s.likesReq {
		s.mu.Unlock()
		return false
	}
	next := make([]models.EngagementEntry, 0, len(entries))
	for _, e := range entries {
		if s.isMatchLocked(e.UserID) {
			continue
		}
		next = append(next, e)
	}
	s.likes = next
	s.likesLoaded = true
	s.mu.Unlock()

	s.publish(EventLikes, s.Likes())
	return true
}

// CommitMatches replaces Matches wholesale. An id removed by a local
// unmatch stays suppressed until a poll no longer contains it; once absent,
// the suppression is lifted. Likes that became mutual leave LikesReceived,
// the queue is re-filtered against the new exclusion set, and a chat bound
// to a vanished match is unbound.
func (s *Session) CommitMatches(entries []models.EngagementEntry, idGen, reqGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) || reqGen != s.matchesReq {
		s.mu.Unlock()
		return false
	}

	seen := make(map[string]struct{}, len(entries))
	next := make([]models.EngagementEntry, 0, len(entries))
	for _, e := range entries {
		seen[e.UserID] = struct{}{}
		if _, held := s.suppressed[e.UserID]; held {
			continue
		}
		next = append(next, e)
	}
	for id := range s.suppressed {
		if _, still := seen[id]; !still {
			delete(s.suppressed, id)
		}
	}
	s.matches = next
	s.matchesLoaded = true

	remaining := s.likes[:0]
	for _, e := range s.likes {
		if _, mutual := seen[e.UserID]; !mutual {
			remaining = append(remaining, e)
		}
	}
	s.likes = remaining

	s.refilterQueueLocked()

	chatUnbound := false
	if s.chat != nil && !s.isMatchLocked(s.chat.MatchedUserID) {
		s.chat = nil
		chatUnbound = true
	}
	s.mu.Unlock()

	s.publish(EventMatches, s.Matches())
	if chatUnbound {
		s.publish(EventChat, s.Chat())
	}
	return true
}

// Likes snapshots LikesReceived.
func (s *Session) Likes() models.EngagementList {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make([]models.EngagementEntry, len(s.likes))
	copy(data, s.likes)
	return models.EngagementList{Data: data, Loading: !s.likesLoaded}
}

// Matches snapshots the Matches collection.
func (s *Session) Matches() models.EngagementList {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make([]models.EngagementEntry, len(s.matches))
	copy(data, s.matches)
	return models.EngagementList{Data: data, Loading: !s.matchesLoaded}
}

// MatchEntry looks a match up by id.
func (s *Session) MatchEntry(userID string) (models.EngagementEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.EntryByUserID(s.matches, userID)
}

// LikeEntry looks a received like up by id.
func (s *Session) LikeEntry(userID string) (models.EngagementEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return utils.EntryByUserID(s.likes, userID)
}

// RemoveMatch takes an entry out of Matches optimistically after a
// successful unmatch, suppressing it from poll replaces until the server
// confirms its absence. A chat bound to it is cleared.
func (s *Session) RemoveMatch(userID string) {
	s.mu.Lock()
	kept := s.matches[:0]
	for _, e := range s.matches {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	s.matches = kept
	s.suppressed[userID] = struct{}{}

	chatCleared := false
	if s.chat != nil && s.chat.MatchedUserID == userID {
		s.chat = nil
		chatCleared = true
	}
	s.mu.Unlock()

	s.publish(EventMatches, s.Matches())
	if chatCleared {
		s.publish(EventChat, s.Chat())
	}
}

// --- chat binding ---

// BindChat installs a chat session. The bind is refused if the identity
// changed since the history was requested or the match has meanwhile gone
// away, keeping the bound-to-a-match invariant.
func (s *Session) BindChat(chat models.ChatSession, idGen uint64) bool {
	s.mu.Lock()
	if !s.identityCurrent(idGen) || !s.isMatchLocked(chat.MatchedUserID) {
		s.mu.Unlock()
		return false
	}
	s.chat = &chat
	s.mu.Unlock()

	s.publish(EventChat, s.Chat())
	return true
}

// Chat snapshots the bound chat session, nil when none is bound.
func (s *Session) Chat() *models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat == nil {
		return nil
	}
	cp := *s.chat
	cp.Messages = make([]models.Message, len(s.chat.Messages))
	copy(cp.Messages, s.chat.Messages)
	return &cp
}

// ClearChat drops the bound session, if any.
func (s *Session) ClearChat() {
	s.mu.Lock()
	had := s.chat != nil
	s.chat = nil
	s.mu.Unlock()
	if had {
		s.publish(EventChat, s.Chat())
	}
}

// --- view mode ---

// Mode returns the current view mode.
func (s *Session) Mode() models.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the view mode. Leaving Conversations destroys the bound
// chat session.
func (s *Session) SetMode(mode models.ViewMode) {
	s.mu.Lock()
	s.mode = mode
	chatCleared := false
	if mode != models.ModeConversations && s.chat != nil {
		s.chat = nil
		chatCleared = true
	}
	s.mu.Unlock()

	s.publish(EventView, map[string]interface{}{"mode": mode})
	if chatCleared {
		s.publish(EventChat, s.Chat())
	}
}

// MatchesLoaded reports whether the first successful matches poll landed;
// the Conversations transition is gated on it.
func (s *Session) MatchesLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matchesLoaded
}
