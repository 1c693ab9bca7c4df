package services

import (
	"context"
	"sync"
	"time"

	"swipedeck/models"

	"go.uber.org/zap"
)

// Dashboard wires the six components around one session: identity resolver,
// candidate feed, swipe engine, engagement poller, chat binder and view
// controller.
type Dashboard struct {
	Session  *Session
	Identity *IdentityService
	Feed     *FeedService
	Swipe    *SwipeService
	Poller   *EngagementPoller
	Binder   *ChatBinder
	View     *ViewController

	authToken string
	cancel    context.CancelFunc
}

// NewDashboard assembles the component graph for one session.
func NewDashboard(api RemoteAPI, notifier Notifier, pollInterval time.Duration, log *zap.Logger) *Dashboard {
	session := NewSession(log, notifier)
	binder := NewChatBinder(api, session, log)
	return &Dashboard{
		Session:  session,
		Identity: &IdentityService{API: api, Session: session, Log: log},
		Feed:     &FeedService{API: api, Session: session, Log: log},
		Swipe:    &SwipeService{API: api, Session: session, Log: log},
		Poller:   &EngagementPoller{API: api, Session: session, Log: log, Interval: pollInterval},
		Binder:   binder,
		View:     &ViewController{Session: session, Binder: binder, Log: log},
	}
}

// Start resolves the identity behind authToken, loads the initial candidate
// pool and begins polling. An identity failure aborts the start; a feed
// failure does not (it latches as an error state and the first successful
// refetch clears it).
func (d *Dashboard) Start(ctx context.Context, authToken string) (*models.Identity, error) {
	identity, err := d.Identity.LoadIdentity(ctx, authToken)
	if err != nil {
		return nil, err
	}
	d.authToken = authToken

	if err := d.Feed.Refresh(ctx); err != nil {
		d.Session.log.Warn("initial candidate load failed", zap.Error(err))
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.Poller.Start(pollCtx)

	return identity, nil
}

// ChangePreferences re-resolves the identity (picking up a changed gender
// interest) and rebuilds the candidate queue against it.
func (d *Dashboard) ChangePreferences(ctx context.Context) error {
	if _, err := d.Identity.LoadIdentity(ctx, d.authToken); err != nil {
		return err
	}
	return d.Feed.Refresh(ctx)
}

// Stop tears the session down: pollers halt and the state is abandoned.
func (d *Dashboard) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.Session.Close()
}

// SessionManager owns the live dashboards, one per authenticated user.
type SessionManager struct {
	mu         sync.Mutex
	dashboards map[string]*Dashboard

	api          RemoteAPI
	notifier     Notifier
	pollInterval time.Duration
	log          *zap.Logger
}

// NewSessionManager builds an empty manager sharing one remote client.
func NewSessionManager(api RemoteAPI, notifier Notifier, pollInterval time.Duration, log *zap.Logger) *SessionManager {
	return &SessionManager{
		dashboards:   make(map[string]*Dashboard),
		api:          api,
		notifier:     notifier,
		pollInterval: pollInterval,
		log:          log,
	}
}

// Login starts a dashboard session for the user behind authToken. A repeat
// login for the same user replaces the previous session.
func (m *SessionManager) Login(ctx context.Context, authToken string) (*Dashboard, *models.Identity, error) {
	dashboard := NewDashboard(m.api, m.notifier, m.pollInterval, m.log)
	identity, err := dashboard.Start(ctx, authToken)
	if err != nil {
		return nil, nil, err
	}

	m.mu.Lock()
	if previous, ok := m.dashboards[identity.UserID]; ok {
		previous.Stop()
	}
	m.dashboards[identity.UserID] = dashboard
	m.mu.Unlock()

	m.log.Info("session started", zap.String("userId", identity.UserID))
	return dashboard, identity, nil
}

// Get returns the live dashboard for userID.
func (m *SessionManager) Get(userID string) (*Dashboard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dashboards[userID]
	return d, ok
}

// Logout stops and removes userID's dashboard. Unknown users are a no-op.
func (m *SessionManager) Logout(userID string) bool {
	m.mu.Lock()
	dashboard, ok := m.dashboards[userID]
	delete(m.dashboards, userID)
	m.mu.Unlock()

	if !ok {
		return false
	}
	dashboard.Stop()
	m.log.Info("session ended", zap.String("userId", userID))
	return true
}
