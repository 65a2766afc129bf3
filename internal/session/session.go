// Package session owns the per-seller state of the console. Each
// authenticated seller gets one Session holding their draft store, shop,
// channel selector and publish workflow; nothing lives in package globals.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bazaarly/sellerconsole/internal/ai"
	"github.com/bazaarly/sellerconsole/internal/channel"
	"github.com/bazaarly/sellerconsole/internal/draft"
	"github.com/bazaarly/sellerconsole/internal/enrich"
	"github.com/bazaarly/sellerconsole/internal/event"
	"github.com/bazaarly/sellerconsole/internal/publish"
	"github.com/bazaarly/sellerconsole/internal/shop"
)

// Session is the complete console state for one seller.
type Session struct {
	SellerID string

	Drafts   *draft.Store
	Ingestor *draft.Ingestor
	Shop     *shop.State
	Selector *channel.Selector
	Enricher *enrich.Orchestrator
	Workflow *publish.Workflow
}

// sellerSink binds the publish workflow's event emission to a seller id.
type sellerSink struct {
	sellerID string
	producer *event.Producer
}

func (s *sellerSink) ListingPublished(ctx context.Context, productName string, channels []string) {
	s.producer.ListingPublished(ctx, s.sellerID, productName, channels)
}

// Manager creates sessions lazily on first authenticated request and drops
// them on logout. Safe for concurrent use.
type Manager struct {
	aiClient      ai.Client
	events        *event.Producer
	enrichTimeout time.Duration
	logger        *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(aiClient ai.Client, events *event.Producer, enrichTimeout time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		aiClient:      aiClient,
		events:        events,
		enrichTimeout: enrichTimeout,
		logger:        log,
		sessions:      make(map[string]*Session),
	}
}

// Get returns the seller's session, creating it on first use.
func (m *Manager) Get(sellerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sellerID]; ok {
		return sess
	}

	store := draft.NewStore()
	sel := channel.NewSelector()
	enricher := enrich.NewOrchestrator(m.aiClient, store, m.enrichTimeout, m.logger)
	sink := &sellerSink{sellerID: sellerID, producer: m.events}

	sess := &Session{
		SellerID: sellerID,
		Drafts:   store,
		Ingestor: draft.NewIngestor(store, m.logger),
		Shop:     shop.NewState(),
		Selector: sel,
		Enricher: enricher,
		Workflow: publish.NewWorkflow(store, sel, enricher, sink, m.logger),
	}
	m.sessions[sellerID] = sess

	m.logger.Info("session created", slog.String("seller_id", sellerID))
	return sess
}

// Drop discards a seller's session. The working draft is lost; that is the
// logout contract.
func (m *Manager) Drop(sellerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sellerID]; ok {
		delete(m.sessions, sellerID)
		m.logger.Info("session dropped", slog.String("seller_id", sellerID))
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
