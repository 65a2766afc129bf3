package session

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarly/sellerconsole/internal/ai"
	"github.com/bazaarly/sellerconsole/internal/draft"
	"github.com/bazaarly/sellerconsole/internal/event"
)

func newTestManager() *Manager {
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewManager(&ai.StubClient{}, event.NewProducer(nil, log), time.Second, log)
}

func strptr(s string) *string { return &s }

func TestGet_CreatesLazilyAndReuses(t *testing.T) {
	m := newTestManager()
	assert.Zero(t, m.Count())

	first := m.Get("seller-1")
	second := m.Get("seller-1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Count())
}

func TestGet_SessionsAreIsolated(t *testing.T) {
	m := newTestManager()

	a := m.Get("seller-a")
	b := m.Get("seller-b")

	a.Drafts.Apply(draft.Update{Details: &draft.DetailsUpdate{Name: strptr("Mug")}})
	_, err := a.Shop.ToggleStock("Blue Ceramic Mug")
	require.NoError(t, err)

	assert.Empty(t, b.Drafts.Current().ProductDetails.Name)
	for _, item := range b.Shop.Inventory() {
		if item.ProductName == "Blue Ceramic Mug" {
			assert.True(t, item.InStock, "another seller's toggle must not leak")
		}
	}
}

func TestDrop_DiscardsWorkingDraft(t *testing.T) {
	m := newTestManager()
	sess := m.Get("seller-1")
	sess.Drafts.Apply(draft.Update{Details: &draft.DetailsUpdate{Name: strptr("Mug")}})

	m.Drop("seller-1")
	assert.Zero(t, m.Count())

	fresh := m.Get("seller-1")
	assert.Empty(t, fresh.Drafts.Current().ProductDetails.Name)
}

func TestGet_ConcurrentFirstUseYieldsOneSession(t *testing.T) {
	m := newTestManager()

	const goroutines = 16
	results := make([]*Session, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Get("seller-1")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, m.Count())
	for _, sess := range results {
		assert.Same(t, results[0], sess)
	}
}
