// Package draft owns the single in-progress product-content draft for a
// seller session plus the append-only list of saved snapshots.
package draft

import (
	"sync"
	"time"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

// DetailsUpdate is a key-by-key partial update of the product details.
// Nil fields are left untouched.
type DetailsUpdate struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Price    *string `json:"price"`
	Quantity *string `json:"quantity"`
}

// Update is a partial draft update. Top-level fields overwrite wholesale;
// Details merges key by key so updating the price alone never erases the name.
type Update struct {
	Media          *[]domain.MediaRef `json:"media"`
	NativeAudio    *domain.MediaRef   `json:"native_audio"`
	ClearAudio     bool               `json:"clear_audio"`
	TranslatedText *string            `json:"translated_text"`
	Details        *DetailsUpdate     `json:"product_details"`
}

// Store holds the working draft and saved snapshots. All methods are safe
// for concurrent use; media ingestion completions and the enrichment
// callback both write through here.
type Store struct {
	mu      sync.RWMutex
	current domain.Draft
	saved   []domain.SavedDraft
	nowFunc func() time.Time
}

// NewStore creates a store with an empty working draft.
func NewStore() *Store {
	return &Store{
		current: domain.NewDraft(),
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Current returns a deep copy of the working draft.
func (s *Store) Current() domain.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Apply merges a partial update into the working draft.
func (s *Store) Apply(u Update) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Media != nil {
		media := make([]domain.MediaRef, len(*u.Media))
		copy(media, *u.Media)
		s.current.Media = capMedia(media)
	}
	if u.ClearAudio {
		s.current.NativeAudio = nil
	} else if u.NativeAudio != nil {
		audio := *u.NativeAudio
		s.current.NativeAudio = &audio
	}
	if u.TranslatedText != nil {
		s.current.TranslatedText = *u.TranslatedText
	}
	if u.Details != nil {
		d := &s.current.ProductDetails
		if u.Details.Name != nil {
			d.Name = *u.Details.Name
		}
		if u.Details.Category != nil {
			d.Category = *u.Details.Category
		}
		if u.Details.Price != nil {
			d.Price = *u.Details.Price
		}
		if u.Details.Quantity != nil {
			d.Quantity = *u.Details.Quantity
		}
	}

	return s.current.Clone()
}

// SetTranslatedText replaces the canonical description.
func (s *Store) SetTranslatedText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.TranslatedText = text
}

// AppendMedia adds a media reference, keeping at most the five most recent.
// Append order is completion order when uploads race.
func (s *Store) AppendMedia(ref domain.MediaRef) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref.AddedAt = s.nowFunc()
	s.current.Media = capMedia(append(s.current.Media, ref))
	return s.current.Clone()
}

// RemoveMedia deletes the media reference at the given index.
func (s *Store) RemoveMedia(index int) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.current.Media) {
		return domain.Draft{}, apperr.InvalidInput("media index out of range")
	}
	s.current.Media = append(s.current.Media[:index], s.current.Media[index+1:]...)
	return s.current.Clone(), nil
}

// SetNativeAudio replaces the spoken-description clip (at most one is kept).
func (s *Store) SetNativeAudio(ref *domain.MediaRef) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ref == nil {
		s.current.NativeAudio = nil
	} else {
		audio := *ref
		audio.AddedAt = s.nowFunc()
		s.current.NativeAudio = &audio
	}
	return s.current.Clone()
}

// Save appends an immutable snapshot of the working draft to the saved list
// and reports whether anything was saved. A draft without a product name is
// silently skipped: callers needing feedback must check preconditions
// themselves before calling.
func (s *Store) Save() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.ProductDetails.Name == "" {
		return false
	}
	s.saved = append(s.saved, domain.SavedDraft{
		Draft:   s.current.Clone(),
		SavedAt: s.nowFunc(),
	})
	return true
}

// Saved returns the saved snapshots in insertion order.
func (s *Store) Saved() []domain.SavedDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SavedDraft, len(s.saved))
	for i, sd := range s.saved {
		out[i] = domain.SavedDraft{Draft: sd.Draft.Clone(), SavedAt: sd.SavedAt}
	}
	return out
}

// Reset discards the working draft and starts a fresh one. Saved snapshots
// are retained for the rest of the session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.NewDraft()
}

// capMedia keeps the most recent MaxDraftMedia entries, dropping the oldest.
func capMedia(media []domain.MediaRef) []domain.MediaRef {
	if len(media) > domain.MaxDraftMedia {
		media = media[len(media)-domain.MaxDraftMedia:]
	}
	return media
}
