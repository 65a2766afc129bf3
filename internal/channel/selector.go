// Package channel manages the marketplace channel selection surface: the
// seller opens a picker, toggles channels on and off, and confirms the set
// to publish to.
package channel

import (
	"sync"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

// Selector tracks the channel picker for one seller session. Selections
// survive closing the surface; only a confirm or an explicit clear empties
// them.
type Selector struct {
	mu       sync.Mutex
	open     bool
	selected []string
}

// NewSelector creates a selector with the surface closed and nothing chosen.
func NewSelector() *Selector {
	return &Selector{}
}

// Open shows the picker surface.
func (s *Selector) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// Close hides the picker surface. The current selection is kept so reopening
// resumes where the seller left off.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// IsOpen reports whether the picker surface is showing.
func (s *Selector) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Toggle flips a channel's membership in the selection. Selecting twice
// deselects, so the operation is its own inverse. Unknown channel ids are
// rejected against the fixed catalog.
func (s *Selector) Toggle(channelID string) ([]string, error) {
	if !domain.IsValidChannel(channelID) {
		return nil, apperr.InvalidInput("unknown channel: " + channelID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.selected {
		if id == channelID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return s.snapshot(), nil
		}
	}
	s.selected = append(s.selected, channelID)
	return s.snapshot(), nil
}

// Selected returns the chosen channel ids in selection order.
func (s *Selector) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Confirm finalizes the selection. At least one channel must be chosen;
// otherwise the surface stays open and ErrNoChannelSelected is returned so
// the seller can fix the selection in place. On success the confirmed ids
// are returned, the selection is cleared and the surface closes.
func (s *Selector) Confirm() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.selected) == 0 {
		return nil, apperr.NoChannelSelected()
	}

	confirmed := s.snapshot()
	s.selected = nil
	s.open = false
	return confirmed, nil
}

// Clear drops the selection without confirming.
func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *Selector) snapshot() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}
