package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

func TestToggle_AddsThenRemoves(t *testing.T) {
	s := NewSelector()

	got, err := s.Toggle("amazon")
	require.NoError(t, err)
	assert.Equal(t, []string{"amazon"}, got)

	got, err = s.Toggle("amazon")
	require.NoError(t, err)
	assert.Empty(t, got, "toggling twice is a no-op overall")
}

func TestToggle_PreservesSelectionOrder(t *testing.T) {
	s := NewSelector()

	for _, id := range []string{"myntra", "amazon", "etsy"} {
		_, err := s.Toggle(id)
		require.NoError(t, err)
	}
	_, err := s.Toggle("amazon")
	require.NoError(t, err)

	assert.Equal(t, []string{"myntra", "etsy"}, s.Selected())
}

func TestToggle_RejectsUnknownChannel(t *testing.T) {
	s := NewSelector()

	_, err := s.Toggle("ebay")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, s.Selected())
}

func TestClose_KeepsSelection(t *testing.T) {
	s := NewSelector()
	s.Open()
	_, err := s.Toggle("flipkart")
	require.NoError(t, err)

	s.Close()

	assert.False(t, s.IsOpen())
	assert.Equal(t, []string{"flipkart"}, s.Selected(), "closing the picker is not a cancel of the selection")
}

func TestConfirm_RequiresNonEmptySelection(t *testing.T) {
	s := NewSelector()
	s.Open()

	_, err := s.Confirm()

	assert.ErrorIs(t, err, apperr.ErrNoChannelSelected)
	assert.True(t, s.IsOpen(), "surface stays open so the seller can pick a channel")
}

func TestConfirm_ReturnsIDsAndResets(t *testing.T) {
	s := NewSelector()
	s.Open()
	_, err := s.Toggle("amazon")
	require.NoError(t, err)
	_, err = s.Toggle("meesho")
	require.NoError(t, err)

	confirmed, err := s.Confirm()
	require.NoError(t, err)

	assert.Equal(t, []string{"amazon", "meesho"}, confirmed)
	assert.Empty(t, s.Selected())
	assert.False(t, s.IsOpen())
}

func TestSelected_ReturnsCopy(t *testing.T) {
	s := NewSelector()
	_, err := s.Toggle("ajio")
	require.NoError(t, err)

	got := s.Selected()
	got[0] = "mutated"

	assert.Equal(t, []string{"ajio"}, s.Selected())
}
