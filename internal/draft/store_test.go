package draft

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strptr(s string) *string { return &s }

// ============================================================================
// Partial merge
// ============================================================================

func TestApply_MergesDetailsKeyByKey(t *testing.T) {
	s := NewStore()

	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Blue Ceramic Mug")}})
	got := s.Apply(Update{Details: &DetailsUpdate{Price: strptr("450")}})

	assert.Equal(t, "Blue Ceramic Mug", got.ProductDetails.Name)
	assert.Equal(t, "450", got.ProductDetails.Price)
}

func TestApply_NilFieldsLeaveDraftUntouched(t *testing.T) {
	s := NewStore()
	s.Apply(Update{
		TranslatedText: strptr("hand glazed mug"),
		Details:        &DetailsUpdate{Name: strptr("Mug"), Quantity: strptr("12")},
	})

	got := s.Apply(Update{Details: &DetailsUpdate{Category: strptr("Handmade")}})

	assert.Equal(t, "hand glazed mug", got.TranslatedText)
	assert.Equal(t, "Mug", got.ProductDetails.Name)
	assert.Equal(t, "12", got.ProductDetails.Quantity)
	assert.Equal(t, "Handmade", got.ProductDetails.Category)
}

func TestApply_EmptyStringOverwrites(t *testing.T) {
	s := NewStore()
	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Mug")}})

	got := s.Apply(Update{Details: &DetailsUpdate{Name: strptr("")}})

	assert.Empty(t, got.ProductDetails.Name)
}

func TestApply_ClearAudio(t *testing.T) {
	s := NewStore()
	s.SetNativeAudio(&domain.MediaRef{ID: "a1", Kind: domain.MediaKindAudio})

	got := s.Apply(Update{ClearAudio: true})

	assert.Nil(t, got.NativeAudio)
}

func TestCurrent_ReturnsDeepCopy(t *testing.T) {
	s := NewStore()
	s.AppendMedia(domain.MediaRef{ID: "m1", Kind: domain.MediaKindImage, Data: []byte{1, 2}})

	got := s.Current()
	got.Media[0].Data[0] = 99
	got.ProductDetails.Name = "mutated"

	fresh := s.Current()
	assert.Equal(t, byte(1), fresh.Media[0].Data[0])
	assert.Empty(t, fresh.ProductDetails.Name)
}

// ============================================================================
// Media bound
// ============================================================================

func TestAppendMedia_KeepsFiveMostRecent(t *testing.T) {
	s := NewStore()
	for i := 0; i < 7; i++ {
		s.AppendMedia(domain.MediaRef{ID: fmt.Sprintf("m%d", i), Kind: domain.MediaKindImage})
	}

	got := s.Current()
	require.Len(t, got.Media, domain.MaxDraftMedia)
	assert.Equal(t, "m2", got.Media[0].ID)
	assert.Equal(t, "m6", got.Media[4].ID)
}

func TestRemoveMedia_OutOfRange(t *testing.T) {
	s := NewStore()
	s.AppendMedia(domain.MediaRef{ID: "m1", Kind: domain.MediaKindImage})

	_, err := s.RemoveMedia(1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = s.RemoveMedia(-1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRemoveMedia_RemovesAtIndex(t *testing.T) {
	s := NewStore()
	s.AppendMedia(domain.MediaRef{ID: "m1", Kind: domain.MediaKindImage})
	s.AppendMedia(domain.MediaRef{ID: "m2", Kind: domain.MediaKindImage})

	got, err := s.RemoveMedia(0)
	require.NoError(t, err)
	require.Len(t, got.Media, 1)
	assert.Equal(t, "m2", got.Media[0].ID)
}

// ============================================================================
// Save and reset
// ============================================================================

func TestSave_RequiresProductName(t *testing.T) {
	s := NewStore()

	assert.False(t, s.Save())
	assert.Empty(t, s.Saved())
}

func TestSave_KeepsWorkingDraftIntact(t *testing.T) {
	s := NewStore()
	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Silk Scarf"), Price: strptr("800")}})

	require.True(t, s.Save())

	got := s.Current()
	assert.Equal(t, "Silk Scarf", got.ProductDetails.Name, "save must not clear the working draft")
	require.Len(t, s.Saved(), 1)
	assert.Equal(t, "Silk Scarf", s.Saved()[0].Draft.ProductDetails.Name)
}

func TestSave_SnapshotIsImmutable(t *testing.T) {
	s := NewStore()
	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Mug")}})
	require.True(t, s.Save())

	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Renamed Mug")}})

	assert.Equal(t, "Mug", s.Saved()[0].Draft.ProductDetails.Name)
}

func TestReset_ClearsWorkingDraftKeepsSaved(t *testing.T) {
	s := NewStore()
	s.Apply(Update{Details: &DetailsUpdate{Name: strptr("Mug")}})
	require.True(t, s.Save())

	s.Reset()

	assert.Empty(t, s.Current().ProductDetails.Name)
	assert.Len(t, s.Saved(), 1)
}

// ============================================================================
// Ingestor
// ============================================================================

func TestIngestOne_RejectsMismatchedContentType(t *testing.T) {
	in := NewIngestor(NewStore(), newTestLogger())

	_, err := in.IngestOne(context.Background(), Upload{
		Kind:        domain.MediaKindImage,
		ContentType: "audio/webm",
		Data:        []byte{1},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestIngestOne_RejectsEmptyPayload(t *testing.T) {
	in := NewIngestor(NewStore(), newTestLogger())

	_, err := in.IngestOne(context.Background(), Upload{
		Kind:        domain.MediaKindImage,
		ContentType: "image/png",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestIngestOne_AudioReplacesPrevious(t *testing.T) {
	store := NewStore()
	in := NewIngestor(store, newTestLogger())

	_, err := in.IngestOne(context.Background(), Upload{
		Kind: domain.MediaKindAudio, ContentType: "audio/webm", Data: []byte{1},
	})
	require.NoError(t, err)
	first := store.Current().NativeAudio.ID

	_, err = in.IngestOne(context.Background(), Upload{
		Kind: domain.MediaKindAudio, ContentType: "audio/webm", Data: []byte{2},
	})
	require.NoError(t, err)

	got := store.Current()
	require.NotNil(t, got.NativeAudio)
	assert.NotEqual(t, first, got.NativeAudio.ID)
	assert.Empty(t, got.Media, "audio never lands in the media list")
}

func TestIngestBatch_AllValidUploadsLand(t *testing.T) {
	store := NewStore()
	in := NewIngestor(store, newTestLogger())

	uploads := make([]Upload, 4)
	for i := range uploads {
		uploads[i] = Upload{Kind: domain.MediaKindImage, ContentType: "image/png", Data: []byte{byte(i + 1)}}
	}

	got, errs := in.IngestBatch(context.Background(), uploads)
	assert.Empty(t, errs)
	assert.Len(t, got.Media, 4)
}

func TestIngestBatch_InvalidUploadSkippedOthersLand(t *testing.T) {
	store := NewStore()
	in := NewIngestor(store, newTestLogger())

	got, errs := in.IngestBatch(context.Background(), []Upload{
		{Kind: domain.MediaKindImage, ContentType: "image/png", Data: []byte{1}},
		{Kind: domain.MediaKindImage, ContentType: "text/plain", Data: []byte{2}},
		{Kind: domain.MediaKindImage, ContentType: "image/jpeg", Data: []byte{3}},
	})

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], apperr.ErrInvalidInput)
	assert.Len(t, got.Media, 2)
}

func TestStore_ConcurrentAppendsStayBounded(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AppendMedia(domain.MediaRef{ID: fmt.Sprintf("m%d", i), Kind: domain.MediaKindImage})
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Current().Media, domain.MaxDraftMedia)
}

func TestAppendMedia_StampsAddedAt(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return fixed }

	got := s.AppendMedia(domain.MediaRef{ID: "m1", Kind: domain.MediaKindImage})
	assert.Equal(t, fixed, got.Media[0].AddedAt)
}
