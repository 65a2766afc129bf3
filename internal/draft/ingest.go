package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

// MaxMediaBytes bounds a single upload. Drafts live in memory, so oversized
// payloads are rejected up front rather than buffered.
const MaxMediaBytes = 8 << 20

// Upload is one file handed to the ingestor.
type Upload struct {
	Kind        domain.MediaKind
	ContentType string
	Data        []byte
}

// Ingestor decodes uploads one at a time but appends them to the store as
// each finishes, so a batch of files lands in completion order.
type Ingestor struct {
	store *Store
	log   *slog.Logger
}

// NewIngestor creates an ingestor writing into the given store.
func NewIngestor(store *Store, log *slog.Logger) *Ingestor {
	return &Ingestor{store: store, log: log}
}

// IngestOne validates and appends a single upload.
func (in *Ingestor) IngestOne(ctx context.Context, up Upload) (domain.Draft, error) {
	ref, err := buildRef(up)
	if err != nil {
		return domain.Draft{}, err
	}

	var draft domain.Draft
	switch up.Kind {
	case domain.MediaKindAudio:
		draft = in.store.SetNativeAudio(&ref)
	default:
		draft = in.store.AppendMedia(ref)
	}

	logger.WithContext(ctx, in.log).Info("media ingested",
		slog.String("media_id", ref.ID),
		slog.String("kind", string(up.Kind)),
		slog.Int("size_bytes", len(up.Data)),
	)
	return draft, nil
}

// IngestBatch processes uploads concurrently. Each upload is appended when
// its own decode finishes, so the resulting media order is completion order,
// not submission order. Invalid files are skipped and reported; valid ones
// still land.
func (in *Ingestor) IngestBatch(ctx context.Context, uploads []Upload) (domain.Draft, []error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, up := range uploads {
		wg.Add(1)
		go func(up Upload) {
			defer wg.Done()
			if _, err := in.IngestOne(ctx, up); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(up)
	}
	wg.Wait()
	return in.store.Current(), errs
}

func buildRef(up Upload) (domain.MediaRef, error) {
	if len(up.Data) == 0 {
		return domain.MediaRef{}, apperr.InvalidInput("empty media payload")
	}
	if len(up.Data) > MaxMediaBytes {
		return domain.MediaRef{}, apperr.InvalidInput(fmt.Sprintf("media payload exceeds %d bytes", MaxMediaBytes))
	}
	if err := checkContentType(up.Kind, up.ContentType); err != nil {
		return domain.MediaRef{}, err
	}

	data := make([]byte, len(up.Data))
	copy(data, up.Data)
	return domain.MediaRef{
		ID:          uuid.NewString(),
		Kind:        up.Kind,
		ContentType: up.ContentType,
		Data:        data,
	}, nil
}

func checkContentType(kind domain.MediaKind, ct string) error {
	var prefix string
	switch kind {
	case domain.MediaKindImage:
		prefix = "image/"
	case domain.MediaKindVideo:
		prefix = "video/"
	case domain.MediaKindAudio:
		prefix = "audio/"
	default:
		return apperr.InvalidInput(fmt.Sprintf("unknown media kind %q", kind))
	}
	if !strings.HasPrefix(ct, prefix) {
		return apperr.InvalidInput(fmt.Sprintf("content type %q does not match media kind %q", ct, kind))
	}
	return nil
}
