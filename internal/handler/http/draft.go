package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/internal/draft"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/httputil"
	"github.com/bazaarly/sellerconsole/pkg/middleware"
	"github.com/bazaarly/sellerconsole/pkg/validator"
)

// DraftHandler handles HTTP requests for the working draft.
type DraftHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewDraftHandler creates a draft HTTP handler.
func NewDraftHandler(sessions *session.Manager, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{sessions: sessions, logger: logger}
}

// MediaView is the media metadata returned to clients; raw bytes stay
// server-side.
type MediaView struct {
	ID          string           `json:"id"`
	Kind        domain.MediaKind `json:"kind"`
	ContentType string           `json:"content_type"`
	SizeBytes   int              `json:"size_bytes"`
	AddedAt     time.Time        `json:"added_at"`
}

// DraftView is the client-facing draft projection.
type DraftView struct {
	Media          []MediaView           `json:"media"`
	NativeAudio    *MediaView            `json:"native_audio"`
	TranslatedText string                `json:"translated_text"`
	ProductDetails domain.ProductDetails `json:"product_details"`
	Categories     []string              `json:"categories"`
}

// SavedDraftView is a saved snapshot projection.
type SavedDraftView struct {
	Draft   DraftView `json:"draft"`
	SavedAt time.Time `json:"saved_at"`
}

// DetailsUpdateRequest mirrors draft.DetailsUpdate for JSON input.
type DetailsUpdateRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Price    *string `json:"price"`
	Quantity *string `json:"quantity"`
}

// UpdateDraftRequest is the PATCH /draft body. Absent fields are untouched.
type UpdateDraftRequest struct {
	TranslatedText *string               `json:"translated_text"`
	ClearAudio     bool                  `json:"clear_audio"`
	ProductDetails *DetailsUpdateRequest `json:"product_details"`
}

// AnalyzeRequest is the POST /draft/analyze body.
type AnalyzeRequest struct {
	Language string `json:"language" validate:"required,min=2,max=40"`
}

func mediaView(m domain.MediaRef) MediaView {
	return MediaView{
		ID:          m.ID,
		Kind:        m.Kind,
		ContentType: m.ContentType,
		SizeBytes:   len(m.Data),
		AddedAt:     m.AddedAt,
	}
}

func draftView(d domain.Draft) DraftView {
	view := DraftView{
		Media:          make([]MediaView, 0, len(d.Media)),
		TranslatedText: d.TranslatedText,
		ProductDetails: d.ProductDetails,
		Categories:     domain.Categories(),
	}
	for _, m := range d.Media {
		view.Media = append(view.Media, mediaView(m))
	}
	if d.NativeAudio != nil {
		audio := mediaView(*d.NativeAudio)
		view.NativeAudio = &audio
	}
	return view
}

func (h *DraftHandler) session(r *http.Request) *session.Session {
	return h.sessions.Get(middleware.SellerIDFromContext(r.Context()))
}

// Get handles GET /api/v1/draft
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(sess.Drafts.Current())})
}

// Update handles PATCH /api/v1/draft
func (h *DraftHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateDraftRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	u := draft.Update{
		TranslatedText: req.TranslatedText,
		ClearAudio:     req.ClearAudio,
	}
	if req.ProductDetails != nil {
		u.Details = &draft.DetailsUpdate{
			Name:     req.ProductDetails.Name,
			Category: req.ProductDetails.Category,
			Price:    req.ProductDetails.Price,
			Quantity: req.ProductDetails.Quantity,
		}
	}

	sess := h.session(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(sess.Drafts.Apply(u))})
}

// UploadMedia handles POST /api/v1/draft/media (multipart, field "media").
func (h *DraftHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(r, "media")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := h.session(r)
	view, errs := sess.Ingestor.IngestBatch(r.Context(), uploads)
	if len(errs) == len(uploads) && len(uploads) > 0 {
		httputil.WriteError(w, r, errs[0], h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(view)})
}

// UploadAudio handles POST /api/v1/draft/audio (multipart, field "audio").
func (h *DraftHandler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	uploads, err := readUploads(r, "audio")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if len(uploads) != 1 {
		httputil.WriteError(w, r, apperr.InvalidInput("exactly one audio file is required"), h.logger)
		return
	}
	uploads[0].Kind = domain.MediaKindAudio

	sess := h.session(r)
	view, ingestErr := sess.Ingestor.IngestOne(r.Context(), uploads[0])
	if ingestErr != nil {
		httputil.WriteError(w, r, ingestErr, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(view)})
}

// RemoveMedia handles DELETE /api/v1/draft/media/{index}
func (h *DraftHandler) RemoveMedia(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httputil.WriteError(w, r, apperr.InvalidInput("media index must be an integer"), h.logger)
		return
	}

	sess := h.session(r)
	view, err := sess.Drafts.RemoveMedia(index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(view)})
}

// Save handles POST /api/v1/draft/save
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	saved := sess.Drafts.Save()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"saved":       saved,
		"saved_count": len(sess.Drafts.Saved()),
	}})
}

// Reset handles POST /api/v1/draft/reset
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Workflow.Reset()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draftView(sess.Drafts.Current())})
}

// ListSaved handles GET /api/v1/drafts
func (h *DraftHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	saved := sess.Drafts.Saved()
	views := make([]SavedDraftView, 0, len(saved))
	for _, sd := range saved {
		views = append(views, SavedDraftView{Draft: draftView(sd.Draft), SavedAt: sd.SavedAt})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: views})
}

// Analyze handles POST /api/v1/draft/analyze
func (h *DraftHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sess := h.session(r)
	result, err := sess.Workflow.RunEnrichment(r.Context(), req.Language)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// readUploads parses a multipart form and collects the named file parts.
func readUploads(r *http.Request, field string) ([]draft.Upload, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, apperr.InvalidInput("invalid multipart form: " + err.Error())
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, apperr.InvalidInput("no files in field " + strconv.Quote(field))
	}

	uploads := make([]draft.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.InvalidInput("open upload: " + err.Error())
		}
		data, err := io.ReadAll(io.LimitReader(f, draft.MaxMediaBytes+1))
		_ = f.Close()
		if err != nil {
			return nil, apperr.InvalidInput("read upload: " + err.Error())
		}

		ct := fh.Header.Get("Content-Type")
		uploads = append(uploads, draft.Upload{
			Kind:        kindForContentType(ct),
			ContentType: ct,
			Data:        data,
		})
	}
	return uploads, nil
}

func kindForContentType(ct string) domain.MediaKind {
	switch {
	case strings.HasPrefix(ct, "video/"):
		return domain.MediaKindVideo
	case strings.HasPrefix(ct, "audio/"):
		return domain.MediaKindAudio
	default:
		return domain.MediaKindImage
	}
}
