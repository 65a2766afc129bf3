package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/internal/session"
	"github.com/bazaarly/sellerconsole/pkg/httputil"
	"github.com/bazaarly/sellerconsole/pkg/middleware"
)

// PublishHandler handles HTTP requests for the channel selection and
// publish workflow.
type PublishHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewPublishHandler creates a publish HTTP handler.
func NewPublishHandler(sessions *session.Manager, logger *slog.Logger) *PublishHandler {
	return &PublishHandler{sessions: sessions, logger: logger}
}

// WorkflowView is the publish surface state returned to clients.
type WorkflowView struct {
	State    string   `json:"state"`
	Open     bool     `json:"open"`
	Selected []string `json:"selected"`
}

func (h *PublishHandler) session(r *http.Request) *session.Session {
	return h.sessions.Get(middleware.SellerIDFromContext(r.Context()))
}

func workflowView(sess *session.Session) WorkflowView {
	return WorkflowView{
		State:    string(sess.Workflow.State()),
		Open:     sess.Selector.IsOpen(),
		Selected: sess.Workflow.Selected(),
	}
}

// Channels handles GET /api/v1/channels
func (h *PublishHandler) Channels(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Channels()})
}

// State handles GET /api/v1/publish
func (h *PublishHandler) State(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: workflowView(h.session(r))})
}

// Open handles POST /api/v1/publish/open
func (h *PublishHandler) Open(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	if err := sess.Workflow.OpenChannels(); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: workflowView(sess)})
}

// Close handles POST /api/v1/publish/close
func (h *PublishHandler) Close(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Workflow.CloseChannels()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: workflowView(sess)})
}

// Toggle handles POST /api/v1/publish/toggle/{id}
func (h *PublishHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	selected, err := sess.Workflow.Toggle(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"selected": selected,
	}})
}

// Confirm handles POST /api/v1/publish/confirm
func (h *PublishHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	channels, err := sess.Workflow.Confirm(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"published_to": channels,
		"saved_count":  len(sess.Drafts.Saved()),
	}})
}
