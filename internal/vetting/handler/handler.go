package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vetting/internal/vetting/models"
	"vetting/internal/vetting/service"
	"vetting/pkg/platform/httputil"
	"vetting/pkg/requestcontext"
)

// Service defines the review workspace operations the handler drives.
type Service interface {
	Open(ctx context.Context, reviewer string, nomineeID models.NomineeID, categoryID models.CategoryID) (*service.Review, error)
	View(ctx context.Context, reviewer string) (*service.Review, error)
	Close(ctx context.Context, reviewer string) error
	Edit(ctx context.Context, reviewer string, fields models.Data, replace bool) (*service.Review, error)
	Toggle(ctx context.Context, reviewer, key string) (*service.Review, error)
	AddField(ctx context.Context, reviewer string, existing, updated models.Data) (*service.Review, error)
	RemoveField(ctx context.Context, reviewer, key string) (*service.Review, error)
	Discard(ctx context.Context, reviewer string) (*service.Review, error)
	Commit(ctx context.Context, reviewer string, includeDuplicates bool) (*service.Review, error)
	ChangeStatus(ctx context.Context, reviewer string, target models.NomineeID, categoryID models.CategoryID, action string) (*service.Review, error)
	ChangeAllStatuses(ctx context.Context, reviewer string, target models.NomineeID, action string) (*service.Review, error)
}

// Handler wires review endpoints to the review service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a review handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts review endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/review", func(r chi.Router) {
		r.Get("/", h.HandleView)
		r.Delete("/", h.HandleClose)
		r.Post("/open", h.HandleOpen)
		r.Post("/edits", h.HandleEdit)
		r.Post("/fields", h.HandleAddField)
		r.Delete("/fields/{key}", h.HandleRemoveField)
		r.Post("/flags/{key}/toggle", h.HandleToggle)
		r.Post("/discard", h.HandleDiscard)
		r.Post("/commit", h.HandleCommit)
		r.Post("/statuses", h.HandleStatus)
	})
}

// HandleOpen handles POST /review/open requests.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[OpenRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "open", func(reviewer string) (*service.Review, error) {
		return h.service.Open(ctx, reviewer, req.parsedNomineeID, *req.CategoryID)
	})
}

// HandleView handles GET /review requests.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "view", func(reviewer string) (*service.Review, error) {
		return h.service.View(r.Context(), reviewer)
	})
}

// HandleClose handles DELETE /review requests.
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Close(ctx, requestcontext.ReviewerID(ctx)); err != nil {
		h.fail(ctx, "close", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEdit handles POST /review/edits requests.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[EditRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "edit", func(reviewer string) (*service.Review, error) {
		return h.service.Edit(ctx, reviewer, req.Fields, req.Replace)
	})
}

// HandleAddField handles POST /review/fields requests.
func (h *Handler) HandleAddField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddFieldRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "add_field", func(reviewer string) (*service.Review, error) {
		return h.service.AddField(ctx, reviewer, req.Existing, req.Updated)
	})
}

// HandleRemoveField handles DELETE /review/fields/{key} requests.
func (h *Handler) HandleRemoveField(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.respond(w, r, "remove_field", func(reviewer string) (*service.Review, error) {
		return h.service.RemoveField(r.Context(), reviewer, key)
	})
}

// HandleToggle handles POST /review/flags/{key}/toggle requests.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	h.respond(w, r, "toggle", func(reviewer string) (*service.Review, error) {
		return h.service.Toggle(r.Context(), reviewer, key)
	})
}

// HandleDiscard handles POST /review/discard requests.
func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, "discard", func(reviewer string) (*service.Review, error) {
		return h.service.Discard(r.Context(), reviewer)
	})
}

// HandleCommit handles POST /review/commit requests. An empty body commits
// the open nominee only.
func (h *Handler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeOptionalAndPrepare[CommitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "commit", func(reviewer string) (*service.Review, error) {
		return h.service.Commit(ctx, reviewer, req.IncludeDuplicates)
	})
}

// HandleStatus handles POST /review/statuses requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "status", func(reviewer string) (*service.Review, error) {
		if req.All {
			return h.service.ChangeAllStatuses(ctx, reviewer, req.parsedNomineeID, req.Action)
		}
		return h.service.ChangeStatus(ctx, reviewer, req.parsedNomineeID, *req.CategoryID, req.Action)
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, operation string, call func(reviewer string) (*service.Review, error)) {
	ctx := r.Context()
	review, err := call(requestcontext.ReviewerID(ctx))
	if err != nil {
		h.fail(ctx, operation, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReview(review))
}

func (h *Handler) fail(ctx context.Context, operation string, err error) {
	h.logger.WarnContext(ctx, "review operation failed",
		"operation", operation,
		"request_id", requestcontext.RequestID(ctx),
		"reviewer_id", requestcontext.ReviewerID(ctx),
		"error", err,
	)
}
