package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
)

// AuditLister lists audit entries.
type AuditLister interface {
	List(ctx context.Context, filter types.AuditFilter, p pagination.Params) (types.Page[types.AuditEntry], error)
}

type AuditHandler struct {
	audit AuditLister
}

func NewAuditHandler(audit AuditLister) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// AuditRouter registers the read-only audit routes.
func AuditRouter(r chi.Router, audit AuditLister) {
	handler := NewAuditHandler(audit)

	r.Get("/", handler.List)
}

// List serves GET /api/audit?page&per_page&username&action&resource_type.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	filter := types.AuditFilter{
		Username:     q.Get("username"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
	}

	page, err := h.audit.List(r.Context(), filter, params)
	if err != nil {
		writeStoreError(w, r, err, "audit log", "list")
		return
	}
	writeJSON(w, http.StatusOK, page)
}
