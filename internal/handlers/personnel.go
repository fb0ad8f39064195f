package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
)

const resourcePersonnel = "personnel"

// PersonnelService is the personnel use-case surface the handler needs.
type PersonnelService interface {
	List(ctx context.Context, p pagination.Params) (types.Page[types.Personnel], error)
	Get(ctx context.Context, id int) (types.Personnel, error)
	Create(ctx context.Context, actor types.Actor, in types.PersonnelInput) (types.Personnel, error)
	Update(ctx context.Context, actor types.Actor, id int, u types.PersonnelUpdate) (types.Personnel, error)
	Delete(ctx context.Context, actor types.Actor, id int) error
}

// PersonnelHandler provides HTTP handlers for personnel records.
type PersonnelHandler struct {
	personnel PersonnelService
}

func NewPersonnelHandler(personnel PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnel: personnel}
}

// PersonnelRouter registers personnel routes on the given router. The caller
// is responsible for mounting it behind the auth guard.
func PersonnelRouter(r chi.Router, personnel PersonnelService) {
	handler := NewPersonnelHandler(personnel)

	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *PersonnelHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.personnel.List(r.Context(), params)
	if err != nil {
		writeStoreError(w, r, err, resourcePersonnel, "list")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *PersonnelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.personnel.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, resourcePersonnel, "fetch")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PersonnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in types.PersonnelInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.personnel.Create(r.Context(), actorFromRequest(r), in)
	if err != nil {
		writeStoreError(w, r, err, resourcePersonnel, "create")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PersonnelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var u types.PersonnelUpdate
	if err := decodeAndValidate(w, r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.personnel.Update(r.Context(), actorFromRequest(r), id, u)
	if err != nil {
		writeStoreError(w, r, err, resourcePersonnel, "update")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PersonnelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.personnel.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeStoreError(w, r, err, resourcePersonnel, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
