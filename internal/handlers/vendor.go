package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
)

const resourceVendor = "vendor"

// VendorService is the vendor use-case surface the handler needs.
type VendorService interface {
	List(ctx context.Context, p pagination.Params) (types.Page[types.Vendor], error)
	Get(ctx context.Context, id int) (types.Vendor, error)
	Create(ctx context.Context, actor types.Actor, in types.VendorInput) (types.Vendor, error)
	Update(ctx context.Context, actor types.Actor, id int, u types.VendorUpdate) (types.Vendor, error)
	Delete(ctx context.Context, actor types.Actor, id int) error
}

type VendorHandler struct {
	vendors VendorService
}

func NewVendorHandler(vendors VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// VendorRouter registers vendor routes on the given router.
func VendorRouter(r chi.Router, vendors VendorService) {
	handler := NewVendorHandler(vendors)

	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.vendors.List(r.Context(), params)
	if err != nil {
		writeStoreError(w, r, err, resourceVendor, "list")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.vendors.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, resourceVendor, "fetch")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in types.VendorInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.vendors.Create(r.Context(), actorFromRequest(r), in)
	if err != nil {
		writeStoreError(w, r, err, resourceVendor, "create")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var u types.VendorUpdate
	if err := decodeAndValidate(w, r, &u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := h.vendors.Update(r.Context(), actorFromRequest(r), id, u)
	if err != nil {
		writeStoreError(w, r, err, resourceVendor, "update")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.vendors.Delete(r.Context(), actorFromRequest(r), id); err != nil {
		writeStoreError(w, r, err, resourceVendor, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
