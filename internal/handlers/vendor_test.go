package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorService struct {
	rows    map[int]types.Vendor
	created []types.VendorInput
	updates []types.VendorUpdate
}

func (f *fakeVendorService) List(ctx context.Context, p pagination.Params) (types.Page[types.Vendor], error) {
	items := make([]types.Vendor, 0, len(f.rows))
	for _, v := range f.rows {
		items = append(items, v)
	}
	return pagination.NewPage(items, int64(len(items)), p), nil
}

func (f *fakeVendorService) Get(ctx context.Context, id int) (types.Vendor, error) {
	v, ok := f.rows[id]
	if !ok {
		return types.Vendor{}, store.ErrNotFound
	}
	return v, nil
}

func (f *fakeVendorService) Create(ctx context.Context, actor types.Actor, in types.VendorInput) (types.Vendor, error) {
	f.created = append(f.created, in)
	return types.Vendor{ID: 1, CompanyName: in.CompanyName, ContractNumber: in.ContractNumber}, nil
}

func (f *fakeVendorService) Update(ctx context.Context, actor types.Actor, id int, u types.VendorUpdate) (types.Vendor, error) {
	f.updates = append(f.updates, u)
	v, ok := f.rows[id]
	if !ok {
		return types.Vendor{}, store.ErrNotFound
	}
	return v, nil
}

func (f *fakeVendorService) Delete(ctx context.Context, actor types.Actor, id int) error {
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newVendorRouter(svc VendorService) http.Handler {
	r := chi.NewRouter()
	r.Use(withTestClaims)
	r.Route("/api/vendors", func(r chi.Router) {
		VendorRouter(r, svc)
	})
	return r
}

func TestVendorList(t *testing.T) {
	svc := &fakeVendorService{rows: map[int]types.Vendor{1: {ID: 1, CompanyName: "Acme"}}}
	rec := do(t, newVendorRouter(svc), http.MethodGet, "/api/vendors?per_page=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"per_page":5`)
	assert.Contains(t, rec.Body.String(), `"total_pages":1`)
}

func TestVendorCreateValidation(t *testing.T) {
	svc := &fakeVendorService{rows: map[int]types.Vendor{}}
	router := newVendorRouter(svc)

	ok := `{"company_name":"Acme","contact_name":"Wile","contact_email":"wile@acme.test","clearance_level":"TOP_SECRET","contract_number":"C-1"}`
	rec := do(t, router, http.MethodPost, "/api/vendors", ok)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.created, 1)
	assert.Nil(t, svc.created[0].ContactPhone)

	bad := `{"company_name":"Acme","contact_name":"Wile","contact_email":"nope","clearance_level":"TOP_SECRET","contract_number":"C-1"}`
	rec = do(t, router, http.MethodPost, "/api/vendors", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid contact_email"}`, rec.Body.String())
	assert.Len(t, svc.created, 1)
}

func TestVendorUpdateAndDelete(t *testing.T) {
	svc := &fakeVendorService{rows: map[int]types.Vendor{2: {ID: 2, CompanyName: "Acme"}}}
	router := newVendorRouter(svc)

	rec := do(t, router, http.MethodPut, "/api/vendors/2", `{"contract_number":"C-9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.updates, 1)
	assert.Equal(t, []string{"contract_number"}, svc.updates[0].Fields())

	rec = do(t, router, http.MethodPut, "/api/vendors/2", `{"clearance_level":"ULTRA"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, "/api/vendors/2", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/api/vendors/2", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/vendors/2", "").Code)
}
