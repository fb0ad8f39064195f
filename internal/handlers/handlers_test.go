package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/auth"
	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
	"github.com/stretchr/testify/require"
)

type recordedAction struct {
	actor      types.Actor
	action     string
	resource   string
	resourceID *int
}

type fakeRecorder struct {
	actions []recordedAction
}

func (f *fakeRecorder) RecordAction(ctx context.Context, actor types.Actor, action, resourceType string, resourceID *int, details string) {
	f.actions = append(f.actions, recordedAction{actor: actor, action: action, resource: resourceType, resourceID: resourceID})
}

type fakePersonnelService struct {
	rows       map[int]types.Personnel
	lastParams pagination.Params
	lastActor  types.Actor
	lastUpdate types.PersonnelUpdate
	createErr  error
	created    int
}

func (f *fakePersonnelService) List(ctx context.Context, p pagination.Params) (types.Page[types.Personnel], error) {
	f.lastParams = p
	var items []types.Personnel
	for _, row := range f.rows {
		items = append(items, row)
	}
	return pagination.NewPage(items, int64(len(items)), p), nil
}

func (f *fakePersonnelService) Get(ctx context.Context, id int) (types.Personnel, error) {
	p, ok := f.rows[id]
	if !ok {
		return types.Personnel{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakePersonnelService) Create(ctx context.Context, actor types.Actor, in types.PersonnelInput) (types.Personnel, error) {
	f.created++
	f.lastActor = actor
	if f.createErr != nil {
		return types.Personnel{}, f.createErr
	}
	p := types.Personnel{ID: 10, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone}
	return p, nil
}

func (f *fakePersonnelService) Update(ctx context.Context, actor types.Actor, id int, u types.PersonnelUpdate) (types.Personnel, error) {
	f.lastUpdate = u
	p, ok := f.rows[id]
	if !ok {
		return types.Personnel{}, store.ErrNotFound
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	return p, nil
}

func (f *fakePersonnelService) Delete(ctx context.Context, actor types.Actor, id int) error {
	if _, ok := f.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func withTestClaims(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := &auth.Claims{Role: "admin", Username: "admin"}
		claims.Subject = "1"
		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "handler-test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newPersonnelRouter(t *testing.T, svc PersonnelService) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(withTestClaims)
	r.Route("/api/personnel", func(r chi.Router) {
		PersonnelRouter(r, svc)
	})
	require.NotNil(t, r)
	return r
}
