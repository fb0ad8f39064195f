package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/janus/apiserver/internal/storage"
	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
)

type fakeUserRepo struct {
	users map[string]types.User
	err   error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	if f.err != nil {
		return types.User{}, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return u, nil
}

type fakeAuditRepo struct {
	entries   []types.AuditEntry
	createErr error
	listCalls []types.AuditFilter
	// failListOn makes the n-th List call (1-based) fail.
	failListOn int
}

func (f *fakeAuditRepo) Create(ctx context.Context, in types.AuditEntryInput) (types.AuditEntry, error) {
	if f.createErr != nil {
		return types.AuditEntry{}, f.createErr
	}
	e := types.AuditEntry{
		ID:           len(f.entries) + 1,
		UserID:       in.UserID,
		Username:     in.Username,
		Action:       in.Action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		Details:      in.Details,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
	}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter types.AuditFilter, offset, limit int) ([]types.AuditEntry, int64, error) {
	f.listCalls = append(f.listCalls, filter)
	if f.failListOn > 0 && len(f.listCalls) == f.failListOn {
		return nil, 0, errBoom
	}
	var matched []types.AuditEntry
	for _, e := range f.entries {
		if filter.Username != "" && e.Username != filter.Username {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && e.ResourceType != filter.ResourceType {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []types.AuditEntry{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type fakePersonnelRepo struct {
	rows      map[int]types.Personnel
	nextID    int
	updateErr error
}

func newFakePersonnelRepo() *fakePersonnelRepo {
	return &fakePersonnelRepo{rows: map[int]types.Personnel{}, nextID: 1}
}

func (f *fakePersonnelRepo) List(ctx context.Context, offset, limit int) ([]types.Personnel, int64, error) {
	var live []types.Personnel
	for _, p := range f.rows {
		if p.DeletedAt == nil {
			live = append(live, p)
		}
	}
	return live, int64(len(live)), nil
}

func (f *fakePersonnelRepo) Get(ctx context.Context, id int) (types.Personnel, error) {
	p, ok := f.rows[id]
	if !ok || p.DeletedAt != nil {
		return types.Personnel{}, store.ErrNotFound
	}
	return p, nil
}

func (f *fakePersonnelRepo) Create(ctx context.Context, in types.PersonnelInput) (types.Personnel, error) {
	p := types.Personnel{
		ID:             f.nextID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		ClearanceLevel: in.ClearanceLevel,
		Department:     in.Department,
		Position:       in.Position,
	}
	f.rows[p.ID] = p
	f.nextID++
	return p, nil
}

func (f *fakePersonnelRepo) Update(ctx context.Context, id int, u types.PersonnelUpdate) (types.Personnel, error) {
	if f.updateErr != nil {
		return types.Personnel{}, f.updateErr
	}
	p, err := f.Get(ctx, id)
	if err != nil {
		return types.Personnel{}, err
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	f.rows[id] = p
	return p, nil
}

func (f *fakePersonnelRepo) Delete(ctx context.Context, id int) error {
	p, err := f.Get(ctx, id)
	if err != nil {
		return err
	}
	now := p.CreatedAt
	p.DeletedAt = &now
	f.rows[id] = p
	return nil
}

type fakeArchive struct {
	objects []storage.Object
	bodies  [][]byte
	err     error
}

func (f *fakeArchive) Upload(ctx context.Context, obj storage.Object) error {
	if f.err != nil {
		return f.err
	}
	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	f.objects = append(f.objects, obj)
	f.bodies = append(f.bodies, body)
	return nil
}

func (f *fakeArchive) Bucket() string { return "janus-audit" }

var errBoom = errors.New("boom")
