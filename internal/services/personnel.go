package services

import (
	"context"

	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
)

// PersonnelRepository defines persistence operations for personnel.
type PersonnelRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Personnel, int64, error)
	Get(ctx context.Context, id int) (types.Personnel, error)
	Create(ctx context.Context, in types.PersonnelInput) (types.Personnel, error)
	Update(ctx context.Context, id int, u types.PersonnelUpdate) (types.Personnel, error)
	Delete(ctx context.Context, id int) error
}

// PersonnelService encapsulates personnel use-cases. Every successful
// mutation is written to the audit trail.
type PersonnelService struct {
	repo  PersonnelRepository
	audit *AuditService
}

func NewPersonnelService(repo PersonnelRepository, audit *AuditService) *PersonnelService {
	return &PersonnelService{repo: repo, audit: audit}
}

func (s *PersonnelService) List(ctx context.Context, p pagination.Params) (types.Page[types.Personnel], error) {
	items, total, err := s.repo.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return types.Page[types.Personnel]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *PersonnelService) Get(ctx context.Context, id int) (types.Personnel, error) {
	return s.repo.Get(ctx, id)
}

func (s *PersonnelService) Create(ctx context.Context, actor types.Actor, in types.PersonnelInput) (types.Personnel, error) {
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.Personnel{}, err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionCreate, types.ResourcePersonnel, intPtr(p.ID),
		"created "+p.FirstName+" "+p.LastName)
	return p, nil
}

func (s *PersonnelService) Update(ctx context.Context, actor types.Actor, id int, u types.PersonnelUpdate) (types.Personnel, error) {
	p, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return types.Personnel{}, err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionUpdate, types.ResourcePersonnel, intPtr(p.ID), changedFields(u.Fields()))
	return p, nil
}

func (s *PersonnelService) Delete(ctx context.Context, actor types.Actor, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionDelete, types.ResourcePersonnel, intPtr(id), "")
	return nil
}
