package services

import (
	"context"

	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
)

// VendorRepository defines persistence operations for vendors.
type VendorRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Vendor, int64, error)
	Get(ctx context.Context, id int) (types.Vendor, error)
	Create(ctx context.Context, in types.VendorInput) (types.Vendor, error)
	Update(ctx context.Context, id int, u types.VendorUpdate) (types.Vendor, error)
	Delete(ctx context.Context, id int) error
}

type VendorService struct {
	repo  VendorRepository
	audit *AuditService
}

func NewVendorService(repo VendorRepository, audit *AuditService) *VendorService {
	return &VendorService{repo: repo, audit: audit}
}

func (s *VendorService) List(ctx context.Context, p pagination.Params) (types.Page[types.Vendor], error) {
	vendors, total, err := s.repo.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return types.Page[types.Vendor]{}, err
	}
	return pagination.NewPage(vendors, total, p), nil
}

func (s *VendorService) Get(ctx context.Context, id int) (types.Vendor, error) {
	return s.repo.Get(ctx, id)
}

func (s *VendorService) Create(ctx context.Context, actor types.Actor, in types.VendorInput) (types.Vendor, error) {
	v, err := s.repo.Create(ctx, in)
	if err != nil {
		return types.Vendor{}, err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionCreate, types.ResourceVendor, intPtr(v.ID),
		"created "+v.CompanyName+" ("+v.ContractNumber+")")
	return v, nil
}

func (s *VendorService) Update(ctx context.Context, actor types.Actor, id int, u types.VendorUpdate) (types.Vendor, error) {
	v, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return types.Vendor{}, err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionUpdate, types.ResourceVendor, intPtr(v.ID), changedFields(u.Fields()))
	return v, nil
}

func (s *VendorService) Delete(ctx context.Context, actor types.Actor, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.RecordAction(ctx, actor, types.AuditActionDelete, types.ResourceVendor, intPtr(id), "")
	return nil
}
