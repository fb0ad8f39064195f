package services

import (
	"context"
	"errors"
	"strings"

	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/types"
	"github.com/rs/zerolog"
)

// AuditRepository appends and lists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, in types.AuditEntryInput) (types.AuditEntry, error)
	List(ctx context.Context, filter types.AuditFilter, offset, limit int) ([]types.AuditEntry, int64, error)
}

var errAuditEntryIncomplete = errors.New("audit entry needs an action and a resource type")

type AuditService struct {
	repo AuditRepository
}

func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record persists one immutable audit entry.
func (s *AuditService) Record(ctx context.Context, in types.AuditEntryInput) (types.AuditEntry, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Action == "" || in.ResourceType == "" {
		return types.AuditEntry{}, errAuditEntryIncomplete
	}
	return s.repo.Create(ctx, in)
}

// RecordAction records an action taken by actor. Failures are logged and
// swallowed because the audited change has already been committed.
func (s *AuditService) RecordAction(ctx context.Context, actor types.Actor, action, resourceType string, resourceID *int, details string) {
	in := types.AuditEntryInput{
		UserID:       actor.UserID,
		Username:     actor.Username,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
	}
	if details != "" {
		in.Details = &details
	}

	if _, err := s.Record(ctx, in); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("action", action).
			Str("resource_type", resourceType).
			Msg("failed to record audit entry")
	}
}

// List returns one page of entries matching filter, newest first.
func (s *AuditService) List(ctx context.Context, filter types.AuditFilter, p pagination.Params) (types.Page[types.AuditEntry], error) {
	entries, total, err := s.repo.List(ctx, trimFilter(filter), p.Offset(), p.Limit())
	if err != nil {
		return types.Page[types.AuditEntry]{}, err
	}
	return pagination.NewPage(entries, total, p), nil
}

// trimFilter drops surrounding whitespace so every caller matches the same rows.
func trimFilter(f types.AuditFilter) types.AuditFilter {
	return types.AuditFilter{
		Username:     strings.TrimSpace(f.Username),
		Action:       strings.TrimSpace(f.Action),
		ResourceType: strings.TrimSpace(f.ResourceType),
	}
}

func changedFields(fields []string) string {
	if len(fields) == 0 {
		return "no fields changed"
	}
	return "changed fields: " + strings.Join(fields, ", ")
}

func intPtr(v int) *int {
	return &v
}
