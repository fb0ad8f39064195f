package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/janus/apiserver/types"
)

// AuditRepository appends to and reads the audit trail. There is no update
// or delete path.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditColumns = `id, user_id, username, action, resource_type, resource_id, details, ip_address, user_agent, created_at`

func (r *AuditRepository) Create(ctx context.Context, in types.AuditEntryInput) (types.AuditEntry, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO audit_log (user_id, username, action, resource_type, resource_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + auditColumns
	entry, err := scanAuditEntry(r.db.QueryRowContext(
		ctx,
		query,
		in.UserID,
		in.Username,
		in.Action,
		in.ResourceType,
		in.ResourceID,
		in.Details,
		in.IPAddress,
		in.UserAgent,
	))
	if err != nil {
		return types.AuditEntry{}, translateError("create audit entry", err)
	}
	return entry, nil
}

// List returns matching entries newest first. The count and the page are
// filtered by the same predicate.
func (r *AuditRepository) List(ctx context.Context, filter types.AuditFilter, offset, limit int) ([]types.AuditEntry, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pred := auditPredicate(filter)

	countBuilder := psql.Select("COUNT(1)").From("audit_log")
	listBuilder := psql.Select(auditColumns).From("audit_log")
	if len(pred) > 0 {
		countBuilder = countBuilder.Where(pred)
		listBuilder = listBuilder.Where(pred)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, translateError("build audit count", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, translateError("count audit entries", err)
	}

	listQuery, listArgs, err := listBuilder.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, translateError("build audit list", err)
	}
	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, translateError("list audit entries", err)
	}
	defer rows.Close()

	entries := make([]types.AuditEntry, 0, limit)
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, 0, translateError("scan audit entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError("list audit entries", err)
	}
	return entries, total, nil
}

func auditPredicate(f types.AuditFilter) sq.And {
	pred := sq.And{}
	if f.Username != "" {
		pred = append(pred, sq.Eq{"username": f.Username})
	}
	if f.Action != "" {
		pred = append(pred, sq.Eq{"action": f.Action})
	}
	if f.ResourceType != "" {
		pred = append(pred, sq.Eq{"resource_type": f.ResourceType})
	}
	return pred
}

func scanAuditEntry(row rowScanner) (types.AuditEntry, error) {
	var e types.AuditEntry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Username,
		&e.Action,
		&e.ResourceType,
		&e.ResourceID,
		&e.Details,
		&e.IPAddress,
		&e.UserAgent,
		&e.CreatedAt,
	)
	return e, err
}
