package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/janus/apiserver/types"
)

// PersonnelRepository handles persistence for personnel records.
type PersonnelRepository struct {
	db *sql.DB
}

func NewPersonnelRepository(db *sql.DB) *PersonnelRepository {
	return &PersonnelRepository{db: db}
}

const personnelColumns = `id, first_name, last_name, email, phone, clearance_level, department, position, deleted_at, created_at, updated_at`

// List returns one page of live records ordered by name, plus the live total.
func (r *PersonnelRepository) List(ctx context.Context, offset, limit int) ([]types.Personnel, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const countQuery = `SELECT COUNT(1) FROM personnel WHERE deleted_at IS NULL`
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, translateError("count personnel", err)
	}

	const listQuery = `
		SELECT ` + personnelColumns + `
		FROM personnel
		WHERE deleted_at IS NULL
		ORDER BY last_name, first_name, id
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, translateError("list personnel", err)
	}
	defer rows.Close()

	items := make([]types.Personnel, 0, limit)
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, 0, translateError("scan personnel", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError("list personnel", err)
	}
	return items, total, nil
}

func (r *PersonnelRepository) Get(ctx context.Context, id int) (types.Personnel, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `SELECT ` + personnelColumns + ` FROM personnel WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanPersonnel(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Personnel{}, translateError("get personnel", err)
	}
	return p, nil
}

func (r *PersonnelRepository) Create(ctx context.Context, in types.PersonnelInput) (types.Personnel, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO personnel (first_name, last_name, email, phone, clearance_level, department, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + personnelColumns
	p, err := scanPersonnel(r.db.QueryRowContext(
		ctx,
		query,
		in.FirstName,
		in.LastName,
		in.Email,
		in.Phone,
		in.ClearanceLevel,
		in.Department,
		in.Position,
	))
	if err != nil {
		return types.Personnel{}, translateError("create personnel", err)
	}
	return p, nil
}

// Update applies the present fields of u to a live record in one statement.
func (r *PersonnelRepository) Update(ctx context.Context, id int, u types.PersonnelUpdate) (types.Personnel, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := personnelUpdateQuery(id, u)
	if err != nil {
		return types.Personnel{}, translateError("build personnel update", err)
	}
	p, err := scanPersonnel(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return types.Personnel{}, translateError("update personnel", err)
	}
	return p, nil
}

// Delete soft deletes a live record. A second delete reports ErrNotFound.
func (r *PersonnelRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, softDeleteQuery("personnel"), id)
	if err != nil {
		return translateError("delete personnel", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return translateError("delete personnel", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func personnelUpdateQuery(id int, u types.PersonnelUpdate) (string, []any, error) {
	b := psql.Update("personnel").Set("updated_at", sq.Expr("NOW()"))
	b = setIfPresent(b, "first_name", u.FirstName)
	b = setIfPresent(b, "last_name", u.LastName)
	b = setIfPresent(b, "email", u.Email)
	b = setIfPresent(b, "phone", u.Phone)
	b = setIfPresent(b, "clearance_level", u.ClearanceLevel)
	b = setIfPresent(b, "department", u.Department)
	b = setIfPresent(b, "position", u.Position)
	return b.
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + personnelColumns).
		ToSql()
}

func scanPersonnel(row rowScanner) (types.Personnel, error) {
	var p types.Personnel
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.ClearanceLevel,
		&p.Department,
		&p.Position,
		&p.DeletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
