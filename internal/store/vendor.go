package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/janus/apiserver/types"
)

// VendorRepository handles persistence for vendors.
type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, company_name, contact_name, contact_email, contact_phone, clearance_level, contract_number, deleted_at, created_at, updated_at`

func (r *VendorRepository) List(ctx context.Context, offset, limit int) ([]types.Vendor, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const countQuery = `SELECT COUNT(1) FROM vendors WHERE deleted_at IS NULL`
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, translateError("count vendors", err)
	}

	const listQuery = `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE deleted_at IS NULL
		ORDER BY company_name, id
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, translateError("list vendors", err)
	}
	defer rows.Close()

	vendors := make([]types.Vendor, 0, limit)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, translateError("scan vendor", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError("list vendors", err)
	}
	return vendors, total, nil
}

func (r *VendorRepository) Get(ctx context.Context, id int) (types.Vendor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1 AND deleted_at IS NULL`
	v, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Vendor{}, translateError("get vendor", err)
	}
	return v, nil
}

// Create inserts a vendor through the builder so the column list and the
// bound values cannot drift apart.
func (r *VendorRepository) Create(ctx context.Context, in types.VendorInput) (types.Vendor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := psql.Insert("vendors").
		Columns("company_name", "contact_name", "contact_email", "contact_phone", "clearance_level", "contract_number").
		Values(in.CompanyName, in.ContactName, in.ContactEmail, in.ContactPhone, in.ClearanceLevel, in.ContractNumber).
		Suffix("RETURNING " + vendorColumns).
		ToSql()
	if err != nil {
		return types.Vendor{}, translateError("build vendor insert", err)
	}

	v, err := scanVendor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return types.Vendor{}, translateError("create vendor", err)
	}
	return v, nil
}

func (r *VendorRepository) Update(ctx context.Context, id int, u types.VendorUpdate) (types.Vendor, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args, err := vendorUpdateQuery(id, u)
	if err != nil {
		return types.Vendor{}, translateError("build vendor update", err)
	}
	v, err := scanVendor(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return types.Vendor{}, translateError("update vendor", err)
	}
	return v, nil
}

func (r *VendorRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, softDeleteQuery("vendors"), id)
	if err != nil {
		return translateError("delete vendor", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return translateError("delete vendor", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func vendorUpdateQuery(id int, u types.VendorUpdate) (string, []any, error) {
	b := psql.Update("vendors").Set("updated_at", sq.Expr("NOW()"))
	b = setIfPresent(b, "company_name", u.CompanyName)
	b = setIfPresent(b, "contact_name", u.ContactName)
	b = setIfPresent(b, "contact_email", u.ContactEmail)
	b = setIfPresent(b, "contact_phone", u.ContactPhone)
	b = setIfPresent(b, "clearance_level", u.ClearanceLevel)
	b = setIfPresent(b, "contract_number", u.ContractNumber)
	return b.
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + vendorColumns).
		ToSql()
}

func scanVendor(row rowScanner) (types.Vendor, error) {
	var v types.Vendor
	err := row.Scan(
		&v.ID,
		&v.CompanyName,
		&v.ContactName,
		&v.ContactEmail,
		&v.ContactPhone,
		&v.ClearanceLevel,
		&v.ContractNumber,
		&v.DeletedAt,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
