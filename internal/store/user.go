package store

import (
	"context"
	"database/sql"

	"github.com/janus/apiserver/types"
)

// UserRepository reads the credential store. Accounts are provisioned out of band.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, role, password_hash, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.User{}, translateError("get user", err)
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return types.User{}, translateError("get user by username", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
