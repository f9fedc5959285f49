package repo

import (
	"context"

	dom "github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// Create inserts a new user and returns it. A duplicate username surfaces
// as the driver's unique-violation error, untouched.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (id, username, password_hash, salt)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, salt, created_at`
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.ID, u.Username, u.PasswordHash, u.Salt).Scan(
		&out.ID, &out.Username, &out.PasswordHash, &out.Salt, &out.CreatedAt,
	)
	return out, err
}

// GetByUsername returns the user by username. Lookup is case-sensitive.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, salt, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	return u, err
}

// Delete removes a user. The tasks FK cascades, so the user's tasks go
// with the row. Returns false when no row matched.
func (r *PGUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
