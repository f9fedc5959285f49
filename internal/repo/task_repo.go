package repo

import (
	"context"

	dom "github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, title, description, status, owner_id, project_id, created_at, updated_at`

// TaskRepo provides task persistence. Every read and mutation is scoped to
// an owner; a task that exists but belongs to someone else behaves exactly
// like a missing row (pgx.ErrNoRows).
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, ownerID, id string) (dom.Task, error)
	Find(ctx context.Context, ownerID string, f TaskFilter) ([]dom.Task, error)
	ListByProject(ctx context.Context, ownerID, projectID string) ([]dom.Task, error)
	Update(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
	DeleteByProject(ctx context.Context, ownerID, projectID string) error
	DeleteAll(ctx context.Context, ownerID string) error
	ClearProject(ctx context.Context, ownerID, projectID string) ([]dom.Task, error)
}

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

// NewPGTaskRepo returns a new PGTaskRepo.
func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, title, description, status, owner_id, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.Status, t.UserID, t.ProjectID)
	return scanTask(row)
}

func (r *PGTaskRepo) GetByID(ctx context.Context, ownerID, id string) (dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 AND id = $2`
	return scanTask(r.db.QueryRow(ctx, query, ownerID, id))
}

func (r *PGTaskRepo) Find(ctx context.Context, ownerID string, f TaskFilter) ([]dom.Task, error) {
	where, args := buildTaskWhere(ownerID, f)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *PGTaskRepo) ListByProject(ctx context.Context, ownerID, projectID string) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 AND project_id = $2`
	rows, err := r.db.Query(ctx, query, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $3, description = $4, status = $5, project_id = $6, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + taskColumns
	row := r.db.QueryRow(ctx, query, t.UserID, t.ID, t.Title, t.Description, t.Status, t.ProjectID)
	return scanTask(row)
}

// Delete removes an owned task. Returns false when no row matched.
func (r *PGTaskRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByProject removes all owned tasks for the project. Zero matches is
// not an error.
func (r *PGTaskRepo) DeleteByProject(ctx context.Context, ownerID, projectID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1 AND project_id = $2`, ownerID, projectID)
	return err
}

func (r *PGTaskRepo) DeleteAll(ctx context.Context, ownerID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE owner_id = $1`, ownerID)
	return err
}

// ClearProject detaches the project from every owned task that references
// it and returns the updated tasks.
func (r *PGTaskRepo) ClearProject(ctx context.Context, ownerID, projectID string) ([]dom.Task, error) {
	query := `
		UPDATE tasks SET project_id = NULL, updated_at = NOW()
		WHERE owner_id = $1 AND project_id = $2
		RETURNING ` + taskColumns
	rows, err := r.db.Query(ctx, query, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func scanTask(row pgx.Row) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.ProjectID,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func collectTasks(rows pgx.Rows) ([]dom.Task, error) {
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.ProjectID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
