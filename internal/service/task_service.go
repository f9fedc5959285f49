package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlyonaQA/ptm-server/internal/cache"
	dom "github.com/AlyonaQA/ptm-server/internal/domain"
	"github.com/AlyonaQA/ptm-server/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
)

// TaskPatch carries the optional fields of a partial update. Nil means
// leave unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *dom.Status
	ProjectID   *string
}

// TaskService owns the task lifecycle. Every operation is scoped to the
// calling user; a task owned by someone else is indistinguishable from a
// missing one.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create persists a new task for the user. The id is generated here and
// status always starts as OPEN.
func (s *TaskService) Create(ctx context.Context, userID, title, desc string, projectID *string) (dom.Task, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	// The boundary's required check lets whitespace-only values through.
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}
	if desc == "" {
		return dom.Task{}, ErrEmptyDescription
	}
	t, err := s.repo.Create(ctx, dom.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: desc,
		Status:      dom.StatusOpen,
		UserID:      userID,
		ProjectID:   projectID,
	})
	if err != nil {
		return dom.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// List returns the user's tasks matching the filter. Results are cached
// per user and query; concurrent identical reads are collapsed.
func (s *TaskService) List(ctx context.Context, userID string, f repo.TaskFilter) ([]dom.Task, error) {
	if s.cache == nil {
		list, err := s.repo.Find(ctx, userID, f)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		return list, nil
	}
	// The cache is best effort: a write that lands between the repo read
	// and Set below leaves a stale entry until the TTL or the next write's
	// invalidation. Concurrent reads race the same way as the store itself.
	key := filterKey(f)
	v, err, _ := s.sf.Do(userID+":"+key, func() (interface{}, error) {
		if list, err := s.cache.Get(ctx, userID, key); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.Find(ctx, userID, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, userID, key, list)
		return list, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return v.([]dom.Task), nil
}

// GetByID returns the user's task or ErrNotFound.
func (s *TaskService) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, s.wrap("get task", err)
	}
	return t, nil
}

// ListByProject returns the user's tasks associated with the project.
// Zero matches is a valid empty result, not an error.
func (s *TaskService) ListByProject(ctx context.Context, userID, projectID string) ([]dom.Task, error) {
	list, err := s.repo.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}
	return list, nil
}

// Update applies only the fields present in patch and returns the
// updated task.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch TaskPatch) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, s.wrap("get task", err)
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
		existing.Title = title
	}
	if patch.Description != nil {
		existing.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.ProjectID != nil {
		existing.ProjectID = patch.ProjectID
	}
	t, err := s.repo.Update(ctx, existing)
	if err != nil {
		return dom.Task{}, s.wrap("update task", err)
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// UpdateStatus sets the task's status. The value is validated at the HTTP
// boundary; this assumes a member of the enumerated set.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, id string, status dom.Status) (dom.Task, error) {
	return s.Update(ctx, userID, id, TaskPatch{Status: &status})
}

// SetProject associates the task with a project.
func (s *TaskService) SetProject(ctx context.Context, userID, id, projectID string) (dom.Task, error) {
	return s.Update(ctx, userID, id, TaskPatch{ProjectID: &projectID})
}

// ClearProject removes the task's project association.
func (s *TaskService) ClearProject(ctx context.Context, userID, id string) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Task{}, s.wrap("get task", err)
	}
	existing.ProjectID = nil
	t, err := s.repo.Update(ctx, existing)
	if err != nil {
		return dom.Task{}, s.wrap("update task", err)
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes the user's task or fails with ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// DeleteByProject removes all of the user's tasks for the project.
// Succeeds as a no-op when none match.
func (s *TaskService) DeleteByProject(ctx context.Context, userID, projectID string) error {
	if err := s.repo.DeleteByProject(ctx, userID, projectID); err != nil {
		return fmt.Errorf("delete tasks by project: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

// ClearProjectFromTasks detaches the project from all of the user's tasks
// referencing it and returns the updated tasks.
func (s *TaskService) ClearProjectFromTasks(ctx context.Context, userID, projectID string) ([]dom.Task, error) {
	list, err := s.repo.ClearProject(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("clear project from tasks: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return list, nil
}

// DeleteAll removes every task owned by the user.
func (s *TaskService) DeleteAll(ctx context.Context, userID string) error {
	if err := s.repo.DeleteAll(ctx, userID); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}

// filterKey is the cache key for a filter. Search stays case-sensitive,
// so the raw string is part of the key.
func filterKey(f repo.TaskFilter) string {
	status := ""
	if f.Status != nil {
		status = string(*f.Status)
	}
	return "s=" + status + ";q=" + f.Search
}
