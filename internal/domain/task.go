package domain

import "time"

// Status is the fixed lifecycle state of a task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus validates a raw status value. ok is false for anything
// outside the enumerated set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusDone:
		return Status(s), true
	}
	return "", false
}

// Domain entity, independent of Gin, Postgres and Redis.
// UserID is the owner and never changes after creation.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	UserID      string
	ProjectID   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
