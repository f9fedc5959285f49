package dto

import "time"

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"required,max=1000"`
	ProjectID   *string `json:"projectId" binding:"omitempty,min=1,max=120"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status"` // validated against the status enum in the handler
	ProjectID   *string `json:"projectId" binding:"omitempty,min=1,max=120"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetProjectRequest struct {
	ProjectID string `json:"projectId" binding:"required,min=1,max=120"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	ProjectID   *string   `json:"projectId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}
