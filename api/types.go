package api

import (
	"context"

	"kanban-api/domain"
)

// Service abstracts the board hierarchy for handlers.
type Service interface {
	CreateBoard(ctx context.Context, b domain.Board) (domain.Board, error)
	ListBoards(ctx context.Context, page, limit int) (domain.BoardPage, error)
	BoardLists(ctx context.Context, boardID string) ([]domain.ListWithTasks, error)
	CreateList(ctx context.Context, actorID string, l domain.List) (domain.List, error)
	UpdateList(ctx context.Context, actorID, listID string, patch domain.ListPatch) (domain.List, error)
	DeleteList(ctx context.Context, actorID, listID string) error
	CreateTask(ctx context.Context, actorID string, t domain.Task) (domain.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID string, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error
	BoardActivity(ctx context.Context, boardID string) []domain.Activity
	Users(ctx context.Context) ([]domain.User, error)
}

// Authenticator is implemented by types able to extract user IDs from headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}
