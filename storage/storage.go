package storage

import (
	"context"
	"time"

	"kanban-api/domain"
)

// Store backs the board hierarchy with one in-memory collection per
// entity kind. It lives for the whole process; a deployment needing
// durability swaps this for a transactional store with the same contract.
type Store struct {
	boards *Collection[domain.Board]
	lists  *Collection[domain.List]
	tasks  *Collection[domain.Task]
	users  *Collection[domain.User]
}

var _ domain.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		boards: NewCollection("board", func(b *domain.Board, id string, createdAt time.Time) {
			b.ID = id
			b.CreatedAt = createdAt
		}),
		lists: NewCollection("list", func(l *domain.List, id string, createdAt time.Time) {
			l.ID = id
			l.CreatedAt = createdAt
		}),
		tasks: NewCollection("task", func(t *domain.Task, id string, createdAt time.Time) {
			t.ID = id
			t.CreatedAt = createdAt
		}),
		users: NewCollection("user", func(u *domain.User, id string, createdAt time.Time) {
			u.ID = id
			u.CreatedAt = createdAt
		}),
	}
}

func (s *Store) CreateBoard(ctx context.Context, b domain.Board) (domain.Board, error) {
	return s.boards.Create(b), nil
}

func (s *Store) Boards(ctx context.Context) ([]domain.Board, error) {
	return s.boards.FindAll(nil, nil), nil
}

func (s *Store) CreateList(ctx context.Context, l domain.List) (domain.List, error) {
	return s.lists.Create(l), nil
}

func (s *Store) GetList(ctx context.Context, id string) (domain.List, error) {
	return s.lists.Find(func(l domain.List) bool { return l.ID == id })
}

func (s *Store) ListsForBoard(ctx context.Context, boardID string) ([]domain.List, error) {
	return s.lists.FindAll(
		func(l domain.List) bool { return l.BoardID == boardID },
		func(a, b domain.List) bool { return a.Position < b.Position },
	), nil
}

func (s *Store) UpdateList(ctx context.Context, id string, patch domain.ListPatch) (domain.List, error) {
	return s.lists.Update(
		func(l domain.List) bool { return l.ID == id },
		func(l *domain.List) {
			if patch.Title != nil {
				l.Title = *patch.Title
			}
			if patch.Position != nil {
				l.Position = *patch.Position
			}
		},
	)
}

func (s *Store) DeleteList(ctx context.Context, id string) (domain.List, error) {
	return s.lists.Delete(func(l domain.List) bool { return l.ID == id })
}

func (s *Store) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	return s.tasks.Create(t), nil
}

func (s *Store) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.tasks.Find(func(t domain.Task) bool { return t.ID == id })
}

func (s *Store) TasksForList(ctx context.Context, listID string) ([]domain.Task, error) {
	return s.tasks.FindAll(
		func(t domain.Task) bool { return t.ListID == listID },
		func(a, b domain.Task) bool { return a.Position < b.Position },
	), nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	return s.tasks.Update(
		func(t domain.Task) bool { return t.ID == id },
		func(t *domain.Task) {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.Description != nil {
				t.Description = *patch.Description
			}
			if patch.Position != nil {
				t.Position = *patch.Position
			}
			if patch.ListID != nil {
				t.ListID = *patch.ListID
			}
			if patch.AssigneeID != nil {
				t.AssigneeID = *patch.AssigneeID
			}
		},
	)
}

func (s *Store) DeleteTask(ctx context.Context, id string) (domain.Task, error) {
	return s.tasks.Delete(func(t domain.Task) bool { return t.ID == id })
}

// CreateUser seeds a directory entry. Credential issuance lives outside
// this service.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	return s.users.Create(u), nil
}

func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(nil, nil), nil
}
