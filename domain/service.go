package domain

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Store abstracts the ordered record store for the board hierarchy.
type Store interface {
	CreateBoard(ctx context.Context, b Board) (Board, error)
	Boards(ctx context.Context) ([]Board, error)

	CreateList(ctx context.Context, l List) (List, error)
	GetList(ctx context.Context, id string) (List, error)
	ListsForBoard(ctx context.Context, boardID string) ([]List, error)
	UpdateList(ctx context.Context, id string, patch ListPatch) (List, error)
	DeleteList(ctx context.Context, id string) (List, error)

	CreateTask(ctx context.Context, t Task) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	TasksForList(ctx context.Context, listID string) ([]Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id string) (Task, error)

	Users(ctx context.Context) ([]User, error)
}

// ActivityLog records human-readable mutation summaries per board.
type ActivityLog interface {
	Append(boardID, userID, message string) Activity
	ForBoard(boardID string) []Activity
}

// Publisher delivers board events to subscribed viewers. Delivery is
// fire-and-forget; a failed or dropped notification never fails the
// mutation that produced it.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// BoardService applies board mutations: validate, store, log, broadcast.
type BoardService struct {
	store  Store
	trail  ActivityLog
	events Publisher
	logger *log.Logger
}

// NewBoardService wires the board hierarchy over its collaborators.
func NewBoardService(store Store, trail ActivityLog, events Publisher, logger *log.Logger) *BoardService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardService{store: store, trail: trail, events: events, logger: logger}
}

// CreateBoard creates a board owned by b.OwnerID.
func (s *BoardService) CreateBoard(ctx context.Context, b Board) (Board, error) {
	if b.Title == "" {
		return Board{}, ValidationError{Field: "title"}
	}
	return s.store.CreateBoard(ctx, b)
}

// ListBoards returns one page of all boards. Page and limit fall back to
// 1 and 10; the slice is taken over the full unsorted set.
func (s *BoardService) ListBoards(ctx context.Context, page, limit int) (BoardPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	boards, err := s.store.Boards(ctx)
	if err != nil {
		return BoardPage{}, err
	}
	total := len(boards)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return BoardPage{
		Data:       boards[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// BoardLists returns the board's lists ordered by position, each enriched
// with its position-ordered tasks.
func (s *BoardService) BoardLists(ctx context.Context, boardID string) ([]ListWithTasks, error) {
	lists, err := s.store.ListsForBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	result := make([]ListWithTasks, 0, len(lists))
	for _, l := range lists {
		tasks, err := s.store.TasksForList(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, ListWithTasks{List: l, Tasks: tasks})
	}
	return result, nil
}

// CreateList creates a list under l.BoardID.
func (s *BoardService) CreateList(ctx context.Context, actorID string, l List) (List, error) {
	if l.Title == "" {
		return List{}, ValidationError{Field: "title"}
	}
	created, err := s.store.CreateList(ctx, l)
	if err != nil {
		return List{}, err
	}
	s.record(ctx, created.BoardID, actorID, fmt.Sprintf("Created list %q", created.Title), Event{
		Type:    ListCreated,
		BoardID: created.BoardID,
		List:    &created,
	})
	return created, nil
}

// UpdateList merges the provided fields into the list. Reordering is
// broadcast but deliberately kept out of the activity trail.
func (s *BoardService) UpdateList(ctx context.Context, actorID, listID string, patch ListPatch) (List, error) {
	updated, err := s.store.UpdateList(ctx, listID, patch)
	if err != nil {
		return List{}, err
	}
	s.publish(ctx, Event{Type: ListUpdated, BoardID: updated.BoardID, List: &updated})
	return updated, nil
}

// DeleteList removes the list and its tasks. Cascading to tasks keeps the
// store free of rows no viewer can reach.
func (s *BoardService) DeleteList(ctx context.Context, actorID, listID string) error {
	deleted, err := s.store.DeleteList(ctx, listID)
	if err != nil {
		return err
	}
	tasks, err := s.store.TasksForList(ctx, listID)
	if err == nil {
		for _, t := range tasks {
			if _, derr := s.store.DeleteTask(ctx, t.ID); derr != nil {
				s.logger.WithError(derr).WithField("task", t.ID).Warn("cascade delete failed")
			}
		}
	}
	s.record(ctx, deleted.BoardID, actorID, fmt.Sprintf("Deleted list %q", deleted.Title), Event{
		Type:    ListDeleted,
		BoardID: deleted.BoardID,
		ListID:  deleted.ID,
	})
	return nil
}

// CreateTask creates a task under t.ListID.
func (s *BoardService) CreateTask(ctx context.Context, actorID string, t Task) (Task, error) {
	if t.Title == "" {
		return Task{}, ValidationError{Field: "title"}
	}
	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return Task{}, err
	}
	if boardID, ok := s.boardForList(ctx, created.ListID); ok {
		s.record(ctx, boardID, actorID, fmt.Sprintf("Created task %q", created.Title), Event{
			Type:    TaskCreated,
			BoardID: boardID,
			Task:    &created,
		})
	}
	return created, nil
}

// UpdateTask merges the provided fields into the task and derives one
// semantic trail message: move beats assign beats generic update.
func (s *BoardService) UpdateTask(ctx context.Context, actorID, taskID string, patch TaskPatch) (Task, error) {
	prior, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	updated, err := s.store.UpdateTask(ctx, taskID, patch)
	if err != nil {
		return Task{}, err
	}
	if boardID, ok := s.boardForList(ctx, updated.ListID); ok {
		message := fmt.Sprintf("Updated task %q", updated.Title)
		switch {
		case prior.ListID != updated.ListID:
			message = fmt.Sprintf("Moved task %q", updated.Title)
		case prior.AssigneeID != updated.AssigneeID && updated.AssigneeID != "":
			message = fmt.Sprintf("Assigned task %q", updated.Title)
		}
		s.record(ctx, boardID, actorID, message, Event{
			Type:    TaskUpdated,
			BoardID: boardID,
			Task:    &updated,
		})
	}
	return updated, nil
}

// DeleteTask removes the task.
func (s *BoardService) DeleteTask(ctx context.Context, actorID, taskID string) error {
	deleted, err := s.store.DeleteTask(ctx, taskID)
	if err != nil {
		return err
	}
	if boardID, ok := s.boardForList(ctx, deleted.ListID); ok {
		s.record(ctx, boardID, actorID, fmt.Sprintf("Deleted task %q", deleted.Title), Event{
			Type:    TaskDeleted,
			BoardID: boardID,
			TaskID:  deleted.ID,
		})
	}
	return nil
}

// BoardActivity returns the board's trail entries, most recent first.
func (s *BoardService) BoardActivity(ctx context.Context, boardID string) []Activity {
	return s.trail.ForBoard(boardID)
}

// Users returns the user directory projection.
func (s *BoardService) Users(ctx context.Context) ([]User, error) {
	return s.store.Users(ctx)
}

// boardForList resolves the owning board of a list. When the list is gone
// the caller skips logging and broadcast; the mutation itself stands.
func (s *BoardService) boardForList(ctx context.Context, listID string) (string, bool) {
	l, err := s.store.GetList(ctx, listID)
	if err != nil {
		var nf NotFoundError
		if !errors.As(err, &nf) {
			s.logger.WithError(err).WithField("list", listID).Warn("board resolution failed")
		}
		return "", false
	}
	return l.BoardID, true
}

func (s *BoardService) record(ctx context.Context, boardID, actorID, message string, ev Event) {
	if s.trail != nil {
		s.trail.Append(boardID, actorID, message)
	}
	s.publish(ctx, ev)
}

func (s *BoardService) publish(ctx context.Context, ev Event) {
	if s.events != nil {
		s.events.Publish(ctx, ev)
	}
}
