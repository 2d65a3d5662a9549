package domain

import (
	"context"
	"fmt"
	"sort"
)

type fakeStore struct {
	boards []Board
	lists  []List
	tasks  []Task
	users  []User
	seq    int
}

func (f *fakeStore) nextID(kind string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", kind, f.seq)
}

func (f *fakeStore) CreateBoard(ctx context.Context, b Board) (Board, error) {
	b.ID = f.nextID("board")
	f.boards = append(f.boards, b)
	return b, nil
}

func (f *fakeStore) Boards(ctx context.Context) ([]Board, error) {
	return append([]Board(nil), f.boards...), nil
}

func (f *fakeStore) CreateList(ctx context.Context, l List) (List, error) {
	l.ID = f.nextID("list")
	f.lists = append(f.lists, l)
	return l, nil
}

func (f *fakeStore) GetList(ctx context.Context, id string) (List, error) {
	for _, l := range f.lists {
		if l.ID == id {
			return l, nil
		}
	}
	return List{}, NotFoundError{Kind: "list", ID: id}
}

func (f *fakeStore) ListsForBoard(ctx context.Context, boardID string) ([]List, error) {
	var result []List
	for _, l := range f.lists {
		if l.BoardID == boardID {
			result = append(result, l)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (f *fakeStore) UpdateList(ctx context.Context, id string, patch ListPatch) (List, error) {
	for i := range f.lists {
		if f.lists[i].ID == id {
			if patch.Title != nil {
				f.lists[i].Title = *patch.Title
			}
			if patch.Position != nil {
				f.lists[i].Position = *patch.Position
			}
			return f.lists[i], nil
		}
	}
	return List{}, NotFoundError{Kind: "list", ID: id}
}

func (f *fakeStore) DeleteList(ctx context.Context, id string) (List, error) {
	for i := range f.lists {
		if f.lists[i].ID == id {
			deleted := f.lists[i]
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return deleted, nil
		}
	}
	return List{}, NotFoundError{Kind: "list", ID: id}
}

func (f *fakeStore) CreateTask(ctx context.Context, t Task) (Task, error) {
	t.ID = f.nextID("task")
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeStore) GetTask(ctx context.Context, id string) (Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, NotFoundError{Kind: "task", ID: id}
}

func (f *fakeStore) TasksForList(ctx context.Context, listID string) ([]Task, error) {
	var result []Task
	for _, t := range f.tasks {
		if t.ListID == listID {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (f *fakeStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if patch.Title != nil {
				f.tasks[i].Title = *patch.Title
			}
			if patch.Description != nil {
				f.tasks[i].Description = *patch.Description
			}
			if patch.Position != nil {
				f.tasks[i].Position = *patch.Position
			}
			if patch.ListID != nil {
				f.tasks[i].ListID = *patch.ListID
			}
			if patch.AssigneeID != nil {
				f.tasks[i].AssigneeID = *patch.AssigneeID
			}
			return f.tasks[i], nil
		}
	}
	return Task{}, NotFoundError{Kind: "task", ID: id}
}

func (f *fakeStore) DeleteTask(ctx context.Context, id string) (Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			deleted := f.tasks[i]
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return deleted, nil
		}
	}
	return Task{}, NotFoundError{Kind: "task", ID: id}
}

func (f *fakeStore) Users(ctx context.Context) ([]User, error) {
	return append([]User(nil), f.users...), nil
}

type trailEntry struct {
	boardID string
	userID  string
	message string
}

type fakeTrail struct {
	appended []trailEntry
}

func (f *fakeTrail) Append(boardID, userID, message string) Activity {
	f.appended = append(f.appended, trailEntry{boardID: boardID, userID: userID, message: message})
	return Activity{BoardID: boardID, UserID: userID, Message: message}
}

func (f *fakeTrail) ForBoard(boardID string) []Activity {
	var result []Activity
	for i := len(f.appended) - 1; i >= 0; i-- {
		if f.appended[i].boardID == boardID {
			result = append(result, Activity{
				BoardID: f.appended[i].boardID,
				UserID:  f.appended[i].userID,
				Message: f.appended[i].message,
			})
		}
	}
	return result
}

type capturePublisher struct {
	events []Event
}

func (p *capturePublisher) Publish(ctx context.Context, ev Event) {
	p.events = append(p.events, ev)
}
