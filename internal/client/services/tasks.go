package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	taskrepo "github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/client/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
	"github.com/google/uuid"
)

// TaskService holds the logged-in user's task list and filter. Mutations
// that change the list write the whole list back; no-ops write nothing.
// Every method except Reset returns common.ErrNotLoggedIn before Load.
type TaskService interface {
	Load(ctx context.Context, s models.Session) error
	Reset()

	Add(ctx context.Context, text string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Toggle(ctx context.Context, id string) (bool, error)
	Edit(ctx context.Context, id, text string) (bool, error)
	ClearCompleted(ctx context.Context) (bool, error)

	// Resolve expands a unique id prefix to the full task id.
	Resolve(prefix string) (string, error)

	SetFilter(f models.Filter) error
	Filter() models.Filter
	Visible() ([]models.Task, error)
	Tasks() ([]models.Task, error)
	Summary() (string, error)
}

type taskService struct {
	repo  taskrepo.Repository
	clock timex.Clock
	log   logging.Logger
	newID func() string

	mu     sync.Mutex
	userID string
	list   []models.Task
	filter models.Filter
}

func NewTaskService(repo taskrepo.Repository, clock timex.Clock, log logging.Logger) TaskService {
	return &taskService{
		repo:   repo,
		clock:  clock,
		log:    log.With("service", "tasks"),
		newID:  uuid.NewString,
		filter: models.FilterAll,
	}
}

func (s *taskService) Load(ctx context.Context, sess models.Session) error {
	list, err := s.repo.Load(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = sess.ID
	s.list = list
	s.filter = models.FilterAll

	s.log.Debug(ctx, "tasks loaded", "user_id", sess.ID, "tasks", len(list))
	return nil
}

func (s *taskService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.list = nil
	s.filter = models.FilterAll
}

// mutate applies fn to the current list and persists the result when fn
// reports a change. The in-memory list is replaced only after a successful
// save.
func (s *taskService) mutate(ctx context.Context, op string, fn func([]models.Task) ([]models.Task, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == "" {
		return false, common.ErrNotLoggedIn
	}

	next, changed := fn(s.list)
	if !changed {
		return false, nil
	}
	if err := s.repo.Save(ctx, s.userID, next); err != nil {
		return false, fmt.Errorf("%s: save tasks: %w", op, err)
	}
	s.list = next

	s.log.Debug(ctx, "tasks changed", "op", op, "tasks", len(next))
	return true, nil
}

func (s *taskService) Add(ctx context.Context, text string) (bool, error) {
	return s.mutate(ctx, "add", func(l []models.Task) ([]models.Task, bool) {
		return tasks.Add(l, s.newID(), text, s.clock.Now())
	})
}

func (s *taskService) Delete(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, "delete", func(l []models.Task) ([]models.Task, bool) {
		return tasks.Delete(l, id)
	})
}

func (s *taskService) Toggle(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, "toggle", func(l []models.Task) ([]models.Task, bool) {
		return tasks.Toggle(l, id, s.clock.Now())
	})
}

func (s *taskService) Edit(ctx context.Context, id, text string) (bool, error) {
	return s.mutate(ctx, "edit", func(l []models.Task) ([]models.Task, bool) {
		return tasks.Edit(l, id, text)
	})
}

func (s *taskService) ClearCompleted(ctx context.Context) (bool, error) {
	return s.mutate(ctx, "clear", tasks.ClearCompleted)
}

// snapshot returns the list under lock, or ErrNotLoggedIn.
func (s *taskService) snapshot() ([]models.Task, models.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return nil, "", common.ErrNotLoggedIn
	}
	out := make([]models.Task, len(s.list))
	copy(out, s.list)
	return out, s.filter, nil
}

func (s *taskService) Resolve(prefix string) (string, error) {
	list, _, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return tasks.Resolve(list, prefix)
}

func (s *taskService) SetFilter(f models.Filter) error {
	f, err := models.ParseFilter(string(f))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return common.ErrNotLoggedIn
	}
	s.filter = f
	return nil
}

func (s *taskService) Filter() models.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *taskService) Visible() ([]models.Task, error) {
	list, f, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return tasks.Visible(list, f), nil
}

func (s *taskService) Tasks() ([]models.Task, error) {
	list, _, err := s.snapshot()
	return list, err
}

func (s *taskService) Summary() (string, error) {
	list, _, err := s.snapshot()
	if err != nil {
		return "", err
	}
	return tasks.Summary(list), nil
}
