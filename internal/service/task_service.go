package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"family-planner/internal/dateutil"
	"family-planner/internal/model"
)

// ErrTaskNotFound marks operations on a task id no longer in the store.
// Callers treat it as a benign race with a prior delete and no-op.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError reports a form field the user must fix. The operation
// aborts without touching the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Message)
}

// Outcome tells whether a mutation that already applied in memory also
// reached the snapshot store. A failed write is logged, never fatal: the
// store stays usable and the next successful write re-syncs it.
type Outcome struct {
	Persisted bool
	Err       error
}

// TaskInput carries the editable fields of the task form, for both create
// and edit.
type TaskInput struct {
	Title       string
	Description string
	CategoryID  model.CategoryID
	Visibility  model.Visibility
	Date        string // YYYY-MM-DD; empty means today
	TimeStart   string // HH:MM, optional
	TimeEnd     string // HH:MM, optional
	PrizeText   string
}

// TaskStore persists the ordered task list as one snapshot.
type TaskStore interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
	Clear(ctx context.Context) error
}

// TaskService owns the in-memory task list and mirrors every mutation to
// the snapshot store. The mutex only guards against the reminder scheduler
// reading while the UI mutates; there are no concurrent writers.
type TaskService struct {
	store  TaskStore
	access *AccessPolicy
	now    func() time.Time

	mu    sync.Mutex
	tasks []model.Task
}

// NewTaskService loads the persisted task list and wraps it.
func NewTaskService(ctx context.Context, store TaskStore, access *AccessPolicy) (*TaskService, error) {
	tasks, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load task store: %w", err)
	}
	return &TaskService{store: store, access: access, now: time.Now, tasks: tasks}, nil
}

// Create validates the draft, assigns the next id and appends the task.
func (s *TaskService) Create(ctx context.Context, user *model.User, input TaskInput) (model.Task, Outcome, error) {
	task, err := s.buildTask(user, input)
	if err != nil {
		return model.Task{}, Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.nextID()
	task.Completed = false
	s.tasks = append(s.tasks, task)
	return task, s.persist(ctx), nil
}

// Update merges the input over the stored task, preserving id and the
// completed flag. The owner is recomputed from the new visibility.
func (s *TaskService) Update(ctx context.Context, user *model.User, id int, input TaskInput) (model.Task, Outcome, error) {
	task, err := s.buildTask(user, input)
	if err != nil {
		return model.Task{}, Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, Outcome{}, ErrTaskNotFound
	}
	task.ID = s.tasks[idx].ID
	task.Completed = s.tasks[idx].Completed
	s.tasks[idx] = task
	return task, s.persist(ctx), nil
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(ctx context.Context, id int) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Outcome{}, ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return s.persist(ctx), nil
}

// ToggleCompleted flips the completed flag.
func (s *TaskService) ToggleCompleted(ctx context.Context, id int) (model.Task, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, Outcome{}, ErrTaskNotFound
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	return s.tasks[idx], s.persist(ctx), nil
}

// ListAll returns a copy of the full ordered task list.
func (s *TaskService) ListAll() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Visible returns the tasks the user may see, in store order.
func (s *TaskService) Visible(user *model.User) []model.Task {
	return s.access.VisibleTasks(s.ListAll(), user)
}

// Get looks up a single task by id.
func (s *TaskService) Get(id int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	return s.tasks[idx], nil
}

// Clear wipes the whole store, in memory and on disk.
func (s *TaskService) Clear(ctx context.Context) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	if err := s.store.Clear(ctx); err != nil {
		log.Printf("clear tasks: %v", err)
		return Outcome{Persisted: false, Err: err}
	}
	return Outcome{Persisted: true}
}

// buildTask validates the input against the creating user and assembles a
// task record without an id.
func (s *TaskService) buildTask(user *model.User, input TaskInput) (model.Task, error) {
	if user == nil {
		return model.Task{}, &ValidationError{Field: "user", Message: "no active user"}
	}
	if input.Title == "" {
		return model.Task{}, &ValidationError{Field: "title", Message: "title is required"}
	}
	if !model.ValidCategoryID(input.CategoryID) {
		return model.Task{}, &ValidationError{Field: "category", Message: "category is required"}
	}
	if !s.access.CanUseCategory(user, input.CategoryID) {
		return model.Task{}, &ValidationError{Field: "category", Message: "category is not accessible"}
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = model.VisibilityPersonal
	}
	if visibility != model.VisibilityPersonal && visibility != model.VisibilityShared {
		return model.Task{}, &ValidationError{Field: "visibility", Message: "must be personal or shared"}
	}

	date := input.Date
	if date == "" {
		date = dateutil.TodayKey(s.now())
	} else if _, err := dateutil.Parse(date); err != nil {
		return model.Task{}, &ValidationError{Field: "date", Message: "expected YYYY-MM-DD"}
	}

	for _, tv := range []struct{ field, value string }{
		{"timeStart", input.TimeStart},
		{"timeEnd", input.TimeEnd},
	} {
		if tv.value == "" {
			continue
		}
		if _, err := time.Parse("15:04", tv.value); err != nil {
			return model.Task{}, &ValidationError{Field: tv.field, Message: "expected HH:MM"}
		}
	}

	owner := ""
	if visibility == model.VisibilityPersonal {
		owner = user.Name
	}

	return model.Task{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Visibility:  visibility,
		Owner:       owner,
		Date:        date,
		TimeStart:   input.TimeStart,
		TimeEnd:     input.TimeEnd,
		PrizeText:   input.PrizeText,
	}, nil
}

// nextID assigns ids monotonically: one past the current maximum, starting
// at 1 for an empty store. Callers hold the lock.
func (s *TaskService) nextID() int {
	maxID := 0
	for _, t := range s.tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func (s *TaskService) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full snapshot. Failures degrade to "stateful but not
// persisted": the in-memory mutation stands. Callers hold the lock.
func (s *TaskService) persist(ctx context.Context) Outcome {
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.store.Save(ctx, snapshot); err != nil {
		log.Printf("persist tasks: %v", err)
		return Outcome{Persisted: false, Err: err}
	}
	return Outcome{Persisted: true}
}
