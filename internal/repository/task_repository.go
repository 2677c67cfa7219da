package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"family-planner/internal/model"
)

const tasksKey = "tasks"

// TaskRepository persists the ordered task list as a single JSON snapshot.
type TaskRepository struct {
	snapshots *SnapshotRepository
}

func NewTaskRepository(snapshots *SnapshotRepository) *TaskRepository {
	return &TaskRepository{snapshots: snapshots}
}

// Load reads the stored task list. An absent snapshot yields an empty list.
// A malformed snapshot is logged and also yields an empty list: the next
// successful save overwrites it, so corruption heals itself instead of
// wedging the app.
func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	raw, err := r.snapshots.Get(ctx, tasksKey)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		log.Printf("[warn] tasks snapshot malformed, starting empty: %v", err)
		return nil, nil
	}
	return tasks, nil
}

// Save replaces the stored task list with the given ordered sequence.
func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.snapshots.Put(ctx, tasksKey, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Clear drops the task snapshot entirely.
func (r *TaskRepository) Clear(ctx context.Context) error {
	if err := r.snapshots.Delete(ctx, tasksKey); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}
