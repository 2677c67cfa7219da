package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"family-planner/internal/model"
)

const lastLoginKey = "last_user"

// SessionRepository keeps the last successful login so the form can be
// pre-filled next launch. It never stores the active session itself.
type SessionRepository struct {
	snapshots *SnapshotRepository
}

func NewSessionRepository(snapshots *SnapshotRepository) *SessionRepository {
	return &SessionRepository{snapshots: snapshots}
}

// LastLogin returns the stored hint, or nil when absent. Malformed content
// is logged and ignored, same as an absent hint.
func (r *SessionRepository) LastLogin(ctx context.Context) (*model.LastLogin, error) {
	raw, err := r.snapshots.Get(ctx, lastLoginKey)
	if err != nil {
		return nil, fmt.Errorf("load last login: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var last model.LastLogin
	if err := json.Unmarshal(raw, &last); err != nil {
		log.Printf("[warn] last-login snapshot malformed, ignoring: %v", err)
		return nil, nil
	}
	if last.Name == "" || last.PIN == "" {
		return nil, nil
	}
	return &last, nil
}

// SaveLastLogin records the hint after a successful login.
func (r *SessionRepository) SaveLastLogin(ctx context.Context, last model.LastLogin) error {
	raw, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("encode last login: %w", err)
	}
	if err := r.snapshots.Put(ctx, lastLoginKey, raw); err != nil {
		return fmt.Errorf("save last login: %w", err)
	}
	return nil
}
