package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Snapshot is one opaque blob in the key-value snapshot store. The planner
// keeps two: the serialized task list and the last-login hint.
type Snapshot struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}

// SnapshotRepository reads and writes whole snapshot blobs by key.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get returns the blob stored under key, or nil when the key is absent.
func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&snap).Error
	switch {
	case err == nil:
		return snap.Value, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("read snapshot %q: %w", key, err)
	}
}

// Put replaces the blob stored under key, creating it if needed.
func (r *SnapshotRepository) Put(ctx context.Context, key string, value []byte) error {
	db := r.db.WithContext(ctx)

	var snap Snapshot
	err := db.Where("key = ?", key).First(&snap).Error
	switch {
	case err == nil:
		snap.Value = value
		if err := db.Save(&snap).Error; err != nil {
			return fmt.Errorf("update snapshot %q: %w", key, err)
		}
		return nil
	case err == gorm.ErrRecordNotFound:
		snap = Snapshot{Key: key, Value: value}
		if err := db.Create(&snap).Error; err != nil {
			return fmt.Errorf("create snapshot %q: %w", key, err)
		}
		return nil
	default:
		return fmt.Errorf("find snapshot %q: %w", key, err)
	}
}

// Delete removes the blob stored under key. Deleting an absent key is a no-op.
func (r *SnapshotRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("key = ?", key).Delete(&Snapshot{}).Error; err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
