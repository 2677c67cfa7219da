package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"family-planner/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	return db
}

func TestSnapshotRepository(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))
	ctx := context.Background()

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got, "absent key reads as nil, not an error")

	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[1]`)))
	got, err = repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	// Put on an existing key overwrites in place.
	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[1,2]`)))
	got, err = repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	require.NoError(t, repo.Delete(ctx, "tasks"))
	got, err = repo.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Delete(ctx, "tasks"), "deleting an absent key is a no-op")
}

func TestSnapshotKeysAreIndependent(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, "last_user", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "tasks"))

	got, err := repo.Get(ctx, "last_user")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func TestTaskRepositoryRoundTrip(t *testing.T) {
	repo := NewTaskRepository(NewSnapshotRepository(testDB(t)))
	ctx := context.Background()

	tasks := []model.Task{
		{
			ID:         2,
			Title:      "Купить продукты",
			CategoryID: model.CategoryShop,
			Visibility: model.VisibilityShared,
			Date:       "2024-03-15",
			TimeStart:  "10:00",
			TimeEnd:    "11:00",
		},
		{
			ID:         1,
			Title:      "Позвонить маме",
			CategoryID: model.CategoryOther,
			Visibility: model.VisibilityPersonal,
			Owner:      "Сергей",
			Date:       "2024-03-16",
			PrizeText:  "🍰",
			Completed:  true,
		},
	}

	require.NoError(t, repo.Save(ctx, tasks))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, got, "order and every field survive the round trip")
}

func TestTaskRepositoryLoadEmpty(t *testing.T) {
	repo := NewTaskRepository(NewSnapshotRepository(testDB(t)))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTaskRepositoryHealsMalformedSnapshot(t *testing.T) {
	snaps := NewSnapshotRepository(testDB(t))
	repo := NewTaskRepository(snaps)
	ctx := context.Background()

	require.NoError(t, snaps.Put(ctx, "tasks", []byte(`{not json`)))

	got, err := repo.Load(ctx)
	require.NoError(t, err, "malformed snapshot starts empty instead of failing")
	assert.Nil(t, got)

	// The next save replaces the corrupt blob.
	require.NoError(t, repo.Save(ctx, []model.Task{{ID: 1, Title: "Уборка", CategoryID: model.CategoryHome, Visibility: model.VisibilityShared, Date: "2024-03-15"}}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Уборка", got[0].Title)
}

func TestTaskRepositoryClear(t *testing.T) {
	repo := NewTaskRepository(NewSnapshotRepository(testDB(t)))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []model.Task{{ID: 1, Title: "Стирка", CategoryID: model.CategoryHome, Visibility: model.VisibilityShared, Date: "2024-03-15"}}))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(NewSnapshotRepository(testDB(t)))
	ctx := context.Background()

	last, err := repo.LastLogin(ctx)
	require.NoError(t, err)
	assert.Nil(t, last, "no hint before the first login")

	require.NoError(t, repo.SaveLastLogin(ctx, model.LastLogin{Name: "Валерия", PIN: "1111"}))
	last, err = repo.LastLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Валерия", last.Name)
	assert.Equal(t, "1111", last.PIN)
}

func TestSessionRepositoryIgnoresBadHint(t *testing.T) {
	snaps := NewSnapshotRepository(testDB(t))
	repo := NewSessionRepository(snaps)
	ctx := context.Background()

	cases := []struct {
		name string
		raw  []byte
	}{
		{"malformed json", []byte(`{"name":`)},
		{"empty fields", []byte(`{"name":"","pin":""}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, snaps.Put(ctx, "last_user", tc.raw))
			last, err := repo.LastLogin(ctx)
			require.NoError(t, err)
			assert.Nil(t, last)
		})
	}
}
