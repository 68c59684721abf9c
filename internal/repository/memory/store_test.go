package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/model"
)

func seedUser(t *testing.T, s *Store, email string) model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), model.User{Email: email, IsActive: true})
	require.NoError(t, err)
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	users := s.Users()

	a, err := users.Create(ctx, model.User{Email: "a@example.com"})
	require.NoError(t, err)
	b, err := users.Create(ctx, model.User{Email: "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	got, err := users.GetByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = users.GetByID(ctx, 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = users.GetByEmail(ctx, "c@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = users.Create(ctx, model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedUser(t, s, "a@example.com")
	seedUser(t, s, "b@example.com")

	a.Name = "Alice"
	updated, err := s.Users().Update(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)

	a.Email = "b@example.com"
	_, err = s.Users().Update(ctx, a)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	a.Email = "new@example.com"
	_, err = s.Users().Update(ctx, a)
	require.NoError(t, err)
	_, err = s.Users().GetByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = s.Users().Update(ctx, model.User{ID: 42})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dupes     int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().Create(ctx, model.User{Email: "race@example.com"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, model.ErrAlreadyExists) {
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, dupes)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")

	ta, err := s.Tasks().Create(ctx, model.Task{UserID: a.ID, Title: "a"})
	require.NoError(t, err)
	tb, err := s.Tasks().Create(ctx, model.Task{UserID: b.ID, Title: "b"})
	require.NoError(t, err)

	require.NoError(t, s.Users().Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Users().Delete(ctx, a.ID), model.ErrNotFound)

	_, err = s.Tasks().GetByID(ctx, ta.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Tasks().GetByID(ctx, tb.ID)
	assert.NoError(t, err)

	_, err = s.Users().Create(ctx, model.User{Email: "a@example.com"})
	assert.NoError(t, err)
}

func TestTaskRepository_CreateRequiresOwner(t *testing.T) {
	s := NewStore()
	_, err := s.Tasks().Create(context.Background(), model.Task{UserID: 7, Title: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository_OwnerScopedMutations(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")

	task, err := s.Tasks().Create(ctx, model.Task{UserID: a.ID, Title: "mine"})
	require.NoError(t, err)

	hijack := task
	hijack.UserID = b.ID
	hijack.Title = "stolen"
	_, err = s.Tasks().Update(ctx, hijack)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, s.Tasks().Delete(ctx, task.ID, b.ID), model.ErrNotFound)

	got, err := s.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
	assert.Equal(t, a.ID, got.UserID)

	task.Title = "renamed"
	task.Completed = true
	updated, err := s.Tasks().Update(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Completed)

	require.NoError(t, s.Tasks().Delete(ctx, task.ID, a.ID))
	assert.ErrorIs(t, s.Tasks().Delete(ctx, task.ID, a.ID), model.ErrNotFound)
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := seedUser(t, s, "a@example.com")
	b := seedUser(t, s, "b@example.com")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.Tasks().Create(ctx, model.Task{
			UserID:    a.ID,
			Title:     title,
			Completed: i == 1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			UpdatedAt: base.Add(time.Duration(3-i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := s.Tasks().Create(ctx, model.Task{UserID: b.ID, Title: "other", CreatedAt: base})
	require.NoError(t, err)

	titles := func(tasks []model.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Title)
		}
		return out
	}

	tests := []struct {
		name   string
		filter model.TaskFilter
		want   []string
	}{
		{name: "default newest first", filter: model.DefaultTaskFilter(), want: []string{"bravo", "alpha", "charlie"}},
		{name: "created ascending", filter: model.TaskFilter{Status: model.TaskStatusAll, Sort: model.TaskSortCreatedAt, Order: model.SortAsc}, want: []string{"charlie", "alpha", "bravo"}},
		{name: "title ascending", filter: model.TaskFilter{Status: model.TaskStatusAll, Sort: model.TaskSortTitle, Order: model.SortAsc}, want: []string{"alpha", "bravo", "charlie"}},
		{name: "updated descending", filter: model.TaskFilter{Status: model.TaskStatusAll, Sort: model.TaskSortUpdatedAt, Order: model.SortDesc}, want: []string{"charlie", "alpha", "bravo"}},
		{name: "pending only", filter: model.TaskFilter{Status: model.TaskStatusPending, Sort: model.TaskSortTitle, Order: model.SortAsc}, want: []string{"bravo", "charlie"}},
		{name: "completed only", filter: model.TaskFilter{Status: model.TaskStatusCompleted, Sort: model.TaskSortTitle, Order: model.SortAsc}, want: []string{"alpha"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Tasks().ListByOwner(ctx, a.ID, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}

	empty, err := s.Tasks().ListByOwner(ctx, 99, model.DefaultTaskFilter())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
	_, err := s.Users().Create(ctx, model.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Tasks().ListByOwner(ctx, 1, model.DefaultTaskFilter())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, s.Ping(context.Background()))
}
