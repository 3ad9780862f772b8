package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chelishino05/todo-devops-app/internal/cache"
	dom "github.com/chelishino05/todo-devops-app/internal/domain"
	"github.com/chelishino05/todo-devops-app/internal/metrics"
	"github.com/chelishino05/todo-devops-app/internal/repo/repotest"
	"github.com/chelishino05/todo-devops-app/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*service.TodoService, *repotest.InMemory) {
	t.Helper()
	mem := repotest.New()
	return service.NewTodoService(mem, nil, nil), mem
}

func newCachedService(t *testing.T) (*service.TodoService, *repotest.InMemory) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mem := repotest.New()
	c := cache.NewTodoCache(rdb, time.Minute)
	return service.NewTodoService(mem, c, metrics.New()), mem
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	desc := "quarterly numbers"
	created, err := svc.Create(ctx, dom.TodoInput{Title: "Write report", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidationRejection(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dom.TodoInput{Title: ""})
	assert.ErrorIs(t, err, dom.ErrValidation)

	_, err = svc.Create(ctx, dom.TodoInput{Title: "   "})
	assert.ErrorIs(t, err, dom.ErrValidation)
}

func TestIDsAreUniqueAndNeverReused(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		created, err := svc.Create(ctx, dom.TodoInput{Title: "task"})
		require.NoError(t, err)
		require.False(t, seen[created.ID], "id %d reused", created.ID)
		seen[created.ID] = true
		require.NoError(t, svc.Delete(ctx, created.ID))
	}
}

func TestPartialUpdateTouchesOnlyNamedFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	desc := "unchanged"
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, dom.TodoInput{Title: "Original", Description: &desc, DueDate: &due})
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(ctx, created.ID, dom.TodoPatch{Completed: &done})
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.DueDate, updated.DueDate)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestDeleteFinality(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dom.TodoInput{Title: "Short-lived"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)

	title := "x"
	_, err = svc.Update(ctx, created.ID, dom.TodoPatch{Title: &title})
	assert.ErrorIs(t, err, dom.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), dom.ErrNotFound)
}

func TestListOrderingSurvivesUpdates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"A", "B", "C"} {
		created, err := svc.Create(ctx, dom.TodoInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	// Touch C then A; list order must stay by creation time.
	done := true
	_, err := svc.Update(ctx, ids[2], dom.TodoPatch{Completed: &done})
	require.NoError(t, err)
	newTitle := "A2"
	_, err = svc.Update(ctx, ids[0], dom.TodoPatch{Title: &newTitle})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Equal(t, ids[2], list[2].ID)
}

func TestStatsConsistency(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	done := true
	for i, complete := range []bool{true, false, true, false, false} {
		created, err := svc.Create(ctx, dom.TodoInput{Title: "task"})
		require.NoError(t, err, "create %d", i)
		if complete {
			_, err = svc.Update(ctx, created.ID, dom.TodoPatch{Completed: &done})
			require.NoError(t, err)
		}
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	list, err := svc.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(len(list)), stats.Total)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
}

func TestLifecycleScenario(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dom.TodoInput{Title: "Write report"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)

	completed, err := svc.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, created.ID, completed.ID)
	assert.Equal(t, created.CreatedAt, completed.CreatedAt)
	assert.True(t, completed.UpdatedAt.After(created.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestStorageFailureSurfacesAsUnavailable(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	mem.Err = errors.New("disk full")

	_, err := svc.Create(ctx, dom.TodoInput{Title: "doomed"})
	require.ErrorIs(t, err, dom.ErrUnavailable)

	_, err = svc.List(ctx)
	require.ErrorIs(t, err, dom.ErrUnavailable)

	_, err = svc.Stats(ctx)
	require.ErrorIs(t, err, dom.ErrUnavailable)
}

func TestCachedListInvalidatedOnWrite(t *testing.T) {
	svc, _ := newCachedService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, dom.TodoInput{Title: "first"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The cached copy must not mask a later write.
	_, err = svc.Create(ctx, dom.TodoInput{Title: "second"})
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "second", list[0].Title)
}

func TestCachedListServesRepeatReads(t *testing.T) {
	svc, _ := newCachedService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dom.TodoInput{Title: "stable"})
	require.NoError(t, err)

	a, err := svc.List(ctx)
	require.NoError(t, err)
	b, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
