package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/kv"
	taskrepo "github.com/dmitrijs2005/gophtodo/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo wraps a task repository, counting saves and optionally failing them.
type countingRepo struct {
	inner   taskrepo.Repository
	saves   int
	saveErr error
}

func (r *countingRepo) Load(ctx context.Context, userID string) ([]models.Task, error) {
	return r.inner.Load(ctx, userID)
}

func (r *countingRepo) Save(ctx context.Context, userID string, list []models.Task) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	return r.inner.Save(ctx, userID, list)
}

var ann = models.Session{ID: "u1", Fullname: "Ann Lee", Email: "ann@example.com"}

func newTaskFixture(t *testing.T) (*taskService, *countingRepo, *timex.FixedClock) {
	t.Helper()
	repo := &countingRepo{inner: taskrepo.NewKVRepository(kv.NewMemoryRepository())}
	clock := &timex.FixedClock{T: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	svc := NewTaskService(repo, clock, logging.Discard()).(*taskService)
	n := 0
	svc.newID = func() string { n++; return fmt.Sprintf("task-%d", n) }

	require.NoError(t, svc.Load(context.Background(), ann))
	return svc, repo, clock
}

func texts(list []models.Task) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Text)
	}
	return out
}

func TestTaskService_NotLoggedIn(t *testing.T) {
	svc := NewTaskService(taskrepo.NewKVRepository(kv.NewMemoryRepository()), timex.SystemClock{}, logging.Discard())
	ctx := context.Background()

	_, err := svc.Add(ctx, "x")
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	_, err = svc.Toggle(ctx, "x")
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	_, err = svc.Visible()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	_, err = svc.Summary()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.ErrorIs(t, svc.SetFilter(models.FilterActive), common.ErrNotLoggedIn)
}

func TestTaskService_AddPersistsNewestFirst(t *testing.T) {
	svc, repo, clock := newTaskFixture(t)
	ctx := context.Background()

	changed, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)
	assert.True(t, changed)
	clock.Advance(time.Minute)
	_, err = svc.Add(ctx, "Walk dog")
	require.NoError(t, err)

	list, err := svc.Tasks()
	require.NoError(t, err)
	assert.Equal(t, []string{"Walk dog", "Buy milk"}, texts(list))
	assert.Equal(t, 2, repo.saves)

	stored, err := repo.inner.Load(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, list, stored)
}

func TestTaskService_NoopsDoNotPersist(t *testing.T) {
	svc, repo, _ := newTaskFixture(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)
	repo.saves = 0

	for _, op := range []func() (bool, error){
		func() (bool, error) { return svc.Add(ctx, "   ") },
		func() (bool, error) { return svc.Delete(ctx, "missing") },
		func() (bool, error) { return svc.Toggle(ctx, "missing") },
		func() (bool, error) { return svc.Edit(ctx, "task-1", "  ") },
		func() (bool, error) { return svc.ClearCompleted(ctx) },
	} {
		changed, err := op()
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Zero(t, repo.saves)
}

func TestTaskService_ToggleEditDelete(t *testing.T) {
	svc, _, clock := newTaskFixture(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	changed, err := svc.Toggle(ctx, "task-1")
	require.NoError(t, err)
	require.True(t, changed)

	list, _ := svc.Tasks()
	require.True(t, list[0].Completed)
	require.NotNil(t, list[0].CompletedAt)
	assert.Equal(t, clock.T, *list[0].CompletedAt)

	changed, err = svc.Edit(ctx, "task-1", "Buy oat milk")
	require.NoError(t, err)
	require.True(t, changed)
	list, _ = svc.Tasks()
	assert.Equal(t, "Buy oat milk", list[0].Text)
	assert.True(t, list[0].Completed, "edit keeps completion state")

	changed, err = svc.Delete(ctx, "task-1")
	require.NoError(t, err)
	require.True(t, changed)
	list, _ = svc.Tasks()
	assert.Empty(t, list)
}

func TestTaskService_FilterAndSummary(t *testing.T) {
	svc, repo, _ := newTaskFixture(t)
	ctx := context.Background()
	for _, s := range []string{"a", "b", "c"} {
		_, err := svc.Add(ctx, s)
		require.NoError(t, err)
	}
	_, err := svc.Toggle(ctx, "task-2")
	require.NoError(t, err)
	saves := repo.saves

	sum, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, "2 tasks left", sum)

	require.NoError(t, svc.SetFilter(models.FilterCompleted))
	assert.Equal(t, models.FilterCompleted, svc.Filter())
	vis, err := svc.Visible()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, texts(vis))

	require.NoError(t, svc.SetFilter(models.FilterActive))
	vis, _ = svc.Visible()
	assert.Equal(t, []string{"c", "a"}, texts(vis))

	assert.ErrorIs(t, svc.SetFilter("done"), common.ErrUnknownFilter)
	assert.Equal(t, models.FilterActive, svc.Filter())
	assert.Equal(t, saves, repo.saves, "filtering never persists")

	cleared, err := svc.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)
	all, _ := svc.Tasks()
	assert.Equal(t, []string{"c", "a"}, texts(all))

	_, err = svc.Toggle(ctx, "task-1")
	require.NoError(t, err)
	sum, _ = svc.Summary()
	assert.Equal(t, "1 task left", sum)
}

func TestTaskService_SetFilterNormalizesMode(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()
	for _, s := range []string{"a", "b"} {
		_, err := svc.Add(ctx, s)
		require.NoError(t, err)
	}
	_, err := svc.Toggle(ctx, "task-1")
	require.NoError(t, err)

	for mode, want := range map[models.Filter][]string{
		"Active":      {"b"},
		" COMPLETED ": {"a"},
		"aLL":         {"b", "a"},
	} {
		require.NoError(t, svc.SetFilter(mode))
		assert.Contains(t, []models.Filter{models.FilterAll, models.FilterActive, models.FilterCompleted}, svc.Filter())
		vis, err := svc.Visible()
		require.NoError(t, err)
		assert.Equal(t, want, texts(vis), "mode %q", mode)
	}
}

func TestTaskService_SaveErrorKeepsState(t *testing.T) {
	svc, repo, _ := newTaskFixture(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "Buy milk")
	require.NoError(t, err)

	repo.saveErr = errors.New("disk full")
	_, err = svc.Add(ctx, "Walk dog")
	require.ErrorContains(t, err, "disk full")

	list, _ := svc.Tasks()
	assert.Equal(t, []string{"Buy milk"}, texts(list))
}

func TestTaskService_LoadIsPerUser(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "Ann's task")
	require.NoError(t, err)

	bob := models.Session{ID: "u2", Email: "bob@example.com"}
	require.NoError(t, svc.Load(ctx, bob))
	list, _ := svc.Tasks()
	assert.Empty(t, list)

	require.NoError(t, svc.Load(ctx, ann))
	list, _ = svc.Tasks()
	assert.Equal(t, []string{"Ann's task"}, texts(list))

	svc.Reset()
	_, err = svc.Tasks()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
}

func TestTaskService_LoadCorrupt(t *testing.T) {
	store := kv.NewMemoryRepository()
	require.NoError(t, store.Set(context.Background(), taskrepo.Key("u1"), []byte(`"nope"`)))
	svc := NewTaskService(taskrepo.NewKVRepository(store), timex.SystemClock{}, logging.Discard())

	err := svc.Load(context.Background(), ann)
	require.ErrorIs(t, err, common.ErrCorruptDocument)
}

func TestTaskService_Resolve(t *testing.T) {
	svc, _, _ := newTaskFixture(t)
	svc.newID = func() string { return "0f3c9a1e-aaaa" }
	_, err := svc.Add(context.Background(), "x")
	require.NoError(t, err)

	id, err := svc.Resolve("0f3")
	require.NoError(t, err)
	assert.Equal(t, "0f3c9a1e-aaaa", id)
}
