package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/trtodo/internal/models"
	"github.com/thenoetrevino/trtodo/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, *testutil.MemStorage) {
	t.Helper()
	store := testutil.NewMemStorage(testutil.SampleSnapshot())
	return NewService(store, nil), store
}

func ids(tasks []models.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// ============================================================================
// CreateTask
// ============================================================================

func TestCreateTask_UsesCurrentCategoryAndDefaults(t *testing.T) {
	svc, _ := setupService(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "  Draft slides  "})
	require.NoError(t, err)

	assert.Equal(t, 6, task.ID)
	assert.Equal(t, "Draft slides", task.Title)
	assert.Equal(t, 1, task.CategoryID, "current category is Work")
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, 2, task.Order, "appended after the two Work tasks")
}

func TestCreateTask_ExplicitCategoryAndPriority(t *testing.T) {
	svc, store := setupService(t)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:        "Water plants",
		CategoryName: "personal",
		Priority:     "HIGH",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, task.CategoryID)
	assert.Equal(t, models.PriorityHigh, task.Priority)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.FindTask(task.ID))
}

func TestCreateTask_Validation(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateTaskRequest
		want error
	}{
		{"empty title", CreateTaskRequest{Title: "   "}, ErrEmptyTitle},
		{"bad priority", CreateTaskRequest{Title: "x", Priority: "urgent"}, ErrInvalidPriority},
		{"unknown category", CreateTaskRequest{Title: "x", CategoryName: "Nope"}, ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, store.Saves)
}

func TestCreateTask_NoCurrentCategoryFallsBackToDefault(t *testing.T) {
	snap := testutil.SampleSnapshot()
	snap.CurrentCategory = nil
	snap.Config.DefaultCategory = "Personal"
	svc := NewService(testutil.NewMemStorage(snap), nil)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, task.CategoryID)
}

func TestCreateTask_EmptyStore(t *testing.T) {
	svc := NewService(testutil.NewMemStorage(nil), nil)

	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.True(t, task.IsUncategorized())
}

// ============================================================================
// ListTasks
// ============================================================================

func TestListTasks(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	open := false

	tests := []struct {
		name string
		req  ListTasksRequest
		want []int
	}{
		{"hides deleted by default", ListTasksRequest{}, []int{1, 2, 4}},
		{"include deleted", ListTasksRequest{IncludeDeleted: true}, []int{1, 2, 4, 5}},
		{"by category", ListTasksRequest{CategoryName: "WORK"}, []int{1, 2}},
		{"by priority", ListTasksRequest{Priority: "low"}, []int{4}},
		{"open in work", ListTasksRequest{CategoryName: "work", Completed: &open}, []int{1}},
		{"query", ListTasksRequest{Query: "GROC"}, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListTasks(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	_, err := svc.ListTasks(ctx, ListTasksRequest{CategoryName: "missing"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

// ============================================================================
// Updates
// ============================================================================

func TestCompleteAndReopen(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.CompleteTask(ctx, 1))
	task, err := svc.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.True(t, task.UpdatedAt.After(testutil.FixedTime))

	require.NoError(t, svc.ReopenTask(ctx, 1))
	task, err = svc.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.False(t, task.Completed)

	assert.ErrorIs(t, svc.CompleteTask(ctx, 99), ErrTaskNotFound)
	assert.ErrorIs(t, svc.CompleteTask(ctx, 0), ErrInvalidTaskID)
}

func TestDeleteTask(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteTask(ctx, 1, false))
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.FindTask(1))
	assert.True(t, snap.FindTask(1).IsUncategorized())

	require.NoError(t, svc.DeleteTask(ctx, 1, true))
	snap, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.FindTask(1))

	assert.ErrorIs(t, svc.DeleteTask(ctx, 1, true), ErrTaskNotFound)
}

func TestMoveTask(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.MoveTask(ctx, 1, "Personal"))
	task, err := svc.GetTask(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, task.CategoryID)

	assert.ErrorIs(t, svc.MoveTask(ctx, 1, "personal"), ErrAlreadyInCategory)
	assert.ErrorIs(t, svc.MoveTask(ctx, 1, "Nowhere"), ErrCategoryNotFound)
	assert.ErrorIs(t, svc.MoveTask(ctx, 42, "Work"), ErrTaskNotFound)
}

// ============================================================================
// PurgeDeleted
// ============================================================================

func TestPurgeDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit zero purges everything deleted", func(t *testing.T) {
		svc, store := setupService(t)
		zero := 0
		n, err := svc.PurgeDeleted(ctx, &zero)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		snap, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, snap.FindTask(5))
	})

	t.Run("configured lifespan keeps recent deletions", func(t *testing.T) {
		snap := testutil.SampleSnapshot()
		snap.Tasks[3].UpdatedAt = models.Now()
		svc := NewService(testutil.NewMemStorage(snap), nil)

		n, err := svc.PurgeDeleted(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("negative days rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		neg := -1
		_, err := svc.PurgeDeleted(ctx, &neg)
		assert.ErrorIs(t, err, ErrInvalidDays)
	})
}
