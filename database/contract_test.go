package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sahilchouksey/task-manager-api/config"
	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	config.EnvironmentVariable
}

func configWithDriver(driver string) *testEnv {
	return &testEnv{config.EnvironmentVariable{DB_DRIVER: driver, GO_ENV: "test"}}
}

func strPtr(s string) *string { return &s }

// runTaskRepositoryContract exercises the TaskRepository contract against a
// fresh, empty store per subtest.
func runTaskRepositoryContract(t *testing.T, newStore func(t *testing.T) TaskStore) {
	ctx := context.Background()

	t.Run("save generates id", func(t *testing.T) {
		repo := newStore(t).Tasks()
		due := model.NewDate(2026, time.January, 15)
		task := &model.Task{Title: "Test Task", Description: strPtr("Test Description"), Status: model.TaskStatusTodo, DueDate: &due}

		require.NoError(t, repo.Save(ctx, task))
		assert.NotZero(t, task.ID)

		found, err := repo.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, found)
	})

	t.Run("find missing returns ErrNotFound", func(t *testing.T) {
		repo := newStore(t).Tasks()
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("find all", func(t *testing.T) {
		repo := newStore(t).Tasks()

		tasks, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)

		for _, title := range []string{"Task 1", "Task 2", "Task 3"} {
			require.NoError(t, repo.Save(ctx, &model.Task{Title: title, Status: model.TaskStatusTodo}))
		}

		tasks, err = repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "Task 1", tasks[0].Title)
		assert.Equal(t, "Task 3", tasks[2].Title)
	})

	t.Run("save existing overwrites every field", func(t *testing.T) {
		repo := newStore(t).Tasks()
		due := model.NewDate(2026, time.January, 15)
		task := &model.Task{Title: "Original", Description: strPtr("desc"), Status: model.TaskStatusTodo, DueDate: &due}
		require.NoError(t, repo.Save(ctx, task))
		id := task.ID

		task.Title = "Updated Title"
		task.Description = nil
		task.Status = model.TaskStatusDone
		task.DueDate = nil
		require.NoError(t, repo.Save(ctx, task))
		assert.Equal(t, id, task.ID)

		found, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", found.Title)
		assert.Nil(t, found.Description)
		assert.Equal(t, model.TaskStatusDone, found.Status)
		assert.Nil(t, found.DueDate)
	})

	t.Run("delete removes row", func(t *testing.T) {
		repo := newStore(t).Tasks()
		task := &model.Task{Title: "Doomed", Status: model.TaskStatusTodo}
		require.NoError(t, repo.Save(ctx, task))

		require.NoError(t, repo.Delete(ctx, task))

		_, err := repo.FindByID(ctx, task.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, task), ErrNotFound)
	})

	t.Run("transaction commits", func(t *testing.T) {
		store := newStore(t)
		err := store.Transaction(ctx, func(repo TaskRepository) error {
			return repo.Save(ctx, &model.Task{Title: "Committed", Status: model.TaskStatusTodo})
		})
		require.NoError(t, err)

		tasks, err := store.Tasks().FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		store := newStore(t)
		boom := errors.New("boom")
		err := store.Transaction(ctx, func(repo TaskRepository) error {
			if err := repo.Save(ctx, &model.Task{Title: "Rolled back", Status: model.TaskStatusTodo}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		tasks, err := store.Tasks().FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}
