package database

import (
	"testing"

	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	t.Run("valid entries", func(t *testing.T) {
		tasks, err := ParseSeed([]byte(`
tasks:
  - title: Write docs
    description: README and API reference
    status: IN_PROGRESS
    due_date: "2026-01-15"
  - title: Ship it
    status: TODO
`))
		require.NoError(t, err)
		require.Len(t, tasks, 2)

		assert.Equal(t, "Write docs", tasks[0].Title)
		require.NotNil(t, tasks[0].Description)
		assert.Equal(t, "README and API reference", *tasks[0].Description)
		assert.Equal(t, model.TaskStatusInProgress, tasks[0].Status)
		require.NotNil(t, tasks[0].DueDate)
		assert.Equal(t, "2026-01-15", tasks[0].DueDate.String())

		assert.Nil(t, tasks[1].Description)
		assert.Nil(t, tasks[1].DueDate)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := ParseSeed([]byte("tasks:\n  - title: x\n    status: BLOCKED\n"))
		assert.ErrorContains(t, err, "seed task 0")
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ParseSeed([]byte("tasks:\n  - title: x\n    status: TODO\n    due_date: tomorrow\n"))
		assert.ErrorContains(t, err, "YYYY-MM-DD")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseSeed([]byte("tasks: [\n"))
		assert.ErrorContains(t, err, "failed to parse seed file")
	})
}

func TestLoadSeedFile_Shipped(t *testing.T) {
	tasks, err := LoadSeedFile("../seed/tasks.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, tasks)
}
