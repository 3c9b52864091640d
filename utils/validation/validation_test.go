package validation

import (
	"strings"
	"testing"

	"github.com/sahilchouksey/task-manager-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestValidator_Task(t *testing.T) {
	v := NewValidator()

	valid := func() model.Task {
		return model.Task{Title: "Test Task", Description: ptr("Test Description"), Status: model.TaskStatusTodo}
	}

	t.Run("valid task passes", func(t *testing.T) {
		assert.NoError(t, v.ValidateStruct(valid()))
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		task := valid()
		task.Description = nil
		assert.NoError(t, v.ValidateStruct(task))
	})

	t.Run("boundaries are inclusive", func(t *testing.T) {
		task := valid()
		task.Title = strings.Repeat("a", 100)
		task.Description = ptr(strings.Repeat("b", 500))
		assert.NoError(t, v.ValidateStruct(task))
	})

	t.Run("length counts characters not bytes", func(t *testing.T) {
		task := valid()
		task.Title = strings.Repeat("é", 100)
		assert.NoError(t, v.ValidateStruct(task))
	})

	tests := []struct {
		name   string
		mutate func(*model.Task)
		field  string
		msg    string
	}{
		{"empty title", func(tk *model.Task) { tk.Title = "" }, "title", "title must not be blank"},
		{"whitespace title", func(tk *model.Task) { tk.Title = "   \t" }, "title", "title must not be blank"},
		{"title too long", func(tk *model.Task) { tk.Title = strings.Repeat("a", 101) }, "title", "title must be at most 100 characters"},
		{"description too long", func(tk *model.Task) { tk.Description = ptr(strings.Repeat("a", 501)) }, "description", "description must be at most 500 characters"},
		{"missing status", func(tk *model.Task) { tk.Status = "" }, "status", "status is required"},
		{"unknown status", func(tk *model.Task) { tk.Status = "ARCHIVED" }, "status", "status must be one of TODO, IN_PROGRESS, DONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid()
			tt.mutate(&task)

			err := v.ValidateStruct(task)
			require.Error(t, err)

			errs := FormatValidationErrors(err)
			assert.Len(t, errs, 1)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}

	t.Run("reports every failing field", func(t *testing.T) {
		task := model.Task{Title: "", Description: ptr(strings.Repeat("a", 501))}
		errs := FormatValidationErrors(v.ValidateStruct(task))
		assert.Len(t, errs, 3)
		assert.Contains(t, errs, "title")
		assert.Contains(t, errs, "description")
		assert.Contains(t, errs, "status")
	})
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(assert.AnError))
}
