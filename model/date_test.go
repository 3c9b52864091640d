package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as calendar date", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2026, time.January, 15))
		require.NoError(t, err)
		assert.Equal(t, `"2026-01-15"`, string(data))
	})

	t.Run("unmarshals calendar date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2026-02-20"`), &d))
		assert.Equal(t, NewDate(2026, time.February, 20), d)
	})

	t.Run("rejects timestamps and garbage", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"2026-02-20T10:00:00Z"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20260220`), &d))
	})

	t.Run("null leaves pointer nil", func(t *testing.T) {
		var task Task
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","status":"TODO","dueDate":null}`), &task))
		assert.Nil(t, task.DueDate)
	})
}

func TestDate_Scan(t *testing.T) {
	want := NewDate(2026, time.December, 31)

	tests := []struct {
		name  string
		value interface{}
	}{
		{"time value", time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"time in other zone keeps its day", time.Date(2026, time.December, 31, 23, 30, 0, 0, time.FixedZone("X", -5*3600))},
		{"plain string", "2026-12-31"},
		{"timestamp string", "2026-12-31 00:00:00+00:00"},
		{"bytes", []byte("2026-12-31")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.value))
			assert.Equal(t, want, d)
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := NewDate(2026, time.March, 5).Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", v)
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, TaskStatus("").IsValid())
	assert.False(t, TaskStatus("todo").IsValid())
	assert.False(t, TaskStatus("ARCHIVED").IsValid())
}

func TestTask_JSONShape(t *testing.T) {
	due := NewDate(2026, time.January, 15)
	desc := "Test Description"
	data, err := json.Marshal(Task{ID: 1, Title: "Test Task", Description: &desc, Status: TaskStatusTodo, DueDate: &due})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Test Task","description":"Test Description","status":"TODO","dueDate":"2026-01-15"}`, string(data))

	data, err = json.Marshal(Task{ID: 2, Title: "Minimal", Status: TaskStatusDone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"title":"Minimal","description":null,"status":"DONE","dueDate":null}`, string(data))
}
