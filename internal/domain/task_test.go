package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_SameName(t *testing.T) {
	task := Task{ID: "1", Name: "Buy Milk"}

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"exact", "Buy Milk", true},
		{"lower", "buy milk", true},
		{"upper", "BUY MILK", true},
		{"different", "Buy bread", false},
		{"prefix", "Buy", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, task.SameName(tt.in))
		})
	}
}

func TestNormalizeTaskName(t *testing.T) {
	assert.Equal(t, "Buy milk", NormalizeTaskName("  Buy milk\t"))
	assert.Empty(t, NormalizeTaskName(" \n "))
}

func TestPendingTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Completed: true},
		{ID: "4"},
	}

	pending := PendingTasks(tasks)

	assert.Equal(t, []Task{{ID: "2"}, {ID: "4"}}, pending)
	assert.NotNil(t, PendingTasks(nil))
}

func TestFindTask(t *testing.T) {
	tasks := []Task{{ID: "a"}, {ID: "b"}, {ID: "b", Name: "second"}}

	assert.Equal(t, 0, FindTask(tasks, "a"))
	assert.Equal(t, 1, FindTask(tasks, "b"), "first match wins")
	assert.Equal(t, -1, FindTask(tasks, "c"))
	assert.Equal(t, -1, FindTask(nil, "a"))
}
