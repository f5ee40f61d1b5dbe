package task_test

import (
	"testing"
	"time"

	"todoTracker/internal/models/task"

	"github.com/stretchr/testify/assert"
)

// TestNew тестирует сборку задачи из опций
func TestNew(t *testing.T) {
	due := task.NewDate(2026, time.July, 1)

	got := task.New(
		task.WithID(3),
		task.WithName("Buy milk"),
		task.WithDescription(""),
		task.WithPriority(task.PriorityHigh),
		task.WithCategory(task.CategoryShopping),
		task.WithDueDate(due),
		nil,
	)

	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, "Buy milk", got.Name)
	assert.Equal(t, task.DescriptionPlaceholder, got.Description)
	assert.Equal(t, task.PriorityHigh, got.Priority)
	assert.Equal(t, task.CategoryShopping, got.Category)
	assert.True(t, got.DueDate.Equal(due))
}

// TestUpdatableFrom тестирует перенос изменяемых полей
func TestUpdatableFrom(t *testing.T) {
	created := task.NewDate(2026, time.June, 1)
	due := task.NewDate(2026, time.June, 20)

	existing := &task.Task{
		ID:          5,
		Name:        "Old",
		Description: "old description",
		CreatedAt:   created,
		UpdatedAt:   created,
		Priority:    task.PriorityLow,
		Category:    task.CategoryWork,
		DueDate:     due,
		Version:     4,
	}

	t.Run("success - all client fields overwritten", func(t *testing.T) {
		target := existing.Clone()
		target.Apply(task.UpdatableFrom(&task.Task{
			ID:       99,
			Name:     "New",
			Status:   true,
			Priority: task.PriorityCritical,
			Category: task.CategoryHealth,
			DueDate:  due.AddDays(3),
		})...)

		assert.Equal(t, int64(5), target.ID)
		assert.Equal(t, "New", target.Name)
		assert.Equal(t, task.DescriptionPlaceholder, target.Description)
		assert.True(t, target.Status)
		assert.Equal(t, task.PriorityCritical, target.Priority)
		assert.Equal(t, task.CategoryHealth, target.Category)
		assert.True(t, target.DueDate.Equal(due.AddDays(3)))
		assert.True(t, target.CreatedAt.Equal(created))
		assert.Equal(t, 4, target.Version)
	})

	t.Run("success - zero due date keeps existing", func(t *testing.T) {
		target := existing.Clone()
		target.Apply(task.UpdatableFrom(&task.Task{Name: "New"})...)

		assert.True(t, target.DueDate.Equal(due))
	})
}
