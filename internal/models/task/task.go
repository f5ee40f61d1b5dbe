package task

import "math"

// MaxID верхняя граница идентификатора (диапазон SERIAL в PostgreSQL)
const MaxID int64 = math.MaxInt32

// DescriptionPlaceholder пишется в хранилище вместо пустого описания
const DescriptionPlaceholder = "Nil"

type Task struct {
	ID          int64    `json:"id" db:"id"`
	Name        string   `json:"name" db:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" db:"description" validate:"max=255"`
	Status      bool     `json:"status" db:"status"`
	CreatedAt   Date     `json:"createdAt" db:"created_at"`
	UpdatedAt   Date     `json:"updatedAt" db:"updated_at"`
	Priority    Priority `json:"priority" db:"priority" validate:"required,oneof=Low Medium High Critical"`
	Category    Category `json:"category" db:"category" validate:"required,oneof=Work Personal Family Health Hobbies Chores Shopping Learning Other"`
	DueDate     Date     `json:"dueDate" db:"due_date"`
	IsOverdue   bool     `json:"isOverdue" db:"is_overdue"`
	Version     int      `json:"-" db:"version"`
}

type Priority string
type Category string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryFamily   Category = "Family"
	CategoryHealth   Category = "Health"
	CategoryHobbies  Category = "Hobbies"
	CategoryChores   Category = "Chores"
	CategoryShopping Category = "Shopping"
	CategoryLearning Category = "Learning"
	CategoryOther    Category = "Other"
)

// Clone возвращает независимую копию задачи
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// CloneAll копирует срез задач целиком
func CloneAll(tasks []*Task) []*Task {
	res := make([]*Task, len(tasks))
	for i, t := range tasks {
		res[i] = t.Clone()
	}
	return res
}
