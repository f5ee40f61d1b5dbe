package task

type TaskOption func(*Task)

// New собирает задачу из опций; nil-опции пропускаются
func New(opts ...TaskOption) *Task {
	t := &Task{}
	t.Apply(opts...)
	return t
}

func (t *Task) Apply(opts ...TaskOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
}

func WithID(id int64) TaskOption {
	return func(task *Task) {
		task.ID = id
	}
}

func WithName(name string) TaskOption {
	return func(task *Task) {
		task.Name = name
	}
}

// пустое описание заменяется заглушкой
func WithDescription(description string) TaskOption {
	if description == "" {
		description = DescriptionPlaceholder
	}
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(done bool) TaskOption {
	return func(task *Task) {
		task.Status = done
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithCategory(category Category) TaskOption {
	return func(task *Task) {
		task.Category = category
	}
}

func WithDueDate(dueDate Date) TaskOption {
	if dueDate.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.DueDate = dueDate
	}
}

// UpdatableFrom переносит все изменяемые клиентом поля из src
func UpdatableFrom(src *Task) []TaskOption {
	return []TaskOption{
		WithName(src.Name),
		WithDescription(src.Description),
		WithStatus(src.Status),
		WithPriority(src.Priority),
		WithCategory(src.Category),
		WithDueDate(src.DueDate),
	}
}
