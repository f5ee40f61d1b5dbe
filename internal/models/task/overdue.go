package task

// IsOverdue единственное правило вычисления флага просрочки.
// Используется и сервисом при записи, и фоновой проверкой.
// Сравнение только по датам, время суток не учитывается.
func IsOverdue(t *Task, today Date) bool {
	return !t.Status && t.DueDate.Before(today)
}

// Recompute пересчитывает производный флаг IsOverdue
func Recompute(t *Task, today Date) {
	t.IsOverdue = IsOverdue(t, today)
}
