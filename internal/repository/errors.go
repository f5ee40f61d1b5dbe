package repository

import "errors"

var (
	// ErrNotFound задача с таким id отсутствует в хранилище
	ErrNotFound = errors.New("задача не найдена")

	// ErrVersionConflict запись изменилась с момента чтения (оптимистичная блокировка)
	ErrVersionConflict = errors.New("конфликт версий")
)
