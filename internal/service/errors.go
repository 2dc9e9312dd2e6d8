package service

import "fmt"

// NotFoundError — запрошенная сущность (фильм, пользователь, жанр, рейтинг)
// не существует. Транслируется вызывающим слоем в 404.
type NotFoundError struct {
	msg string
}

func NewNotFoundError(format string, args ...any) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string { return e.msg }

// DuplicateError — нарушение уникальности (email, login, повторный лайк,
// повторная или рефлексивная дружба). Транслируется в 400.
type DuplicateError struct {
	msg string
}

func NewDuplicateError(format string, args ...any) *DuplicateError {
	return &DuplicateError{msg: fmt.Sprintf(format, args...)}
}

func (e *DuplicateError) Error() string { return e.msg }
