package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// User — агрегат пользователя: строка users плюс множество id друзей
// (направленные связи user -> friend, сами объекты друзей не разворачиваются).
type User struct {
	ID       int    `json:"id" db:"id"`
	Email    string `json:"email" db:"email" validate:"required,email"`
	Login    string `json:"login" db:"login" validate:"required"`
	Name     string `json:"name" db:"name"`
	Birthday Date   `json:"birthday" db:"birthday"`
	Friends  []int  `json:"friends,omitempty" db:"-"`
}

// HasFriend сообщает, есть ли направленная связь user -> friendID.
func (u *User) HasFriend(friendID int) bool {
	for _, id := range u.Friends {
		if id == friendID {
			return true
		}
	}
	return false
}

// Validate проверяет пользователя перед передачей в сервисный слой.
// Возвращает *ValidationError со списком нарушений по полям.
func (u *User) Validate(v *validator.Validate) error {
	var violations []FieldViolation

	if err := v.Struct(u); err != nil {
		violations = append(violations, violationsFromValidator(err)...)
	}

	if u.Login != "" && strings.ContainsAny(u.Login, " \t") {
		violations = append(violations, FieldViolation{Field: "Login", Message: "must not contain whitespace"})
	}
	if !u.Birthday.IsZero() && u.Birthday.After(Today().Time) {
		violations = append(violations, FieldViolation{Field: "Birthday", Message: "must not be in the future"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
