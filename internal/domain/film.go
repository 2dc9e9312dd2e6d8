package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MinReleaseDate — дата выхода первого в истории фильма (братья Люмьер).
// Более ранние даты релиза не допускаются.
var MinReleaseDate = NewDate(1895, time.December, 28)

// Mpa — рейтинг Американской ассоциации кинокомпаний (справочник, read-only).
type Mpa struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name,omitempty" db:"name"`
}

// Genre — жанр фильма (справочник, read-only).
type Genre struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name,omitempty" db:"name"`
}

// Film — агрегат фильма: строка films плюс имя MPA и список жанров из таблиц-связей.
type Film struct {
	ID          int     `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"max=200"`
	ReleaseDate Date    `json:"releaseDate"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Mpa         Mpa     `json:"mpa"`
	Genres      []Genre `json:"genres"`
}

// Validate проверяет фильм перед передачей в сервисный слой.
// Возвращает *ValidationError со списком нарушений по полям.
func (f *Film) Validate(v *validator.Validate) error {
	var violations []FieldViolation

	if err := v.Struct(f); err != nil {
		violations = append(violations, violationsFromValidator(err)...)
	}

	// Правила, которые не выражаются тегами валидатора.
	if f.Name != "" && strings.TrimSpace(f.Name) == "" {
		violations = append(violations, FieldViolation{Field: "Name", Message: "must not be blank"})
	}

	switch {
	case f.ReleaseDate.IsZero():
		violations = append(violations, FieldViolation{Field: "ReleaseDate", Message: "is required"})
	case f.ReleaseDate.Before(MinReleaseDate.Time):
		violations = append(violations, FieldViolation{Field: "ReleaseDate", Message: "must not be before " + MinReleaseDate.String()})
	case f.ReleaseDate.After(Today().Time):
		violations = append(violations, FieldViolation{Field: "ReleaseDate", Message: "must not be in the future"})
	}

	if f.Mpa.ID <= 0 {
		violations = append(violations, FieldViolation{Field: "Mpa", Message: "is required"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
