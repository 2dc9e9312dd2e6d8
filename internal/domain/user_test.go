package domain

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() User {
	return User{
		Email:    "mouse@yandex.ru",
		Login:    "mouse",
		Name:     "Nick",
		Birthday: NewDate(1990, time.August, 20),
	}
}

func TestUserValidate(t *testing.T) {
	v := validator.New()

	t.Run("valid user passes", func(t *testing.T) {
		user := validUser()
		assert.NoError(t, user.Validate(v))
	})

	t.Run("empty name is allowed", func(t *testing.T) {
		user := validUser()
		user.Name = ""
		assert.NoError(t, user.Validate(v))
	})

	t.Run("empty birthday is allowed", func(t *testing.T) {
		user := validUser()
		user.Birthday = Date{}
		assert.NoError(t, user.Validate(v))
	})

	tests := []struct {
		name   string
		mutate func(u *User)
		field  string
	}{
		{
			name:   "empty email",
			mutate: func(u *User) { u.Email = "" },
			field:  "Email",
		},
		{
			name:   "malformed email",
			mutate: func(u *User) { u.Email = "not-an-email" },
			field:  "Email",
		},
		{
			name:   "empty login",
			mutate: func(u *User) { u.Login = "" },
			field:  "Login",
		},
		{
			name:   "login with space",
			mutate: func(u *User) { u.Login = "dolore ullamco" },
			field:  "Login",
		},
		{
			name:   "birthday in the future",
			mutate: func(u *User) { u.Birthday = NewDate(Today().Year()+1, time.June, 1) },
			field:  "Birthday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(&user)

			err := user.Validate(v)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)

			fields := make([]string, 0, len(verr.Violations))
			for _, violation := range verr.Violations {
				fields = append(fields, violation.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestUserHasFriend(t *testing.T) {
	user := validUser()
	user.Friends = []int{2, 5}

	assert.True(t, user.HasFriend(2))
	assert.False(t, user.HasFriend(3))
}
