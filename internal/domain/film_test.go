package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFilm() Film {
	return Film{
		Name:        "Криминальное чтиво",
		Description: "Фильм Тарантино",
		ReleaseDate: NewDate(1994, time.October, 14),
		Duration:    154,
		Mpa:         Mpa{ID: 4},
		Genres:      []Genre{{ID: 2}},
	}
}

func TestFilmValidate(t *testing.T) {
	v := validator.New()

	t.Run("valid film passes", func(t *testing.T) {
		film := validFilm()
		assert.NoError(t, film.Validate(v))
	})

	t.Run("release date on the minimum is allowed", func(t *testing.T) {
		film := validFilm()
		film.ReleaseDate = MinReleaseDate
		assert.NoError(t, film.Validate(v))
	})

	tests := []struct {
		name   string
		mutate func(f *Film)
		field  string
	}{
		{
			name:   "empty name",
			mutate: func(f *Film) { f.Name = "" },
			field:  "Name",
		},
		{
			name:   "whitespace-only name",
			mutate: func(f *Film) { f.Name = "   " },
			field:  "Name",
		},
		{
			name:   "description over 200 characters",
			mutate: func(f *Film) { f.Description = strings.Repeat("x", 201) },
			field:  "Description",
		},
		{
			name:   "zero duration",
			mutate: func(f *Film) { f.Duration = 0 },
			field:  "Duration",
		},
		{
			name:   "negative duration",
			mutate: func(f *Film) { f.Duration = -90 },
			field:  "Duration",
		},
		{
			name:   "missing release date",
			mutate: func(f *Film) { f.ReleaseDate = Date{} },
			field:  "ReleaseDate",
		},
		{
			name:   "release date before first film in history",
			mutate: func(f *Film) { f.ReleaseDate = NewDate(1895, time.December, 27) },
			field:  "ReleaseDate",
		},
		{
			name:   "release date in the future",
			mutate: func(f *Film) { f.ReleaseDate = NewDate(Today().Year()+1, time.January, 1) },
			field:  "ReleaseDate",
		},
		{
			name:   "missing mpa",
			mutate: func(f *Film) { f.Mpa = Mpa{} },
			field:  "Mpa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			film := validFilm()
			tt.mutate(&film)

			err := film.Validate(v)
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

func TestDateJSON(t *testing.T) {
	t.Run("marshals as yyyy-mm-dd", func(t *testing.T) {
		d := NewDate(1967, time.March, 25)
		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"1967-03-25"`, string(data))
	})

	t.Run("zero date marshals as null", func(t *testing.T) {
		data, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("unmarshals from yyyy-mm-dd", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"1995-12-28"`), &d))
		assert.Equal(t, NewDate(1995, time.December, 28), d)
	})

	t.Run("null unmarshals to zero date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte("null"), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"28.12.1995"`), &d))
	})
}

func TestDateScan(t *testing.T) {
	t.Run("scans time.Time truncating clock", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2001, time.July, 3, 15, 4, 5, 0, time.UTC)))
		assert.Equal(t, NewDate(2001, time.July, 3), d)
	})

	t.Run("scans nil to zero date", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(nil))
		assert.True(t, d.IsZero())
	})

	t.Run("zero date stores as NULL", func(t *testing.T) {
		v, err := Date{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
