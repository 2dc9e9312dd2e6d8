package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuzo2004/java-filmorate/internal/domain"
)

func serviceTestFilm() *domain.Film {
	return &domain.Film{
		Name:        "Интерстеллар",
		Description: "Космос",
		ReleaseDate: domain.NewDate(2014, time.November, 6),
		Duration:    169,
		Mpa:         domain.Mpa{ID: 3},
		Genres:      []domain.Genre{{ID: 2}},
	}
}

func serviceTestUser(email, login string) *domain.User {
	return &domain.User{
		Email:    email,
		Login:    login,
		Birthday: domain.NewDate(1985, time.March, 12),
	}
}

func TestFilmServiceAddResolvesReferences(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	added, err := env.films.Add(ctx, serviceTestFilm())
	require.NoError(t, err)

	// Имена MPA и жанров подставляются из справочников по id.
	assert.Equal(t, domain.Mpa{ID: 3, Name: "PG-13"}, added.Mpa)
	assert.Equal(t, []domain.Genre{{ID: 2, Name: "Драма"}}, added.Genres)
}

func TestFilmServiceAddRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	t.Run("unknown mpa", func(t *testing.T) {
		film := serviceTestFilm()
		film.Mpa = domain.Mpa{ID: 99}
		_, err := env.films.Add(ctx, film)

		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("unknown genre", func(t *testing.T) {
		film := serviceTestFilm()
		film.Genres = []domain.Genre{{ID: 99}}
		_, err := env.films.Add(ctx, film)

		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestFilmServiceAddDeduplicatesGenres(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	film := serviceTestFilm()
	film.Genres = []domain.Genre{{ID: 1}, {ID: 2}, {ID: 1}}

	added, err := env.films.Add(ctx, film)
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{{ID: 1, Name: "Комедия"}, {ID: 2, Name: "Драма"}}, added.Genres)
}

func TestFilmServiceUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	added, err := env.films.Add(ctx, serviceTestFilm())
	require.NoError(t, err)

	t.Run("nonexistent film", func(t *testing.T) {
		film := serviceTestFilm()
		film.ID = 99
		_, err := env.films.Update(ctx, film)

		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("genres replaced wholesale", func(t *testing.T) {
		film := serviceTestFilm()
		film.ID = added.ID
		film.Genres = nil

		updated, err := env.films.Update(ctx, film)
		require.NoError(t, err)
		assert.Empty(t, updated.Genres)
	})
}

func TestFilmServiceLikes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	film, err := env.films.Add(ctx, serviceTestFilm())
	require.NoError(t, err)
	user, err := env.users.Add(ctx, serviceTestUser("fan@b.ru", "fan"))
	require.NoError(t, err)

	require.NoError(t, env.films.AddLike(ctx, film.ID, user.ID))

	t.Run("duplicate like rejected", func(t *testing.T) {
		err := env.films.AddLike(ctx, film.ID, user.ID)
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("like for nonexistent film", func(t *testing.T) {
		err := env.films.AddLike(ctx, 99, user.ID)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("like from nonexistent user", func(t *testing.T) {
		err := env.films.AddLike(ctx, film.ID, 99)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("remove absent like is a no-op", func(t *testing.T) {
		other, err := env.users.Add(ctx, serviceTestUser("other@b.ru", "other"))
		require.NoError(t, err)
		assert.NoError(t, env.films.RemoveLike(ctx, film.ID, other.ID))
	})

	t.Run("remove existing like", func(t *testing.T) {
		require.NoError(t, env.films.RemoveLike(ctx, film.ID, user.ID))
		liked, err := env.likes.IsFilmLikedByUser(ctx, film.ID, user.ID)
		require.NoError(t, err)
		assert.False(t, liked)
	})
}

func TestFilmServiceGetPopular(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	first, err := env.films.Add(ctx, serviceTestFilm())
	require.NoError(t, err)
	second, err := env.films.Add(ctx, serviceTestFilm())
	require.NoError(t, err)

	fan, err := env.users.Add(ctx, serviceTestUser("fan@b.ru", "fan"))
	require.NoError(t, err)
	require.NoError(t, env.films.AddLike(ctx, second.ID, fan.ID))

	popular, err := env.films.GetPopular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, second.ID, popular[0].ID)
	assert.Equal(t, first.ID, popular[1].ID)

	t.Run("non-positive count rejected", func(t *testing.T) {
		_, err := env.films.GetPopular(ctx, 0)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestReferenceServices(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	genres, err := env.genres.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Комедия", genres[0].Name)

	ratings, err := env.mpa.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, "NC-17", ratings[4].Name)

	t.Run("unknown genre id", func(t *testing.T) {
		_, err := env.genres.FindByID(ctx, 99)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("unknown mpa id", func(t *testing.T) {
		_, err := env.mpa.FindByID(ctx, 99)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
