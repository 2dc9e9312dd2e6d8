package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceAdd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	t.Run("empty name defaults to login", func(t *testing.T) {
		added, err := env.users.Add(ctx, serviceTestUser("a@b.ru", "login1"))
		require.NoError(t, err)
		assert.Equal(t, "login1", added.Name)
	})

	t.Run("whitespace-only name defaults to login", func(t *testing.T) {
		user := serviceTestUser("blank@b.ru", "blank")
		user.Name = "   "
		added, err := env.users.Add(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "blank", added.Name)
	})

	t.Run("explicit name kept", func(t *testing.T) {
		user := serviceTestUser("b@b.ru", "login2")
		user.Name = "Иван"
		added, err := env.users.Add(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, "Иван", added.Name)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := env.users.Add(ctx, serviceTestUser("a@b.ru", "unique"))
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("duplicate login rejected", func(t *testing.T) {
		_, err := env.users.Add(ctx, serviceTestUser("unique@b.ru", "login1"))
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	first, err := env.users.Add(ctx, serviceTestUser("a@b.ru", "first"))
	require.NoError(t, err)
	_, err = env.users.Add(ctx, serviceTestUser("b@b.ru", "second"))
	require.NoError(t, err)

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		update := serviceTestUser("a@b.ru", "first")
		update.ID = first.ID
		_, err := env.users.Update(ctx, update)
		assert.NoError(t, err)
	})

	t.Run("taking someone else's email rejected", func(t *testing.T) {
		update := serviceTestUser("b@b.ru", "first")
		update.ID = first.ID
		_, err := env.users.Update(ctx, update)
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("nonexistent user", func(t *testing.T) {
		update := serviceTestUser("ghost@b.ru", "ghost")
		update.ID = 99
		_, err := env.users.Update(ctx, update)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("friends must exist", func(t *testing.T) {
		update := serviceTestUser("a@b.ru", "first")
		update.ID = first.ID
		update.Friends = []int{99}
		_, err := env.users.Update(ctx, update)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("missing friends become empty set", func(t *testing.T) {
		update := serviceTestUser("a@b.ru", "first")
		update.ID = first.ID
		updated, err := env.users.Update(ctx, update)
		require.NoError(t, err)
		assert.NotNil(t, updated.Friends)
		assert.Empty(t, updated.Friends)
	})
}

func TestUserServiceFriendship(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	ivan, err := env.users.Add(ctx, serviceTestUser("ivan@b.ru", "ivan"))
	require.NoError(t, err)
	petr, err := env.users.Add(ctx, serviceTestUser("petr@b.ru", "petr"))
	require.NoError(t, err)

	require.NoError(t, env.users.AddFriend(ctx, ivan.ID, petr.ID))

	t.Run("friendship is one-directional", func(t *testing.T) {
		friends, err := env.users.GetFriends(ctx, ivan.ID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		assert.Equal(t, petr.ID, friends[0].ID)

		back, err := env.users.GetFriends(ctx, petr.ID)
		require.NoError(t, err)
		assert.Empty(t, back)
	})

	t.Run("self-friending rejected", func(t *testing.T) {
		err := env.users.AddFriend(ctx, ivan.ID, ivan.ID)
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("duplicate friendship rejected", func(t *testing.T) {
		err := env.users.AddFriend(ctx, ivan.ID, petr.ID)
		var duplicate *DuplicateError
		assert.ErrorAs(t, err, &duplicate)
	})

	t.Run("friend must exist", func(t *testing.T) {
		err := env.users.AddFriend(ctx, ivan.ID, 99)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("removing absent friendship is a no-op", func(t *testing.T) {
		assert.NoError(t, env.users.RemoveFriend(ctx, petr.ID, ivan.ID))
	})

	t.Run("remove friendship", func(t *testing.T) {
		require.NoError(t, env.users.RemoveFriend(ctx, ivan.ID, petr.ID))
		friends, err := env.users.GetFriends(ctx, ivan.ID)
		require.NoError(t, err)
		assert.Empty(t, friends)
	})
}

func TestUserServiceCommonFriends(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	ivan, err := env.users.Add(ctx, serviceTestUser("ivan@b.ru", "ivan"))
	require.NoError(t, err)
	petr, err := env.users.Add(ctx, serviceTestUser("petr@b.ru", "petr"))
	require.NoError(t, err)
	olga, err := env.users.Add(ctx, serviceTestUser("olga@b.ru", "olga"))
	require.NoError(t, err)

	require.NoError(t, env.users.AddFriend(ctx, ivan.ID, olga.ID))
	require.NoError(t, env.users.AddFriend(ctx, petr.ID, olga.ID))

	common, err := env.users.GetCommonFriends(ctx, ivan.ID, petr.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, olga.ID, common[0].ID)

	t.Run("both users must exist", func(t *testing.T) {
		_, err := env.users.GetCommonFriends(ctx, ivan.ID, 99)
		var notFound *NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestUserServiceFindByID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.users.FindByID(ctx, 1)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	added, err := env.users.Add(ctx, serviceTestUser("a@b.ru", "first"))
	require.NoError(t, err)

	found, err := env.users.FindByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.ru", found.Email)
}
