package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

func TestSQLiteStorage_Users(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := &model.User{
		Email:  "amina@example.edu",
		Name:   "Amina",
		Phone:  "0612345678",
		Campus: "north",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	t.Run("get by email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "amina@example.edu")
		require.NoError(t, err)
		assert.Equal(t, "Amina", got.Name)
		assert.Equal(t, "0612345678", got.Phone)
	})

	t.Run("get by phone", func(t *testing.T) {
		got, err := store.GetUserByPhone(ctx, "0612345678")
		require.NoError(t, err)
		assert.Equal(t, "amina@example.edu", got.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.GetUserByEmail(ctx, "nobody@example.edu")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("save is an upsert on email", func(t *testing.T) {
		updated := &model.User{
			Email:  "amina@example.edu",
			Name:   "Amina B.",
			Phone:  "0698765432",
			Campus: "south",
		}
		require.NoError(t, store.SaveUser(ctx, updated))

		got, err := store.GetUserByEmail(ctx, "amina@example.edu")
		require.NoError(t, err)
		assert.Equal(t, "Amina B.", got.Name)
		assert.Equal(t, "0698765432", got.Phone)
		assert.Equal(t, "south", got.Campus)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		err := store.SaveUser(ctx, &model.User{Email: "not-an-email"})
		require.Error(t, err)
	})
}

func TestSQLiteStorage_DeleteUserData(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := &model.User{
		Email: "driss@example.edu",
		Phone: "0611112222",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	// Two items under the email, one under the phone, one belonging to
	// someone else entirely.
	byEmail1 := createTestItem("item-email-1", model.ReportLost)
	byEmail1.Contact = "driss@example.edu"
	byEmail2 := createTestItem("item-email-2", model.ReportFound)
	byEmail2.Contact = "driss@example.edu"
	byPhone := createTestItem("item-phone", model.ReportLost)
	byPhone.Contact = "0611112222"
	other := createTestItem("item-other", model.ReportLost)

	for _, item := range []*model.Item{byEmail1, byEmail2, byPhone, other} {
		require.NoError(t, store.SaveItem(ctx, item))
	}

	deleted, err := store.DeleteUserData(ctx, "driss@example.edu")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	_, err = store.GetUserByEmail(ctx, "driss@example.edu")
	assert.ErrorIs(t, err, common.ErrNotFound)

	for _, id := range []string{"item-email-1", "item-email-2", "item-phone"} {
		_, err := store.GetItem(ctx, id)
		assert.ErrorIs(t, err, common.ErrNotFound, "item %s should be gone", id)
	}

	// The unrelated report survives.
	got, err := store.GetItem(ctx, "item-other")
	require.NoError(t, err)
	assert.Equal(t, "item-other", got.ID)
}

func TestSQLiteStorage_DeleteUserDataWithoutProfile(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// No user row, but reports filed under the email still get removed.
	item := createTestItem("item-1", model.ReportLost)
	item.Contact = "ghost@example.edu"
	require.NoError(t, store.SaveItem(ctx, item))

	deleted, err := store.DeleteUserData(ctx, "ghost@example.edu")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	items, err := store.ListItems(ctx, service.ItemFilter{Contact: "ghost@example.edu"})
	require.NoError(t, err)
	assert.Empty(t, items)
}
