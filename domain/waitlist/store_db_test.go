package waitlist

import (
	"context"
	"testing"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/models"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDBStore(t *testing.T) (EntryStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.WaitlistEntry{}))

	return NewDBEntryStore(db, log.NewLoggerWithJSONOutput()), db
}

func TestDBEntryStore_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new active entry keyed by normalized email", func(t *testing.T) {
		store, db := newTestDBStore(t)

		entry, err := store.Upsert(ctx, "  Student@Uni.EDU ", "Example University")
		require.NoError(t, err)

		assert.Equal(t, "student@uni.edu", entry.ID)
		assert.Equal(t, "student@uni.edu", entry.Email)
		assert.True(t, entry.IsActive)

		var count int64
		require.NoError(t, db.Model(&models.WaitlistEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("active duplicate conflicts", func(t *testing.T) {
		store, _ := newTestDBStore(t)

		_, err := store.Upsert(ctx, "student@uni.edu", "Example University")
		require.NoError(t, err)

		_, err = store.Upsert(ctx, "Student@uni.edu", "Example University")
		require.Error(t, err)
		assert.Equal(t, 409, apperrors.HTTPStatusCode(err))
	})

	t.Run("inactive entry is reactivated with refreshed subscription", func(t *testing.T) {
		store, _ := newTestDBStore(t)

		original, err := store.Upsert(ctx, "student@uni.edu", "Old School")
		require.NoError(t, err)
		require.NoError(t, store.Deactivate(ctx, "student@uni.edu"))

		revived, err := store.Upsert(ctx, "student@uni.edu", "New School")
		require.NoError(t, err)

		assert.Equal(t, original.ID, revived.ID)
		assert.Equal(t, "New School", revived.School)
		assert.True(t, revived.IsActive)
		assert.False(t, revived.SubscribedAt.Before(original.SubscribedAt))
	})
}

func TestDBEntryStore_ListActive(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestDBStore(t)

	entries, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = store.Upsert(ctx, "one@uni.edu", "School One")
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "two@uni.edu", "School Two")
	require.NoError(t, err)
	require.NoError(t, store.Deactivate(ctx, "one@uni.edu"))

	entries, err = store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "two@uni.edu", entries[0].Email)
}

func TestDBEntryStore_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email is not found", func(t *testing.T) {
		store, _ := newTestDBStore(t)

		err := store.Deactivate(ctx, "nobody@uni.edu")

		require.Error(t, err)
		assert.Equal(t, 404, apperrors.HTTPStatusCode(err))
	})

	t.Run("deactivating twice stays successful", func(t *testing.T) {
		store, _ := newTestDBStore(t)

		_, err := store.Upsert(ctx, "student@uni.edu", "Example University")
		require.NoError(t, err)

		require.NoError(t, store.Deactivate(ctx, "student@uni.edu"))
		require.NoError(t, store.Deactivate(ctx, "STUDENT@uni.edu"))
	})
}
