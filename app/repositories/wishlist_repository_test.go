package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	repo := NewWishlistRepository(newTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 5}))
	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 5}))

	items, err := repo.ForOwner(0, "sess-1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistOwnersAreIsolated(t *testing.T) {
	repo := NewWishlistRepository(newTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 5}))
	require.NoError(t, repo.Add(&models.WishlistItem{UserID: 9, ProductID: 6}))

	session, err := repo.ForOwner(0, "sess-1")
	require.NoError(t, err)
	require.Len(t, session, 1)
	assert.Equal(t, uint(5), session[0].ProductID)

	user, err := repo.ForOwner(9, "")
	require.NoError(t, err)
	require.Len(t, user, 1)
	assert.Equal(t, uint(6), user[0].ProductID)
}

func TestWishlistMigrateMovesSessionRows(t *testing.T) {
	repo := NewWishlistRepository(newTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 5}))
	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 6}))
	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-2", ProductID: 7}))

	moved, err := repo.Migrate("sess-1", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	user, err := repo.ForOwner(9, "")
	require.NoError(t, err)
	assert.Len(t, user, 2)

	// The migrated rows no longer answer to the old session.
	session, err := repo.ForOwner(0, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, session)

	// Unrelated sessions are untouched.
	other, err := repo.ForOwner(0, "sess-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestWishlistMigrateDropsProductsTheUserAlreadyHas(t *testing.T) {
	repo := NewWishlistRepository(newTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{UserID: 1, ProductID: 42}))
	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 42}))
	require.NoError(t, repo.Add(&models.WishlistItem{SessionID: "sess-1", ProductID: 43}))

	moved, err := repo.Migrate("sess-1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	user, err := repo.ForOwner(1, "")
	require.NoError(t, err)
	require.Len(t, user, 2)
	assert.Equal(t, uint(42), user[0].ProductID)
	assert.Equal(t, uint(43), user[1].ProductID)

	session, err := repo.ForOwner(0, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, session)
}

func TestWishlistRemoveAllowsReAdd(t *testing.T) {
	repo := NewWishlistRepository(newTestDB(t))

	require.NoError(t, repo.Add(&models.WishlistItem{UserID: 1, ProductID: 5}))
	require.NoError(t, repo.Remove(1, "", 5))
	require.NoError(t, repo.Add(&models.WishlistItem{UserID: 1, ProductID: 5}))

	items, err := repo.ForOwner(1, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
