package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"gorm.io/gorm"
)

func TestCartUpsertReplacesExistingLine(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))

	first := models.CartItem{UserID: 1, ProductID: 42, VariationID: 7, Quantity: 1, Options: `{"size":"M"}`}
	require.NoError(t, repo.Upsert(&first))

	second := models.CartItem{UserID: 1, ProductID: 42, VariationID: 7, Quantity: 3, Options: `{"size":"L"}`}
	require.NoError(t, repo.Upsert(&second))

	items, err := repo.ForUser(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, `{"size":"L"}`, items[0].Options)
}

func TestCartUpsertKeepsDistinctVariations(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&models.CartItem{UserID: 1, ProductID: 42, VariationID: 0, Quantity: 1}))
	require.NoError(t, repo.Upsert(&models.CartItem{UserID: 1, ProductID: 42, VariationID: 7, Quantity: 1}))

	items, err := repo.ForUser(1)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartUpdateAndDeleteAreOwnerScoped(t *testing.T) {
	repo := NewCartRepository(newTestDB(t))

	item := models.CartItem{UserID: 1, ProductID: 42, Quantity: 1}
	require.NoError(t, repo.Upsert(&item))

	// Another user cannot touch the row.
	err := repo.UpdateFields(item.ID, 2, map[string]interface{}{"quantity": 9})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = repo.Delete(item.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The owner can.
	require.NoError(t, repo.UpdateFields(item.ID, 1, map[string]interface{}{"quantity": 9}))
	require.NoError(t, repo.Delete(item.ID, 1))

	items, err := repo.ForUser(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
