package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/mail"
	"gorm.io/gorm"
)

type recordingSender struct {
	sent []mail.Message
}

func (r *recordingSender) Send(msg mail.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

type fakeOrderCreator struct {
	req *woo.OrderRequest
	err error
}

func (f *fakeOrderCreator) CreateOrder(req woo.OrderRequest) (*woo.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.req = &req
	return &woo.Order{ID: 9001, Status: "processing"}, nil
}

func seedBatch(t *testing.T, db *gorm.DB) models.DeliveryBatch {
	t.Helper()
	batch := models.DeliveryBatch{
		UserID:       1,
		Status:       models.BatchPending,
		FirstName:    "Marie",
		LastName:     "Dupont",
		Address:      "1 rue de la Paix",
		City:         "Paris",
		PostalCode:   "75002",
		Country:      "FR",
		Email:        "marie@example.com",
		ShippingCost: 4.90,
		Items: []models.DeliveryItem{
			{ProductID: 1, WooProductID: 100, Name: "Robe", Quantity: 2, UnitPrice: 49.90},
			{ProductID: 2, WooProductID: 101, Name: "Jupe", Quantity: 1, UnitPrice: 24.50},
		},
	}
	require.NoError(t, db.Create(&batch).Error)
	return batch
}

func TestValidateCreatesOrderAndMarksValidated(t *testing.T) {
	db := newTestDB(t)
	creator := &fakeOrderCreator{}
	svc := NewDeliveryService(db, creator)
	batch := seedBatch(t, db)

	sender := &recordingSender{}
	prev := mail.Default
	mail.Default = sender
	t.Cleanup(func() { mail.Default = prev })

	validated, err := svc.Validate(batch.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.BatchValidated, validated.Status)
	assert.Equal(t, int64(9001), validated.WooOrderID)

	require.NotNil(t, creator.req)
	assert.Len(t, creator.req.LineItems, 2)
	assert.Equal(t, int64(100), creator.req.LineItems[0].ProductID)
	assert.Equal(t, "Marie", creator.req.Shipping.FirstName)
	assert.Equal(t, "4.90", creator.req.ShippingLines[0].Total)

	var row models.DeliveryBatch
	require.NoError(t, db.First(&row, batch.ID).Error)
	assert.Equal(t, models.BatchValidated, row.Status)
	assert.Equal(t, int64(9001), row.WooOrderID)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"marie@example.com"}, sender.sent[0].To)
}

func TestValidateIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db, &fakeOrderCreator{})
	batch := seedBatch(t, db)

	_, err := svc.Validate(batch.ID, 2)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestValidateRejectsAlreadyValidated(t *testing.T) {
	db := newTestDB(t)
	creator := &fakeOrderCreator{}
	svc := NewDeliveryService(db, creator)
	batch := seedBatch(t, db)

	_, err := svc.Validate(batch.ID, 1)
	require.NoError(t, err)

	// A second validation must not create a second order.
	creator.req = nil
	_, err = svc.Validate(batch.ID, 1)
	assert.ErrorIs(t, err, ErrBatchNotPending)
	assert.Nil(t, creator.req)
}

func TestValidateRequiresItemsAndAddress(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db, &fakeOrderCreator{})

	empty := models.DeliveryBatch{UserID: 1, Status: models.BatchPending,
		Address: "1 rue de la Paix", City: "Paris", PostalCode: "75002"}
	require.NoError(t, db.Create(&empty).Error)
	_, err := svc.Validate(empty.ID, 1)
	assert.ErrorIs(t, err, ErrBatchEmpty)

	noAddress := models.DeliveryBatch{UserID: 1, Status: models.BatchPending,
		Items: []models.DeliveryItem{{ProductID: 1, WooProductID: 100, Quantity: 1}}}
	require.NoError(t, db.Create(&noAddress).Error)
	_, err = svc.Validate(noAddress.ID, 1)
	assert.ErrorIs(t, err, ErrBatchNoAddress)
}

func TestValidateRemoteFailureLeavesBatchPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db, &fakeOrderCreator{err: errors.New("woo is down")})
	batch := seedBatch(t, db)

	_, err := svc.Validate(batch.ID, 1)
	require.Error(t, err)

	var row models.DeliveryBatch
	require.NoError(t, db.First(&row, batch.ID).Error)
	assert.Equal(t, models.BatchPending, row.Status)
	assert.Zero(t, row.WooOrderID)
}

func TestCreateForcesPendingStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryService(db, &fakeOrderCreator{})

	batch := models.DeliveryBatch{UserID: 1, Status: "validated", WooOrderID: 777}
	require.NoError(t, svc.Create(&batch))
	assert.Equal(t, models.BatchPending, batch.Status)
	assert.Zero(t, batch.WooOrderID)
}
