package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/webproformation/LaboutiqueOK-sub001/app/models"
	"github.com/webproformation/LaboutiqueOK-sub001/app/repositories"
	"github.com/webproformation/LaboutiqueOK-sub001/internal/woo"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/mail"
	"gorm.io/gorm"
)

var (
	// ErrBatchNotFound covers both a missing batch and one owned by
	// someone else; the two are indistinguishable to the caller.
	ErrBatchNotFound = errors.New("delivery: batch not found")
	// ErrBatchNotPending is returned when validation targets a batch
	// that already reached its terminal status.
	ErrBatchNotPending = errors.New("delivery: batch is not pending")
	// ErrBatchEmpty is returned for a batch without line items.
	ErrBatchEmpty = errors.New("delivery: batch has no items")
	// ErrBatchNoAddress is returned when the shipping address is
	// incomplete.
	ErrBatchNoAddress = errors.New("delivery: batch has no shipping address")
)

// OrderCreator is the slice of the catalog API batch validation needs.
type OrderCreator interface {
	CreateOrder(req woo.OrderRequest) (*woo.Order, error)
}

// DeliveryService validates batches by creating the corresponding order in
// the external catalog.
type DeliveryService struct {
	repo   *repositories.DeliveryRepository
	client OrderCreator
}

func NewDeliveryService(db *gorm.DB, client OrderCreator) *DeliveryService {
	return &DeliveryService{
		repo:   repositories.NewDeliveryRepository(db),
		client: client,
	}
}

// List returns the user's batches.
func (s *DeliveryService) List(userID uint) ([]models.DeliveryBatch, error) {
	return s.repo.ForUser(userID)
}

// Get returns one owned batch.
func (s *DeliveryService) Get(id, userID uint) (models.DeliveryBatch, error) {
	batch, err := s.repo.FindOwned(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return batch, ErrBatchNotFound
	}
	return batch, err
}

// Create persists a new pending batch for the user.
func (s *DeliveryService) Create(batch *models.DeliveryBatch) error {
	batch.Status = models.BatchPending
	batch.WooOrderID = 0
	return s.repo.Create(batch)
}

// Validate checks the batch's preconditions, submits the order to the
// external catalog, and on success moves the batch to its terminal
// "validated" status with the returned order id. Any precondition failure
// or remote error leaves the batch pending and unchanged.
func (s *DeliveryService) Validate(id, userID uint) (models.DeliveryBatch, error) {
	batch, err := s.repo.FindOwned(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return batch, ErrBatchNotFound
	}
	if err != nil {
		return batch, err
	}

	if batch.Status != models.BatchPending {
		return batch, ErrBatchNotPending
	}
	if len(batch.Items) == 0 {
		return batch, ErrBatchEmpty
	}
	if batch.Address == "" || batch.City == "" || batch.PostalCode == "" {
		return batch, ErrBatchNoAddress
	}

	subtotal := 0.0
	for _, item := range batch.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	total := subtotal + batch.ShippingCost

	order, err := s.client.CreateOrder(buildOrderRequest(batch))
	if err != nil {
		return batch, fmt.Errorf("delivery: create catalog order: %w", err)
	}

	if err := s.repo.MarkValidated(batch.ID, order.ID); err != nil {
		return batch, fmt.Errorf("delivery: mark validated: %w", err)
	}

	batch.Status = models.BatchValidated
	batch.WooOrderID = order.ID

	logger.Info("delivery: batch validated",
		"batch_id", batch.ID, "order_id", order.ID, "total", total)

	if batch.Email != "" {
		// Best effort; mail.Send logs failures itself.
		mail.Send(mail.Message{
			To:      []string{batch.Email},
			Subject: fmt.Sprintf("Commande n°%d confirmée", order.ID),
			Body: fmt.Sprintf(
				"Bonjour %s,\n\nVotre commande n°%d a bien été enregistrée.\nMontant total : %.2f €.\n\nÀ bientôt,\nLa Boutique",
				batch.FirstName, order.ID, total),
		})
	}

	return batch, nil
}

func buildOrderRequest(batch models.DeliveryBatch) woo.OrderRequest {
	address := woo.OrderAddress{
		FirstName: batch.FirstName,
		LastName:  batch.LastName,
		Address1:  batch.Address,
		City:      batch.City,
		Postcode:  batch.PostalCode,
		Country:   batch.Country,
		Email:     batch.Email,
		Phone:     batch.Phone,
	}

	lines := make([]woo.OrderLineItem, 0, len(batch.Items))
	for _, item := range batch.Items {
		lines = append(lines, woo.OrderLineItem{
			ProductID: item.WooProductID,
			Quantity:  item.Quantity,
		})
	}

	return woo.OrderRequest{
		PaymentMethod:      "delivery_batch",
		PaymentMethodTitle: "Livraison groupée",
		SetPaid:            false,
		Status:             "processing",
		Billing:            address,
		Shipping:           address,
		LineItems:          lines,
		ShippingLines: []woo.OrderShippingLine{{
			MethodID:    "flat_rate",
			MethodTitle: "Livraison",
			Total:       strconv.FormatFloat(batch.ShippingCost, 'f', 2, 64),
		}},
		MetaData: []woo.OrderMeta{{
			Key:   "delivery_batch_id",
			Value: strconv.FormatUint(uint64(batch.ID), 10),
		}},
	}
}
