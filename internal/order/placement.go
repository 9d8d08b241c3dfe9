package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/dg-storefront/internal/infrastructure/blob"
	"github.com/example/dg-storefront/internal/infrastructure/store"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrEmptyOrder       = errors.New("order must have at least one item")
	ErrTotalMismatch    = errors.New("order total does not match cart items")
	ErrCreateShipping   = errors.New("failed to create shipping address")
	ErrUploadProofFile  = errors.New("file upload failed")
	ErrCreateOrder      = errors.New("failed to create order")
	ErrCreateOrderItems = errors.New("failed to create order items")
	ErrCreateProof      = errors.New("failed to upload payment proof")
)

// DefaultCountry is stamped on shipping addresses; the storefront ships to a
// single market.
const DefaultCountry = "Nepal"

// CartItem is one entry of the client-held cart, input to order-item creation.
type CartItem struct {
	ProductID  string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	Quantity   int    `json:"quantity"`
	Price      int    `json:"price"`
	PlanID     string `json:"plan_id,omitempty"`
	DurationID string `json:"duration_id,omitempty"`
}

// ProofFile is the uploaded payment-proof image.
type ProofFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// PlacementRequest is the completed checkout draft handed to Place.
type PlacementRequest struct {
	UserID        string
	FullName      string
	Email         string
	Phone         string
	Address       string
	City          string
	Notes         string
	PaymentMethod string
	TransactionID string
	Total         int
	Items         []CartItem
	Proof         *ProofFile
}

// EventPublisher publishes order events. The Kafka producer satisfies this.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Service executes order placement and the admin order operations.
type Service struct {
	records   store.RecordStore
	blobs     blob.Store
	bucket    string
	publisher EventPublisher

	now func() time.Time
}

func NewService(records store.RecordStore, blobs blob.Store, bucket string, publisher EventPublisher) *Service {
	return &Service{
		records:   records,
		blobs:     blobs,
		bucket:    bucket,
		publisher: publisher,
		now:       time.Now,
	}
}

// Place turns a completed checkout draft into a persisted order with its
// shipping address, line items and payment proof.
//
// The write sequence is: {shipping address, proof upload} concurrently, then
// the order, then {order items, proof record} concurrently. Each later step
// depends on an id or URL from an earlier one, so the stages are strictly
// ordered. There is no rollback: a mid-sequence failure leaves the earlier
// writes in place (an upload failure orphans the shipping address).
func (s *Service) Place(ctx context.Context, req PlacementRequest) (string, error) {
	if err := checkRequired(req); err != nil {
		return "", err
	}
	if len(req.Items) == 0 {
		return "", ErrEmptyOrder
	}

	// The caller-supplied total is not trusted: recompute from the items.
	subtotal := 0
	for _, item := range req.Items {
		subtotal += item.Price * item.Quantity
	}
	if subtotal != req.Total {
		return "", fmt.Errorf("%w: got %d, items sum to %d", ErrTotalMismatch, req.Total, subtotal)
	}

	now := s.now()
	orderNumber := NewOrderNumber(now)
	objectPath := ProofObjectPath(orderNumber, now, proofExtension(req.Proof))

	addressID := uuid.New().String()
	address := &store.ShippingAddressRecord{
		ID:          addressID,
		UserID:      req.UserID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		AddressLine: req.Address,
		City:        req.City,
		Country:     DefaultCountry,
		IsDefault:   false,
		CreatedAt:   now,
	}

	// The shipping insert and the proof upload are independent; run both and
	// join. The shipping error takes precedence when both fail.
	var wg sync.WaitGroup
	var shipErr, uploadErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		shipErr = s.records.Insert(ctx, store.CollectionShippingAddresses, addressID, address)
	}()
	go func() {
		defer wg.Done()
		uploadErr = s.blobs.Upload(ctx, s.bucket, objectPath, req.Proof.Data, req.Proof.ContentType)
	}()
	wg.Wait()

	if shipErr != nil {
		log.Printf("[Order] Shipping address insert failed for %s: %v", orderNumber, shipErr)
		return "", fmt.Errorf("%w: %v", ErrCreateShipping, shipErr)
	}
	if uploadErr != nil {
		log.Printf("[Order] Proof upload failed for %s: %v", orderNumber, uploadErr)
		return "", fmt.Errorf("%w: %v", ErrUploadProofFile, uploadErr)
	}

	fileURL := s.blobs.PublicURL(s.bucket, objectPath)

	orderID := uuid.New().String()
	rec := &store.OrderRecord{
		ID:                orderID,
		OrderNumber:       orderNumber,
		UserID:            req.UserID,
		Status:            string(StatusPending),
		PaymentStatus:     string(PaymentVerificationSubmitted),
		PaymentMethod:     req.PaymentMethod,
		Subtotal:          subtotal,
		ShippingFee:       0,
		Tax:               0,
		Discount:          0,
		Total:             subtotal,
		ShippingAddressID: addressID,
		BillingAddressID:  addressID,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.records.Insert(ctx, store.CollectionOrders, orderID, rec); err != nil {
		log.Printf("[Order] Order insert failed for %s: %v", orderNumber, err)
		return "", fmt.Errorf("%w: %v", ErrCreateOrder, err)
	}

	// Line items and the proof record both hang off the order; independent of
	// each other, so run both and join.
	var itemsErr, proofErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		itemsErr = s.insertItems(ctx, orderID, req.Items, now)
	}()
	go func() {
		defer wg.Done()
		proof := &store.PaymentProofRecord{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			FileURL:       fileURL,
			PaymentMethod: req.PaymentMethod,
			TransactionID: req.TransactionID,
			Amount:        subtotal,
			UploadedAt:    now,
			Verified:      false,
		}
		proofErr = s.records.Insert(ctx, store.CollectionPaymentProofs, proof.ID, proof)
	}()
	wg.Wait()

	if itemsErr != nil {
		log.Printf("[Order] Order item insert failed for %s: %v", orderNumber, itemsErr)
		return "", fmt.Errorf("%w: %v", ErrCreateOrderItems, itemsErr)
	}
	if proofErr != nil {
		// The proof file itself is already uploaded; only the record failed.
		log.Printf("[Order] Proof record insert failed for %s: %v", orderNumber, proofErr)
		return "", fmt.Errorf("%w: %v", ErrCreateProof, proofErr)
	}

	s.publish(ctx, orderID, EventOrderPlaced, OrderPlaced{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		UserID:      req.UserID,
		Email:       req.Email,
		Total:       subtotal,
		Items:       placedItems(req.Items),
		PlacedAt:    now,
	})

	return orderID, nil
}

func (s *Service) insertItems(ctx context.Context, orderID string, items []CartItem, now time.Time) error {
	for _, item := range items {
		rec := &store.OrderItemRecord{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			ProductType: item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Subtotal:    item.Price * item.Quantity,
			PlanID:      item.PlanID,
			DurationID:  item.DurationID,
			IsDelivered: false,
			CreatedAt:   now,
		}
		if err := s.records.Insert(ctx, store.CollectionOrderItems, rec.ID, rec); err != nil {
			return err
		}
	}
	return nil
}

// publish sends an order event; delivery is best-effort and never fails the
// operation that triggered it.
func (s *Service) publish(ctx context.Context, orderID, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	event := Event{
		Type:       eventType,
		OrderID:    orderID,
		OccurredAt: s.now(),
		Data:       data,
	}
	if err := s.publisher.Publish(ctx, orderID, event); err != nil {
		log.Printf("[Order] Failed to publish %s for order %s: %v", eventType, orderID, err)
	}
}

func checkRequired(req PlacementRequest) error {
	var missing []string
	required := []struct {
		field string
		value string
	}{
		{"user", req.UserID},
		{"full_name", req.FullName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"address", req.Address},
		{"city", req.City},
		{"payment_method", req.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if req.Proof == nil || len(req.Proof.Data) == 0 {
		missing = append(missing, "proof_file")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// proofExtension picks the stored object's extension from the original
// filename, falling back to the declared content type.
func proofExtension(proof *ProofFile) string {
	if proof == nil {
		return ".jpg"
	}
	if ext := strings.ToLower(filepath.Ext(proof.Filename)); ext != "" {
		return ext
	}
	if proof.ContentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}

func placedItems(items []CartItem) []PlacedItem {
	placed := make([]PlacedItem, 0, len(items))
	for _, item := range items {
		placed = append(placed, PlacedItem{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}
	return placed
}
