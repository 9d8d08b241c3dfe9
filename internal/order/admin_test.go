package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dg-storefront/internal/infrastructure/store"
	"github.com/example/dg-storefront/internal/infrastructure/store/mocks"
)

func seedOrder(records *mocks.MockRecordStore, id string, status Status, paymentStatus PaymentStatus) {
	records.SetData(store.CollectionOrders, id, &store.OrderRecord{
		ID:            id,
		OrderNumber:   "ORD-20260101-0001",
		UserID:        "user-123",
		Status:        string(status),
		PaymentStatus: string(paymentStatus),
		Total:         1500,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	})
}

func seedProof(records *mocks.MockRecordStore, id, orderID string) {
	records.SetData(store.CollectionPaymentProofs, id, &store.PaymentProofRecord{
		ID:      id,
		OrderID: orderID,
		FileURL: "memory://proof-bucket/payment-proofs/x.jpg",
	})
}

// ============================================
// Get / List Tests
// ============================================

func TestService_Get_JoinsItemsAndProof(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	ctx := context.Background()

	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)
	records.SetData(store.CollectionOrderItems, "item-1", &store.OrderItemRecord{
		ID: "item-1", OrderID: "order-1", ProductName: "Netflix Premium", Quantity: 1, UnitPrice: 1500, Subtotal: 1500,
	})
	seedProof(records, "proof-1", "order-1")

	view, err := service.Get(ctx, "order-1")

	require.NoError(t, err)
	assert.Equal(t, "order-1", view.Order.ID)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Netflix Premium", view.Items[0].ProductName)
	require.NotNil(t, view.Proof)
	assert.Equal(t, "proof-1", view.Proof.ID)
}

func TestService_Get_NotFound(t *testing.T) {
	service, _, _, _ := newTestPlacementService()

	_, err := service.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_ListByUser_FiltersOthers(t *testing.T) {
	service, records, _, _ := newTestPlacementService()

	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)
	records.SetData(store.CollectionOrders, "order-2", &store.OrderRecord{
		ID: "order-2", UserID: "someone-else", Status: string(StatusPending),
	})

	orders, err := service.ListByUser(context.Background(), "user-123")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].ID)
}

// ============================================
// UpdateStatus Tests
// ============================================

func TestService_UpdateStatus_ValidTransition(t *testing.T) {
	service, records, _, publisher := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)

	err := service.UpdateStatus(context.Background(), "order-1", StatusProcessing)

	require.NoError(t, err)
	raw, _ := records.GetData(store.CollectionOrders, "order-1")
	assert.Equal(t, string(StatusProcessing), raw.(*store.OrderRecord).Status)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, EventOrderStatusChanged, publisher.Events[0].Type)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	service, records, _, publisher := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)

	err := service.UpdateStatus(context.Background(), "order-1", StatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidStatus)
	raw, _ := records.GetData(store.CollectionOrders, "order-1")
	assert.Equal(t, string(StatusPending), raw.(*store.OrderRecord).Status)
	assert.Empty(t, publisher.Events)
}

func TestService_UpdateStatus_UnknownTarget(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)

	err := service.UpdateStatus(context.Background(), "order-1", Status("misplaced"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateStatus_TerminalStates(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	ctx := context.Background()

	seedOrder(records, "done", StatusCompleted, PaymentVerified)
	assert.ErrorIs(t, service.UpdateStatus(ctx, "done", StatusCancelled), ErrOrderCompleted)

	seedOrder(records, "gone", StatusCancelled, PaymentFailed)
	assert.ErrorIs(t, service.UpdateStatus(ctx, "gone", StatusProcessing), ErrOrderCancelled)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	service, _, _, _ := newTestPlacementService()

	err := service.UpdateStatus(context.Background(), "nope", StatusProcessing)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// ============================================
// ReviewProof Tests
// ============================================

func TestService_ReviewProof_Approve(t *testing.T) {
	service, records, _, publisher := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)
	seedProof(records, "proof-1", "order-1")

	err := service.ReviewProof(context.Background(), "order-1", true)

	require.NoError(t, err)

	raw, _ := records.GetData(store.CollectionOrders, "order-1")
	assert.Equal(t, string(PaymentVerified), raw.(*store.OrderRecord).PaymentStatus)

	raw, _ = records.GetData(store.CollectionPaymentProofs, "proof-1")
	proof := raw.(*store.PaymentProofRecord)
	assert.True(t, proof.Verified)
	require.NotNil(t, proof.VerifiedAt)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, EventProofReviewed, publisher.Events[0].Type)
}

func TestService_ReviewProof_Reject(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)
	seedProof(records, "proof-1", "order-1")

	err := service.ReviewProof(context.Background(), "order-1", false)

	require.NoError(t, err)

	raw, _ := records.GetData(store.CollectionOrders, "order-1")
	assert.Equal(t, string(PaymentFailed), raw.(*store.OrderRecord).PaymentStatus)

	// A rejected proof is left unverified.
	raw, _ = records.GetData(store.CollectionPaymentProofs, "proof-1")
	assert.False(t, raw.(*store.PaymentProofRecord).Verified)
}

func TestService_ReviewProof_AlreadyVerified(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerified)
	seedProof(records, "proof-1", "order-1")

	err := service.ReviewProof(context.Background(), "order-1", true)

	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestService_ReviewProof_MissingProof(t *testing.T) {
	service, records, _, _ := newTestPlacementService()
	seedOrder(records, "order-1", StatusPending, PaymentVerificationSubmitted)

	err := service.ReviewProof(context.Background(), "order-1", true)

	assert.ErrorIs(t, err, ErrProofNotFound)
}
