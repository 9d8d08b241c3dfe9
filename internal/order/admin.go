package order

import (
	"context"
	"fmt"

	"github.com/example/dg-storefront/internal/infrastructure/store"
)

// View is an order joined with its line items and payment proof.
type View struct {
	Order *store.OrderRecord        `json:"order"`
	Items []*store.OrderItemRecord  `json:"items"`
	Proof *store.PaymentProofRecord `json:"proof,omitempty"`
}

// Get returns an order with its items and proof.
func (s *Service) Get(ctx context.Context, orderID string) (*View, error) {
	raw, found, err := s.records.Get(ctx, store.CollectionOrders, orderID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	rec := raw.(*store.OrderRecord)

	rows, err := s.records.Select(ctx, store.CollectionOrderItems, store.Filter{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	items := make([]*store.OrderItemRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.(*store.OrderItemRecord))
	}

	view := &View{Order: rec, Items: items}

	proofs, err := s.records.Select(ctx, store.CollectionPaymentProofs, store.Filter{"order_id": orderID})
	if err != nil {
		return nil, err
	}
	if len(proofs) > 0 {
		view.Proof = proofs[0].(*store.PaymentProofRecord)
	}
	return view, nil
}

// ListByUser returns a user's orders, most recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*store.OrderRecord, error) {
	rows, err := s.records.Select(ctx, store.CollectionOrders, store.Filter{"user_id": userID})
	if err != nil {
		return nil, err
	}
	orders := make([]*store.OrderRecord, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.(*store.OrderRecord))
	}
	return orders, nil
}

// ListAll returns every order, most recent first. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]*store.OrderRecord, error) {
	rows, err := s.records.GetAll(ctx, store.CollectionOrders)
	if err != nil {
		return nil, err
	}
	orders := make([]*store.OrderRecord, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.(*store.OrderRecord))
	}
	return orders, nil
}

// UpdateStatus moves an order along the fulfilment lifecycle. Invalid
// transitions are rejected against the state machine.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, target Status) error {
	if _, ok := validStatusTransitions[target]; !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, target)
	}

	raw, found, err := s.records.Get(ctx, store.CollectionOrders, orderID)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	rec := raw.(*store.OrderRecord)
	current := Status(rec.Status)

	if !current.CanTransitionTo(target) {
		return transitionError(current, target)
	}

	updated, err := s.records.Update(ctx, store.CollectionOrders, orderID, func(cur any) any {
		o := cur.(*store.OrderRecord)
		o.Status = string(target)
		o.UpdatedAt = s.now()
		return o
	})
	if err != nil {
		return err
	}
	if !updated {
		return ErrOrderNotFound
	}

	s.publish(ctx, orderID, EventOrderStatusChanged, OrderStatusChanged{
		OrderID:   orderID,
		From:      current,
		To:        target,
		ChangedAt: s.now(),
	})
	return nil
}

// ReviewProof records an admin's verdict on an order's payment proof.
// Approval marks the proof verified and the order's payment status verified;
// rejection marks the payment failed.
func (s *Service) ReviewProof(ctx context.Context, orderID string, approved bool) error {
	raw, found, err := s.records.Get(ctx, store.CollectionOrders, orderID)
	if err != nil {
		return err
	}
	if !found {
		return ErrOrderNotFound
	}
	rec := raw.(*store.OrderRecord)

	target := PaymentVerified
	if !approved {
		target = PaymentFailed
	}
	current := PaymentStatus(rec.PaymentStatus)
	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidPaymentStatus, current, target)
	}

	proofs, err := s.records.Select(ctx, store.CollectionPaymentProofs, store.Filter{"order_id": orderID})
	if err != nil {
		return err
	}
	if len(proofs) == 0 {
		return ErrProofNotFound
	}
	proof := proofs[0].(*store.PaymentProofRecord)

	now := s.now()
	if approved {
		if _, err := s.records.Update(ctx, store.CollectionPaymentProofs, proof.ID, func(cur any) any {
			p := cur.(*store.PaymentProofRecord)
			p.Verified = true
			verifiedAt := now
			p.VerifiedAt = &verifiedAt
			return p
		}); err != nil {
			return err
		}
	}

	if _, err := s.records.Update(ctx, store.CollectionOrders, orderID, func(cur any) any {
		o := cur.(*store.OrderRecord)
		o.PaymentStatus = string(target)
		o.UpdatedAt = now
		return o
	}); err != nil {
		return err
	}

	s.publish(ctx, orderID, EventProofReviewed, ProofReviewed{
		OrderID:    orderID,
		Approved:   approved,
		NewStatus:  target,
		ReviewedAt: now,
	})
	return nil
}
