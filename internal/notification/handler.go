package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/dg-storefront/internal/email"
	"github.com/example/dg-storefront/internal/order"
)

// Handler processes order events for sending notifications
type Handler struct {
	emailService *email.Service
}

// NewHandler creates a new notification handler
func NewHandler(emailSvc *email.Service) *Handler {
	return &Handler{emailService: emailSvc}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	// Only order placements trigger email
	if envelope.Type == order.EventOrderPlaced {
		return h.handleOrderPlaced(envelope.Data)
	}

	return nil
}

func (h *Handler) handleOrderPlaced(data json.RawMessage) error {
	var e order.OrderPlaced
	if err := json.Unmarshal(data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	if e.Email == "" {
		log.Printf("[Notifier] No email on order %s, skipping confirmation", e.OrderID)
		return nil
	}

	log.Printf("[Notifier] Processing OrderPlaced event for order %s, user %s", e.OrderID, e.UserID)

	emailItems := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		emailItems[i] = email.OrderItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		}
	}

	if err := h.emailService.SendOrderConfirmation(e.Email, e.OrderNumber, e.Total, emailItems); err != nil {
		log.Printf("[Notifier] Failed to send email to %s: %v", e.Email, err)
		return err
	}

	log.Printf("[Notifier] Order confirmation email sent to %s for order %s", e.Email, e.OrderNumber)
	return nil
}
