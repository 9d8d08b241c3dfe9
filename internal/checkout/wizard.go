package checkout

import (
	"errors"
	"time"

	"github.com/example/dg-storefront/internal/order"
)

// Stage identifies a checkout wizard step.
type Stage string

const (
	StageShipping Stage = "shipping"
	StageMethod   Stage = "method"
	StageProof    Stage = "proof"
)

var (
	ErrWrongStage     = errors.New("step not reachable from current stage")
	ErrNotReady       = errors.New("checkout draft is incomplete")
	ErrUnknownChannel = errors.New("unknown payment channel")
)

// Wizard is a user's in-progress checkout: a linear three-stage flow with no
// backward data loss. Advancing keeps the earlier steps' validated output;
// the only backward affordance is returning from the proof step to the
// payment method step.
type Wizard struct {
	Stage     Stage          `json:"stage"`
	Shipping  *ShippingDraft `json:"shipping,omitempty"`
	Method    string         `json:"method,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewWizard starts a checkout at the shipping step.
func NewWizard() *Wizard {
	return &Wizard{Stage: StageShipping, UpdatedAt: time.Now()}
}

// SubmitShipping validates the shipping draft and, when clean, stores it and
// advances to method selection. Resubmitting from a later stage replaces the
// draft without losing the selected method.
func (w *Wizard) SubmitShipping(d ShippingDraft) FieldErrors {
	if errs := ValidateShipping(d); len(errs) > 0 {
		return errs
	}
	w.Shipping = &d
	if w.Stage == StageShipping {
		w.Stage = StageMethod
	}
	w.UpdatedAt = time.Now()
	return nil
}

// SelectMethod records the chosen payment channel and advances to the proof
// step. The shipping step must have been completed first.
func (w *Wizard) SelectMethod(id string) error {
	if w.Shipping == nil {
		return ErrWrongStage
	}
	if !ValidMethod(id) {
		return ErrUnknownChannel
	}
	w.Method = id
	w.Stage = StageProof
	w.UpdatedAt = time.Now()
	return nil
}

// Back returns from the proof step to method selection, retaining the
// shipping draft.
func (w *Wizard) Back() error {
	if w.Stage != StageProof {
		return ErrWrongStage
	}
	w.Stage = StageMethod
	w.UpdatedAt = time.Now()
	return nil
}

// BuildRequest assembles the completed checkout draft into a placement
// request. It fails unless the wizard has reached the proof stage with a
// shipping draft and payment method in hand.
func (w *Wizard) BuildRequest(userID string, proof *order.ProofFile, transactionID string, items []order.CartItem, total int) (order.PlacementRequest, error) {
	if w.Stage != StageProof || w.Shipping == nil || w.Method == "" {
		return order.PlacementRequest{}, ErrNotReady
	}
	return order.PlacementRequest{
		UserID:        userID,
		FullName:      w.Shipping.FullName,
		Email:         w.Shipping.Email,
		Phone:         w.Shipping.Phone,
		Address:       w.Shipping.Address,
		City:          w.Shipping.City,
		Notes:         w.Shipping.Notes,
		PaymentMethod: w.Method,
		TransactionID: transactionID,
		Total:         total,
		Items:         items,
		Proof:         proof,
	}, nil
}
