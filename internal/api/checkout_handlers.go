package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/example/dg-storefront/internal/checkout"
	"github.com/example/dg-storefront/internal/order"
)

// CheckoutHandlers drives the three-step checkout: shipping details, payment
// method, then payment proof upload which places the order. The in-progress
// state lives server-side, keyed by user.
type CheckoutHandlers struct {
	sessions     checkout.SessionStore
	orderService *order.Service
}

func NewCheckoutHandlers(sessions checkout.SessionStore, orderService *order.Service) *CheckoutHandlers {
	return &CheckoutHandlers{
		sessions:     sessions,
		orderService: orderService,
	}
}

// GetMethods lists the manual payment channels with their instructions
func (h *CheckoutHandlers) GetMethods(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, checkout.PaymentMethods())
}

// GetState returns the user's in-progress checkout, if any
func (h *CheckoutHandlers) GetState(w http.ResponseWriter, r *http.Request) {
	wizard, found, err := h.sessions.Get(r.Context(), getUserID(r))
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		respondJSONError(w, "No checkout in progress", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, wizard)
}

// SubmitShipping validates the shipping form and advances to method selection
func (h *CheckoutHandlers) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	var draft checkout.ShippingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := getUserID(r)
	wizard, found, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		wizard = checkout.NewWizard()
	}

	if fieldErrs := wizard.SubmitShipping(draft); len(fieldErrs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  fieldErrs,
		})
		return
	}

	if err := h.sessions.Put(r.Context(), userID, wizard); err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stage":   wizard.Stage,
	})
}

// SelectMethod picks a payment channel and advances to proof upload
func (h *CheckoutHandlers) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID := getUserID(r)
	wizard, found, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		respondJSONError(w, "No checkout in progress", http.StatusConflict)
		return
	}

	if err := wizard.SelectMethod(req.Method); err != nil {
		switch {
		case errors.Is(err, checkout.ErrUnknownChannel):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"errors":  checkout.FieldErrors{"method": err.Error()},
			})
		case errors.Is(err, checkout.ErrWrongStage):
			respondJSONError(w, err.Error(), http.StatusConflict)
		default:
			respondJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.sessions.Put(r.Context(), userID, wizard); err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stage":   wizard.Stage,
	})
}

// Back returns from the proof step to method selection, keeping earlier input
func (h *CheckoutHandlers) Back(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	wizard, found, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		respondJSONError(w, "No checkout in progress", http.StatusConflict)
		return
	}

	if err := wizard.Back(); err != nil {
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.sessions.Put(r.Context(), userID, wizard); err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stage":   wizard.Stage,
	})
}

// Complete takes the payment proof upload and places the order. The checkout
// session is cleared only when placement succeeds, so a failed attempt can be
// retried without redoing the earlier steps.
func (h *CheckoutHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)
	wizard, found, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		respondJSONError(w, "No checkout in progress", http.StatusConflict)
		return
	}

	// One MiB of headroom over the proof limit so an oversized file is
	// rejected by validation with a field error, not a parse failure.
	if err := r.ParseMultipartForm(checkout.MaxProofSize + 1<<20); err != nil {
		respondJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("proof")
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  checkout.FieldErrors{"proof": "Payment proof screenshot is required"},
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondJSONError(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	proof := &order.ProofFile{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
	if fieldErrs := checkout.ValidateProof(proof); len(fieldErrs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"errors":  fieldErrs,
		})
		return
	}

	var items []order.CartItem
	if err := json.Unmarshal([]byte(r.FormValue("cart")), &items); err != nil {
		respondJSONError(w, "Invalid cart payload", http.StatusBadRequest)
		return
	}
	total, err := strconv.Atoi(r.FormValue("total"))
	if err != nil {
		respondJSONError(w, "Invalid total", http.StatusBadRequest)
		return
	}

	req, err := wizard.BuildRequest(userID, proof, r.FormValue("transaction_id"), items, total)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	}

	orderID, err := h.orderService.Place(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, order.ErrMissingFields),
			errors.Is(err, order.ErrEmptyOrder),
			errors.Is(err, order.ErrTotalMismatch):
			status = http.StatusBadRequest
		}
		respondJSON(w, status, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	// The order is placed; a stale session is harmless and expires on its own.
	_ = h.sessions.Delete(r.Context(), userID)

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"order_id": orderID,
	})
}
