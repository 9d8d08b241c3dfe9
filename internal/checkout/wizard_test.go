package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/dg-storefront/internal/order"
)

func wizardAtProofStage(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard()
	require.Empty(t, w.SubmitShipping(validShippingDraft()))
	require.NoError(t, w.SelectMethod("esewa"))
	return w
}

// ============================================
// Stage Progression Tests
// ============================================

func TestNewWizard_StartsAtShipping(t *testing.T) {
	w := NewWizard()

	assert.Equal(t, StageShipping, w.Stage)
	assert.Nil(t, w.Shipping)
	assert.Empty(t, w.Method)
}

func TestWizard_SubmitShipping_Advances(t *testing.T) {
	w := NewWizard()

	errs := w.SubmitShipping(validShippingDraft())

	assert.Empty(t, errs)
	assert.Equal(t, StageMethod, w.Stage)
	require.NotNil(t, w.Shipping)
	assert.Equal(t, "Sita Sharma", w.Shipping.FullName)
}

func TestWizard_SubmitShipping_InvalidStaysPut(t *testing.T) {
	w := NewWizard()

	errs := w.SubmitShipping(ShippingDraft{})

	assert.NotEmpty(t, errs)
	assert.Equal(t, StageShipping, w.Stage)
	assert.Nil(t, w.Shipping)
}

func TestWizard_SubmitShipping_ResubmitKeepsMethod(t *testing.T) {
	w := wizardAtProofStage(t)

	d := validShippingDraft()
	d.City = "Pokhara"
	errs := w.SubmitShipping(d)

	assert.Empty(t, errs)
	assert.Equal(t, "Pokhara", w.Shipping.City)
	// Editing shipping from a later stage does not restart the flow.
	assert.Equal(t, StageProof, w.Stage)
	assert.Equal(t, "esewa", w.Method)
}

func TestWizard_SelectMethod_Advances(t *testing.T) {
	w := NewWizard()
	require.Empty(t, w.SubmitShipping(validShippingDraft()))

	require.NoError(t, w.SelectMethod("khalti"))

	assert.Equal(t, StageProof, w.Stage)
	assert.Equal(t, "khalti", w.Method)
}

func TestWizard_SelectMethod_RequiresShipping(t *testing.T) {
	w := NewWizard()

	err := w.SelectMethod("esewa")

	assert.ErrorIs(t, err, ErrWrongStage)
}

func TestWizard_SelectMethod_UnknownChannel(t *testing.T) {
	w := NewWizard()
	require.Empty(t, w.SubmitShipping(validShippingDraft()))

	err := w.SelectMethod("paypal")

	assert.ErrorIs(t, err, ErrUnknownChannel)
	assert.Equal(t, StageMethod, w.Stage)
}

func TestWizard_Back_FromProof(t *testing.T) {
	w := wizardAtProofStage(t)

	require.NoError(t, w.Back())

	assert.Equal(t, StageMethod, w.Stage)
	// Earlier input survives the backward step.
	assert.NotNil(t, w.Shipping)
	assert.Equal(t, "esewa", w.Method)
}

func TestWizard_Back_OnlyFromProof(t *testing.T) {
	w := NewWizard()
	assert.ErrorIs(t, w.Back(), ErrWrongStage)

	require.Empty(t, w.SubmitShipping(validShippingDraft()))
	assert.ErrorIs(t, w.Back(), ErrWrongStage)
}

// ============================================
// BuildRequest Tests
// ============================================

func TestWizard_BuildRequest_Complete(t *testing.T) {
	w := wizardAtProofStage(t)
	proof := &order.ProofFile{Data: []byte{0x01}, ContentType: "image/jpeg"}
	items := []order.CartItem{{ProductID: "prod-1", Name: "Netflix Premium", Quantity: 1, Price: 1500}}

	req, err := w.BuildRequest("user-123", proof, "TXN-1", items, 1500)

	require.NoError(t, err)
	assert.Equal(t, "user-123", req.UserID)
	assert.Equal(t, "Sita Sharma", req.FullName)
	assert.Equal(t, "sita@example.com", req.Email)
	assert.Equal(t, "esewa", req.PaymentMethod)
	assert.Equal(t, "TXN-1", req.TransactionID)
	assert.Equal(t, 1500, req.Total)
	assert.Equal(t, items, req.Items)
	assert.Same(t, proof, req.Proof)
}

func TestWizard_BuildRequest_NotReady(t *testing.T) {
	w := NewWizard()

	_, err := w.BuildRequest("user-123", nil, "", nil, 0)
	assert.ErrorIs(t, err, ErrNotReady)

	require.Empty(t, w.SubmitShipping(validShippingDraft()))
	_, err = w.BuildRequest("user-123", nil, "", nil, 0)
	assert.ErrorIs(t, err, ErrNotReady)
}

// ============================================
// Payment Method Catalog Tests
// ============================================

func TestPaymentMethods_KnownChannels(t *testing.T) {
	methods := PaymentMethods()

	ids := make([]string, 0, len(methods))
	for _, m := range methods {
		ids = append(ids, m.ID)
		assert.NotEmpty(t, m.DisplayName)
		assert.NotEmpty(t, m.Instructions)
	}
	assert.Equal(t, []string{"esewa", "khalti", "fonepay", "internet_banking"}, ids)
}

func TestValidMethod(t *testing.T) {
	assert.True(t, ValidMethod("esewa"))
	assert.True(t, ValidMethod("internet_banking"))
	assert.False(t, ValidMethod("paypal"))
	assert.False(t, ValidMethod(""))
}
