package checkout

// PaymentMethod is a manual payment channel. The set is static configuration;
// no backend call is involved in presenting it.
type PaymentMethod struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Instructions string `json:"instructions"`
	QRImagePath  string `json:"qr_image_path"`
}

// paymentMethods are the manual channels the storefront accepts. Customers
// pay out-of-band and upload a screenshot as proof.
var paymentMethods = []PaymentMethod{
	{
		ID:           "esewa",
		DisplayName:  "eSewa",
		Instructions: "Send the order total to eSewa ID 9800000000 and upload a screenshot of the confirmation.",
		QRImagePath:  "/static/payments/esewa-qr.png",
	},
	{
		ID:           "khalti",
		DisplayName:  "Khalti",
		Instructions: "Send the order total to Khalti ID 9800000001 and upload a screenshot of the confirmation.",
		QRImagePath:  "/static/payments/khalti-qr.png",
	},
	{
		ID:           "fonepay",
		DisplayName:  "FonePay QR",
		Instructions: "Scan the QR code with your mobile banking app, pay the order total, and upload the receipt.",
		QRImagePath:  "/static/payments/fonepay-qr.png",
	},
	{
		ID:           "internet_banking",
		DisplayName:  "Internet Banking",
		Instructions: "Transfer the order total to account 0123456789 (Global Bank) and upload the transfer receipt.",
		QRImagePath:  "/static/payments/bank-transfer.png",
	},
}

// PaymentMethods returns the available manual payment channels.
func PaymentMethods() []PaymentMethod {
	methods := make([]PaymentMethod, len(paymentMethods))
	copy(methods, paymentMethods)
	return methods
}

// ValidMethod reports whether id names a configured payment channel.
func ValidMethod(id string) bool {
	for _, m := range paymentMethods {
		if m.ID == id {
			return true
		}
	}
	return false
}
