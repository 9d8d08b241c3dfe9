package order

import (
	"fmt"
	"math/rand"
	"time"
)

// NewOrderNumber derives a human-readable order number from the current date
// and a random 4-digit suffix: ORD-YYYYMMDD-NNNN. The number is display-only;
// nothing enforces its uniqueness, so two checkouts on the same day can
// collide with probability 1/10000.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// ProofObjectPath derives the blob storage path for a payment-proof upload
// from the order number, the current timestamp and the file extension, so
// uploads cannot collide with each other.
func ProofObjectPath(orderNumber string, now time.Time, ext string) string {
	return fmt.Sprintf("payment-proofs/%s-%d%s", orderNumber, now.UnixMilli(), ext)
}
