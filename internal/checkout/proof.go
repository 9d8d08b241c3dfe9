package checkout

import (
	"fmt"

	"github.com/example/dg-storefront/internal/order"
)

// MaxProofSize caps the payment-proof upload at 5 MiB.
const MaxProofSize = 5 << 20

var allowedProofTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ValidateProof checks the uploaded payment-proof file locally, before any
// upload is attempted. The transaction reference is optional and never
// validated here. An empty result means the file is acceptable.
func ValidateProof(proof *order.ProofFile) FieldErrors {
	errs := FieldErrors{}

	if proof == nil || len(proof.Data) == 0 {
		errs["proof"] = "Payment screenshot is required"
		return errs
	}
	if !allowedProofTypes[proof.ContentType] {
		errs["proof"] = "Only JPEG and PNG images are accepted"
		return errs
	}
	if len(proof.Data) > MaxProofSize {
		errs["proof"] = fmt.Sprintf("File is too large (max %d MB)", MaxProofSize>>20)
	}

	return errs
}
