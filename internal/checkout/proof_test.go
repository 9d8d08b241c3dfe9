package checkout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/dg-storefront/internal/order"
)

func TestValidateProof_Valid(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{"jpeg", "image/jpeg"},
		{"jpg alias", "image/jpg"},
		{"png", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proof := &order.ProofFile{
				Data:        bytes.Repeat([]byte{0x01}, 1<<20),
				ContentType: tt.contentType,
			}
			assert.Empty(t, ValidateProof(proof))
		})
	}
}

func TestValidateProof_ExactlyAtLimit(t *testing.T) {
	proof := &order.ProofFile{
		Data:        make([]byte, MaxProofSize),
		ContentType: "image/png",
	}
	assert.Empty(t, ValidateProof(proof))
}

func TestValidateProof_TooLarge(t *testing.T) {
	// A 6 MiB PNG is rejected locally; nothing is uploaded.
	proof := &order.ProofFile{
		Data:        make([]byte, 6<<20),
		ContentType: "image/png",
	}

	errs := ValidateProof(proof)

	assert.Equal(t, "File is too large (max 5 MB)", errs["proof"])
}

func TestValidateProof_WrongType(t *testing.T) {
	tests := []string{"application/pdf", "image/gif", "text/plain", ""}

	for _, contentType := range tests {
		t.Run(contentType, func(t *testing.T) {
			proof := &order.ProofFile{
				Data:        []byte{0x01},
				ContentType: contentType,
			}
			errs := ValidateProof(proof)
			assert.Equal(t, "Only JPEG and PNG images are accepted", errs["proof"])
		})
	}
}

func TestValidateProof_Missing(t *testing.T) {
	errs := ValidateProof(nil)
	assert.Equal(t, "Payment screenshot is required", errs["proof"])

	errs = ValidateProof(&order.ProofFile{ContentType: "image/png"})
	assert.Equal(t, "Payment screenshot is required", errs["proof"])
}
