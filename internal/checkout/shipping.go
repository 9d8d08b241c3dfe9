package checkout

import (
	"regexp"
	"strings"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// ShippingDraft is the validated output of the shipping step.
type ShippingDraft struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Notes    string `json:"notes,omitempty"`
}

// emailPattern accepts any local@domain shape; full RFC validation is not
// worth the false rejections here.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidateShipping checks a shipping draft on submit. An empty result means
// the draft is valid; otherwise the map carries one message per bad field and
// the step must not advance.
func ValidateShipping(d ShippingDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.FullName) == "" {
		errs["full_name"] = "Full name is required"
	}
	switch {
	case strings.TrimSpace(d.Email) == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(d.Email):
		errs["email"] = "Enter a valid email address"
	}
	switch {
	case strings.TrimSpace(d.Phone) == "":
		errs["phone"] = "Phone number is required"
	case !digitsOnly.MatchString(d.Phone):
		errs["phone"] = "Phone number must contain digits only"
	}
	if strings.TrimSpace(d.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		errs["city"] = "City is required"
	}

	return errs
}
