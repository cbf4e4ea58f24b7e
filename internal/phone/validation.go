package phone

import (
	"github.com/go-playground/validator/v10"
)

// ValidationTag is the struct tag registered by RegisterValidation
const ValidationTag = "uk_mobile"

// RegisterValidation adds the uk_mobile tag to v.
// Empty values pass so the tag composes with required and omitempty.
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(ValidationTag, validateUKMobile)
}

func validateUKMobile(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsValid(value)
}
