package web

import "github.com/go-playground/validator/v10"

// GetErrorMsg returns a user friendly message for the first failed
// validation tag of a field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater or equal to " + fe.Param()
	case "max":
		return " must be less or equal to " + fe.Param()
	case "email":
		return " must be a valid email"
	case "rib":
		return " must be a valid RIB"
	default:
		return " is invalid"
	}
}
