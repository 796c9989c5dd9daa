package accountdelivery

import (
	"github.com/TNT-747/ebank/pkg/ribpkg"
	"github.com/go-playground/validator/v10"
)

// ValidRIB validates whether the field is a well formed RIB.
var ValidRIB validator.Func = func(fl validator.FieldLevel) bool {
	if rib, ok := fl.Field().Interface().(string); ok {
		return ribpkg.IsValid(rib)
	}
	return false
}
