package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs the `validate` struct tags of a request DTO.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
