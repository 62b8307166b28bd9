package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct tags of a request DTO.
func Validate(v any) error {
	return validate.Struct(v)
}
