package meetup

import "github.com/go-playground/validator/v10"

// Shared validator for request structs. Field rules live in `validate`
// struct tags next to the JSON tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return Validation(err.Error())
	}
	return nil
}
